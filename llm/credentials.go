package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIVersion = "2025-01-01-preview"

// Credentials are the Azure OpenAI access details served by the credentials
// server.
type Credentials struct {
	BaseURL    string `json:"baseUrl"`
	APIKey     string `json:"apiKey"`
	Deployment string `json:"llmDeployment"`
	APIVersion string `json:"apiVersion"`
}

// FetchCredentials retrieves generation credentials from the given URL.
func FetchCredentials(ctx context.Context, url string) (*Credentials, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("credentials server returned status %d", resp.StatusCode)
	}

	var creds Credentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return nil, fmt.Errorf("error decoding credentials response: %v", err)
	}

	if creds.BaseURL == "" || creds.APIKey == "" || creds.Deployment == "" {
		return nil, fmt.Errorf("incomplete credentials received from server")
	}
	if creds.APIVersion == "" {
		creds.APIVersion = defaultAPIVersion
	}
	return &creds, nil
}
