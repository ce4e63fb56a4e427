package models

import "github.com/golang-jwt/jwt/v5"

// Principal is the authenticated identity attached to a request. It is built
// per request from a verified token and never persisted. A nil *Principal
// means the request is anonymous.
type Principal struct {
	Username string `json:"username"`
}

// ConciergeClaims are the claims carried by the service's bearer tokens. The
// username lives in the registered Subject claim.
type ConciergeClaims struct {
	jwt.RegisteredClaims
}
