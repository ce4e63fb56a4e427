package models

// Intent is the closed-taxonomy classification of a user query's topic.
type Intent string

const (
	IntentAccountBalance     Intent = "account_balance"
	IntentTransactionHistory Intent = "transaction_history"
	IntentSpendingAnalysis   Intent = "spending_analysis"
	IntentBudgetAdvice       Intent = "budget_advice"
	IntentInvestmentAdvice   Intent = "investment_advice"
	IntentGeneralQuestion    Intent = "general_question"
)

// IntentTaxonomy lists every intent in classification order. The classifier
// resolves ambiguous replies by picking the first listed label whose name
// appears in the reply, so the order here is load-bearing.
var IntentTaxonomy = []Intent{
	IntentAccountBalance,
	IntentTransactionHistory,
	IntentSpendingAnalysis,
	IntentBudgetAdvice,
	IntentInvestmentAdvice,
	IntentGeneralQuestion,
}

func (i Intent) String() string {
	return string(i)
}
