package models

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion is a threshold relaxation that would admit more rows on a rerun.
// Criterion is empty for plain advisory text.
type Suggestion struct {
	Criterion string   `json:"criterion,omitempty"`
	Current   *float64 `json:"current,omitempty"`
	Suggested *float64 `json:"suggested,omitempty"`
	Unlocks   int      `json:"unlocks,omitempty"`
	Text      string   `json:"text"`
}

type ScreeningSummary struct {
	Evaluated              int      `json:"evaluated"`
	Passed                 int      `json:"passed"`
	Returned               int      `json:"returned"`
	MedianAnnualizedReturn *float64 `json:"median_annualized_return,omitempty"`
	MedianIV               *float64 `json:"median_iv,omitempty"`
	BestCredit             *float64 `json:"best_credit,omitempty"`
}

type ScreeningResult struct {
	RunID       uuid.UUID           `json:"run_id"`
	Ticker      string              `json:"ticker"`
	Strategy    Strategy            `json:"strategy"`
	Spot        *float64            `json:"spot"`
	Expirations []string            `json:"expirations"`
	Parameters  ScreeningParameters `json:"parameters"`
	Contracts   []EvaluatedContract `json:"contracts,omitempty"`
	Spreads     []WingedSpread      `json:"spreads,omitempty"`
	Empty       bool                `json:"empty"`
	Message     string              `json:"message,omitempty"`
	Suggestions []Suggestion        `json:"suggestions,omitempty"`
	Summary     ScreeningSummary    `json:"summary"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ScreeningCompletedEvent is published once a screening run has produced its result.
type ScreeningCompletedEvent struct {
	Result *ScreeningResult
}
