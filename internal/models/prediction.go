package models

import "time"

// ProbabilityEntry pairs a star-rating label with its predicted probability.
type ProbabilityEntry struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

// Prediction is the result of one inference pass.
type Prediction struct {
	Rating        int                `json:"rating"`
	Confidence    float64            `json:"confidence"`
	Probabilities []ProbabilityEntry `json:"probabilities"`
}

// SessionRecord correlates a served prediction with later narrative calls.
// Inputs hold the raw normalized form values: strings for categorical fields,
// float64 for numeric ones.
type SessionRecord struct {
	ID            string                 `json:"id"`
	Inputs        map[string]interface{} `json:"inputs"`
	Rating        int                    `json:"rating"`
	Confidence    float64                `json:"confidence"`
	Probabilities []ProbabilityEntry     `json:"probabilities"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ChatAnswer is the structured result of a chat narrative call.
type ChatAnswer struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}
