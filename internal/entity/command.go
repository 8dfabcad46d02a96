package entity

import (
	"time"
)

const (
	IntentOrder    = "order"
	IntentExpense  = "expense"
	IntentDeposit  = "deposit"
	IntentCharging = "charging"
	IntentCustom   = "custom"
)

const (
	TrainingPending   = "pending"
	TrainingRunning   = "training"
	TrainingCompleted = "completed"
	TrainingFailed    = "failed"
)

type CommandTemplate struct {
	ID         string            `json:"id"`
	Phrase     string            `json:"phrase"`
	PhraseNe   string            `json:"phrase_ne,omitempty"`
	Intent     string            `json:"intent"`
	Parameters map[string]string `json:"parameters"`
	Examples   []string          `json:"examples"`
	ExamplesNe []string          `json:"examples_ne,omitempty"`
	Confidence float64           `json:"confidence"`
	IsActive   bool              `json:"is_active"`
}

type TrainingSession struct {
	CommandID string    `json:"command_id"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
