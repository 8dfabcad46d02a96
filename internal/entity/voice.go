package entity

import (
	"time"
)

type VoiceCommand struct {
	ID         string                 `json:"id"`
	Transcript string                 `json:"transcript"`
	Language   string                 `json:"language"`
	Intent     string                 `json:"intent"`
	Response   string                 `json:"response"`
	Confidence float64                `json:"confidence"`
	Success    bool                   `json:"success"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}
