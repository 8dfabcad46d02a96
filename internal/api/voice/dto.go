package voice

import "EnergyPalace/internal/entity"

const (
	StatusExecuted = "executed"
	StatusNoMatch  = "no_match"
	StatusFailed   = "failed"
)

type ProcessCommandRequest struct {
	Text     string `json:"text" validate:"omitempty,max=500"`
	Language string `json:"language" validate:"omitempty,oneof=en ne"`
	Speak    bool   `json:"speak"`
}

type CommandResponse struct {
	Transcript string            `json:"transcript"`
	Language   string            `json:"language"`
	Intent     string            `json:"intent"`
	Fields     map[string]string `json:"fields,omitempty"`
	Confidence float64           `json:"confidence"`
	Message    string            `json:"message"`
	Status     string            `json:"status"`
}

type HistoryResponse struct {
	Commands []entity.VoiceCommand `json:"commands"`
	Total    int                   `json:"total"`
}

type IntentStat struct {
	Intent    string  `json:"intent"`
	Total     int     `json:"total"`
	Succeeded int     `json:"succeeded"`
	Rate      float64 `json:"rate"`
}

type LanguageStat struct {
	Language  string  `json:"language"`
	Total     int     `json:"total"`
	Succeeded int     `json:"succeeded"`
	Rate      float64 `json:"rate"`
}

type AnalyticsResponse struct {
	Total       int            `json:"total"`
	Succeeded   int            `json:"succeeded"`
	SuccessRate float64        `json:"success_rate"`
	ByIntent    []IntentStat   `json:"by_intent"`
	ByLanguage  []LanguageStat `json:"by_language"`
}
