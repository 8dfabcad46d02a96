package training

import (
	"EnergyPalace/internal/entity"
)

type AddCommandRequest struct {
	Phrase     string            `json:"phrase" validate:"required,min=1,max=200"`
	PhraseNe   string            `json:"phrase_ne,omitempty" validate:"omitempty,max=200"`
	Intent     string            `json:"intent" validate:"required,oneof=order expense deposit charging custom"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Examples   []string          `json:"examples,omitempty"`
	ExamplesNe []string          `json:"examples_ne,omitempty"`
}

type AddExampleRequest struct {
	Language string `json:"language" validate:"required,oneof=en ne"`
	Text     string `json:"text" validate:"required,min=1,max=500"`
}

type TrainRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=en ne"`
}

type TestRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=en ne"`
}

type CommandListResponse struct {
	Commands []entity.CommandTemplate `json:"commands"`
}

type TestResponse struct {
	Example string `json:"example"`
}
