package training

import "EnergyPalace/pkg/response"

var (
	ErrCommandNotFound    = response.NewError(404, "command template not found")
	ErrEmptyPhrase        = response.NewError(400, "command phrase is required")
	ErrNoExamples         = response.NewError(400, "at least one example is required")
	ErrEmptyExample       = response.NewError(400, "example text is required")
	ErrTrainingInProgress = response.NewError(409, "a training session is already running")
	ErrTrainingFailed     = response.NewError(500, "training failed")
)
