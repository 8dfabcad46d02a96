package voice

import "EnergyPalace/pkg/response"

var (
	ErrEmptyTranscript  = response.NewError(400, "transcript is empty")
	ErrListening        = response.NewError(409, "a listening session is already running")
	ErrListenFailed     = response.NewError(502, "could not capture audio")
	ErrTranscribeFailed = response.NewError(502, "could not transcribe audio")
	ErrInvalidAudioFile = response.NewError(400, "invalid audio file")
	ErrHistoryQuery     = response.NewError(500, "could not load command history")
)
