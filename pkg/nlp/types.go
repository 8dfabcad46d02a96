package nlp

type ParsedCommand struct {
	Intent     string            `json:"intent"`
	Fields     map[string]string `json:"fields"`
	Confidence float64           `json:"confidence"`
	Matched    string            `json:"matched"`
}

type IParser interface {
	Parse(utterance string, language string) (*ParsedCommand, bool)
}

type IResponder interface {
	Respond(intent string, language string) string
}
