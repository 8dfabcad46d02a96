package nlp

// IntentNone is the responder key for a failed parse.
const IntentNone = "none"

var responses = map[string]map[string]string{
	LanguageEnglish: {
		"order":    "Order added successfully.",
		"expense":  "Expense recorded successfully.",
		"deposit":  "Deposit recorded successfully.",
		"charging": "Charging started successfully.",
		IntentNone: "Sorry, I didn't understand that. Please try again.",
	},
	LanguageNepali: {
		"order":    "अर्डर थपियो।",
		"expense":  "खर्च रेकर्ड गरियो।",
		"deposit":  "जम्मा रेकर्ड गरियो।",
		"charging": "चार्जिङ सुरु गरियो।",
		IntentNone: "माफ गर्नुहोस्, मैले बुझिन। कृपया फेरि प्रयास गर्नुहोस्।",
	},
}

type responder struct{}

func NewResponder() IResponder {
	return &responder{}
}

// Respond maps an executed intent (or IntentNone) and a language to one of the
// fixed confirmation strings. Unknown intents and languages fall back to the
// English "not understood" message.
func (r *responder) Respond(intent string, language string) string {
	messages, ok := responses[language]
	if !ok {
		messages = responses[LanguageEnglish]
	}
	if msg, ok := messages[intent]; ok {
		return msg
	}
	return messages[IntentNone]
}
