package nlp

import (
	"regexp"
)

const (
	LanguageEnglish = "en"
	LanguageNepali  = "ne"
)

// patternRule is one entry of the recognition table. Capture groups are
// assigned to field names positionally; a group that captures nothing leaves
// the field to its default.
type patternRule struct {
	intent   string
	language string
	re       *regexp.Regexp
	fields   []string
	defaults map[string]string
}

// intentPriority fixes the tie-break between intents: the first intent whose
// pattern matches wins, regardless of how much text later intents would match.
var intentPriority = []string{"order", "expense", "deposit", "charging"}

func defaultRules() []patternRule {
	return []patternRule{
		// order
		{
			intent: "order", language: LanguageEnglish,
			re:     regexp.MustCompile(`(\d+)\s*(?:cups?|glasses?)?\s*(?:of\s*)?(tea|coffee|milk)`),
			fields: []string{"quantity", "item"},
		},
		{
			intent: "order", language: LanguageEnglish,
			re:     regexp.MustCompile(`(\d+)\s*(sandwich|burger|food)`),
			fields: []string{"quantity", "item"},
		},
		{
			intent: "order", language: LanguageEnglish,
			re:       regexp.MustCompile(`(?:order|add)\s+(.+)`),
			fields:   []string{"item"},
			defaults: map[string]string{"quantity": "1"},
		},
		{
			intent: "order", language: LanguageNepali,
			re:     regexp.MustCompile(`(\d+)\s*(?:कप|गिलास)?\s*(चिया|कफी|दूध)`),
			fields: []string{"quantity", "item"},
		},
		{
			intent: "order", language: LanguageNepali,
			re:     regexp.MustCompile(`(\d+)\s*(?:वटा)?\s*(स्यान्डविच|बर्गर|खाना)`),
			fields: []string{"quantity", "item"},
		},
		{
			intent: "order", language: LanguageNepali,
			re:       regexp.MustCompile(`(?:अर्डर|मागेको)\s+(.+)`),
			fields:   []string{"item"},
			defaults: map[string]string{"quantity": "1"},
		},

		// expense
		{
			intent: "expense", language: LanguageEnglish,
			re:       regexp.MustCompile(`(\d+)\s*rupees?\s*expense\s*(.*)`),
			fields:   []string{"amount", "description"},
			defaults: map[string]string{"description": "Voice expense"},
		},
		{
			intent: "expense", language: LanguageEnglish,
			re:       regexp.MustCompile(`expense\s*(?:of\s*)?(\d+)\s*(.*)`),
			fields:   []string{"amount", "description"},
			defaults: map[string]string{"description": "Voice expense"},
		},
		{
			intent: "expense", language: LanguageEnglish,
			re:       regexp.MustCompile(`spent\s*(\d+)\s*(.*)`),
			fields:   []string{"amount", "description"},
			defaults: map[string]string{"description": "Voice expense"},
		},
		{
			intent: "expense", language: LanguageNepali,
			re:       regexp.MustCompile(`(\d+)\s*रुपैयाँ?\s*खर्च\s*(.*)`),
			fields:   []string{"amount", "description"},
			defaults: map[string]string{"description": "Voice expense"},
		},
		{
			intent: "expense", language: LanguageNepali,
			re:       regexp.MustCompile(`खर्च\s*(\d+)\s*(.*)`),
			fields:   []string{"amount", "description"},
			defaults: map[string]string{"description": "Voice expense"},
		},

		// deposit
		{
			intent: "deposit", language: LanguageEnglish,
			re:       regexp.MustCompile(`(\d+)\s*rupees?\s*deposit\s*(?:via\s*)?(.*)`),
			fields:   []string{"amount", "method"},
			defaults: map[string]string{"method": "Cash"},
		},
		{
			intent: "deposit", language: LanguageEnglish,
			re:       regexp.MustCompile(`deposit\s*(?:of\s*)?(\d+)\s*(?:rupees?\s*)?(?:via\s*)?(.*)`),
			fields:   []string{"amount", "method"},
			defaults: map[string]string{"method": "Cash"},
		},
		{
			intent: "deposit", language: LanguageEnglish,
			re:       regexp.MustCompile(`received\s*(\d+)\s*(?:rupees?\s*)?(?:through\s*)?(.*)`),
			fields:   []string{"amount", "method"},
			defaults: map[string]string{"method": "Cash"},
		},
		{
			intent: "deposit", language: LanguageNepali,
			re:       regexp.MustCompile(`(\d+)\s*रुपैयाँ?\s*जम्मा\s*(.*)`),
			fields:   []string{"amount", "method"},
			defaults: map[string]string{"method": "Cash"},
		},
		{
			intent: "deposit", language: LanguageNepali,
			re:       regexp.MustCompile(`जम्मा\s*(\d+)\s*(.*)`),
			fields:   []string{"amount", "method"},
			defaults: map[string]string{"method": "Cash"},
		},

		// charging
		{
			intent: "charging", language: LanguageEnglish,
			re:     regexp.MustCompile(`charg(?:e|ing)\s*(?:from\s*)?(\d+)\s*to\s*(\d+)`),
			fields: []string{"start", "end"},
		},
		{
			intent: "charging", language: LanguageEnglish,
			re:     regexp.MustCompile(`(\d+)\s*percent\s*to\s*(\d+)\s*percent`),
			fields: []string{"start", "end"},
		},
		{
			intent: "charging", language: LanguageNepali,
			re:     regexp.MustCompile(`चार्जिङ\s*(?:सुरु\s*गर्नुहोस्\s*)?(\d+)\s*देखि\s*(\d+)`),
			fields: []string{"start", "end"},
		},
		{
			intent: "charging", language: LanguageNepali,
			re:     regexp.MustCompile(`(\d+)\s*(?:प्रतिशत\s*)?देखि\s*(\d+)\s*प्रतिशत`),
			fields: []string{"start", "end"},
		},
	}
}
