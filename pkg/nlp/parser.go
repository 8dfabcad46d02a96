package nlp

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const matchConfidence = 0.8

type parser struct {
	rules []patternRule
}

func NewParser() IParser {
	return &parser{rules: defaultRules()}
}

// Parse runs the pattern table over the utterance and returns the first match
// in intent priority order. The returned confidence is a fixed heuristic and
// is unrelated to any trained template confidence.
func (p *parser) Parse(utterance string, language string) (*ParsedCommand, bool) {
	text := cleanUtterance(utterance)
	if text == "" {
		return nil, false
	}

	for _, intent := range intentPriority {
		for _, rule := range p.rules {
			if rule.intent != intent || rule.language != language {
				continue
			}

			match := rule.re.FindStringSubmatch(text)
			if match == nil {
				continue
			}

			fields := make(map[string]string, len(rule.fields))
			for i, name := range rule.fields {
				if i+1 < len(match) && match[i+1] != "" {
					if _, taken := fields[name]; !taken {
						fields[name] = strings.TrimSpace(match[i+1])
					}
				}
			}
			for name, value := range rule.defaults {
				if fields[name] == "" {
					fields[name] = value
				}
			}

			return &ParsedCommand{
				Intent:     rule.intent,
				Fields:     fields,
				Confidence: matchConfidence,
				Matched:    match[0],
			}, true
		}
	}

	return nil, false
}

// cleanUtterance lower-cases the text (a no-op for Devanagari), normalizes it
// to NFC so spliced vowel signs compare equal, and rewrites Devanagari digits
// to ASCII so numeric captures work in both languages.
func cleanUtterance(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = norm.NFC.String(text)
	return strings.Map(devanagariDigit, text)
}

func devanagariDigit(r rune) rune {
	if r >= '०' && r <= '९' {
		return '0' + (r - '०')
	}
	return r
}
