package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondEnglish(t *testing.T) {
	r := NewResponder()

	assert.Equal(t, "Order added successfully.", r.Respond("order", LanguageEnglish))
	assert.Equal(t, "Expense recorded successfully.", r.Respond("expense", LanguageEnglish))
	assert.Equal(t, "Deposit recorded successfully.", r.Respond("deposit", LanguageEnglish))
	assert.Equal(t, "Charging started successfully.", r.Respond("charging", LanguageEnglish))
	assert.Equal(t, "Sorry, I didn't understand that. Please try again.", r.Respond(IntentNone, LanguageEnglish))
}

func TestRespondNepali(t *testing.T) {
	r := NewResponder()

	assert.Equal(t, "अर्डर थपियो।", r.Respond("order", LanguageNepali))
	assert.Equal(t, "खर्च रेकर्ड गरियो।", r.Respond("expense", LanguageNepali))
	assert.Equal(t, "जम्मा रेकर्ड गरियो।", r.Respond("deposit", LanguageNepali))
	assert.Equal(t, "चार्जिङ सुरु गरियो।", r.Respond("charging", LanguageNepali))
	assert.Equal(t, "माफ गर्नुहोस्, मैले बुझिन। कृपया फेरि प्रयास गर्नुहोस्।", r.Respond(IntentNone, LanguageNepali))
}

func TestRespondUnknownIntentFallsBack(t *testing.T) {
	r := NewResponder()

	assert.Equal(t, r.Respond(IntentNone, LanguageEnglish), r.Respond("teleport", LanguageEnglish))
	assert.Equal(t, r.Respond(IntentNone, LanguageNepali), r.Respond("teleport", LanguageNepali))
}

func TestRespondUnknownLanguageFallsBackToEnglish(t *testing.T) {
	r := NewResponder()

	assert.Equal(t, r.Respond("order", LanguageEnglish), r.Respond("order", "fr"))
}
