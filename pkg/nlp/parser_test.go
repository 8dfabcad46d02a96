package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderEnglish(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("Order 2 cups of tea", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "order", parsed.Intent)
	assert.Equal(t, "2", parsed.Fields["quantity"])
	assert.Equal(t, "tea", parsed.Fields["item"])
	assert.Equal(t, 0.8, parsed.Confidence)
}

func TestParseOrderDefaultsQuantity(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("order sandwich", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "order", parsed.Intent)
	assert.Equal(t, "1", parsed.Fields["quantity"])
	assert.Equal(t, "sandwich", parsed.Fields["item"])
}

func TestParseExpenseEnglish(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("expense of 500 electricity", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "expense", parsed.Intent)
	assert.Equal(t, "500", parsed.Fields["amount"])
	assert.Equal(t, "electricity", parsed.Fields["description"])
}

func TestParseExpenseDefaultsDescription(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("spent 250", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "expense", parsed.Intent)
	assert.Equal(t, "250", parsed.Fields["amount"])
	assert.Equal(t, "Voice expense", parsed.Fields["description"])
}

func TestParseDepositEnglish(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("deposit of 1000 via Fonepay", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "deposit", parsed.Intent)
	assert.Equal(t, "1000", parsed.Fields["amount"])
	assert.Equal(t, "fonepay", parsed.Fields["method"])
}

func TestParseDepositDefaultsMethod(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("deposit 500", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "deposit", parsed.Intent)
	assert.Equal(t, "500", parsed.Fields["amount"])
	assert.Equal(t, "Cash", parsed.Fields["method"])
}

func TestParseChargingEnglish(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("start charging from 20 to 80", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "charging", parsed.Intent)
	assert.Equal(t, "20", parsed.Fields["start"])
	assert.Equal(t, "80", parsed.Fields["end"])
}

func TestParseNepali(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("२ कप चिया", LanguageNepali)
	require.True(t, matched)
	assert.Equal(t, "order", parsed.Intent)
	assert.Equal(t, "2", parsed.Fields["quantity"])
	assert.Equal(t, "चिया", parsed.Fields["item"])
}

func TestParseNepaliExpense(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("खर्च ५०० बिजुली", LanguageNepali)
	require.True(t, matched)
	assert.Equal(t, "expense", parsed.Intent)
	assert.Equal(t, "500", parsed.Fields["amount"])
}

func TestParseIntentPriority(t *testing.T) {
	p := NewParser()

	// Matches both the order and expense tables; order wins because it is
	// checked first.
	parsed, matched := p.Parse("order expense 500", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "order", parsed.Intent)
}

func TestParseLanguageFilter(t *testing.T) {
	p := NewParser()

	// English patterns must not fire for a Nepali request.
	_, matched := p.Parse("deposit 500", LanguageNepali)
	assert.False(t, matched)
}

func TestParseNoMatch(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("what is the weather today", LanguageEnglish)
	assert.False(t, matched)
	assert.Nil(t, parsed)
}

func TestParseEmptyUtterance(t *testing.T) {
	p := NewParser()

	_, matched := p.Parse("   ", LanguageEnglish)
	assert.False(t, matched)
}

func TestParseIsCaseInsensitive(t *testing.T) {
	p := NewParser()

	parsed, matched := p.Parse("ORDER 3 BURGER", LanguageEnglish)
	require.True(t, matched)
	assert.Equal(t, "order", parsed.Intent)
	assert.Equal(t, "3", parsed.Fields["quantity"])
	assert.Equal(t, "burger", parsed.Fields["item"])
}
