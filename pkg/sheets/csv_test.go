package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSVBasic(t *testing.T) {
	rows := ParseCSV("a,b,c\n1,2,3")

	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	}, rows)
}

func TestParseCSVQuotedCommas(t *testing.T) {
	rows := ParseCSV(`name,"rate, discounted",category`)

	assert.Equal(t, [][]string{
		{"name", "rate, discounted", "category"},
	}, rows)
}

func TestParseCSVSkipsBlankLines(t *testing.T) {
	rows := ParseCSV("a,b\n\n   \nc,d\n")

	assert.Equal(t, [][]string{
		{"a", "b"},
		{"c", "d"},
	}, rows)
}

func TestParseCSVTrimsCells(t *testing.T) {
	rows := ParseCSV("  tea , 25 ")

	assert.Equal(t, [][]string{{"tea", "25"}}, rows)
}

func TestParseCSVUnbalancedQuotes(t *testing.T) {
	rows := ParseCSV(`broken,"no closing quote`)

	assert.Equal(t, [][]string{{"broken", "no closing quote"}}, rows)
}

func TestParseCSVEmptyInput(t *testing.T) {
	assert.Empty(t, ParseCSV(""))
	assert.Empty(t, ParseCSV("\n\n"))
}
