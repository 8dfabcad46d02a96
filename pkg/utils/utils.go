package utils

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ParseQuantity(raw string) int
	ParseAmount(raw string) float64
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"एक": 1, "दुई": 2, "तीन": 3, "चार": 4, "पाँच": 5,
	"छ": 6, "सात": 7, "आठ": 8, "नौ": 9, "दश": 10,
}

// ParseQuantity coerces a spoken quantity to an integer. Digits win, then
// number words in either language; anything else defaults to 1.
func (u *utils) ParseQuantity(raw string) int {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return 1
	}

	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return n
	}

	for _, word := range strings.Fields(raw) {
		if n, ok := numberWords[word]; ok {
			return n
		}
	}

	return 1
}

func (u *utils) ParseAmount(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
