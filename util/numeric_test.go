package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordsToNumber(t *testing.T) {
	for scenario, tc := range map[string]struct {
		text string
		mode NumericMode
		want string
	}{
		"spoken digits":      {"nine eight seven six", NUMERIC_MODE_NUMBER, "9876"},
		"double and triple":  {"nine double eight triple two", NUMERIC_MODE_NUMBER, "988222"},
		"already numeric":    {"1234", NUMERIC_MODE_NUMBER, "1234"},
		"mixed tokens":       {"nine 87 six", NUMERIC_MODE_NUMBER, "9876"},
		"oh as zero":         {"one oh one", NUMERIC_MODE_NUMBER, "101"},
		"filler words drop":  {"my otp is one two three four", NUMERIC_MODE_NUMBER, "1234"},
		"punctuation":        {"one, two. three!", NUMERIC_MODE_NUMBER, "123"},
		"letters drop":       {"a b one two", NUMERIC_MODE_NUMBER, "12"},
		"ben id keeps chars": {"a b one two three", NUMERIC_MODE_BEN_ID, "AB123"},
		"double letter":      {"double a one", NUMERIC_MODE_BEN_ID, "AA1"},
		"empty":              {"", NUMERIC_MODE_NUMBER, ""},
	} {
		t.Run(scenario, func(t *testing.T) {
			require.Equal(t, tc.want, WordsToNumber(tc.text, tc.mode))
		})
	}
}
