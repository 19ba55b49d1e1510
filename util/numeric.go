package util

import (
	"strings"
)

// NumericMode selects how transcribed speech is normalized into an
// identifier: NUMERIC_MODE_NUMBER keeps digits only (OTP, aadhaar
// digits), NUMERIC_MODE_BEN_ID also keeps letters since beneficiary ids
// are alphanumeric.
type NumericMode string

const NUMERIC_MODE_NUMBER NumericMode = "number"
const NUMERIC_MODE_BEN_ID NumericMode = "benId"

var digitWords = map[string]rune{
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"o": '0', "oh": '0', "naught": '0', "nought": '0',
}

var repeatWords = map[string]int{
	"double": 2,
	"triple": 3,
}

// WordsToNumber converts a spoken-digit transcription ("nine eight double
// seven") into the literal string a user would have typed. Tokens that are
// already numeric pass through; in ben-id mode single letters survive too.
func WordsToNumber(text string, mode NumericMode) string {
	var out strings.Builder
	repeat := 1
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?")
		if token == "" {
			continue
		}
		if n, ok := repeatWords[token]; ok {
			repeat = n
			continue
		}
		piece := ""
		if d, ok := digitWords[token]; ok {
			piece = string(d)
		} else if isDigits(token) {
			piece = token
		} else if mode == NUMERIC_MODE_BEN_ID && len(token) == 1 && token[0] >= 'a' && token[0] <= 'z' {
			piece = token
		} else {
			repeat = 1
			continue
		}
		out.WriteString(strings.Repeat(piece, repeat))
		repeat = 1
	}
	return strings.ToUpper(out.String())
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
