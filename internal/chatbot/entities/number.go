package entities

import "strings"

var numberWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`zero one two three four five six seven eight nine ten
		eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen
		twenty thirty forty fifty sixty seventy eighty ninety hundred thousand
		million billion trillion lakh lakhs crore crores dozen`) {
		numberWords[w] = struct{}{}
	}
	for _, w := range strings.Fields(`first second third fourth fifth sixth seventh eighth
		ninth tenth eleventh twelfth thirteenth fourteenth fifteenth sixteenth seventeenth
		eighteenth nineteenth twentieth thirtieth fortieth fiftieth sixtieth seventieth
		eightieth ninetieth hundredth thousandth millionth`) {
		numberWords[w] = struct{}{}
	}
}

// likeNumber reports whether a lower-cased token reads as a number:
// digits with optional separators, a simple fraction, an ordinal such as
// "3rd", or a number word.
func likeNumber(tok string) bool {
	tok = strings.TrimLeft(tok, "+-±~")
	if tok == "" {
		return false
	}

	stripped := strings.NewReplacer(",", "", ".", "").Replace(tok)
	if allDigits(stripped) {
		return true
	}

	if parts := strings.Split(tok, "/"); len(parts) == 2 && allDigits(parts[0]) && allDigits(parts[1]) {
		return true
	}

	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(tok, suffix) && allDigits(strings.TrimSuffix(tok, suffix)) {
			return true
		}
	}

	_, ok := numberWords[tok]
	return ok
}

func allDigits(s string) bool {
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
