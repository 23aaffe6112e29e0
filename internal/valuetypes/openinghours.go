package valuetypes

import "regexp"

var openingHoursRE = regexp.MustCompile(`(\d{1,2}:\d{2})-(\d{1,2}:\d{2})`)

// ParseOpeningHoursRange extracts the first "HH:MM-HH:MM" substring from
// an opening_hours tag value and returns its (start, end) pair. The full
// opening_hours mini-language is out of scope; this engine only needs a
// single representative window.
func ParseOpeningHoursRange(raw string) (start, end string, ok bool) {
	m := openingHoursRE.FindStringSubmatch(raw)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
