package valuetypes

import (
	"regexp"
	"strconv"
)

var fullTimeRE = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
var hourMinuteRE = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
var minutesRE = regexp.MustCompile(`^\d{1,2}$`)

// ParseInterval parses an interval/headway tag value into seconds,
// accepting "HH:MM:SS", "HH:MM", or a bare number of minutes ("MM" or
// "M"). Anything else returns ok=false.
func ParseInterval(raw string) (seconds int, ok bool) {
	if m := fullTimeRE.FindStringSubmatch(raw); m != nil {
		h, _ := strconv.Atoi(m[1])
		mi, _ := strconv.Atoi(m[2])
		s, _ := strconv.Atoi(m[3])
		return h*3600 + mi*60 + s, true
	}
	if m := hourMinuteRE.FindStringSubmatch(raw); m != nil {
		h, _ := strconv.Atoi(m[1])
		mi, _ := strconv.Atoi(m[2])
		return h*3600 + mi*60, true
	}
	if minutesRE.MatchString(raw) {
		mi, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false
		}
		return mi * 60, true
	}
	return 0, false
}

// IsIntervalKey reports whether a tag key names an interval/headway value,
// i.e. it starts with "interval" or "headway" (matching any suffixed
// variant such as "interval:backward").
var intervalKeyRE = regexp.MustCompile(`^(interval|headway)`)

func IsIntervalKey(key string) bool {
	return intervalKeyRE.MatchString(key)
}
