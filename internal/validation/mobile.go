package validation

import (
	"strings"
)

var mobileNoise = strings.NewReplacer("+", "", " ", "", "-", "", ".", "", "(", "", ")", "")

// NormalizeMobile prefixes the local number with the country code picker
// value and drops punctuation. A number typed with a leading + is already
// international and keeps its own code. It does not enforce E.164; the
// digit-count rule is applied by the form validators.
func NormalizeMobile(countryCode, mobile string) string {
	mobile = strings.TrimSpace(mobile)
	number := mobileNoise.Replace(mobile)
	if strings.HasPrefix(mobile, "+") {
		return number
	}
	return mobileNoise.Replace(strings.TrimSpace(countryCode)) + number
}
