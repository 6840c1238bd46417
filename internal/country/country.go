// Package country carries the calling-code and residence data the
// enrollment flow validates against.
package country

// Country describes one entry of the calling-code picker.
type Country struct {
	Code     string // ISO 3166-1 alpha-2
	Name     string
	DialCode string
	// MinPhoneDigits is the minimum length of the national number for the
	// phone-entry gate. No upper bound is enforced.
	MinPhoneDigits int
}

// DefaultResidence is pre-selected on the country-of-residence step.
const DefaultResidence = "CD"

var countries = []Country{
	{Code: "CD", Name: "DR Congo", DialCode: "+243", MinPhoneDigits: 9},
	{Code: "CG", Name: "Congo-Brazzaville", DialCode: "+242", MinPhoneDigits: 9},
	{Code: "KE", Name: "Kenya", DialCode: "+254", MinPhoneDigits: 9},
	{Code: "NG", Name: "Nigeria", DialCode: "+234", MinPhoneDigits: 10},
	{Code: "RW", Name: "Rwanda", DialCode: "+250", MinPhoneDigits: 9},
	{Code: "UG", Name: "Uganda", DialCode: "+256", MinPhoneDigits: 9},
	{Code: "ZA", Name: "South Africa", DialCode: "+27", MinPhoneDigits: 9},
	{Code: "FR", Name: "France", DialCode: "+33", MinPhoneDigits: 9},
	{Code: "GB", Name: "United Kingdom", DialCode: "+44", MinPhoneDigits: 10},
	{Code: "US", Name: "United States", DialCode: "+1", MinPhoneDigits: 10},
}

// All returns the picker list in display order.
func All() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// ByCode looks up a country by its ISO code.
func ByCode(code string) (Country, bool) {
	for _, c := range countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// Default is the calling-code selection a fresh enrollment starts with.
func Default() Country {
	c, _ := ByCode(DefaultResidence)
	return c
}
