package enrollment

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/okapi-money/okapi/internal/country"
)

const (
	// PasscodeMinDigits and PasscodeMaxDigits bound the passcode buffer.
	PasscodeMinDigits = 6
	PasscodeMaxDigits = 12

	minAdultAge     = 18
	maxPlausibleAge = 120
)

// Draft is the transient state of one in-progress sign-up. It lives only
// inside its Machine and is discarded on completion or abandonment.
type Draft struct {
	PhoneDigits        string
	CallingCountry     country.Country
	Residence          country.Country
	NotificationsOptIn bool
	FirstName          string
	LastName           string
	Alias              string
	Email              string
	BirthMonth         string
	BirthDay           string
	BirthYear          string
	Passcode           string

	otp otpState
}

func newDraft() Draft {
	d := Draft{
		CallingCountry: country.Default(),
		Residence:      country.Default(),
	}
	d.otp.reset()
	return d
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (d *Draft) phoneValid() bool {
	return d.PhoneDigits != "" && len(d.PhoneDigits) >= d.CallingCountry.MinPhoneDigits
}

func (d *Draft) nameValid() bool {
	return strings.TrimSpace(d.FirstName) != "" && strings.TrimSpace(d.LastName) != ""
}

func (d *Draft) emailValid() bool {
	return emailPattern.MatchString(d.Email)
}

// birthDateValid checks structure only: no calendar-aware day count, so
// February 30 passes. The year must yield a plausible adult age.
func (d *Draft) birthDateValid(now time.Time) bool {
	month, ok := parseDigits(d.BirthMonth, 2)
	if !ok || month < 1 || month > 12 {
		return false
	}
	day, ok := parseDigits(d.BirthDay, 2)
	if !ok || day < 1 || day > 31 {
		return false
	}
	year, ok := parseDigits(d.BirthYear, 4)
	if !ok {
		return false
	}
	age := now.Year() - year
	return age >= minAdultAge && age <= maxPlausibleAge
}

func (d *Draft) passcodeValid() bool {
	return len(d.Passcode) >= PasscodeMinDigits && len(d.Passcode) <= PasscodeMaxDigits
}

func parseDigits(s string, width int) (int, bool) {
	if len(s) != width || digitsOnly(s) != s {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
