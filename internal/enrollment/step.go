package enrollment

// Step identifies one screen of the phone sign-up flow. The order below is
// the only forward order; the flow has no cycles and no skips apart from
// the otpVerification back-edge to phoneEntry.
type Step int

const (
	StepPhoneEntry Step = iota
	StepOTPVerification
	StepNotifications
	StepCountryOfResidence
	StepNameEntry
	StepEmailEntry
	StepDateOfBirth
	StepCreatePasscode
)

var stepNames = [...]string{
	StepPhoneEntry:         "phoneEntry",
	StepOTPVerification:    "otpVerification",
	StepNotifications:      "notifications",
	StepCountryOfResidence: "countryOfResidence",
	StepNameEntry:          "nameEntry",
	StepEmailEntry:         "emailEntry",
	StepDateOfBirth:        "dateOfBirth",
	StepCreatePasscode:     "createPasscode",
}

func (s Step) String() string {
	if s < StepPhoneEntry || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// next returns the following step and whether one exists.
func (s Step) next() (Step, bool) {
	if s >= StepCreatePasscode {
		return s, false
	}
	return s + 1, true
}

// prev returns the preceding step and whether one exists. The
// otpVerification special case lives in the machine, not here.
func (s Step) prev() (Step, bool) {
	if s <= StepPhoneEntry {
		return s, false
	}
	return s - 1, true
}
