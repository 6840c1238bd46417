package enrollment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/okapi-money/okapi/internal/country"
	"github.com/okapi-money/okapi/internal/credential"
	"github.com/okapi-money/okapi/internal/notification"
)

const (
	defaultResendSeconds = 30
	defaultAdvanceDelay  = 400 * time.Millisecond

	// placeholderEmailDomain synthesizes an address for users who skip the
	// email field; the local part is the phone digits.
	placeholderEmailDomain = "phone.okapi.app"
)

// ErrStepIncomplete is returned by CompleteCreatePasscode when the machine
// is not parked at createPasscode or the passcode gate is closed. Earlier
// steps report closed gates as a plain false, never as an error.
var ErrStepIncomplete = errors.New("current step is not complete")

// Machine drives one phone sign-up from phoneEntry to account creation.
// Forward transitions are gated per step; the only skip edge is backing
// out of otpVerification straight to phoneEntry.
type Machine struct {
	mu    sync.Mutex
	step  Step
	draft Draft

	countdown    *Countdown
	advanceTimer *time.Timer
	otpAdvanced  bool

	accounts *credential.Store
	notifier notification.Notifier

	resendSeconds int
	tickInterval  time.Duration
	advanceDelay  time.Duration
}

// Option customizes a Machine.
type Option func(*Machine)

// WithResendCooldown overrides the OTP resend cooldown in seconds.
func WithResendCooldown(seconds int) Option {
	return func(m *Machine) { m.resendSeconds = seconds }
}

// WithCompletionDelay overrides the pause between the sixth OTP digit and
// the automatic forward transition. Zero advances synchronously.
func WithCompletionDelay(d time.Duration) Option {
	return func(m *Machine) { m.advanceDelay = d }
}

func withCountdownInterval(d time.Duration) Option {
	return func(m *Machine) { m.tickInterval = d }
}

// NewMachine builds a machine parked at phoneEntry with default country
// selections. The credential store is only touched at the terminal step.
func NewMachine(accounts *credential.Store, notifier notification.Notifier, opts ...Option) *Machine {
	m := &Machine{
		step:          StepPhoneEntry,
		draft:         newDraft(),
		accounts:      accounts,
		notifier:      notifier,
		resendSeconds: defaultResendSeconds,
		tickInterval:  time.Second,
		advanceDelay:  defaultAdvanceDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.countdown = newCountdown(m.resendSeconds, m.tickInterval)
	return m
}

// Step reports the current step.
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Draft returns a snapshot of the collected field values.
func (m *Machine) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// CanAdvance reports whether the current step's forward gate is open.
func (m *Machine) CanAdvance() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gateOpenLocked()
}

func (m *Machine) gateOpenLocked() bool {
	switch m.step {
	case StepPhoneEntry:
		return m.draft.phoneValid()
	case StepOTPVerification:
		return m.draft.otp.complete()
	case StepNotifications:
		return true
	case StepCountryOfResidence:
		return m.draft.Residence.Code != ""
	case StepNameEntry:
		return m.draft.nameValid()
	case StepEmailEntry:
		return m.draft.emailValid()
	case StepDateOfBirth:
		return m.draft.birthDateValid(time.Now())
	case StepCreatePasscode:
		return m.draft.passcodeValid()
	default:
		return false
	}
}

// SetPhoneDigits stores the national number, digits only.
func (m *Machine) SetPhoneDigits(digits string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.PhoneDigits = digitsOnly(digits)
}

// SetCallingCountry selects the dial-code country by ISO code.
func (m *Machine) SetCallingCountry(code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := country.ByCode(code)
	if ok {
		m.draft.CallingCountry = c
	}
	return ok
}

// CompletePhoneEntry advances into otpVerification when the phone number
// satisfies the selected country's minimum length.
func (m *Machine) CompletePhoneEntry() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepPhoneEntry || !m.draft.phoneValid() {
		return false
	}
	m.enterOTPLocked(notification.KindOTPDispatch)
	return true
}

// enterOTPLocked moves onto the verification step with cleared slots and a
// fresh countdown, and reports the code dispatch.
func (m *Machine) enterOTPLocked(kind string) {
	m.step = StepOTPVerification
	m.draft.otp.reset()
	m.otpAdvanced = false
	m.countdown.Start()
	m.notifyLocked(kind)
}

func (m *Machine) notifyLocked(kind string) {
	if m.notifier == nil {
		return
	}
	msg := notification.Message{
		Kind:        kind,
		Destination: m.draft.CallingCountry.DialCode + m.draft.PhoneDigits,
		Body:        "Your Okapi verification code",
	}
	_ = m.notifier.Send(context.Background(), msg)
}

// EnterOTPDigit applies one input event to the targeted slot. Filling the
// sixth slot arms the automatic forward transition, which fires exactly
// once per verification attempt after the configured delay.
func (m *Machine) EnterOTPDigit(slot int, input string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepOTPVerification {
		return
	}
	m.draft.otp.enter(slot, input)
	if !m.draft.otp.complete() || m.otpAdvanced {
		return
	}
	m.otpAdvanced = true
	if m.advanceDelay <= 0 {
		m.leaveOTPForwardLocked()
		return
	}
	m.advanceTimer = time.AfterFunc(m.advanceDelay, m.autoAdvance)
}

func (m *Machine) autoAdvance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepOTPVerification || !m.otpAdvanced {
		return
	}
	if !m.draft.otp.complete() {
		// A digit was deleted during the grace delay; rearm.
		m.otpAdvanced = false
		return
	}
	m.leaveOTPForwardLocked()
}

func (m *Machine) leaveOTPForwardLocked() {
	m.stopAdvanceTimerLocked()
	m.countdown.Stop()
	m.step = StepNotifications
}

func (m *Machine) stopAdvanceTimerLocked() {
	if m.advanceTimer != nil {
		m.advanceTimer.Stop()
		m.advanceTimer = nil
	}
}

// OTPSlots returns the current slot contents.
func (m *Machine) OTPSlots() [OTPSlotCount]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.otp.slots
}

// OTPFocus returns the focused slot index, or -1 when none is focused.
func (m *Machine) OTPFocus() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.otp.focus
}

// ResendRemaining reports whole seconds until resend becomes available.
func (m *Machine) ResendRemaining() int {
	return m.countdown.Remaining()
}

// ResendOTP requests the code again. Permitted only on otpVerification
// once the cooldown has elapsed; it restarts the countdown.
func (m *Machine) ResendOTP() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepOTPVerification || !m.countdown.Ready() {
		return false
	}
	m.countdown.Start()
	m.notifyLocked(notification.KindOTPResend)
	return true
}

// SetNotificationsOptIn records the opt-in choice. Either answer keeps the
// gate open.
func (m *Machine) SetNotificationsOptIn(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.NotificationsOptIn = enabled
}

// CompleteNotifications advances past the opt-in step.
func (m *Machine) CompleteNotifications() bool {
	return m.advanceFrom(StepNotifications)
}

// SetResidence selects the country of residence by ISO code.
func (m *Machine) SetResidence(code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := country.ByCode(code)
	if ok {
		m.draft.Residence = c
	}
	return ok
}

// CompleteCountryOfResidence advances once a residence is selected. The
// selection defaults, so in practice the gate is always open.
func (m *Machine) CompleteCountryOfResidence() bool {
	return m.advanceFrom(StepCountryOfResidence)
}

// SetName records the name fields. The alias is optional.
func (m *Machine) SetName(first, last, alias string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.FirstName = first
	m.draft.LastName = last
	m.draft.Alias = alias
}

// CompleteNameEntry advances when first and last name are both non-empty.
func (m *Machine) CompleteNameEntry() bool {
	return m.advanceFrom(StepNameEntry)
}

// SetEmail records the email field.
func (m *Machine) SetEmail(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Email = strings.TrimSpace(email)
}

// CompleteEmailEntry advances when the address is structurally valid.
func (m *Machine) CompleteEmailEntry() bool {
	return m.advanceFrom(StepEmailEntry)
}

// SetBirthDate records the raw date-of-birth digit strings.
func (m *Machine) SetBirthDate(month, day, year string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.BirthMonth = month
	m.draft.BirthDay = day
	m.draft.BirthYear = year
}

// CompleteDateOfBirth advances when the components are structurally valid
// and the year yields a plausible adult age.
func (m *Machine) CompleteDateOfBirth() bool {
	return m.advanceFrom(StepDateOfBirth)
}

// SetPasscode replaces the passcode buffer, digits only.
func (m *Machine) SetPasscode(digits string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Passcode = digitsOnly(digits)
}

// AppendPasscodeDigit adds one digit to the buffer, rejecting input past
// the maximum length.
func (m *Machine) AppendPasscodeDigit(digit string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := digitsOnly(digit)
	if len(d) != 1 || len(m.draft.Passcode) >= PasscodeMaxDigits {
		return false
	}
	m.draft.Passcode += d
	return true
}

// DeletePasscodeDigit removes the last buffered digit.
func (m *Machine) DeletePasscodeDigit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.draft.Passcode) > 0 {
		m.draft.Passcode = m.draft.Passcode[:len(m.draft.Passcode)-1]
	}
}

// CompleteCreatePasscode hands the finished draft to the credential store.
// A credential.ErrDuplicateEmail return is recoverable: the machine stays
// parked at createPasscode so the user can back up and change the email.
func (m *Machine) CompleteCreatePasscode(ctx context.Context) (credential.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepCreatePasscode || !m.draft.passcodeValid() {
		return credential.Account{}, ErrStepIncomplete
	}

	email := m.draft.Email
	if email == "" {
		email = m.draft.PhoneDigits + "@" + placeholderEmailDomain
	}
	name := strings.TrimSpace(m.draft.FirstName + " " + m.draft.LastName)

	return m.accounts.CreateAccount(ctx, name, email, m.draft.Passcode)
}

// advanceFrom performs a plain forward transition when the machine sits on
// the given step with an open gate.
func (m *Machine) advanceFrom(from Step) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != from || !m.gateOpenLocked() {
		return false
	}
	next, ok := from.next()
	if !ok {
		return false
	}
	m.step = next
	return true
}

// GoBack steps to the preceding screen. Backing out of otpVerification
// lands on phoneEntry directly; backing into it restarts verification from
// scratch (cleared slots, fresh countdown). At phoneEntry this is a no-op.
func (m *Machine) GoBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.step {
	case StepPhoneEntry:
		return false
	case StepOTPVerification:
		m.stopAdvanceTimerLocked()
		m.countdown.Stop()
		m.otpAdvanced = false
		m.step = StepPhoneEntry
		return true
	default:
		prev, ok := m.step.prev()
		if !ok {
			return false
		}
		if prev == StepOTPVerification {
			m.enterOTPLocked(notification.KindOTPDispatch)
			return true
		}
		m.step = prev
		return true
	}
}

// Close cancels the countdown and any pending auto-advance. Call it when
// the host abandons the draft so no timer outlives it.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAdvanceTimerLocked()
	m.countdown.Stop()
}
