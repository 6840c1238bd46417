package enrollment

// OTPSlotCount is the fixed number of one-time-passcode digit slots.
const OTPSlotCount = 6

// otpState tracks the six digit slots and which one holds input focus.
// A focus of -1 means no slot is focused.
type otpState struct {
	slots [OTPSlotCount]string
	focus int
}

func (o *otpState) reset() {
	o.slots = [OTPSlotCount]string{}
	o.focus = 0
}

// enter applies one input event to the targeted slot.
//
// A single digit fills the slot and moves focus to the next one (focus is
// cleared after the last slot). A multi-character input is treated as a
// paste: its digits are distributed left-to-right starting at the target,
// anything past the last slot is discarded, and focus lands on the first
// still-empty slot. An empty input clears the slot and moves focus back.
func (o *otpState) enter(slot int, input string) {
	if slot < 0 || slot >= OTPSlotCount {
		return
	}

	if input == "" {
		o.slots[slot] = ""
		if slot > 0 {
			o.focus = slot - 1
		} else {
			o.focus = 0
		}
		return
	}

	digits := digitsOnly(input)
	if digits == "" {
		return
	}

	if len(digits) == 1 {
		o.slots[slot] = digits
		if slot == OTPSlotCount-1 {
			o.focus = -1
		} else {
			o.focus = slot + 1
		}
		return
	}

	for i := 0; i < len(digits); i++ {
		idx := slot + i
		if idx >= OTPSlotCount {
			break
		}
		o.slots[idx] = string(digits[i])
	}
	o.focus = -1
	for i := 0; i < OTPSlotCount; i++ {
		if o.slots[i] == "" {
			o.focus = i
			break
		}
	}
}

func (o *otpState) complete() bool {
	for _, s := range o.slots {
		if s == "" {
			return false
		}
	}
	return true
}

func digitsOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
