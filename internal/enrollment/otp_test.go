package enrollment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOTPSingleDigitAdvancesFocus(t *testing.T) {
	var o otpState
	o.reset()

	o.enter(0, "4")
	require.Equal(t, "4", o.slots[0])
	require.Equal(t, 1, o.focus)

	o.enter(5, "9")
	require.Equal(t, "9", o.slots[5])
	require.Equal(t, -1, o.focus, "last slot clears focus")
	require.False(t, o.complete())
}

func TestOTPDeleteMovesFocusBack(t *testing.T) {
	var o otpState
	o.reset()
	o.enter(0, "1")
	o.enter(1, "2")

	o.enter(1, "")
	require.Equal(t, "", o.slots[1])
	require.Equal(t, 0, o.focus)

	// Deleting the first slot keeps focus at zero.
	o.enter(0, "")
	require.Equal(t, "", o.slots[0])
	require.Equal(t, 0, o.focus)
}

func TestOTPPasteDistributesFromTarget(t *testing.T) {
	var o otpState
	o.reset()

	o.enter(2, "123")
	require.Equal(t, [OTPSlotCount]string{"", "", "1", "2", "3", ""}, o.slots)
	require.Equal(t, 0, o.focus, "focus lands on first still-empty slot")
}

func TestOTPPasteDiscardsOverflow(t *testing.T) {
	var o otpState
	o.reset()

	o.enter(4, "98765")
	require.Equal(t, [OTPSlotCount]string{"", "", "", "", "9", "8"}, o.slots)
	require.Equal(t, 0, o.focus)
}

func TestOTPPasteFillingAllClearsFocus(t *testing.T) {
	var o otpState
	o.reset()

	o.enter(0, "123456")
	require.Equal(t, [OTPSlotCount]string{"1", "2", "3", "4", "5", "6"}, o.slots)
	require.Equal(t, -1, o.focus)
	require.True(t, o.complete())
}

func TestOTPNonDigitsIgnored(t *testing.T) {
	var o otpState
	o.reset()

	o.enter(0, "a")
	require.Equal(t, "", o.slots[0])
	require.Equal(t, 0, o.focus)

	o.enter(0, "1a2b")
	require.Equal(t, "1", o.slots[0])
	require.Equal(t, "2", o.slots[1])
}

func TestOTPOutOfRangeSlotIgnored(t *testing.T) {
	var o otpState
	o.reset()
	o.enter(-1, "1")
	o.enter(OTPSlotCount, "1")
	require.Equal(t, [OTPSlotCount]string{}, o.slots)
}
