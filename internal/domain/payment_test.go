package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_ForwardTransitions(t *testing.T) {
	assert.True(t, PaymentPending.CanTransitionTo(PaymentVerified))
	assert.True(t, PaymentPending.CanTransitionTo(PaymentRejected))
	assert.True(t, PaymentVerified.CanTransitionTo(PaymentRefunded))
}

func TestPaymentStatus_NeverMovesBackward(t *testing.T) {
	statuses := []PaymentStatus{PaymentPending, PaymentVerified, PaymentRejected, PaymentRefunded}

	for _, from := range statuses {
		assert.False(t, from.CanTransitionTo(PaymentPending), "%s -> pending must be forbidden", from)
	}
	assert.False(t, PaymentVerified.CanTransitionTo(PaymentPending))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentVerified))
	assert.False(t, PaymentRejected.CanTransitionTo(PaymentVerified))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentPending))
}

func TestPaymentStatus_Terminal(t *testing.T) {
	assert.False(t, PaymentPending.IsTerminal())
	assert.False(t, PaymentVerified.IsTerminal())
	assert.True(t, PaymentRejected.IsTerminal())
	assert.True(t, PaymentRefunded.IsTerminal())
}

func TestTimeWindow_Validate(t *testing.T) {
	assert.NoError(t, TimeWindow("18:00-19:30").Validate())
	assert.Error(t, TimeWindow("19:30-18:00").Validate())
	assert.Error(t, TimeWindow("18:00").Validate())
	assert.Error(t, TimeWindow("half past six").Validate())
}

func TestTimeWindow_Start(t *testing.T) {
	assert.Equal(t, "18:00", TimeWindow("18:00-19:30").Start())
}

func TestUserCategory_RequiresVerification(t *testing.T) {
	assert.True(t, CategoryEmployee.RequiresVerification())
	assert.True(t, CategoryStudent.RequiresVerification())
	assert.False(t, CategoryGeneral.RequiresVerification())
}

func TestParseUserCategory(t *testing.T) {
	c, ok := ParseUserCategory("STUDENT")
	assert.True(t, ok)
	assert.Equal(t, CategoryStudent, c)

	_, ok = ParseUserCategory("alumni")
	assert.False(t, ok)
}
