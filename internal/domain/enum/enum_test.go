package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatusTransitions(t *testing.T) {
	assert.True(t, SessionStatusActive.CanTransitionTo(SessionStatusCompleted))
	assert.True(t, SessionStatusActive.CanTransitionTo(SessionStatusCancelled))
	assert.False(t, SessionStatusCompleted.CanTransitionTo(SessionStatusActive))
	assert.False(t, SessionStatusCancelled.CanTransitionTo(SessionStatusCompleted))
	assert.True(t, SessionStatusCompleted.IsTerminal())
	assert.False(t, SessionStatusActive.IsTerminal())
}

func TestFnbOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to FnbOrderStatus
		want     bool
	}{
		{FnbOrderStatusDraft, FnbOrderStatusPending, true},
		{FnbOrderStatusDraft, FnbOrderStatusBilled, true},
		{FnbOrderStatusDraft, FnbOrderStatusPaid, false},
		{FnbOrderStatusPending, FnbOrderStatusBilled, true},
		{FnbOrderStatusPending, FnbOrderStatusDraft, false},
		{FnbOrderStatusBilled, FnbOrderStatusBilled, true},
		{FnbOrderStatusBilled, FnbOrderStatusPaid, true},
		{FnbOrderStatusPaid, FnbOrderStatusBilled, true},
		{FnbOrderStatusPaid, FnbOrderStatusDraft, false},
		{FnbOrderStatusCancelled, FnbOrderStatusDraft, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestPredecessors(t *testing.T) {
	assert.Equal(t, []FnbOrderStatus{FnbOrderStatusDraft}, FnbOrderStatusPending.Predecessors())
	assert.Equal(t, []FnbOrderStatus{FnbOrderStatusDraft}, FnbOrderStatusCancelled.Predecessors())
	assert.Equal(t,
		[]FnbOrderStatus{FnbOrderStatusBilled, FnbOrderStatusDraft, FnbOrderStatusPaid, FnbOrderStatusPending},
		FnbOrderStatusBilled.Predecessors())
	assert.Empty(t, FnbOrderStatusDraft.Predecessors())

	assert.Equal(t, []SessionStatus{SessionStatusActive}, SessionStatusCompleted.Predecessors())
	assert.Equal(t, []SessionStatus{SessionStatusActive}, SessionStatusCancelled.Predecessors())
	assert.Empty(t, SessionStatusActive.Predecessors())
}

func TestFnbOrderStatusCommitsStock(t *testing.T) {
	assert.False(t, FnbOrderStatusDraft.CommitsStock())
	assert.False(t, FnbOrderStatusCancelled.CommitsStock())
	assert.True(t, FnbOrderStatusPending.CommitsStock())
	assert.True(t, FnbOrderStatusBilled.CommitsStock())
	assert.True(t, FnbOrderStatusPaid.CommitsStock())
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusSuccess))
	assert.True(t, PaymentStatusSuccess.CanTransitionTo(PaymentStatusCancelled))
	assert.False(t, PaymentStatusSuccess.CanTransitionTo(PaymentStatusPending))
	assert.True(t, PaymentStatusFailed.CanTransitionTo(PaymentStatusPending))
	assert.True(t, PaymentStatusCancelled.CanTransitionTo(PaymentStatusPending))
	assert.False(t, PaymentStatus("refunded").IsValid())
}

func TestPaymentStatusOrderStatus(t *testing.T) {
	assert.Equal(t, FnbOrderStatusPaid, PaymentStatusSuccess.OrderStatus())
	assert.Equal(t, FnbOrderStatusBilled, PaymentStatusCancelled.OrderStatus())
	assert.Equal(t, FnbOrderStatusBilled, PaymentStatusFailed.OrderStatus())
	assert.Equal(t, FnbOrderStatusBilled, PaymentStatusPending.OrderStatus())
}

func TestTableStatus(t *testing.T) {
	assert.True(t, TableStatusAvailable.CanTransitionTo(TableStatusOccupied))
	assert.False(t, TableStatusMaintenance.CanTransitionTo(TableStatusOccupied))
	assert.False(t, TableStatusOccupied.IsManual())
	assert.True(t, TableStatusReserved.IsManual())
	assert.False(t, TableStatus("broken").IsManual())
}

func TestDurationTypeAndMode(t *testing.T) {
	assert.True(t, DurationTypeHourly.IsValid())
	assert.True(t, DurationTypePerMinute.IsValid())
	assert.False(t, DurationType("daily").IsValid())
	assert.True(t, SessionModePlanned.IsValid())
	assert.False(t, SessionMode("").IsValid())
}
