package enum

// PaymentStatus represents the state of a checkout payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

var paymentTransitions = transitionTable[PaymentStatus]{
	PaymentStatusPending:   {PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusFailed:    {PaymentStatusPending, PaymentStatusSuccess, PaymentStatusCancelled},
	PaymentStatusSuccess:   {PaymentStatusCancelled},
	PaymentStatusCancelled: {PaymentStatusPending},
}

func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a payment may move from s to next
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return paymentTransitions.allows(s, next)
}

// OrderStatus returns the status every order linked to a payment in state s
// must carry.
func (s PaymentStatus) OrderStatus() FnbOrderStatus {
	if s == PaymentStatusSuccess {
		return FnbOrderStatusPaid
	}
	return FnbOrderStatusBilled
}
