package enum

// FnbOrderStatus represents the state of a food & beverage order
type FnbOrderStatus string

const (
	FnbOrderStatusDraft     FnbOrderStatus = "draft"
	FnbOrderStatusPending   FnbOrderStatus = "pending"
	FnbOrderStatusBilled    FnbOrderStatus = "billed"
	FnbOrderStatusPaid      FnbOrderStatus = "paid"
	FnbOrderStatusCancelled FnbOrderStatus = "cancelled"
)

// billed -> billed is accepted so that re-billing on retry is a no-op;
// paid -> billed happens when the payment is cancelled or fails.
var fnbOrderTransitions = transitionTable[FnbOrderStatus]{
	FnbOrderStatusDraft:   {FnbOrderStatusPending, FnbOrderStatusBilled, FnbOrderStatusCancelled},
	FnbOrderStatusPending: {FnbOrderStatusBilled},
	FnbOrderStatusBilled:  {FnbOrderStatusBilled, FnbOrderStatusPaid},
	FnbOrderStatusPaid:    {FnbOrderStatusBilled},
}

func (s FnbOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known order status
func (s FnbOrderStatus) IsValid() bool {
	switch s {
	case FnbOrderStatusDraft, FnbOrderStatusPending, FnbOrderStatusBilled,
		FnbOrderStatusPaid, FnbOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order may move from s to next
func (s FnbOrderStatus) CanTransitionTo(next FnbOrderStatus) bool {
	return fnbOrderTransitions.allows(s, next)
}

// Predecessors returns the statuses an order may reach s from
func (s FnbOrderStatus) Predecessors() []FnbOrderStatus {
	return fnbOrderTransitions.predecessors(s)
}

// CommitsStock reports whether an order in this status has already
// taken its items out of stock
func (s FnbOrderStatus) CommitsStock() bool {
	switch s {
	case FnbOrderStatusPending, FnbOrderStatusBilled, FnbOrderStatusPaid:
		return true
	}
	return false
}
