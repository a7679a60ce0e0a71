package domain

// Status is an order lifecycle state. The string values are the ones already
// stored in the orders collection, including the mixed-language "Paid".
type Status string

const (
	StatusReceived   Status = "recibido"
	StatusInProgress Status = "en proceso"
	StatusDelivered  Status = "entregado"
	StatusPaid       Status = "Paid"
)

// ParseStatus validates a raw state string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReceived, StatusInProgress, StatusDelivered, StatusPaid:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether moving to next is a legal step. The
// lifecycle is strictly forward, one step at a time; Paid is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	validTransitions := map[Status]Status{
		StatusReceived:   StatusInProgress,
		StatusInProgress: StatusDelivered,
		StatusDelivered:  StatusPaid,
	}
	allowed, ok := validTransitions[s]
	return ok && allowed == next
}

// Payable reports whether the cashier pay action applies. Only delivered
// orders can be paid.
func (s Status) Payable() bool {
	return s == StatusDelivered
}
