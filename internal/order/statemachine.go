package order

import "fmt"

// legalEdges is the full transition table for Order.Status. Every status
// write, whether from the webhook reconciler or an admin action, must
// pass through Transition; there are no direct field writes elsewhere.
var legalEdges = map[Status][]Status{
	StatusPending:        {StatusProcessing, StatusCancelled},
	StatusPaymentPending: {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (s Status) Valid() bool {
	_, ok := legalEdges[s]
	return ok
}

func (s Status) Terminal() bool {
	edges, ok := legalEdges[s]
	return ok && len(edges) == 0
}

// Transition validates the edge from current to target. It returns
// ErrIllegalTransition (wrapped with both states) when the edge is not in
// the table.
func Transition(current, target Status) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, target)
	}
	for _, next := range legalEdges[current] {
		if next == target {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, target)
}
