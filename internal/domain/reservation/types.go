package reservation

// Status values are stored verbatim and exposed over the API, so they keep
// the organization's Spanish vocabulary.
type Status string

const (
	StatusPending             Status = "pendiente"
	StatusConfirmed           Status = "confirmada"
	StatusCancelledByCustomer Status = "cancelada_por_cliente"
	StatusCancelledByAdmin    Status = "cancelada_por_admin"
	StatusRejected            Status = "rechazada"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelledByCustomer, StatusCancelledByAdmin, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the reservation no longer occupies its slot.
// Terminal states are excluded from availability and quota queries.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelledByCustomer, StatusCancelledByAdmin, StatusRejected:
		return true
	default:
		return false
	}
}

// InactiveStatuses is the canonical exclusion list used by every
// availability, quota and public-calendar query.
func InactiveStatuses() []string {
	return []string{
		string(StatusCancelledByCustomer),
		string(StatusCancelledByAdmin),
		string(StatusRejected),
	}
}

// TransitionConfirm resolves the confirm transition from the current
// status. Confirming an already-confirmed reservation reports no change and
// no error, which keeps duplicate payment notifications idempotent.
func TransitionConfirm(cur Status) (bool, error) {
	if cur == StatusConfirmed {
		return false, nil
	}
	if cur.IsTerminal() {
		return false, ErrAlreadyTerminal
	}
	return true, nil
}

// TransitionCancel resolves a move into one of the terminal states.
// Repeating the same cancellation is tolerated; leaving a different
// terminal state is not.
func TransitionCancel(cur, to Status) (bool, error) {
	if !to.IsTerminal() {
		return false, ErrInvalidTransition
	}
	if cur == to {
		return false, nil
	}
	if cur.IsTerminal() {
		return false, ErrAlreadyTerminal
	}
	return true, nil
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pendiente"
	PaymentStatusStarted PaymentStatus = "pago_iniciado"
	PaymentStatusPaid    PaymentStatus = "pagado"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusStarted, PaymentStatusPaid:
		return true
	default:
		return false
	}
}
