package reservation

import "github.com/BruksfildServices01/court-booking/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// ActiveStatuses are the statuses that occupy a court.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

func InitialStatus() Status {
	return StatusPending
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}

// Active is true while the reservation occupies its court.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCanceled:
		return httperr.ErrState("reservation_canceled")
	}
	return httperr.ErrState("invalid_state")
}

func CanCancel(current Status) error {
	if current.Valid() {
		return nil
	}
	return httperr.ErrState("invalid_state")
}

// CanModify guards updates and payments; canceled is terminal.
func CanModify(current Status) error {
	if current == StatusCanceled {
		return httperr.ErrState("reservation_canceled")
	}
	if !current.Valid() {
		return httperr.ErrState("invalid_state")
	}
	return nil
}
