package reservation

import (
	"time"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Confirm reports whether the status actually changed.
func Confirm(r *models.Reservation) (bool, error) {
	current := Status(r.Status)
	if err := CanConfirm(current); err != nil {
		return false, err
	}
	if current == StatusConfirmed {
		return false, nil
	}

	r.Status = string(StatusConfirmed)
	return true, nil
}

// Cancel reports whether the status actually changed. Canceling twice is a no-op.
func Cancel(r *models.Reservation) (bool, error) {
	current := Status(r.Status)
	if err := CanCancel(current); err != nil {
		return false, err
	}
	if !current.Active() {
		return false, nil
	}

	r.Status = string(StatusCanceled)
	if r.Payment != nil && r.Payment.Status == models.PaymentStatusPending {
		r.Payment.Status = models.PaymentStatusCancelled
	}
	return true, nil
}

func MarkPaid(r *models.Reservation, now time.Time) (bool, error) {
	if err := CanModify(Status(r.Status)); err != nil {
		return false, err
	}
	if r.Payment == nil || r.Payment.Status == models.PaymentStatusPaid {
		return false, nil
	}

	r.Payment.Status = models.PaymentStatusPaid
	r.Payment.PaidAt = &now
	return true, nil
}
