package reservation

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

// Notifier receives hydrated reservations after commit. Calls must not block.
type Notifier interface {
	SendConfirmation(r models.Reservation)
	SendCancellation(r models.Reservation)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

var tracer = otel.Tracer("court-booking/usecase/reservation")

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// finishSpan records unexpected failures; business rejections are not span errors.
func finishSpan(span trace.Span, err error) {
	var be httperr.BusinessError
	if err != nil && !errors.As(err, &be) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
