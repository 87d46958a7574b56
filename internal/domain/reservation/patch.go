package reservation

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

// Patch holds the fields a reservation update may change. Nil means untouched.
type Patch struct {
	PlayersCount   *int
	AdditionalInfo *string
	StartAt        *time.Time
	EndAt          *time.Time
}

func (p Patch) Empty() bool {
	return p.PlayersCount == nil && p.AdditionalInfo == nil && p.StartAt == nil && p.EndAt == nil
}

// MovesInterval is true when the patch changes start or end.
func (p Patch) MovesInterval(r *models.Reservation) bool {
	if p.StartAt != nil && !p.StartAt.Equal(r.StartAt) {
		return true
	}
	return p.EndAt != nil && !p.EndAt.Equal(r.EndAt)
}

// Interval merges the patched ends with the current ones.
func (p Patch) Interval(r *models.Reservation) (Interval, error) {
	start, end := r.StartAt, r.EndAt
	if p.StartAt != nil {
		start = *p.StartAt
	}
	if p.EndAt != nil {
		end = *p.EndAt
	}
	return NewInterval(start, end)
}

func (p Patch) Validate() error {
	if p.PlayersCount != nil && *p.PlayersCount < 1 {
		return httperr.ErrValidation("invalid_players_count", "players_count", "must be at least 1")
	}
	return nil
}

// Apply copies the non-interval fields onto r. The interval is applied by the caller
// after the availability check.
func (p Patch) Apply(r *models.Reservation) {
	if p.PlayersCount != nil {
		r.PlayersCount = *p.PlayersCount
	}
	if p.AdditionalInfo != nil {
		r.AdditionalInfo = strings.TrimSpace(*p.AdditionalInfo)
	}
}
