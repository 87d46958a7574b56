package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/auth"
	"github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/dto"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/httpresp"
	"github.com/BruksfildServices01/court-booking/internal/models"
	ucReservation "github.com/BruksfildServices01/court-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC   *ucReservation.CreateReservation
	updateUC   *ucReservation.UpdateReservation
	cancelUC   *ucReservation.CancelReservation
	confirmUC  *ucReservation.ConfirmReservation
	markPaidUC *ucReservation.MarkReservationPaid
	getUC      *ucReservation.GetReservation
	listUC     *ucReservation.ListReservations

	loc *time.Location
}

func NewReservationHandler(
	createUC *ucReservation.CreateReservation,
	updateUC *ucReservation.UpdateReservation,
	cancelUC *ucReservation.CancelReservation,
	confirmUC *ucReservation.ConfirmReservation,
	markPaidUC *ucReservation.MarkReservationPaid,
	getUC *ucReservation.GetReservation,
	listUC *ucReservation.ListReservations,
	loc *time.Location,
) *ReservationHandler {
	return &ReservationHandler{
		createUC:   createUC,
		updateUC:   updateUC,
		cancelUC:   cancelUC,
		confirmUC:  confirmUC,
		markPaidUC: markPaidUC,
		getUC:      getUC,
		listUC:     listUC,
		loc:        loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	CourtID        string    `json:"court_id" binding:"required,uuid"`
	PlayersCount   int       `json:"players_count"`
	AdditionalInfo string    `json:"additional_info" binding:"max=500"`
	StartAt        time.Time `json:"start_at" binding:"required"`
	EndAt          time.Time `json:"end_at" binding:"required"`
	PaymentMethod  string    `json:"payment_method"`
}

// UpdateReservationRequest leaves absent fields untouched.
type UpdateReservationRequest struct {
	PlayersCount   *int       `json:"players_count"`
	AdditionalInfo *string    `json:"additional_info" binding:"omitempty,max=500"`
	StartAt        *time.Time `json:"start_at"`
	EndAt          *time.Time `json:"end_at"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	r, err := h.createUC.Execute(c.Request.Context(), p, ucReservation.CreateReservationInput{
		CourtID:        uuid.MustParse(req.CourtID),
		PlayersCount:   req.PlayersCount,
		AdditionalInfo: req.AdditionalInfo,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewReservation(*r), "Reservation created.")
}

// ======================================================
// QUERIES
// ======================================================

// List accepts status, court_id, user_id, active and from. Non-admins only see their own.
func (h *ReservationHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var filter reservation.ListFilter

	if s := c.Query("status"); s != "" {
		status := reservation.Status(s)
		filter.Status = &status
	}
	if s := c.Query("court_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_court_id", "court_id must be a UUID.")
			return
		}
		filter.CourtID = &id
	}
	if s := c.Query("user_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_user_id", "user_id must be a UUID.")
			return
		}
		filter.UserID = &id
	}
	filter.ActiveOnly = c.Query("active") == "true"

	from, err := optionalTimeParam(c.Query("from"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "from must be a date or date-time.")
		return
	}
	filter.From = from

	list, err := h.listUC.Execute(c.Request.Context(), p, filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewReservations(list))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.getUC.Execute(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewReservation(*r))
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *ReservationHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	r, err := h.updateUC.Execute(c.Request.Context(), p, id, reservation.Patch{
		PlayersCount:   req.PlayersCount,
		AdditionalInfo: req.AdditionalInfo,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewReservation(*r), "Reservation updated.")
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancelUC.Execute, "Reservation canceled.")
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirmUC.Execute, "Reservation confirmed.")
}

func (h *ReservationHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.markPaidUC.Execute, "Payment recorded.")
}

type transitionFunc func(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.Reservation, error)

func (h *ReservationHandler) transition(c *gin.Context, fn transitionFunc, message string) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := fn(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewReservation(*r), message)
}
