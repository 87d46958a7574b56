package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/court-booking/internal/domain/court"
	"github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/dto"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/httpresp"
	ucCourt "github.com/BruksfildServices01/court-booking/internal/usecase/court"
	ucReservation "github.com/BruksfildServices01/court-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type CourtHandler struct {
	createUC *ucCourt.CreateCourt
	updateUC *ucCourt.UpdateCourt
	toggleUC *ucCourt.ToggleCourt
	getUC    *ucCourt.GetCourt
	listUC   *ucCourt.ListCourts

	quoteUC        *ucReservation.QuoteReservation
	reservationsUC *ucReservation.ListCourtReservations

	loc *time.Location
}

func NewCourtHandler(
	createUC *ucCourt.CreateCourt,
	updateUC *ucCourt.UpdateCourt,
	toggleUC *ucCourt.ToggleCourt,
	getUC *ucCourt.GetCourt,
	listUC *ucCourt.ListCourts,
	quoteUC *ucReservation.QuoteReservation,
	reservationsUC *ucReservation.ListCourtReservations,
	loc *time.Location,
) *CourtHandler {
	return &CourtHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		toggleUC:       toggleUC,
		getUC:          getUC,
		listUC:         listUC,
		quoteUC:        quoteUC,
		reservationsUC: reservationsUC,
		loc:            loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCourtRequest struct {
	Name         string          `json:"name" binding:"required,max=64"`
	CourtType    string          `json:"court_type" binding:"required"`
	Surface      string          `json:"surface" binding:"required"`
	MaxPlayers   int             `json:"max_players"`
	City         string          `json:"city" binding:"max=32"`
	Street       string          `json:"street" binding:"max=32"`
	PostalCode   string          `json:"postal_code" binding:"max=16"`
	Description  string          `json:"description"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Currency     string          `json:"currency"`
}

type UpdateCourtRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=64"`
	CourtType    *string          `json:"court_type"`
	Surface      *string          `json:"surface"`
	MaxPlayers   *int             `json:"max_players"`
	City         *string          `json:"city" binding:"omitempty,max=32"`
	Street       *string          `json:"street" binding:"omitempty,max=32"`
	PostalCode   *string          `json:"postal_code" binding:"omitempty,max=16"`
	Description  *string          `json:"description"`
	PricePerHour *decimal.Decimal `json:"price_per_hour"`
	Currency     *string          `json:"currency"`
}

func (r UpdateCourtRequest) patch() (domain.Patch, error) {
	p := domain.Patch{
		Name:        r.Name,
		CourtType:   r.CourtType,
		Surface:     r.Surface,
		MaxPlayers:  r.MaxPlayers,
		City:        r.City,
		Street:      r.Street,
		PostalCode:  r.PostalCode,
		Description: r.Description,
	}

	if r.PricePerHour == nil && r.Currency != nil {
		return p, httperr.ErrValidation("invalid_price", "price_per_hour", "is required when currency changes")
	}
	if r.PricePerHour != nil {
		in := domain.PriceInput{PricePerHour: *r.PricePerHour}
		if r.Currency != nil {
			in.Currency = *r.Currency
		}
		p.Price = &in
	}
	return p, nil
}

// ======================================================
// CATALOG
// ======================================================

// List shows active courts; admins may pass all=true.
func (h *CourtHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	activeOnly := !(p.IsAdmin() && c.Query("all") == "true")

	courts, err := h.listUC.Execute(c.Request.Context(), activeOnly)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, courts)
}

func (h *CourtHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	court, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !court.IsActive && !p.IsAdmin() {
		httperr.NotFound(c, "court_not_found", "Court not found.")
		return
	}
	httpresp.OK(c, court)
}

func (h *CourtHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	court, err := h.createUC.Execute(c.Request.Context(), p.UserID, ucCourt.CreateCourtInput{
		Name:        req.Name,
		CourtType:   req.CourtType,
		Surface:     req.Surface,
		MaxPlayers:  req.MaxPlayers,
		City:        req.City,
		Street:      req.Street,
		PostalCode:  req.PostalCode,
		Description: req.Description,
		Price: domain.PriceInput{
			PricePerHour: req.PricePerHour,
			Currency:     req.Currency,
		},
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewCourt(*court), "Court created.")
}

func (h *CourtHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	patch, err := req.patch()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	court, err := h.updateUC.Execute(c.Request.Context(), p.UserID, id, patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewCourt(*court), "Court updated.")
}

func (h *CourtHandler) Toggle(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	court, err := h.toggleUC.Execute(c.Request.Context(), p.UserID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewCourt(*court))
}

// ======================================================
// SCHEDULE
// ======================================================

// Availability answers whether [start_at, end_at) is free and what it costs.
func (h *CourtHandler) Availability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	start, err := parseTimeParam(c.Query("start_at"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_at", "start_at must be a date-time.")
		return
	}
	end, err := parseTimeParam(c.Query("end_at"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_at", "end_at must be a date-time.")
		return
	}

	q, err := h.quoteUC.Execute(c.Request.Context(), id, start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Quote{
		CourtID:     q.CourtID,
		StartAt:     q.Interval.Start,
		EndAt:       q.Interval.End,
		Available:   q.Available,
		TotalAmount: q.Total.StringFixed(reservation.AmountPlaces),
		Currency:    q.Currency,
	})
}

// Reservations lists occupied slots of a court, optionally from a given time.
func (h *CourtHandler) Reservations(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	from, err := optionalTimeParam(c.Query("from"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "from must be a date or date-time.")
		return
	}

	list, err := h.reservationsUC.Execute(c.Request.Context(), id, from)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewSlots(list))
}
