package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

type AuditLogsPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if s := c.Query("user_id"); s != "" {
		userID, err := uuid.Parse(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_user_id", "user_id must be a UUID.")
			return
		}
		q = q.Where("user_id = ?", userID)
	}
	if s := c.Query("from"); s != "" {
		if from, err := time.ParseInLocation("2006-01-02", s, h.loc); err == nil {
			q = q.Where("created_at >= ?", from.UTC())
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err := time.ParseInLocation("2006-01-02", s, h.loc); err == nil {
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(http.StatusOK, AuditLogsPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  logs,
	})
}
