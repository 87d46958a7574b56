package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/dto"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/httpresp"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type MeHandler struct {
	db    *gorm.DB
	audit Auditor
}

func NewMeHandler(db *gorm.DB, audit Auditor) *MeHandler {
	return &MeHandler{db: db, audit: audit}
}

type UpdateMeRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=30"`
	LastName  *string `json:"last_name" binding:"omitempty,max=30"`
	Password  *string `json:"password" binding:"omitempty,min=8,max=72"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", p.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	httpresp.OK(c, dto.NewUser(user))
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", p.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	changed := []string{}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
		changed = append(changed, "first_name")
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
		changed = append(changed, "last_name")
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Could not update the password.")
			return
		}
		user.PasswordHash = string(hashed)
		changed = append(changed, "password")
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update the profile.")
		return
	}

	h.audit.Dispatch(auditEvent(p.UserID, "profile_updated", "user", user.ID, map[string]any{"fields": changed}))
	httpresp.OK(c, dto.NewUser(user), "Profile updated.")
}
