package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/dto"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/httpresp"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

// UserHandler is the admin view of accounts.
type UserHandler struct {
	db    *gorm.DB
	audit Auditor
}

func NewUserHandler(db *gorm.DB, audit Auditor) *UserHandler {
	return &UserHandler{db: db, audit: audit}
}

type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" binding:"omitempty,oneof=user admin"`
}

func (h *UserHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("created_at DESC")

	switch c.Query("active") {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		httperr.Internal(c, "user_list_failed", "Could not list users.")
		return
	}

	httpresp.List(c, dto.NewUsers(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, ok := h.load(c, id.String())
	if !ok {
		return
	}
	httpresp.OK(c, dto.NewUser(*user))
}

func (h *UserHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user, err := createUser(c.Request.Context(), h.db, req.RegisterRequest, role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(auditEvent(p.UserID, "user_created", "user", user.ID, map[string]any{"role": role}))
	httpresp.Created(c, dto.NewUser(*user))
}

// Deactivate keeps the row so reservations stay attributable.
func (h *UserHandler) Deactivate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if id == p.UserID {
		httperr.Respond(c, httperr.ErrBusiness("cannot_deactivate_self"))
		return
	}

	user, ok := h.load(c, id.String())
	if !ok {
		return
	}

	if user.IsActive {
		if err := h.db.WithContext(c.Request.Context()).
			Model(user).
			Update("is_active", false).Error; err != nil {
			httperr.Internal(c, "failed_to_update_user", "Could not deactivate the user.")
			return
		}
		user.IsActive = false
		h.audit.Dispatch(auditEvent(p.UserID, "user_deactivated", "user", user.ID, nil))
	}

	httpresp.OK(c, dto.NewUser(*user), "User deactivated.")
}

func (h *UserHandler) load(c *gin.Context, id string) (*models.User, bool) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return nil, false
		}
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return nil, false
	}
	return &user, true
}
