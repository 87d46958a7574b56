package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/auth"
	"github.com/BruksfildServices01/court-booking/internal/dto"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
	"github.com/BruksfildServices01/court-booking/internal/validators"
)

type AuthHandler struct {
	db      *gorm.DB
	tokens  *auth.TokenIssuer
	welcome WelcomeSender
	audit   Auditor

	// checkEmailHost enables the MX/A lookup of the email domain.
	checkEmailHost bool
}

func NewAuthHandler(
	db *gorm.DB,
	tokens *auth.TokenIssuer,
	welcome WelcomeSender,
	audit Auditor,
	checkEmailHost bool,
) *AuthHandler {
	return &AuthHandler{
		db:             db,
		tokens:         tokens,
		welcome:        welcome,
		audit:          audit,
		checkEmailHost: checkEmailHost,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"max=30"`
	LastName  string `json:"last_name" binding:"max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  dto.User `json:"user"`
	Token string   `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := normalizeEmail(req.Email)
	if h.checkEmailHost && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	user, err := createUser(c.Request.Context(), h.db, req, models.RoleUser)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role, user.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	h.welcome.SendWelcome(*user)
	h.audit.Dispatch(auditEvent(user.ID, "user_registered", "user", user.ID, nil))

	c.JSON(http.StatusCreated, AuthResponse{User: dto.NewUser(*user), Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", normalizeEmail(req.Email)).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}
	if !user.IsActive {
		httperr.Forbidden(c, "account_inactive", "This account has been deactivated.")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role, user.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: dto.NewUser(user), Token: token})
}

// --------- Shared ---------

// createUser hashes the password and stores an active user with the given role.
func createUser(ctx context.Context, db *gorm.DB, req RegisterRequest, role string) (*models.User, error) {
	email := normalizeEmail(req.Email)

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrConflict("email_taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         role,
		IsActive:     true,
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("email_taken")
		}
		return nil, err
	}
	return &user, nil
}
