package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/health-portal/internal/config"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=user doctor hospital"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, a valid email and a password of at least 6 characters are required.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	if h.config.ValidateEmailDomain && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	// doctors and hospitals finish onboarding by creating their profile
	onboarding := models.OnboardingCompleted
	if role != models.RoleUser {
		onboarding = models.OnboardingPending
	}

	user := models.User{
		Name:             strings.TrimSpace(req.Name),
		Email:            email,
		PasswordHash:     string(hashed),
		Phone:            strings.TrimSpace(req.Phone),
		Role:             role,
		OnboardingStatus: onboarding,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err, "") {
			httperr.Conflict(c, "email_already_registered", "An account with this email already exists.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	token, err := middleware.IssueToken(h.config, user.ID, user.Email, user.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if httperr.IsNotFound(err) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := middleware.IssueToken(h.config, user.ID, user.Email, user.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"token":   token,
	})
}
