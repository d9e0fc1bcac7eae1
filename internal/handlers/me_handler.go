package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Image *string `json:"image"`
}

func (h *MeHandler) load(c *gin.Context) (*models.User, bool) {
	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.GetString(middleware.ContextUserID)).
		First(&user).Error
	if err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &user, true
}

// GetMe returns the login record plus the role profile when one exists.
func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}

	body := gin.H{"user": user}
	db := h.db.WithContext(c.Request.Context())

	switch user.Role {
	case models.RoleDoctor:
		var d models.Doctor
		if err := db.Preload("Hospital").Where("email = ?", user.Email).First(&d).Error; err == nil {
			body["doctor"] = d
		} else if !httperr.IsNotFound(err) {
			httperr.Respond(c, err)
			return
		}
	case models.RoleHospital:
		var hp models.Hospital
		if err := db.Where("email = ?", user.Email).First(&hp).Error; err == nil {
			body["hospital"] = hp
		} else if !httperr.IsNotFound(err) {
			httperr.Respond(c, err)
			return
		}
	}

	httpresp.OK(c, body)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	user, ok := h.load(c)
	if !ok {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Name cannot be empty.")
			return
		}
		user.Name = name
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Image != nil {
		user.Image = strings.TrimSpace(*req.Image)
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(user).
		Select("name", "phone", "image", "updated_at").
		Updates(user).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}
