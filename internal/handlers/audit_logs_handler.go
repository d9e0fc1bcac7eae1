package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the caller's own audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)

	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	limit := queryInt(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	// --------------------------------------------------
	// Base query, always scoped to the caller
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("actor_id = ?", actorID)

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if from, err := time.Parse(timezone.DateLayout, c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}
	if to, err := time.Parse(timezone.DateLayout, c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	httpresp.OK(c, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
