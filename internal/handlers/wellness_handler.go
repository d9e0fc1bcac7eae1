package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/usecase/wellness"
)

type WellnessHandler struct {
	wellness *wellness.Service
}

func NewWellnessHandler(svc *wellness.Service) *WellnessHandler {
	return &WellnessHandler{wellness: svc}
}

type JournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type MoodRequest struct {
	Mood int    `json:"mood"`
	Note string `json:"note"`
}

func (h *WellnessHandler) AddJournal(c *gin.Context) {
	var req JournalRequest
	if !bindJSON(c, &req) {
		return
	}

	j, err := h.wellness.AddJournal(c.Request.Context(), middleware.Actor(c), req.Title, req.Content)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, gin.H{"journal": j})
}

func (h *WellnessHandler) Journals(c *gin.Context) {
	js, err := h.wellness.Journals(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, "journals", js)
}

func (h *WellnessHandler) DeleteJournal(c *gin.Context) {
	if err := h.wellness.DeleteJournal(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Journal entry deleted."})
}

func (h *WellnessHandler) LogMood(c *gin.Context) {
	var req MoodRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.wellness.LogMood(c.Request.Context(), middleware.Actor(c), req.Mood, req.Note)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, gin.H{"mood": m})
}

func (h *WellnessHandler) Moods(c *gin.Context) {
	ms, err := h.wellness.Moods(c.Request.Context(), middleware.Actor(c), queryInt(c, "days", wellness.DefaultMoodDays))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, "moods", ms)
}
