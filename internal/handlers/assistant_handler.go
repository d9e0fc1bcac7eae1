package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/usecase/assistant"
)

type AssistantHandler struct {
	assistant *assistant.Service
}

func NewAssistantHandler(svc *assistant.Service) *AssistantHandler {
	return &AssistantHandler{assistant: svc}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type SymptomCheckRequest struct {
	Symptoms []string `json:"symptoms"`
	Age      int      `json:"age" binding:"gte=0,lte=130"`
	Gender   string   `json:"gender"`
	Duration string   `json:"duration"`
}

// Chat answers 200 with fallback=true when the model is unavailable.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), middleware.Actor(c), req.Message)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"reply": reply.Reply, "fallback": reply.Fallback})
}

func (h *AssistantHandler) History(c *gin.Context) {
	msgs, err := h.assistant.History(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, "messages", msgs)
}

func (h *AssistantHandler) ClearHistory(c *gin.Context) {
	if err := h.assistant.ClearHistory(c.Request.Context(), middleware.Actor(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Chat history cleared."})
}

func (h *AssistantHandler) CheckSymptoms(c *gin.Context) {
	var req SymptomCheckRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.assistant.CheckSymptoms(c.Request.Context(), middleware.Actor(c), assistant.SymptomInput{
		Symptoms: req.Symptoms,
		Age:      req.Age,
		Gender:   req.Gender,
		Duration: req.Duration,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"assessment": reply.Reply, "fallback": reply.Fallback})
}
