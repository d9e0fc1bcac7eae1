package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/usecase/rating"
)

type RatingHandler struct {
	submit *rating.SubmitRating
	get    *rating.GetRatings
}

func NewRatingHandler(submit *rating.SubmitRating, get *rating.GetRatings) *RatingHandler {
	return &RatingHandler{submit: submit, get: get}
}

type SubmitRatingRequest struct {
	UserID     string `json:"userId"`
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	Rating     int    `json:"rating"`
	Review     string `json:"review"`
}

func (h *RatingHandler) Submit(c *gin.Context) {
	var req SubmitRatingRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.submit.Execute(c.Request.Context(), middleware.Actor(c), rating.SubmitInput{
		UserID:     req.UserID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Rating:     req.Rating,
		Review:     req.Review,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"rating":        res.Rating,
		"averageRating": res.Average,
		"totalRatings":  res.Total,
	})
}

func (h *RatingHandler) Get(c *gin.Context) {
	res, err := h.get.Execute(c.Request.Context(), c.Query("targetType"), c.Query("targetId"), c.Query("userId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	body := gin.H{
		"ratings":       res.Ratings,
		"averageRating": res.Average,
		"totalRatings":  res.Total,
	}
	if res.UserRating != nil {
		body["userRating"] = res.UserRating
	}
	httpresp.OK(c, body)
}
