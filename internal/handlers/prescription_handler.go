package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/usecase/prescription"
)

type PrescriptionHandler struct {
	create *prescription.CreatePrescription
	update *prescription.UpdatePrescription
	cancel *prescription.CancelPrescription
	query  *prescription.QueryPrescriptions
	share  *prescription.SharePrescription
}

func NewPrescriptionHandler(
	create *prescription.CreatePrescription,
	update *prescription.UpdatePrescription,
	cancel *prescription.CancelPrescription,
	query *prescription.QueryPrescriptions,
	share *prescription.SharePrescription,
) *PrescriptionHandler {
	return &PrescriptionHandler{
		create: create,
		update: update,
		cancel: cancel,
		query:  query,
		share:  share,
	}
}

type CreatePrescriptionRequest struct {
	PatientID     string              `json:"patientId"`
	AppointmentID string              `json:"appointmentId"`
	Medications   []models.Medication `json:"medications"`
	Notes         string              `json:"notes"`
	FollowUpDate  *string             `json:"followUpDate"`
}

// Absent fields stay untouched.
type UpdatePrescriptionRequest struct {
	Notes        *string              `json:"notes"`
	FollowUpDate *string              `json:"followUpDate"`
	Medications  *[]models.Medication `json:"medications"`
	Status       *string              `json:"status"`
}

func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.create.Execute(c.Request.Context(), middleware.Actor(c), prescription.CreateInput{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Medications:   req.Medications,
		Notes:         req.Notes,
		FollowUpDate:  req.FollowUpDate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"prescription": p})
}

func (h *PrescriptionHandler) Update(c *gin.Context) {
	var req UpdatePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.update.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), prescription.UpdateInput{
		Notes:        req.Notes,
		FollowUpDate: req.FollowUpDate,
		Medications:  req.Medications,
		Status:       req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"prescription": p})
}

func (h *PrescriptionHandler) Delete(c *gin.Context) {
	if err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Prescription cancelled."})
}

func (h *PrescriptionHandler) List(c *gin.Context) {
	ps, err := h.query.List(c.Request.Context(), middleware.Actor(c), c.Query("patientId"), c.Query("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, "prescriptions", ps)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	p, err := h.query.Get(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"prescription": p})
}

func (h *PrescriptionHandler) Check(c *gin.Context) {
	exists, p, err := h.query.Check(c.Request.Context(), middleware.Actor(c), c.Query("appointmentId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	body := gin.H{"exists": exists}
	if p != nil {
		body["prescription"] = p
	}
	httpresp.OK(c, body)
}

func (h *PrescriptionHandler) Share(c *gin.Context) {
	f, err := h.share.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"file": f})
}
