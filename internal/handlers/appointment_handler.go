package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book          *appointment.BookAppointment
	updateStatus  *appointment.UpdateStatus
	updatePayment *appointment.UpdatePayment
	list          *appointment.ListAppointments
	checkout      *appointment.Checkout
	confirm       *appointment.ConfirmPayment
}

func NewAppointmentHandler(
	book *appointment.BookAppointment,
	updateStatus *appointment.UpdateStatus,
	updatePayment *appointment.UpdatePayment,
	list *appointment.ListAppointments,
	checkout *appointment.Checkout,
	confirm *appointment.ConfirmPayment,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:          book,
		updateStatus:  updateStatus,
		updatePayment: updatePayment,
		list:          list,
		checkout:      checkout,
		confirm:       confirm,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	UserEmail string `json:"userEmail"`
	DoctorID  string `json:"doctorId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
}

type UpdateStatusRequest struct {
	AppointmentID string `json:"appointmentId"`
	Status        string `json:"status"`
}

type UpdatePaymentRequest struct {
	AppointmentID string `json:"appointmentId"`
	PaymentStatus string `json:"paymentStatus"`
}

type DoctorListRequest struct {
	DoctorID string `json:"doctorId"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}

type UserListRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

type CheckoutRequest struct {
	AppointmentID string `json:"appointmentId"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.book.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		appointment.BookAppointmentInput{
			PatientEmail: req.UserEmail,
			DoctorID:     req.DoctorID,
			Date:         req.Date,
			Time:         req.Time,
			Type:         req.Type,
			Notes:        req.Notes,
		},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"appointment": ap})
}

// ======================================================
// STATUS / PAYMENT
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), middleware.Actor(c), req.AppointmentID, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}

func (h *AppointmentHandler) UpdatePayment(c *gin.Context) {
	var req UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updatePayment.Execute(c.Request.Context(), middleware.Actor(c), req.AppointmentID, req.PaymentStatus)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) DoctorList(c *gin.Context) {
	var req DoctorListRequest
	if !bindJSON(c, &req) {
		return
	}

	aps, err := h.list.ForDoctor(c.Request.Context(), middleware.Actor(c), req.DoctorID, domain.ListFilter{
		Status: req.Status,
		Date:   req.Date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, "appointments", aps)
}

func (h *AppointmentHandler) UserList(c *gin.Context) {
	var req UserListRequest
	if !bindJSON(c, &req) {
		return
	}

	aps, err := h.list.ForUser(c.Request.Context(), middleware.Actor(c), req.Email, domain.ListFilter{
		Status: req.Status,
		Date:   req.Date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, "appointments", aps)
}

func (h *AppointmentHandler) BookedSlots(c *gin.Context) {
	slots, err := h.list.BookedSlots(c.Request.Context(), domain.BookedSlotsInput{
		DoctorID: c.Query("doctorId"),
		Date:     c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, "slots", slots)
}

func (h *AppointmentHandler) DoctorPatients(c *gin.Context) {
	patients, err := h.list.PatientsOfDoctor(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, "patients", patients)
}

// ======================================================
// ONLINE PAYMENT
// ======================================================

func (h *AppointmentHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.checkout.Execute(c.Request.Context(), middleware.Actor(c), req.AppointmentID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"checkout": session})
}

type paymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// PaymentWebhook receives gateway notifications. The payment is always re-read
// from the gateway, so the notification body is only a hint.
func (h *AppointmentHandler) PaymentWebhook(c *gin.Context) {
	n := paymentNotification{Type: c.Query("type")}
	n.Data.ID = c.Query("data.id")

	if n.Data.ID == "" {
		// the body form is used by newer notification versions
		_ = c.ShouldBindJSON(&n)
	}

	if n.Type != "payment" || n.Data.ID == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "ignored": true})
		return
	}

	applied, err := h.confirm.Execute(c.Request.Context(), n.Data.ID)
	if err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("payment_id", n.Data.ID).Msg("payment notification rejected")
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"applied": applied})
}
