package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/profile"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/usecase/profile"
)

// maxImageBytes bounds one hospital picture before re-encoding.
const maxImageBytes = 8 << 20

type ProfileHandler struct {
	doctors   *profile.Doctors
	hospitals *profile.Hospitals
}

func NewProfileHandler(doctors *profile.Doctors, hospitals *profile.Hospitals) *ProfileHandler {
	return &ProfileHandler{doctors: doctors, hospitals: hospitals}
}

// ======================================================
// REQUESTS
// ======================================================

type DoctorProfileRequest struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Qualification  string  `json:"qualification"`
	Experience     int     `json:"experience" binding:"gte=0"`
	Phone          string  `json:"phone"`
	Bio            string  `json:"bio"`
	Fee            float64 `json:"fee" binding:"gte=0"`
	HospitalID     string  `json:"hospitalId"`
}

type HospitalProfileRequest struct {
	Name        string         `json:"name"`
	Phone       string         `json:"phone"`
	Website     string         `json:"website"`
	Description string         `json:"description"`
	Address     models.Address `json:"address"`
	Specialties []string       `json:"specialties"`
}

type VerifyDoctorRequest struct {
	DoctorID string `json:"doctorId"`
	Status   string `json:"status"`
}

// ======================================================
// DOCTORS
// ======================================================

func (h *ProfileHandler) SaveDoctor(c *gin.Context) {
	var req DoctorProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctors.Save(c.Request.Context(), middleware.Actor(c), profile.DoctorInput{
		Name:           req.Name,
		Specialization: req.Specialization,
		Qualification:  req.Qualification,
		Experience:     req.Experience,
		Phone:          req.Phone,
		Bio:            req.Bio,
		Fee:            req.Fee,
		HospitalID:     req.HospitalID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"doctor": d})
}

func (h *ProfileHandler) MyDoctor(c *gin.Context) {
	d, err := h.doctors.Mine(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"doctor": d})
}

func (h *ProfileHandler) ListDoctors(c *gin.Context) {
	ds, err := h.doctors.List(c.Request.Context(), domain.DoctorFilter{
		Specialization: c.Query("specialization"),
		HospitalID:     c.Query("hospitalId"),
		VerifiedOnly:   c.Query("verified") == "true",
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, "doctors", ds)
}

func (h *ProfileHandler) GetDoctor(c *gin.Context) {
	d, err := h.doctors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"doctor": d})
}

func (h *ProfileHandler) VerifyDoctor(c *gin.Context) {
	var req VerifyDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctors.Verify(c.Request.Context(), middleware.Actor(c), req.DoctorID, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"doctor": d})
}

// ======================================================
// HOSPITALS
// ======================================================

func (h *ProfileHandler) SaveHospital(c *gin.Context) {
	var req HospitalProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	hp, err := h.hospitals.Save(c.Request.Context(), middleware.Actor(c), profile.HospitalInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Website:     req.Website,
		Description: req.Description,
		Address:     req.Address,
		Specialties: req.Specialties,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"hospital": hp})
}

func (h *ProfileHandler) MyHospital(c *gin.Context) {
	hp, err := h.hospitals.Mine(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"hospital": hp})
}

func (h *ProfileHandler) UploadHospitalImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		httperr.BadRequest(c, "missing_images", "Send the pictures as multipart field \"images\".")
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		httperr.BadRequest(c, "missing_images", "Send the pictures as multipart field \"images\".")
		return
	}
	if len(headers) > models.MaxHospitalImages {
		httperr.BadRequest(c, "too_many_images", "A hospital can have at most 4 images.")
		return
	}

	uploads := make([]profile.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxImageBytes {
			httperr.BadRequest(c, "image_too_large", "Images must be at most 8 MB.")
			return
		}
		src, err := fh.Open()
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		body, err := io.ReadAll(io.LimitReader(src, maxImageBytes))
		src.Close()
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		uploads = append(uploads, profile.ImageUpload{Name: fh.Filename, Body: body})
	}

	hp, err := h.hospitals.AddImages(c.Request.Context(), middleware.Actor(c), uploads)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"hospital": hp})
}

func (h *ProfileHandler) SearchHospitals(c *gin.Context) {
	lat, okLat := queryFloat(c, "lat")
	lng, okLng := queryFloat(c, "lng")
	radius, okRadius := queryFloat(c, "radiusKm")
	if !okLat || !okLng || !okRadius {
		httperr.BadRequest(c, "invalid_location", "lat, lng and radiusKm must be numbers.")
		return
	}

	in := profile.SearchInput{
		Query: c.Query("q"),
		City:  c.Query("city"),
		Lat:   lat,
		Lng:   lng,
	}
	if radius != nil {
		in.RadiusKm = *radius
	}

	res, err := h.hospitals.Search(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, "hospitals", res)
}

func (h *ProfileHandler) GetHospital(c *gin.Context) {
	hp, err := h.hospitals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"hospital": hp})
}
