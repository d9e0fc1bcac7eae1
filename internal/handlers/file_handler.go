package handlers

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/httpresp"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/usecase/file"
)

type FileHandler struct {
	files *file.Service
}

func NewFileHandler(files *file.Service) *FileHandler {
	return &FileHandler{files: files}
}

type ShareFileRequest struct {
	FileID string `json:"fileId"`
	Email  string `json:"email"`
}

func (h *FileHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A file is required.")
		return
	}
	if fh.Size > file.MaxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Files must be at most 10 MB.")
		return
	}

	src, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer src.Close()

	body, err := io.ReadAll(io.LimitReader(src, file.MaxUploadBytes+1))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	f, err := h.files.Upload(c.Request.Context(), middleware.Actor(c), file.UploadInput{
		Name:        fh.Filename,
		ContentType: contentType,
		Body:        body,
		Category:    c.PostForm("category"),
		Tags:        splitTags(c.PostFormArray("tags")),
		DoctorID:    c.PostForm("doctorId"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"file": f})
}

func (h *FileHandler) List(c *gin.Context) {
	files, err := h.files.List(c.Request.Context(), middleware.Actor(c), c.Query("category"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, "files", files)
}

func (h *FileHandler) Share(c *gin.Context) {
	var req ShareFileRequest
	if !bindJSON(c, &req) {
		return
	}

	f, err := h.files.Share(c.Request.Context(), middleware.Actor(c), req.FileID, req.Email)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"file": f})
}

func (h *FileHandler) Download(c *gin.Context) {
	f, body, err := h.files.Open(c.Request.Context(), middleware.Actor(c), c.Query("key"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer body.Close()

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, f.Size, contentType, body, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}),
		"Cache-Control":       "private, no-store",
	})
}

// splitTags accepts repeated fields as well as one comma separated field.
func splitTags(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, t := range strings.Split(r, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

