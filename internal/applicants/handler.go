package applicants

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"applicant-tracker/internal/shared/server/middleware"
	"applicant-tracker/internal/shared/server/respond"
	"applicant-tracker/internal/shared/storage/object"
	"applicant-tracker/internal/shared/util"
)

const defaultMaxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	MaxUploadSize int64
}

// NewHandler constructs a Handler. A non-positive maxUploadSize falls back to 10MB.
func NewHandler(svc *Service, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &Handler{Svc: svc, MaxUploadSize: maxUploadSize}
}

// RegisterPages attaches the HTML pages and the resume download route.
func (h *Handler) RegisterPages(r gin.IRoutes) {
	r.GET("/", h.index)
	r.GET("/add", h.addForm)
	r.POST("/add", h.add)
	r.GET("/modify/:email", h.modifyForm)
	r.POST("/modify/:email", h.modify)
	r.GET("/delete/:email", h.delete)
	r.GET("/uploads/:filename", h.download)
}

// RegisterRoutes attaches the read-only JSON API to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applicants", h.list)
	rg.GET("/applicants/:email", h.get)
}

func (h *Handler) index(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Text(c, http.StatusInternalServerError, "internal_error", "Internal Server Error")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Applicants": list})
}

func (h *Handler) addForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", nil)
}

func (h *Handler) add(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	form, missing := requiredForm(c)
	if missing != "" {
		respond.Text(c, http.StatusBadRequest, "validation_error", fmt.Sprintf("%s is required", missing))
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Text(c, http.StatusBadRequest, "validation_error", ErrResumeRequired.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Text(c, http.StatusBadRequest, "validation_error", "unable to read resume")
		return
	}
	defer file.Close()

	c.Set(middleware.ApplicantEmailKey, form.Email)
	_, err = h.Svc.Create(c.Request.Context(), form, &Upload{FileName: fileHeader.Filename, Body: file})
	if err != nil {
		switch {
		case errors.Is(err, ErrResumeRequired), errors.Is(err, util.ErrInvalidFileName):
			respond.Text(c, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respond.Text(c, http.StatusInternalServerError, "internal_error", "Internal Server Error")
		}
		return
	}

	respond.SeeList(c)
}

func (h *Handler) modifyForm(c *gin.Context) {
	email := c.Param("email")
	c.Set(middleware.ApplicantEmailKey, email)

	a, err := h.Svc.Get(c.Request.Context(), email)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}
	c.HTML(http.StatusOK, "modify.html", gin.H{"Applicant": a})
}

func (h *Handler) modify(c *gin.Context) {
	email := c.Param("email")
	c.Set(middleware.ApplicantEmailKey, email)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	// Existence is checked before the form is looked at.
	if _, err := h.Svc.Get(c.Request.Context(), email); err != nil {
		h.lookupFailed(c, err)
		return
	}

	form := Form{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Position: c.PostForm("position"),
	}

	var resume *Upload
	if fileHeader, err := c.FormFile("resume"); err == nil && fileHeader.Filename != "" {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Text(c, http.StatusInternalServerError, "internal_error", fmt.Sprintf("An error occurred: %v", err))
			return
		}
		defer file.Close()
		resume = &Upload{FileName: fileHeader.Filename, Body: file}
	}

	if _, err := h.Svc.Modify(c.Request.Context(), email, form, resume); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Text(c, http.StatusNotFound, "not_found", "Applicant not found")
		case errors.Is(err, ErrValidation):
			respond.Text(c, http.StatusBadRequest, "validation_error", "All fields are required")
		default:
			respond.Text(c, http.StatusInternalServerError, "internal_error", fmt.Sprintf("An error occurred: %v", err))
		}
		return
	}

	respond.SeeList(c)
}

func (h *Handler) delete(c *gin.Context) {
	email := c.Param("email")
	c.Set(middleware.ApplicantEmailKey, email)

	if _, err := h.Svc.Remove(c.Request.Context(), email); err != nil {
		respond.Text(c, http.StatusInternalServerError, "internal_error", "Internal Server Error")
		return
	}
	respond.SeeList(c)
}

func (h *Handler) download(c *gin.Context) {
	name := c.Param("filename")

	rc, err := h.Svc.OpenResume(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			respond.Text(c, http.StatusNotFound, "not_found", "Not Found")
			return
		}
		respond.Text(c, http.StatusInternalServerError, "internal_error", "Internal Server Error")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applicants", nil)
		return
	}
	respond.OK(c, gin.H{"applicants": list})
}

func (h *Handler) get(c *gin.Context) {
	email := c.Param("email")
	c.Set(middleware.ApplicantEmailKey, email)

	a, err := h.Svc.Get(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "applicant not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch applicant", nil)
		}
		return
	}
	respond.OK(c, a)
}

func (h *Handler) lookupFailed(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Text(c, http.StatusNotFound, "not_found", "Applicant not found")
		return
	}
	respond.Text(c, http.StatusInternalServerError, "internal_error", "Internal Server Error")
}

// requiredForm reads the add-form fields as submitted. It returns the name of
// the first field absent from the request.
func requiredForm(c *gin.Context) (Form, string) {
	var form Form
	fields := []struct {
		key string
		dst *string
	}{
		{"name", &form.Name},
		{"email", &form.Email},
		{"phone", &form.Phone},
		{"position", &form.Position},
	}
	for _, f := range fields {
		v, ok := c.GetPostForm(f.key)
		if !ok {
			return Form{}, f.key
		}
		*f.dst = v
	}
	return form, ""
}
