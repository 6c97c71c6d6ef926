package applicants

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"applicant-tracker/internal/shared/metrics"
	"applicant-tracker/internal/shared/storage/object"
	"applicant-tracker/internal/shared/telemetry"
)

// Form carries the submitted applicant fields.
type Form struct {
	Name     string
	Email    string
	Phone    string
	Position string
}

// Upload is a resume file received with a form.
type Upload struct {
	FileName string
	Body     io.Reader
}

func (u *Upload) present() bool {
	return u != nil && u.Body != nil && u.FileName != ""
}

// Service contains business logic for applicants.
type Service struct {
	Store Store
	Blobs object.BlobStore
}

// NewService constructs a Service.
func NewService(store Store, blobs object.BlobStore) *Service {
	return &Service{Store: store, Blobs: blobs}
}

// Bootstrap prepares both the record file and the upload destination.
func (s *Service) Bootstrap(ctx context.Context) error {
	if err := s.Store.Bootstrap(ctx); err != nil {
		return err
	}
	return s.Blobs.Bootstrap(ctx)
}

// List returns every applicant in file order.
func (s *Service) List(ctx context.Context) (list []Applicant, err error) {
	defer observe("list", time.Now(), &err)
	return s.Store.List(ctx)
}

// Get returns the first applicant with the given email.
func (s *Service) Get(ctx context.Context, email string) (a Applicant, err error) {
	defer observe("find", time.Now(), &err)
	return s.Store.FindByEmail(ctx, email)
}

// Create stores the resume and appends a new record. Form values are kept
// as submitted and no duplicate-email check is made.
func (s *Service) Create(ctx context.Context, form Form, resume *Upload) (a Applicant, err error) {
	if !resume.present() {
		return Applicant{}, ErrResumeRequired
	}

	path, err := s.saveResume(ctx, resume)
	if err != nil {
		return Applicant{}, err
	}

	a = Applicant{
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		Position:   form.Position,
		ResumePath: path,
	}

	defer observe("append", time.Now(), &err)
	if err := s.Store.Append(ctx, a); err != nil {
		return Applicant{}, err
	}
	telemetry.Info("applicant.created", map[string]any{"email": a.Email})
	return a, nil
}

// Modify replaces the first applicant whose email is originalEmail. Required
// fields are trimmed and must be non-empty. Without a new resume the stored
// resume path is kept.
func (s *Service) Modify(ctx context.Context, originalEmail string, form Form, resume *Upload) (Applicant, error) {
	current, err := s.Get(ctx, originalEmail)
	if err != nil {
		return Applicant{}, err
	}

	updated := Applicant{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Phone:    strings.TrimSpace(form.Phone),
		Position: strings.TrimSpace(form.Position),
	}
	if updated.Name == "" || updated.Email == "" || updated.Phone == "" || updated.Position == "" {
		return Applicant{}, ErrValidation
	}

	if resume.present() {
		path, err := s.saveResume(ctx, resume)
		if err != nil {
			return Applicant{}, err
		}
		updated.ResumePath = path
	} else {
		updated.ResumePath = current.ResumePath
	}

	start := time.Now()
	err = s.Store.UpdateFirst(ctx, originalEmail, updated)
	observe("update", start, &err)
	if err != nil {
		return Applicant{}, err
	}
	telemetry.Info("applicant.updated", map[string]any{"original_email": originalEmail, "email": updated.Email})
	return updated, nil
}

// Remove deletes every applicant carrying the email.
func (s *Service) Remove(ctx context.Context, email string) (removed int, err error) {
	defer observe("delete", time.Now(), &err)
	removed, err = s.Store.DeleteAll(ctx, email)
	if err == nil {
		telemetry.Info("applicant.deleted", map[string]any{"email": email, "removed": removed})
	}
	return removed, err
}

// OpenResume reads back a stored resume by file name.
func (s *Service) OpenResume(ctx context.Context, fileName string) (io.ReadCloser, error) {
	return s.Blobs.Open(ctx, fileName)
}

func (s *Service) saveResume(ctx context.Context, resume *Upload) (string, error) {
	path, size, err := s.Blobs.Save(ctx, resume.FileName, resume.Body)
	metrics.IncResumeUpload(err)
	if err != nil {
		telemetry.Error("resume.save.failed", map[string]any{"file_name": resume.FileName, "err": err.Error()})
		return "", err
	}
	telemetry.Info("resume.saved", map[string]any{"path": path, "size_bytes": size})
	return path, nil
}

func observe(op string, start time.Time, err *error) {
	metrics.ObserveStoreOp(op, start, *err, classify)
}

func classify(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
