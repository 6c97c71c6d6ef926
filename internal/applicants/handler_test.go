package applicants_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applicant-tracker/internal/applicants"
	"applicant-tracker/internal/bootstrap"
	"applicant-tracker/internal/shared/config"
	"applicant-tracker/internal/shared/telemetry"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	restore := telemetry.SetOutput(io.Discard)
	t.Cleanup(restore)

	dir := t.TempDir()
	app, err := bootstrap.Build(context.Background(), config.Config{
		DataFile:        filepath.Join(dir, "applicants.csv"),
		UploadDir:       filepath.Join(dir, "uploads"),
		ObjectStoreType: "local",
		CORSAllowOrigin: []string{"http://localhost:5173"},
	})
	require.NoError(t, err)
	return app
}

func multipartBody(t *testing.T, fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := writer.CreateFormFile("resume", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func do(app *bootstrap.App, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func addApplicant(t *testing.T, app *bootstrap.App, name, email, fileName string) {
	t.Helper()
	body, ct := multipartBody(t, map[string]string{"name": name, "email": email, "phone": "555", "position": "Eng"}, fileName, "resume of "+name)
	resp := do(app, http.MethodPost, "/add", body, ct)
	require.Equal(t, http.StatusFound, resp.Code, resp.Body.String())
	require.Equal(t, "/", resp.Header().Get("Location"))
}

func TestAddListAndDownload(t *testing.T) {
	app := newTestApp(t)
	addApplicant(t, app, "Jo", "jo@x.com", "Jo Resume.pdf")

	resp := do(app, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	page := resp.Body.String()
	assert.Contains(t, page, "jo@x.com")
	assert.Contains(t, page, `href="/uploads/Jo_Resume.pdf"`)

	resp = do(app, http.MethodGet, "/uploads/Jo_Resume.pdf", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "resume of Jo", resp.Body.String())
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
}

func TestAddRejectsMissingResume(t *testing.T) {
	app := newTestApp(t)
	body, ct := multipartBody(t, map[string]string{"name": "Jo", "email": "jo@x.com", "phone": "555", "position": "Eng"}, "", "")

	resp := do(app, http.MethodPost, "/add", body, ct)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	list, err := app.ApplicantService.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddRejectsMissingField(t *testing.T) {
	app := newTestApp(t)
	body, ct := multipartBody(t, map[string]string{"name": "Jo", "email": "jo@x.com", "phone": "555"}, "jo.pdf", "x")

	resp := do(app, http.MethodPost, "/add", body, ct)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "position is required", resp.Body.String())
}

func TestModifyFormNotFound(t *testing.T) {
	app := newTestApp(t)

	resp := do(app, http.MethodGet, "/modify/nobody@x.com", nil, "")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Applicant not found", resp.Body.String())
}

func TestModifyFormRendersApplicant(t *testing.T) {
	app := newTestApp(t)
	addApplicant(t, app, "Jo", "jo@x.com", "jo.pdf")

	resp := do(app, http.MethodGet, "/modify/jo@x.com", nil, "")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `value="Jo"`)
}

func TestModifyValidationError(t *testing.T) {
	app := newTestApp(t)
	addApplicant(t, app, "Jo", "jo@x.com", "jo.pdf")

	form := url.Values{"name": {"  "}, "email": {"jo@x.com"}, "phone": {"555"}, "position": {"Eng"}}
	resp := do(app, http.MethodPost, "/modify/jo@x.com", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "All fields are required", resp.Body.String())
}

func TestModifyUnknownApplicant(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"name": {"Jo"}, "email": {"jo@x.com"}, "phone": {"555"}, "position": {"Eng"}}
	resp := do(app, http.MethodPost, "/modify/nobody@x.com", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Applicant not found", resp.Body.String())
}

func TestModifyChangesEmailAndKeepsResume(t *testing.T) {
	app := newTestApp(t)
	addApplicant(t, app, "Jo", "jo@x.com", "jo.pdf")
	before, err := app.ApplicantService.Get(context.Background(), "jo@x.com")
	require.NoError(t, err)

	body, ct := multipartBody(t, map[string]string{"name": "Jo", "email": " jo2@x.com ", "phone": "555", "position": "Lead"}, "", "")
	resp := do(app, http.MethodPost, "/modify/jo@x.com", body, ct)
	require.Equal(t, http.StatusFound, resp.Code, resp.Body.String())

	_, err = app.ApplicantService.Get(context.Background(), "jo@x.com")
	assert.ErrorIs(t, err, applicants.ErrNotFound)
	after, err := app.ApplicantService.Get(context.Background(), "jo2@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Lead", after.Position)
	assert.Equal(t, before.ResumePath, after.ResumePath)
}

func TestModifyStoreFailureIs500WithMessage(t *testing.T) {
	app := newTestApp(t)
	addApplicant(t, app, "Jo", "jo@x.com", "jo.pdf")

	body, ct := multipartBody(t, map[string]string{"name": "Jo", "email": "jo@x.com", "phone": "555", "position": "Eng"}, "..", "x")
	resp := do(app, http.MethodPost, "/modify/jo@x.com", body, ct)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.True(t, strings.HasPrefix(resp.Body.String(), "An error occurred: "), resp.Body.String())
}

func TestDeleteRemovesAllMatches(t *testing.T) {
	app := newTestApp(t)
	addApplicant(t, app, "One", "a@x.com", "one.pdf")
	addApplicant(t, app, "Two", "a@x.com", "two.pdf")
	addApplicant(t, app, "Keep", "k@x.com", "keep.pdf")

	resp := do(app, http.MethodGet, "/delete/a@x.com", nil, "")
	require.Equal(t, http.StatusFound, resp.Code)

	list, err := app.ApplicantService.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "k@x.com", list[0].Email)
}

func TestDownloadMissing(t *testing.T) {
	app := newTestApp(t)

	resp := do(app, http.MethodGet, "/uploads/nope.pdf", nil, "")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestJSONAPI(t *testing.T) {
	app := newTestApp(t)
	addApplicant(t, app, "Jo", "jo@x.com", "jo.pdf")

	resp := do(app, http.MethodGet, "/api/v1/applicants", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var listed struct {
		Applicants []applicants.Applicant `json:"applicants"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed.Applicants, 1)
	assert.Equal(t, "Jo", listed.Applicants[0].Name)

	resp = do(app, http.MethodGet, "/api/v1/applicants/jo@x.com", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var got applicants.Applicant
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "jo@x.com", got.Email)

	resp = do(app, http.MethodGet, "/api/v1/applicants/nobody@x.com", nil, "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "not_found", errResp.Error.Code)

	resp = do(app, http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)
}
