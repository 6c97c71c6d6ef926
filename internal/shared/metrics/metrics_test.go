package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStoreOpLabelsResult(t *testing.T) {
	before := testutil.ToFloat64(storeOperations.WithLabelValues("find", "not_found"))

	ObserveStoreOp("find", time.Now(), errors.New("missing"), func(error) string { return "not_found" })
	ObserveStoreOp("find", time.Now(), nil, nil)

	assert.Equal(t, before+1, testutil.ToFloat64(storeOperations.WithLabelValues("find", "not_found")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(storeOperations.WithLabelValues("find", "ok")), 1.0)
}

func TestHandlerServesPrometheusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncResumeUpload(nil)

	r := gin.New()
	r.GET("/metrics", Handler())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "resume_uploads_total")
}
