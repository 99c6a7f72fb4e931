package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationCounters(t *testing.T) {
	before := testutil.ToFloat64(PagesServed.WithLabelValues("subnet", ModeLink))
	PagesServed.WithLabelValues("subnet", ModeLink).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PagesServed.WithLabelValues("subnet", ModeLink)))
}

func TestHandlerExposesRegistry(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/subnets", "200").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "subnets_http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
