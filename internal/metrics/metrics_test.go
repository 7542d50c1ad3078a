package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRecompute(t *testing.T) {
	okBefore := testutil.ToFloat64(RatingRecomputes.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(RatingRecomputes.WithLabelValues("error"))

	RecordRecompute(nil)
	RecordRecompute(errors.New("boom"))
	RecordRecompute(nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(RatingRecomputes.WithLabelValues("ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(RatingRecomputes.WithLabelValues("error")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/movies", "200"))

	RecordHTTPRequest("GET", "/movies", "200", 5*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/movies", "200")))
}

func TestRecordCache(t *testing.T) {
	before := testutil.ToFloat64(CacheRequests.WithLabelValues("hit"))
	RecordCache("hit")
	assert.Equal(t, before+1, testutil.ToFloat64(CacheRequests.WithLabelValues("hit")))
}
