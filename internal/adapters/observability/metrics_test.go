package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/adapters/observability"
)

func TestMetricsEndpointExposesCounters(t *testing.T) {
	reg := observability.InitRegistry()

	observability.ObserveHTTP("/v1/rooms", http.MethodGet, 200, 12*time.Millisecond)
	observability.ObserveBooking("create", "ok")
	observability.ObserveMail("confirmation", "error")
	observability.ObserveCache("redis", "hit")

	ts := httptest.NewServer(observability.MetricsHandler(reg))
	defer ts.Close()

	res, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	out := string(body)

	for _, want := range []string{
		"hotel_http_requests_total",
		"hotel_booking_events_total",
		"hotel_mail_events_total",
		"hotel_cache_events_total",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}
