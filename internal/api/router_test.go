package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoline/shipping-core/internal/api/handler"
	"github.com/cargoline/shipping-core/internal/core/ports"
	"github.com/cargoline/shipping-core/internal/core/service"
	"github.com/cargoline/shipping-core/internal/infrastructure/db/memory"
	"github.com/cargoline/shipping-core/internal/infrastructure/db/redis"
	"github.com/cargoline/shipping-core/internal/infrastructure/messaging/kafka"
)

// syncDispatcher applies events inline so tests can assert on the outcome.
type syncDispatcher struct {
	svc  ports.EventService
	errs []error
}

func (d *syncDispatcher) Enqueue(ev ports.TrackingEventInput) error {
	if err := d.svc.Process(context.Background(), ev); err != nil {
		d.errs = append(d.errs, err)
	}
	return nil
}

func (d *syncDispatcher) EnqueueBatch(evs []ports.TrackingEventInput) error {
	for _, ev := range evs {
		_ = d.Enqueue(ev)
	}
	return nil
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type fixture struct {
	e          *echo.Echo
	dispatcher *syncDispatcher
}

func newFixture(t *testing.T, checks ...handler.DependencyCheck) *fixture {
	t.Helper()
	log := zerolog.Nop()

	repo := memory.NewShipmentRepository()
	_, err := memory.Seed(context.Background(), repo, memory.DemoShipments())
	require.NoError(t, err)

	quotes := service.NewQuoteService(nil)
	dispatcher := &syncDispatcher{
		svc: service.NewEventService(repo, redis.NopDedup{}, kafka.NopPublisher{}, log),
	}

	e := NewRouter(Dependencies{
		Tracking:   service.NewTrackingService(repo, log),
		Registry:   service.NewRegistryService(repo, quotes, log),
		Quotes:     quotes,
		Dispatcher: dispatcher,
		Checks:     checks,
		Logger:     log,
	})
	return &fixture{e: e, dispatcher: dispatcher}
}

func (f *fixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestStatus_DeliveringShipment(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/v1/shipments/CG-2024-001234/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "delivering", body["stage"])
	assert.EqualValues(t, 75, body["progress_percent"])
	assert.Equal(t, false, body["delivered"])
	assert.Equal(t, "Moscow", body["origin"])
	assert.Equal(t, "Saint Petersburg", body["destination"])
	assert.Equal(t, "2024-11-11T15:00:00Z", body["estimated_delivery"])
	assert.Len(t, body["events"], 4)

	timeline := body["timeline"].([]any)
	require.Len(t, timeline, 5)
	assert.Equal(t, true, timeline[3].(map[string]any)["reached"])
	assert.Equal(t, false, timeline[4].(map[string]any)["reached"])
}

func TestStatus_UnknownShipment(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/v1/shipments/CG-2024-999999/status", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "shipment not found", decode(t, rec)["error"])
}

func TestQuote(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		body   string
		code   int
		price  float64
		quoted bool
	}{
		{"express", `{"weight_kg":10,"service_tier":"express"}`, http.StatusOK, 1000, true},
		{"incomplete", `{}`, http.StatusOK, 0, false},
		{"zero weight", `{"weight_kg":0,"service_tier":"standard"}`, http.StatusOK, 0, false},
		{"negative weight", `{"weight_kg":-1,"service_tier":"standard"}`, http.StatusBadRequest, 0, false},
		{"unknown tier", `{"weight_kg":1,"service_tier":"overnight"}`, http.StatusBadRequest, 0, false},
		{"malformed", `{"weight_kg":`, http.StatusBadRequest, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/v1/quotes", tc.body)
			require.Equal(t, tc.code, rec.Code, rec.Body.String())
			if tc.code != http.StatusOK {
				assert.NotEmpty(t, decode(t, rec)["error"])
				return
			}
			body := decode(t, rec)
			assert.Equal(t, tc.price, body["price"])
			assert.Equal(t, tc.quoted, body["quoted"])
		})
	}
}

func trackingNumbers(t *testing.T, body map[string]any) []string {
	t.Helper()
	var ids []string
	for _, item := range body["data"].([]any) {
		ids = append(ids, item.(map[string]any)["tracking_number"].(string))
	}
	return ids
}

func TestList_Views(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/v1/shipments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "active", body["view"])
	assert.Equal(t, []string{"CG-2024-001234", "CG-2024-000998"}, trackingNumbers(t, body))

	rec = f.do(http.MethodGet, "/v1/shipments?view=history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"CG-2024-001122"}, trackingNumbers(t, decode(t, rec)))

	rec = f.do(http.MethodGet, "/v1/shipments?view=archived", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBook_CreatesAndReplays(t *testing.T) {
	f := newFixture(t)
	body := `{"origin":"Moscow","destination":"Kazan","weight_kg":10,"service_tier":"express"}`

	rec := f.do(http.MethodPost, "/v1/shipments", body, "Idempotency-Key", "req-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "received", created["stage"])
	assert.EqualValues(t, 1000, created["declared_cost"])
	id := created["tracking_number"].(string)
	assert.Regexp(t, `^CG-\d{4}-\d{6}$`, id)

	rec = f.do(http.MethodPost, "/v1/shipments", body, "Idempotency-Key", "req-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode(t, rec)["tracking_number"])

	rec = f.do(http.MethodGet, "/v1/shipments/"+id+"/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["progress_percent"])
}

func TestBook_RejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{
		`{"destination":"Kazan","weight_kg":10,"service_tier":"express"}`,
		`{"origin":"Moscow","destination":"Kazan","weight_kg":-3,"service_tier":"express"}`,
		`{"origin":"Moscow","destination":"Kazan","weight_kg":3,"service_tier":"overnight"}`,
		`not json`,
	} {
		rec := f.do(http.MethodPost, "/v1/shipments", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestEvents_AppliedThroughDispatcher(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/v1/events",
		`{"tracking_number":"CG-2024-001234","stage":"delivered","location":"Saint Petersburg","timestamp":"2024-11-11T14:10:00Z","source":"driver_app"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	require.Empty(t, f.dispatcher.errs)

	rec = f.do(http.MethodGet, "/v1/shipments/CG-2024-001234/status", "")
	body := decode(t, rec)
	assert.Equal(t, "delivered", body["stage"])
	assert.EqualValues(t, 100, body["progress_percent"])

	rec = f.do(http.MethodGet, "/v1/shipments?view=history", "")
	assert.Contains(t, trackingNumbers(t, decode(t, rec)), "CG-2024-001234")
}

func TestEvents_Rejections(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/v1/events",
		`{"tracking_number":"CG-2024-001234","stage":"lost","timestamp":"2024-11-11T14:10:00Z","source":"driver_app"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/v1/events", `{"tracking_number":"CG-2024-001234","stage":"delivered"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(http.MethodPost, "/v1/events/batch", `[]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/v1/events",
		`{"tracking_number":"CG-2024-001234","stage":"delivered","timestamp":"2024-11-11T14:10:00Z","source":"`+strings.Repeat("s", 65)+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(http.MethodPost, "/v1/events/batch",
		`[{"tracking_number":"CG-2024-000998","stage":"delivering","timestamp":"2024-11-10T08:00:00Z","source":"x"},{"tracking_number":"CG-2024-000998","source":"x"}]`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "event[1]")
}

func TestEvents_BatchPreservesOrder(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/v1/events/batch", `[
		{"tracking_number":"CG-2024-000998","stage":"delivering","location":"Moscow","timestamp":"2024-11-12T08:00:00Z","source":"driver_app"},
		{"tracking_number":"CG-2024-000998","stage":"delivered","location":"Moscow","timestamp":"2024-11-12T12:00:00Z","source":"driver_app"}
	]`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["count"])
	require.Empty(t, f.dispatcher.errs)

	rec = f.do(http.MethodGet, "/v1/shipments/CG-2024-000998/status", "")
	assert.Equal(t, "delivered", decode(t, rec)["stage"])
}

func TestHealth(t *testing.T) {
	ok := handler.DependencyCheck{Name: "registry", Pinger: pingFunc(func(context.Context) error { return nil })}
	down := handler.DependencyCheck{Name: "redis", Pinger: pingFunc(func(context.Context) error { return errors.New("connection refused") })}

	f := newFixture(t, ok)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health/ready", "").Code)

	f = newFixture(t, ok, down)
	rec := f.do(http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "unhealthy", deps["redis"].(map[string]any)["status"])
	assert.Equal(t, "ok", deps["registry"].(map[string]any)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
