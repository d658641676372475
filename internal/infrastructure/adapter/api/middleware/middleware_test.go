package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainerr "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/config"
	mockcore "github.com/amirhossein-jamali/qr-rewards/mocks/port/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, requestID(c))
	})

	t.Run("Generates id", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("Keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "client-123")
		rec := serve(router, req)
		assert.Equal(t, "client-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	logger := new(mockcore.MockLogger)
	logger.On("Error", "Panic recovered in API request", mock.Anything).Return().Once()

	router := gin.New()
	router.Use(ErrorHandler(logger))
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domainerr.CodeInternalServer, body.Code)
	logger.AssertExpectations(t)
}

func TestCORS(t *testing.T) {
	t.Run("Allow all origins", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS(config.CORSConfig{AllowOrigins: []string{"*"}}))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := serve(router, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Listed origin only", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS(config.CORSConfig{AllowOrigins: []string{"https://dash.example.com"}}))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := serve(router, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://dash.example.com")
		rec = serve(router, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://dash.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

type recordedRequest struct {
	route  string
	method string
	status int
}

type fakeObserver struct {
	requests []recordedRequest
}

func (f *fakeObserver) ObserveRequest(route, method string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{route: route, method: method, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	observer := &fakeObserver{}
	router := gin.New()
	router.Use(Metrics(observer, mockcore.NewFixedTimeProvider(time.Now())))
	router.GET("/users/:userId", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, httptest.NewRequest(http.MethodGet, "/users/42", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Len(t, observer.requests, 2)
	assert.Equal(t, recordedRequest{route: "/users/:userId", method: http.MethodGet, status: http.StatusOK}, observer.requests[0])
	assert.Equal(t, unmatchedRoute, observer.requests[1].route)
	assert.Equal(t, http.StatusNotFound, observer.requests[1].status)
}

func TestTracing_ContinuesIncomingTrace(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var seen trace.SpanContext
	router := gin.New()
	router.Use(Tracing("test"))
	router.GET("/x", func(c *gin.Context) {
		seen = trace.SpanContextFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", seen.TraceID().String())
	assert.Contains(t, rec.Header().Get("traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")
}
