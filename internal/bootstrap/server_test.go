package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/skyflow/internal/auth"
	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/repository"
	"github.com/Domenick1991/skyflow/internal/service/flights"
	"github.com/Domenick1991/skyflow/internal/service/reservations"
	"github.com/Domenick1991/skyflow/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubFlights struct{}

func (stubFlights) FindFlight(ctx context.Context, req domain.FlightSearchRequest) ([]domain.Flight, error) {
	return []domain.Flight{domain.NewFlight(domain.OpenSkyFlight{Icao24: "abc", EstDepartureAirport: &req.DepartureAirport}, 30)}, nil
}

var _ flights.FlightUseCase = stubFlights{}

func newTestRouter(t *testing.T) (*gin.Engine, *test.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	extractor := auth.NewExtractor(tokens, store.Users())
	log, hook := test.NewNullLogger()

	services := Services{
		Users:        users.NewUserService(store.Users(), auth.NewBcryptHasher(bcrypt.MinCost), tokens, extractor, users.WithLogger(log)),
		Reservations: reservations.NewReservationService(store.Reservations(), extractor, reservations.WithLogger(log)),
		Flights:      stubFlights{},
	}
	return NewRouter(services, log, map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
	}), hook
}

func do(router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_RegisterLoginBook(t *testing.T) {
	router, hook := newTestRouter(t)

	w := do(router, "POST", "/users/register", `{"firstName":"A","lastName":"B","email":"a@x.io","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = do(router, "POST", "/users/login", `{"email":"a@x.io","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := strings.Split(strings.Split(w.Body.String(), `"token":"`)[1], `"`)[0]

	w = do(router, "POST", "/reservations", `{"departureDate":"2025-01-10","arrivalDate":"2025-01-11","seatNumber":"1A"}`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Successfully booked flight"}`, w.Body.String())

	w = do(router, "GET", "/reservations", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seatNumber":"1A"`)

	w = do(router, "GET", "/users/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@x.io"`)

	w = do(router, "POST", "/users/login", `{"email":"a@x.io","password":"pw"}`, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.NotEmpty(t, hook.AllEntries())
}

func TestRouter_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, "POST", "/reservations/cancel", `{"reservationId":1}`, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"statusCode":403,"message":"You are not authorized"}`, w.Body.String())

	w = do(router, "GET", "/users/me", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_FlightSearch(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, "POST", "/flights/search", `{"departureAirport":"EPWA","begin":"1","end":"2"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"capacity":30`)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","checks":{"postgres":"ok"}}`, w.Body.String())

	w = do(router, "GET", "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "skyflow_http_requests_total")
}

func TestHealth_FailingCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", health(map[string]HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}))

	w := do(router, "GET", "/health", "", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}
