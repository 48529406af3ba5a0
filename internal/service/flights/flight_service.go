package flights

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/metrics"
	"github.com/Domenick1991/skyflow/internal/opensky"
	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the seat count attached to flights when none is configured.
const DefaultCapacity = 30

const (
	paramAirport = "airport"
	paramBegin   = "begin"
	paramEnd     = "end"
)

type FlightUseCase interface {
	FindFlight(ctx context.Context, req domain.FlightSearchRequest) ([]domain.Flight, error)
}

type Upstream interface {
	Get(ctx context.Context, endpoint opensky.Endpoint, params url.Values) ([]byte, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context, req domain.FlightSearchRequest) ([]domain.Flight, error)
	SetFlights(ctx context.Context, req domain.FlightSearchRequest, flights []domain.Flight) error
}

type FlightService struct {
	upstream Upstream
	cache    FlightCache
	capacity int
	log      logrus.FieldLogger
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithCapacity(capacity int) FlightServiceOption {
	return func(s *FlightService) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

func WithLogger(log logrus.FieldLogger) FlightServiceOption {
	return func(s *FlightService) {
		s.log = log
	}
}

func NewFlightService(upstream Upstream, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{
		upstream: upstream,
		capacity: DefaultCapacity,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// FindFlight queries departures for req and returns one Flight per upstream
// record, in upstream order. Request fields are passed through unvalidated.
func (s *FlightService) FindFlight(ctx context.Context, req domain.FlightSearchRequest) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx, req)
		switch {
		case err != nil:
			s.log.WithError(err).Warn("flight cache read failed")
		case cached != nil:
			metrics.FlightCache.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.FlightCache.WithLabelValues("miss").Inc()
		}
	}

	body, err := s.upstream.Get(ctx, opensky.EndpointDeparture, url.Values{
		paramAirport: {req.DepartureAirport},
		paramBegin:   {req.Begin},
		paramEnd:     {req.End},
	})
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, domain.IO("flight provider request failed", err)
	}

	var upstream []domain.OpenSkyFlight
	if err := json.Unmarshal(body, &upstream); err != nil {
		metrics.UpstreamRequests.WithLabelValues("bad_payload").Inc()
		return nil, domain.IO("failed to parse flight provider response", err)
	}
	metrics.UpstreamRequests.WithLabelValues("ok").Inc()

	flights := make([]domain.Flight, 0, len(upstream))
	for _, f := range upstream {
		flights = append(flights, domain.NewFlight(f, s.capacity))
	}

	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, req, flights); err != nil {
			s.log.WithError(err).Warn("flight cache write failed")
		}
	}
	return flights, nil
}

var _ FlightUseCase = (*FlightService)(nil)
