// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyflow",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})

	Reservations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyflow",
		Name:      "reservations_total",
		Help:      "Reservation state changes by action.",
	}, []string{"action"})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyflow",
		Name:      "opensky_requests_total",
		Help:      "Requests to the OpenSky API by outcome.",
	}, []string{"outcome"})

	FlightCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyflow",
		Name:      "flight_cache_lookups_total",
		Help:      "Flight search cache lookups by result.",
	}, []string{"result"})
)
