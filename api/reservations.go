package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/service/reservations"
	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	service reservations.ReservationUseCase
}

type flightRequest struct {
	DepartureDate    string `json:"departureDate"`
	ArrivalDate      string `json:"arrivalDate"`
	DepartureAirport string `json:"departureAirport"`
	ArrivalAirport   string `json:"arrivalAirport"`
	Airline          string `json:"airline"`
	TravelClass      string `json:"travelClass"`
	SeatNumber       string `json:"seatNumber"`
}

type cancelRequest struct {
	ReservationID int64 `json:"reservationId"`
}

func NewReservationHandler(service reservations.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.book)
	router.POST("/cancel", h.cancel)
	router.GET("", h.list)
}

func (h *ReservationHandler) book(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	departure, err := time.Parse(domain.DateLayout, req.DepartureDate)
	if err != nil {
		badRequest(c, "Invalid departure date")
		return
	}
	arrival, err := time.Parse(domain.DateLayout, req.ArrivalDate)
	if err != nil {
		badRequest(c, "Invalid arrival date")
		return
	}

	resp, err := h.service.BookFlight(c.Request.Context(), reservations.BookInput{
		DepartureDate:    departure,
		ArrivalDate:      arrival,
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
		Airline:          req.Airline,
		TravelClass:      req.TravelClass,
		SeatNumber:       req.SeatNumber,
	}, callerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.CancelFlight(c.Request.Context(), reservations.CancelInput{ReservationID: req.ReservationID}, callerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), callerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
