package reservations

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/skyflow/internal/auth"
	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/kafka"
	"github.com/Domenick1991/skyflow/internal/metrics"
	"github.com/Domenick1991/skyflow/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ReservationUseCase interface {
	BookFlight(ctx context.Context, input BookInput, caller auth.CallerContext) (*domain.ReservationResponse, error)
	CancelFlight(ctx context.Context, input CancelInput, caller auth.CallerContext) (*domain.ReservationResponse, error)
	List(ctx context.Context, caller auth.CallerContext) ([]domain.Reservation, error)
}

type CallerResolver interface {
	Resolve(ctx context.Context, caller auth.CallerContext) (*domain.User, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookInput struct {
	DepartureDate    time.Time
	ArrivalDate      time.Time
	DepartureAirport string
	ArrivalAirport   string
	Airline          string
	TravelClass      string
	SeatNumber       string
}

type CancelInput struct {
	ReservationID int64
}

type ReservationService struct {
	reservations       repository.ReservationRepository
	caller             CallerResolver
	producer           Producer
	reservationTopic   string
	notificationsTopic string
	log                logrus.FieldLogger
	now                func() time.Time
}

type ReservationServiceOption func(*ReservationService)

// WithEvents publishes reservation events to topic and, when set, to notificationsTopic.
func WithEvents(producer Producer, topic, notificationsTopic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.producer = producer
		s.reservationTopic = topic
		s.notificationsTopic = notificationsTopic
	}
}

func WithLogger(log logrus.FieldLogger) ReservationServiceOption {
	return func(s *ReservationService) {
		s.log = log
	}
}

func NewReservationService(
	reservations repository.ReservationRepository,
	caller CallerResolver,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		reservations: reservations,
		caller:       caller,
		log:          logrus.StandardLogger(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookFlight stores a reservation owned by the caller. Duplicate bookings are
// not detected.
func (s *ReservationService) BookFlight(ctx context.Context, input BookInput, caller auth.CallerContext) (*domain.ReservationResponse, error) {
	user, err := s.caller.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		UserID:           user.ID,
		DepartureDate:    input.DepartureDate,
		ArrivalDate:      input.ArrivalDate,
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		Airline:          input.Airline,
		TravelClass:      input.TravelClass,
		SeatNumber:       input.SeatNumber,
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrReferenceMissing) {
			return nil, domain.Forbidden("You need to be logged in")
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	metrics.Reservations.WithLabelValues("booked").Inc()
	s.log.WithFields(logrus.Fields{"reservation_id": reservation.ID, "user_id": user.ID}).Info("flight booked")
	s.publish(ctx, kafka.EventReservationBooked, reservation, user)
	return &domain.ReservationResponse{Message: "Successfully booked flight"}, nil
}

// CancelFlight deletes a reservation. Only its owner may cancel it.
func (s *ReservationService) CancelFlight(ctx context.Context, input CancelInput, caller auth.CallerContext) (*domain.ReservationResponse, error) {
	user, err := s.caller.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}

	reservation, err := s.reservations.FindByID(ctx, input.ReservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.InvalidBusinessArgument("This reservation does not exist")
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation.UserID != user.ID {
		return nil, domain.InvalidBusinessArgument("You were not booked for this flight")
	}

	if err := s.reservations.Delete(ctx, reservation.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.InvalidBusinessArgument("This reservation does not exist")
		}
		return nil, fmt.Errorf("delete reservation: %w", err)
	}

	metrics.Reservations.WithLabelValues("canceled").Inc()
	s.log.WithFields(logrus.Fields{"reservation_id": reservation.ID, "user_id": user.ID}).Info("flight canceled")
	s.publish(ctx, kafka.EventReservationCanceled, reservation, user)
	return &domain.ReservationResponse{Message: "Successfully canceled flight"}, nil
}

func (s *ReservationService) List(ctx context.Context, caller auth.CallerContext) ([]domain.Reservation, error) {
	user, err := s.caller.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	list, err := s.reservations.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return list, nil
}

// publish never fails the calling operation; delivery errors are logged.
func (s *ReservationService) publish(ctx context.Context, eventType string, r *domain.Reservation, user *domain.User) {
	if s.producer == nil || s.reservationTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		ID:               uuid.NewString(),
		Type:             eventType,
		ReservationID:    r.ID,
		UserID:           user.ID,
		Email:            user.Email,
		DepartureAirport: r.DepartureAirport,
		ArrivalAirport:   r.ArrivalAirport,
		Airline:          r.Airline,
		SeatNumber:       r.SeatNumber,
		DepartureDate:    r.DepartureDate,
		OccurredAt:       s.now(),
	}
	key := strconv.FormatInt(r.ID, 10)
	for _, topic := range []string{s.reservationTopic, s.notificationsTopic} {
		if topic == "" {
			continue
		}
		if err := s.producer.Publish(ctx, topic, key, event); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"topic": topic, "event": eventType, "reservation_id": r.ID}).
				Warn("failed to publish reservation event")
		}
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
