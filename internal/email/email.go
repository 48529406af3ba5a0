package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/kafka"
	"github.com/sirupsen/logrus"
)

type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log}
}

// Send delivers a notification for a reservation event. Delivery is a log
// line until a mail transport is configured.
func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	subject, err := Subject(event)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"event_id":       event.ID,
		"to":             event.Email,
		"reservation_id": event.ReservationID,
	}).Info(subject)
	return nil
}

func Subject(event kafka.ReservationEvent) (string, error) {
	switch event.Type {
	case kafka.EventReservationBooked:
		return fmt.Sprintf("Your %s flight %s -> %s on %s is booked, seat %s",
			event.Airline, event.DepartureAirport, event.ArrivalAirport,
			event.DepartureDate.Format(domain.DateLayout), event.SeatNumber), nil
	case kafka.EventReservationCanceled:
		return fmt.Sprintf("Your reservation %d (%s -> %s) was canceled",
			event.ReservationID, event.DepartureAirport, event.ArrivalAirport), nil
	default:
		return "", fmt.Errorf("unknown event type %q", event.Type)
	}
}
