package notify

import (
	"log/slog"

	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/rabbitmq"
)

type Mailer interface {
	CreateMessage(event models.BookingEvent) (string, string)
	Send(to, subject, body string) error
}

// Handler turns queue messages into e-mails to the administrator.
// Malformed messages and send failures are logged and dropped.
func Handler(log *slog.Logger, m Mailer, administratorEmail string) func([]byte) {
	const op = "notify.Handler"

	log = log.With(slog.String("op", op))

	return func(msg []byte) {
		event, err := rabbitmq.Decode(msg)
		if err != nil {
			log.Error("failed to unmarshal message", sl.Err(err))
			return
		}

		subject, text := m.CreateMessage(event)

		if err := m.Send(administratorEmail, subject, text); err != nil {
			log.Error("failed to send message", slog.String("booking_id", event.BookingID), sl.Err(err))
			return
		}

		log.Info("message sent successfully", slog.String("event", event.Event), slog.String("booking_id", event.BookingID))
	}
}
