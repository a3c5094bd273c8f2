package emailsender

import (
	"fmt"
	"strings"

	"booking_service/internal/models"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (m *Mailer) Send(to, subject, body string) error {
	return m.dialer().DialAndSend(m.NewMessage(to, subject, body))
}

func (m *Mailer) NewMessage(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Username)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)

	msg.SetBody("text/plain", body)

	return msg
}

func (m *Mailer) dialer() *gomail.Dialer {
	return gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
}

// CreateMessage renders the administrator notification for a booking event.
func (m *Mailer) CreateMessage(event models.BookingEvent) (string, string) {
	var subject, messageText string

	formattedTime := event.OccurredAt.Format("02-01-2006 15:04:05")

	kind := "Hotel"
	if event.Type == models.BookingRestaurant {
		kind = "Restaurant"
	}

	switch event.Event {
	case models.EventBookingCancelled:
		subject = fmt.Sprintf("%s booking cancelled", kind)

		messageText = fmt.Sprintf("Booking %s was cancelled at %s.", event.BookingID, formattedTime)
	default:
		subject = fmt.Sprintf("New %s booking", strings.ToLower(kind))

		messageText = fmt.Sprintf("New booking %s for %s by user %s at %s.",
			event.BookingID, event.TargetID, event.UserID, formattedTime)
	}

	if event.Summary != "" {
		messageText += "\n" + event.Summary
	}

	return subject, messageText
}
