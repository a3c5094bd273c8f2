package emailsender

import (
	"testing"
	"time"

	"booking_service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateMessage(t *testing.T) {
	m := &Mailer{Username: "bookings@example.com"}
	at := time.Date(2024, 3, 15, 19, 30, 0, 0, time.UTC)

	cases := []struct {
		name    string
		event   models.BookingEvent
		subject string
		body    []string
	}{
		{
			name: "hotel created",
			event: models.BookingEvent{
				Event: models.EventBookingCreated, Type: models.BookingHotel,
				BookingID: "booking-1", UserID: "user-1", TargetID: "hotel-1", OccurredAt: at,
			},
			subject: "New hotel booking",
			body:    []string{"booking-1", "hotel-1", "user-1", "15-03-2024 19:30:00"},
		},
		{
			name: "restaurant cancelled",
			event: models.BookingEvent{
				Event: models.EventBookingCancelled, Type: models.BookingRestaurant,
				BookingID: "booking-2", Summary: "2 guests", OccurredAt: at,
			},
			subject: "Restaurant booking cancelled",
			body:    []string{"booking-2", "cancelled", "2 guests"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subject, body := m.CreateMessage(tc.event)
			assert.Equal(t, tc.subject, subject)
			for _, part := range tc.body {
				assert.Contains(t, body, part)
			}
		})
	}
}

func TestNewMessage(t *testing.T) {
	m := &Mailer{Username: "bookings@example.com"}

	msg := m.NewMessage("admin@example.com", "New hotel booking", "body")

	assert.Equal(t, []string{"bookings@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"admin@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"New hotel booking"}, msg.GetHeader("Subject"))
}
