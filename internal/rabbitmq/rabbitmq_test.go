package rabbitmq

import (
	"testing"
	"time"

	"booking_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	event := models.BookingEvent{
		Event:      models.EventBookingCreated,
		Type:       models.BookingHotel,
		BookingID:  "booking-1",
		UserID:     "user-1",
		TargetID:   "hotel-1",
		OccurredAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	body, err := Encode(event)
	require.NoError(t, err)

	got, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestDecode_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"not json":   "{",
		"no event":   `{"bookingId":"booking-1"}`,
		"no booking": `{"event":"booking.created"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			assert.Error(t, err)
		})
	}
}
