package savebooking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booking_service/internal/lib/fixturetest"
	"booking_service/internal/lib/logger/handlers/slogdiscard"
	"booking_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBooking(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{
			name: "hotel",
			body: `{"type":"hotel","booking":{"userId":"user-1","hotelId":"hotel-2","checkInDate":"2024-03-15","checkOutDate":"2024-03-18","numberOfRooms":2,"totalPrice":1494}}`,
			code: http.StatusCreated,
		},
		{
			name: "restaurant",
			body: `{"type":"restaurant","booking":{"userId":"user-1","restaurantId":"rest-1","date":"2024-03-15","time":"19:00","numberOfPeople":4}}`,
			code: http.StatusCreated,
		},
		{name: "malformed json", body: `{"type":`, code: http.StatusBadRequest},
		{name: "unknown type", body: `{"type":"spa","booking":{}}`, code: http.StatusBadRequest},
		{name: "missing booking", body: `{"type":"hotel"}`, code: http.StatusBadRequest},
		{
			name: "zero rooms",
			body: `{"type":"hotel","booking":{"userId":"user-1","hotelId":"hotel-2","checkInDate":"a","checkOutDate":"b","numberOfRooms":0}}`,
			code: http.StatusBadRequest,
		},
		{
			name: "booking of wrong shape",
			body: `{"type":"restaurant","booking":[1,2,3]}`,
			code: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := fixturetest.New(t)
			handler := New(slogdiscard.NewDiscardLogger(), env.Booking)

			req := httptest.NewRequest(http.MethodPost, "/api/data/bookings", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.code, rr.Code, rr.Body.String())

			if tc.code != http.StatusCreated {
				assert.Contains(t, rr.Body.String(), `"status":"Error"`)
				return
			}

			var got struct {
				ID     string               `json:"id"`
				Status models.BookingStatus `json:"status"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.True(t, strings.HasPrefix(got.ID, "booking-"))
			assert.Equal(t, models.StatusConfirmed, got.Status)

			bookings, err := env.Facade.AllBookings(t.Context())
			require.NoError(t, err)
			assert.Equal(t, 1, len(bookings.HotelBookings)+len(bookings.RestaurantBookings))
		})
	}
}
