package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	adminstats "booking_service/internal/http-server/handlers/admin_stats"
	"booking_service/internal/lib/fixturetest"
	"booking_service/internal/lib/logger/handlers/slogdiscard"
	"booking_service/internal/models"
	"booking_service/internal/services/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*httptest.Server, *fixturetest.Env) {
	t.Helper()

	env := fixturetest.New(t)
	srv := httptest.NewServer(NewRouter(slogdiscard.NewDiscardLogger(), Deps{
		Facade:    env.Facade,
		Auth:      env.Auth,
		Booking:   env.Booking,
		AppSecret: fixturetest.Secret,
	}))
	t.Cleanup(srv.Close)

	return srv, env
}

func do(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	if out != nil && res.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}

	return res.StatusCode
}

func TestBookingFlow(t *testing.T) {
	srv, _ := newServer(t)

	var created models.HotelBooking
	code := do(t, http.MethodPost, srv.URL+"/api/data/bookings", "", map[string]any{
		"type": "hotel",
		"booking": map[string]any{
			"userId": "user-1", "hotelId": "hotel-1", "roomId": "room-1",
			"checkInDate": "2024-03-15", "checkOutDate": "2024-03-18",
			"numberOfRooms": 1, "totalPrice": 897,
		},
	}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, models.StatusConfirmed, created.Status)
	assert.NotEmpty(t, created.ID)

	var bookings models.Bookings
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/data/bookings?userId=user-1", "", nil, &bookings))
	require.Len(t, bookings.HotelBookings, 1)
	assert.Equal(t, created.ID, bookings.HotelBookings[0].ID)

	var ack struct {
		Success bool `json:"success"`
	}
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(t, http.MethodDelete, srv.URL+"/api/data/bookings", "",
			map[string]string{"type": "hotel", "bookingId": created.ID}, &ack))
		assert.True(t, ack.Success)
	}

	require.Equal(t, http.StatusOK, do(t, http.MethodDelete, srv.URL+"/api/data/bookings", "",
		map[string]string{"type": "hotel", "bookingId": "booking-404"}, &ack))
	assert.True(t, ack.Success)

	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/data/bookings?userId=user-1", "", nil, &bookings))
	assert.Equal(t, models.StatusCancelled, bookings.HotelBookings[0].Status)

	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodDelete, srv.URL+"/api/data/bookings", "",
		map[string]string{"type": "spa", "bookingId": created.ID}, nil))
}

func TestAuthFlow(t *testing.T) {
	srv, _ := newServer(t)

	var reg struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	code := do(t, http.MethodPost, srv.URL+"/api/auth/register", "",
		map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret1"}, &reg)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "+1234567890", reg.User.Phone)

	assert.Equal(t, http.StatusConflict, do(t, http.MethodPost, srv.URL+"/api/auth/register", "",
		map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret1"}, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodPost, srv.URL+"/api/auth/register", "",
		map[string]string{"name": "Short", "email": "short@example.com", "password": "123"}, nil))

	assert.Equal(t, http.StatusUnauthorized, do(t, http.MethodPost, srv.URL+"/api/auth/login", "",
		map[string]string{"email": "jane@example.com", "password": "wrong-one"}, nil))

	var logged struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.Equal(t, http.StatusOK, do(t, http.MethodPost, srv.URL+"/api/auth/login", "",
		map[string]string{"email": "jane@example.com", "password": "secret1"}, &logged))
	assert.Equal(t, reg.User.ID, logged.User.ID)

	var me models.User
	require.Equal(t, http.StatusOK, do(t, http.MethodPatch, srv.URL+"/api/me", logged.Token,
		map[string]string{"phone": "+15550001111"}, &me))
	assert.Equal(t, "+15550001111", me.Phone)
	assert.Equal(t, "Jane", me.Name)

	var dash views.Dashboard
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/me/bookings", logged.Token, nil, &dash))
	assert.Equal(t, reg.User.ID, dash.User.ID)
	assert.Empty(t, dash.HotelBookings)

	assert.Equal(t, http.StatusUnauthorized, do(t, http.MethodGet, srv.URL+"/api/me", "", nil, nil))
	assert.Equal(t, http.StatusForbidden, do(t, http.MethodGet, srv.URL+"/api/admin/stats", logged.Token, nil, nil))
}

func TestAdminStats(t *testing.T) {
	srv, env := newServer(t)

	token := env.Token(t, fixturetest.AdminEmail, fixturetest.AdminPassword)

	var stats adminstats.Response
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/admin/stats", token, nil, &stats))
	assert.Equal(t, 2, stats.Stats.RegisteredUsers)
	assert.Zero(t, stats.Stats.HotelBookings)
}

func TestViews(t *testing.T) {
	srv, _ := newServer(t)

	var hotels []models.Hotel
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/hotels?price=luxury", "", nil, &hotels))
	for _, h := range hotels {
		assert.Greater(t, h.PricePerNight, 250.0)
	}
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodGet, srv.URL+"/api/hotels?price=cheap", "", nil, nil))

	var cuisines []string
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/restaurants/cuisines", "", nil, &cuisines))
	assert.Equal(t, "all", cuisines[0])

	var feat views.Featured
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/featured", "", nil, &feat))
	assert.Len(t, feat.Hotels, 4)
	assert.Len(t, feat.Restaurants, 4)

	var summary views.RatingSummary
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/reviews/summary?hotelId=hotel-1", "", nil, &summary))
	assert.Equal(t, views.RatingSummary{Average: 5, Count: 1}, summary)
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodGet, srv.URL+"/api/reviews/summary", "", nil, nil))

	var quote struct {
		Total float64 `json:"total"`
	}
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/hotels/hotel-1/quote?rooms=2", "", nil, &quote))
	assert.Equal(t, 1794.0, quote.Total)

	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/api/data/hotels/hotel-404", "", nil, nil))
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/api/data/restaurants/rest-404", "", nil, nil))
}

func TestEmptyCollectionsEncodeAsArrays(t *testing.T) {
	srv, env := newServer(t)

	var bookings map[string]json.RawMessage
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/data/bookings", "", nil, &bookings))
	assert.JSONEq(t, `[]`, string(bookings["hotelBookings"]))
	assert.JSONEq(t, `[]`, string(bookings["restaurantBookings"]))

	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/data/bookings?userId="+fixturetest.UserID, "", nil, &bookings))
	assert.JSONEq(t, `[]`, string(bookings["hotelBookings"]))
	assert.JSONEq(t, `[]`, string(bookings["restaurantBookings"]))

	token := env.Token(t, fixturetest.AdminEmail, fixturetest.AdminPassword)

	var stats map[string]json.RawMessage
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/api/admin/stats", token, nil, &stats))
	assert.JSONEq(t, `[]`, string(stats["hotelBookings"]))
	assert.JSONEq(t, `[]`, string(stats["restaurantBookings"]))
}
