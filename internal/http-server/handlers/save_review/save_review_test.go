package savereview

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

func TestSaveReview(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{name: "hotel review", body: `{"userId":"user-1","userName":"John Doe","hotelId":"hotel-3","rating":4,"comment":"Cozy"}`, code: http.StatusCreated},
		{name: "restaurant review", body: `{"userId":"user-1","restaurantId":"rest-2","rating":5,"comment":"Fresh"}`, code: http.StatusCreated},
		{name: "rating too high", body: `{"userId":"user-1","hotelId":"hotel-3","rating":6,"comment":"x"}`, code: http.StatusBadRequest},
		{name: "rating zero", body: `{"userId":"user-1","hotelId":"hotel-3","rating":0,"comment":"x"}`, code: http.StatusBadRequest},
		{name: "both targets", body: `{"userId":"user-1","hotelId":"hotel-3","restaurantId":"rest-2","rating":3,"comment":"x"}`, code: http.StatusBadRequest},
		{name: "no target", body: `{"userId":"user-1","rating":3,"comment":"x"}`, code: http.StatusBadRequest},
		{name: "empty comment", body: `{"userId":"user-1","hotelId":"hotel-3","rating":3}`, code: http.StatusBadRequest},
		{name: "malformed", body: `not json`, code: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := fixturetest.New(t)
			handler := New(slogdiscard.NewDiscardLogger(), env.Booking)

			req := httptest.NewRequest(http.MethodPost, "/api/data/reviews", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.code, rr.Code, rr.Body.String())

			if tc.code != http.StatusCreated {
				return
			}

			var got models.Review
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.True(t, strings.HasPrefix(got.ID, "review-"))
			assert.False(t, got.CreatedAt.IsZero())
		})
	}
}
