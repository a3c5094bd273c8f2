package getreviews

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"booking_service/internal/lib/fixturetest"
	"booking_service/internal/lib/logger/handlers/slogdiscard"
	"booking_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReviews(t *testing.T) {
	env := fixturetest.New(t)
	handler := New(slogdiscard.NewDiscardLogger(), env.Facade)

	cases := []struct {
		query string
		want  int
	}{
		{query: "", want: 5},
		{query: "?hotelId=hotel-1", want: 1},
		{query: "?restaurantId=rest-3", want: 1},
		{query: "?hotelId=hotel-6", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/data/reviews"+tc.query, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			var got []models.Review
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Len(t, got, tc.want)
		})
	}
}
