package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booking_service/internal/lib/fixturetest"
	"booking_service/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := fixturetest.New(t)
	handler := New(slogdiscard.NewDiscardLogger(), env.Auth)

	cases := []struct {
		name string
		body string
		code int
	}{
		{name: "ok", body: `{"email":"john@example.com","password":"password123"}`, code: http.StatusOK},
		{name: "email case differs", body: `{"email":"John@Example.com","password":"password123"}`, code: http.StatusOK},
		{name: "wrong password", body: `{"email":"john@example.com","password":"password124"}`, code: http.StatusUnauthorized},
		{name: "unknown email", body: `{"email":"ghost@example.com","password":"password123"}`, code: http.StatusUnauthorized},
		{name: "missing password", body: `{"email":"john@example.com"}`, code: http.StatusBadRequest},
		{name: "malformed", body: `[`, code: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.code, rr.Code, rr.Body.String())

			if tc.code != http.StatusOK {
				return
			}

			var got Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, fixturetest.UserID, got.User.ID)
			assert.NotEmpty(t, got.Token)
		})
	}
}
