// Package api is the HTTP client of the booking service. Client implements
// facade.Store, so the same façade runs on both sides of the wire.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/models"
	"booking_service/internal/services/views"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUserCreate   = errors.New("users are created through Register")
)

// StatusError carries the server's error envelope.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithToken sets the bearer token sent on every request.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

func (c *Client) Token() string {
	return c.token
}

type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	const op = "api.Login"

	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &out); err != nil {
		return AuthResult{}, fmt.Errorf("%s: %w", op, err)
	}

	c.token = out.Token

	return out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	const op = "api.Register"

	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &out); err != nil {
		return AuthResult{}, fmt.Errorf("%s: %w", op, err)
	}

	c.token = out.Token

	return out, nil
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &out); err != nil {
		return models.User{}, fmt.Errorf("api.Me: %w", err)
	}

	return out, nil
}

func (c *Client) AdminStats(ctx context.Context) (AdminStats, error) {
	var out AdminStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &out); err != nil {
		return AdminStats{}, fmt.Errorf("api.AdminStats: %w", err)
	}

	return out, nil
}

type AdminStats struct {
	Stats              views.AdminStats           `json:"stats"`
	HotelBookings      []models.HotelBooking      `json:"hotelBookings"`
	RestaurantBookings []models.RestaurantBooking `json:"restaurantBookings"`
}

func (c *Client) Hotels(ctx context.Context) ([]models.Hotel, error) {
	var out []models.Hotel
	if err := c.do(ctx, http.MethodGet, "/api/data/hotels", nil, &out); err != nil {
		return nil, fmt.Errorf("api.Hotels: %w", err)
	}

	return out, nil
}

func (c *Client) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	if err := c.do(ctx, http.MethodGet, "/api/data/restaurants", nil, &out); err != nil {
		return nil, fmt.Errorf("api.Restaurants: %w", err)
	}

	return out, nil
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/api/data/users", nil, &out); err != nil {
		return nil, fmt.Errorf("api.Users: %w", err)
	}

	return out, nil
}

func (c *Client) Bookings(ctx context.Context) (models.Bookings, error) {
	var out models.Bookings
	if err := c.do(ctx, http.MethodGet, "/api/data/bookings", nil, &out); err != nil {
		return models.Bookings{}, fmt.Errorf("api.Bookings: %w", err)
	}

	return out, nil
}

func (c *Client) Reviews(ctx context.Context) ([]models.Review, error) {
	var out []models.Review
	if err := c.do(ctx, http.MethodGet, "/api/data/reviews", nil, &out); err != nil {
		return nil, fmt.Errorf("api.Reviews: %w", err)
	}

	return out, nil
}

// SaveUser is not available over the wire: the user record carries no password.
func (c *Client) SaveUser(_ context.Context, _ models.User) error {
	return ErrUserCreate
}

// UpdateUser edits the profile of the token's owner.
func (c *Client) UpdateUser(ctx context.Context, user models.User) error {
	body := map[string]string{"name": user.Name, "phone": user.Phone}
	if err := c.do(ctx, http.MethodPatch, "/api/me", body, nil); err != nil {
		return fmt.Errorf("api.UpdateUser: %w", err)
	}

	return nil
}

type bookingRequest struct {
	Type    models.BookingType `json:"type"`
	Booking any                `json:"booking"`
}

func (c *Client) SaveHotelBooking(ctx context.Context, b models.HotelBooking) error {
	if err := c.do(ctx, http.MethodPost, "/api/data/bookings", bookingRequest{Type: models.BookingHotel, Booking: b}, nil); err != nil {
		return fmt.Errorf("api.SaveHotelBooking: %w", err)
	}

	return nil
}

func (c *Client) SaveRestaurantBooking(ctx context.Context, b models.RestaurantBooking) error {
	if err := c.do(ctx, http.MethodPost, "/api/data/bookings", bookingRequest{Type: models.BookingRestaurant, Booking: b}, nil); err != nil {
		return fmt.Errorf("api.SaveRestaurantBooking: %w", err)
	}

	return nil
}

// CancelBooking always reports a change: the endpoint acknowledges unknown ids too.
func (c *Client) CancelBooking(ctx context.Context, kind models.BookingType, id string) (bool, error) {
	body := map[string]string{"type": string(kind), "bookingId": id}
	if err := c.do(ctx, http.MethodDelete, "/api/data/bookings", body, nil); err != nil {
		return false, fmt.Errorf("api.CancelBooking: %w", err)
	}

	return true, nil
}

func (c *Client) SaveReview(ctx context.Context, r models.Review) error {
	if err := c.do(ctx, http.MethodPost, "/api/data/reviews", r, nil); err != nil {
		return fmt.Errorf("api.SaveReview: %w", err)
	}

	return nil
}

func (c *Client) Quote(ctx context.Context, hotelID string, rooms int) (float64, error) {
	var out struct {
		Total float64 `json:"total"`
	}

	path := fmt.Sprintf("/api/hotels/%s/quote?rooms=%d", url.PathEscape(hotelID), rooms)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return 0, fmt.Errorf("api.Quote: %w", err)
	}

	return out.Total, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	return json.NewDecoder(res.Body).Decode(out)
}

func decodeError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))

	var envelope resp.Response
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return &StatusError{Code: res.StatusCode, Message: envelope.Error}
	}

	return &StatusError{Code: res.StatusCode, Message: strings.TrimSpace(string(raw))}
}
