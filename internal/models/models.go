package models

import "time"

type ContextKey string

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type BookingType string

const (
	BookingHotel      BookingType = "hotel"
	BookingRestaurant BookingType = "restaurant"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	IsAdmin   bool      `json:"isAdmin"`
}

type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviews"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	PricePerNight float64  `json:"pricePerNight"`
}

type Restaurant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"reviews"`
	Image        string  `json:"image"`
	Cuisine      string  `json:"cuisine"`
	PriceRange   string  `json:"priceRange"`
	Description  string  `json:"description"`
	WorkingHours string  `json:"workingHours"`
}

type HotelBooking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId" validate:"required"`
	HotelID       string        `json:"hotelId" validate:"required"`
	RoomID        string        `json:"roomId"`
	CheckInDate   string        `json:"checkInDate" validate:"required"`
	CheckOutDate  string        `json:"checkOutDate" validate:"required"`
	NumberOfRooms int           `json:"numberOfRooms" validate:"min=1"`
	TotalPrice    float64       `json:"totalPrice" validate:"min=0"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type RestaurantBooking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId" validate:"required"`
	RestaurantID    string        `json:"restaurantId" validate:"required"`
	Date            string        `json:"date" validate:"required"`
	Time            string        `json:"time" validate:"required"`
	NumberOfPeople  int           `json:"numberOfPeople" validate:"min=1"`
	SpecialRequests string        `json:"specialRequests"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId" validate:"required"`
	UserName     string    `json:"userName"`
	HotelID      string    `json:"hotelId,omitempty"`
	RestaurantID string    `json:"restaurantId,omitempty"`
	Rating       int       `json:"rating" validate:"min=1,max=5"`
	Comment      string    `json:"comment" validate:"required"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Bookings is the wire shape of GET /api/data/bookings.
type Bookings struct {
	HotelBookings      []HotelBooking      `json:"hotelBookings"`
	RestaurantBookings []RestaurantBooking `json:"restaurantBookings"`
}

// Snapshot is the merged view of every collection held by the record store.
type Snapshot struct {
	Hotels             []Hotel             `json:"hotels"`
	Restaurants        []Restaurant        `json:"restaurants"`
	Users              []User              `json:"users"`
	HotelBookings      []HotelBooking      `json:"hotelBookings"`
	RestaurantBookings []RestaurantBooking `json:"restaurantBookings"`
	Reviews            []Review            `json:"reviews"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published to the notifications queue.
type BookingEvent struct {
	Event      string      `json:"event"`
	Type       BookingType `json:"type"`
	BookingID  string      `json:"bookingId"`
	UserID     string      `json:"userId,omitempty"`
	TargetID   string      `json:"targetId,omitempty"`
	Summary    string      `json:"summary,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}
