package views

import (
	"math"
	"strings"

	"booking_service/internal/models"
)

const (
	PriceAll    = "all"
	PriceBudget = "budget"
	PriceMid    = "mid"
	PriceLuxury = "luxury"

	CuisineAll = "all"

	// FeaturedCount is how many hotels and restaurants the landing page shows.
	FeaturedCount = 4
	// DefaultNights is the stay length used for the price estimate on the booking form.
	DefaultNights = 3
)

// PriceTier reports whether price falls into the named tier. Unknown tiers match nothing.
func PriceTier(tier string, price float64) bool {
	switch tier {
	case "", PriceAll:
		return true
	case PriceBudget:
		return price <= 150
	case PriceMid:
		return price > 150 && price <= 250
	case PriceLuxury:
		return price > 250
	default:
		return false
	}
}

func matchesName(name, search string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

func FilterHotels(hotels []models.Hotel, search, tier string) []models.Hotel {
	out := make([]models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if matchesName(h.Name, search) && PriceTier(tier, h.PricePerNight) {
			out = append(out, h)
		}
	}

	return out
}

func FilterRestaurants(restaurants []models.Restaurant, search, cuisine string) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if !matchesName(r.Name, search) {
			continue
		}
		if cuisine != "" && cuisine != CuisineAll && r.Cuisine != cuisine {
			continue
		}
		out = append(out, r)
	}

	return out
}

// Cuisines returns "all" followed by the distinct cuisines in first-seen order.
func Cuisines(restaurants []models.Restaurant) []string {
	seen := make(map[string]struct{}, len(restaurants))
	out := []string{CuisineAll}

	for _, r := range restaurants {
		if _, ok := seen[r.Cuisine]; ok {
			continue
		}
		seen[r.Cuisine] = struct{}{}
		out = append(out, r.Cuisine)
	}

	return out
}

type Featured struct {
	Hotels      []models.Hotel      `json:"hotels"`
	Restaurants []models.Restaurant `json:"restaurants"`
}

func FeaturedOf(hotels []models.Hotel, restaurants []models.Restaurant) Featured {
	return Featured{
		Hotels:      hotels[:min(FeaturedCount, len(hotels))],
		Restaurants: restaurants[:min(FeaturedCount, len(restaurants))],
	}
}

// HotelTotal is the estimate shown before booking: price per night × rooms × DefaultNights.
func HotelTotal(pricePerNight float64, rooms int) float64 {
	return pricePerNight * float64(rooms) * DefaultNights
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// AverageRating is the mean rating rounded to one decimal, 0 when there are no reviews.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}

func Summary(reviews []models.Review) RatingSummary {
	return RatingSummary{
		Average: AverageRating(reviews),
		Count:   len(reviews),
	}
}

type AdminStats struct {
	HotelBookings               int     `json:"hotelBookings"`
	RestaurantBookings          int     `json:"restaurantBookings"`
	ConfirmedHotelBookings      int     `json:"confirmedHotelBookings"`
	ConfirmedRestaurantBookings int     `json:"confirmedRestaurantBookings"`
	HotelRevenue                float64 `json:"hotelRevenue"`
	RegisteredUsers             int     `json:"registeredUsers"`
	Customers                   int     `json:"customers"`
}

// Stats aggregates the admin dashboard. Revenue sums every hotel booking, cancelled ones included.
func Stats(snap *models.Snapshot) AdminStats {
	stats := AdminStats{
		HotelBookings:      len(snap.HotelBookings),
		RestaurantBookings: len(snap.RestaurantBookings),
		RegisteredUsers:    len(snap.Users),
	}

	customers := make(map[string]struct{})

	for _, b := range snap.HotelBookings {
		if b.Status == models.StatusConfirmed {
			stats.ConfirmedHotelBookings++
		}
		stats.HotelRevenue += b.TotalPrice
		customers[b.UserID] = struct{}{}
	}

	for _, b := range snap.RestaurantBookings {
		if b.Status == models.StatusConfirmed {
			stats.ConfirmedRestaurantBookings++
		}
		customers[b.UserID] = struct{}{}
	}

	stats.Customers = len(customers)

	return stats
}

// Dashboard is what a signed-in user sees about themselves.
type Dashboard struct {
	User               models.User                `json:"user"`
	HotelBookings      []models.HotelBooking      `json:"hotelBookings"`
	RestaurantBookings []models.RestaurantBooking `json:"restaurantBookings"`
}
