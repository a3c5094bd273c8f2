package views

import (
	"testing"

	"booking_service/internal/models"

	"github.com/stretchr/testify/assert"
)

func hotels() []models.Hotel {
	return []models.Hotel{
		{ID: "hotel-1", Name: "Grand Plaza Hotel", PricePerNight: 299},
		{ID: "hotel-2", Name: "Seaside Resort", PricePerNight: 249},
		{ID: "hotel-3", Name: "Mountain Lodge", PricePerNight: 149},
		{ID: "hotel-4", Name: "Urban Boutique Hotel", PricePerNight: 349},
		{ID: "hotel-5", Name: "Desert Oasis", PricePerNight: 150},
		{ID: "hotel-6", Name: "Budget Inn", PricePerNight: 250},
	}
}

func TestFilterHotels(t *testing.T) {
	cases := []struct {
		name   string
		search string
		tier   string
		want   []string
	}{
		{name: "all", tier: PriceAll, want: []string{"hotel-1", "hotel-2", "hotel-3", "hotel-4", "hotel-5", "hotel-6"}},
		{name: "budget includes 150", tier: PriceBudget, want: []string{"hotel-3", "hotel-5"}},
		{name: "mid includes 250", tier: PriceMid, want: []string{"hotel-2", "hotel-6"}},
		{name: "luxury", tier: PriceLuxury, want: []string{"hotel-1", "hotel-4"}},
		{name: "search is case-insensitive", search: "HOTEL", tier: PriceAll, want: []string{"hotel-1", "hotel-4"}},
		{name: "search and tier", search: "hotel", tier: PriceLuxury, want: []string{"hotel-1", "hotel-4"}},
		{name: "unknown tier", tier: "cheap", want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := []string{}
			for _, h := range FilterHotels(hotels(), tc.search, tc.tier) {
				got = append(got, h.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRestaurantsAndCuisines(t *testing.T) {
	restaurants := []models.Restaurant{
		{ID: "rest-1", Name: "La Bella Italia", Cuisine: "Italian"},
		{ID: "rest-2", Name: "Sakura Sushi", Cuisine: "Japanese"},
		{ID: "rest-6", Name: "Pasta Fresca", Cuisine: "Italian"},
	}

	assert.Equal(t, []string{"all", "Italian", "Japanese"}, Cuisines(restaurants))

	assert.Len(t, FilterRestaurants(restaurants, "", "Italian"), 2)
	assert.Len(t, FilterRestaurants(restaurants, "sushi", CuisineAll), 1)
	assert.Empty(t, FilterRestaurants(restaurants, "sushi", "Italian"))
	assert.Len(t, FilterRestaurants(restaurants, "", ""), 3)
}

func TestFeaturedOf(t *testing.T) {
	f := FeaturedOf(hotels(), []models.Restaurant{{ID: "rest-1"}})
	assert.Len(t, f.Hotels, 4)
	assert.Equal(t, "hotel-1", f.Hotels[0].ID)
	assert.Len(t, f.Restaurants, 1)
}

func TestHotelTotal(t *testing.T) {
	assert.Equal(t, 897.0, HotelTotal(299, 1))
	assert.Equal(t, 1494.0, HotelTotal(249, 2))
}

func TestAverageRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{name: "empty", want: 0},
		{name: "rounds to one decimal", ratings: []int{5, 5, 4}, want: 4.7},
		{name: "exact", ratings: []int{4, 5}, want: 4.5},
		{name: "single", ratings: []int{3}, want: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reviews := make([]models.Review, 0, len(tc.ratings))
			for _, r := range tc.ratings {
				reviews = append(reviews, models.Review{Rating: r})
			}
			assert.Equal(t, tc.want, AverageRating(reviews))
			assert.Equal(t, len(tc.ratings), Summary(reviews).Count)
		})
	}
}

func TestStats(t *testing.T) {
	snap := &models.Snapshot{
		Users: []models.User{{ID: "user-1"}, {ID: "user-2"}, {ID: "admin-1"}},
		HotelBookings: []models.HotelBooking{
			{UserID: "user-1", TotalPrice: 897, Status: models.StatusConfirmed},
			{UserID: "user-2", TotalPrice: 447, Status: models.StatusCancelled},
		},
		RestaurantBookings: []models.RestaurantBooking{
			{UserID: "user-1", Status: models.StatusConfirmed},
			{UserID: "user-3", Status: models.StatusPending},
		},
	}

	assert.Equal(t, AdminStats{
		HotelBookings:               2,
		RestaurantBookings:          2,
		ConfirmedHotelBookings:      1,
		ConfirmedRestaurantBookings: 1,
		HotelRevenue:                1344,
		RegisteredUsers:             3,
		Customers:                   3,
	}, Stats(snap))
}
