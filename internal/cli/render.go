package cli

import (
	"fmt"
	"io"
	"strings"

	"booking_service/internal/models"
	"booking_service/internal/services/views"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}

	return t
}

func renderHotels(w io.Writer, title string, hotels []models.Hotel) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"ID", "Name", "Location", "Rating", "Reviews", "Price/night"})
	for _, h := range hotels {
		t.AppendRow(table.Row{h.ID, h.Name, h.Location, h.Rating, h.ReviewCount, money(h.PricePerNight)})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(hotels)})
	t.Render()
}

func renderRestaurants(w io.Writer, title string, restaurants []models.Restaurant) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"ID", "Name", "Cuisine", "Location", "Rating", "Price", "Hours"})
	for _, r := range restaurants {
		t.AppendRow(table.Row{r.ID, r.Name, r.Cuisine, r.Location, r.Rating, r.PriceRange, r.WorkingHours})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(restaurants)})
	t.Render()
}

func renderHotel(w io.Writer, h models.Hotel, reviews []models.Review) {
	t := newTable(w, h.Name)
	t.AppendRows([]table.Row{
		{"ID", h.ID},
		{"Location", h.Location},
		{"Rating", fmt.Sprintf("%.1f (%d reviews)", h.Rating, h.ReviewCount)},
		{"Price/night", money(h.PricePerNight)},
		{fmt.Sprintf("%d nights, 1 room", views.DefaultNights), money(views.HotelTotal(h.PricePerNight, 1))},
		{"Amenities", strings.Join(h.Amenities, ", ")},
		{"About", h.Description},
	})
	t.Render()

	renderReviews(w, reviews)
}

func renderRestaurant(w io.Writer, r models.Restaurant, reviews []models.Review) {
	t := newTable(w, r.Name)
	t.AppendRows([]table.Row{
		{"ID", r.ID},
		{"Cuisine", r.Cuisine},
		{"Location", r.Location},
		{"Rating", fmt.Sprintf("%.1f (%d reviews)", r.Rating, r.ReviewCount)},
		{"Price range", r.PriceRange},
		{"Hours", r.WorkingHours},
		{"About", r.Description},
	})
	t.Render()

	renderReviews(w, reviews)
}

func renderReviews(w io.Writer, reviews []models.Review) {
	summary := views.Summary(reviews)

	if summary.Count == 0 {
		fmt.Fprintln(w, "No reviews yet.")
		return
	}

	t := newTable(w, fmt.Sprintf("Reviews: %.1f / 5 based on %d reviews", summary.Average, summary.Count))
	t.AppendHeader(table.Row{"Author", "Rating", "Comment", "Date"})
	for _, r := range reviews {
		t.AppendRow(table.Row{r.UserName, strings.Repeat("*", r.Rating), r.Comment, r.CreatedAt.Format("2006-01-02")})
	}
	t.Render()
}

func renderHotelBookings(w io.Writer, title string, bookings []models.HotelBooking) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"ID", "User", "Hotel", "Check-in", "Check-out", "Rooms", "Total", "Status"})
	for _, b := range bookings {
		t.AppendRow(table.Row{b.ID, b.UserID, b.HotelID, b.CheckInDate, b.CheckOutDate, b.NumberOfRooms, money(b.TotalPrice), b.Status})
	}
	if len(bookings) == 0 {
		t.AppendRow(table.Row{"no hotel bookings"})
	}
	t.Render()
}

func renderRestaurantBookings(w io.Writer, title string, bookings []models.RestaurantBooking) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"ID", "User", "Restaurant", "Date", "Time", "Guests", "Requests", "Status"})
	for _, b := range bookings {
		t.AppendRow(table.Row{b.ID, b.UserID, b.RestaurantID, b.Date, b.Time, b.NumberOfPeople, b.SpecialRequests, b.Status})
	}
	if len(bookings) == 0 {
		t.AppendRow(table.Row{"no restaurant bookings"})
	}
	t.Render()
}

func renderUser(w io.Writer, u models.User) {
	role := "customer"
	if u.IsAdmin {
		role = "admin"
	}

	t := newTable(w, "Profile")
	t.AppendRows([]table.Row{
		{"ID", u.ID},
		{"Name", u.Name},
		{"Email", u.Email},
		{"Phone", u.Phone},
		{"Role", role},
		{"Member since", u.CreatedAt.Format("2006-01-02")},
	})
	t.Render()
}

func renderStats(w io.Writer, s views.AdminStats) {
	t := newTable(w, "Admin dashboard")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Hotel bookings", fmt.Sprintf("%d (%d confirmed)", s.HotelBookings, s.ConfirmedHotelBookings)},
		{"Restaurant bookings", fmt.Sprintf("%d (%d confirmed)", s.RestaurantBookings, s.ConfirmedRestaurantBookings)},
		{"Hotel revenue", money(s.HotelRevenue)},
		{"Registered users", s.RegisteredUsers},
		{"Customers with bookings", s.Customers},
	})
	t.Render()
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
