package cli

import (
	"fmt"
	"time"

	"booking_service/internal/models"
	"booking_service/internal/services/views"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func bookHotelCmd(a *App) *cobra.Command {
	var checkIn, checkOut, roomID string
	var rooms int

	cmd := &cobra.Command{
		Use:   "book-hotel <hotel-id>",
		Short: "Book rooms in a hotel",
		Args:  exactArgs(1, "<hotel-id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireUser()
			if err != nil {
				return err
			}

			in, err := time.Parse(dateLayout, checkIn)
			if err != nil {
				return fmt.Errorf("--check-in: %w", err)
			}
			out, err := time.Parse(dateLayout, checkOut)
			if err != nil {
				return fmt.Errorf("--check-out: %w", err)
			}
			if !out.After(in) {
				return fmt.Errorf("check-out must be after check-in")
			}
			if rooms < 1 {
				return fmt.Errorf("--rooms must be at least 1")
			}

			hotel, err := a.facade.Hotel(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			booking := models.HotelBooking{
				ID:            "booking-" + uuid.NewString(),
				UserID:        user.ID,
				HotelID:       hotel.ID,
				RoomID:        roomID,
				CheckInDate:   checkIn,
				CheckOutDate:  checkOut,
				NumberOfRooms: rooms,
				TotalPrice:    views.HotelTotal(hotel.PricePerNight, rooms),
				Status:        models.StatusConfirmed,
				CreatedAt:     time.Now().UTC(),
			}

			if err := a.session.AddHotelBooking(cmd.Context(), booking); err != nil {
				return fmt.Errorf("failed to add booking: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s: %d room(s), %s to %s, total %s. Booking id %s.\n",
				hotel.Name, rooms, checkIn, checkOut, money(booking.TotalPrice), booking.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in date, YYYY-MM-DD")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out date, YYYY-MM-DD")
	cmd.Flags().StringVar(&roomID, "room", "standard", "room type")
	cmd.Flags().IntVar(&rooms, "rooms", 1, "number of rooms")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")

	return cmd
}

func bookRestaurantCmd(a *App) *cobra.Command {
	var date, at, requests string
	var people int

	cmd := &cobra.Command{
		Use:   "book-restaurant <restaurant-id>",
		Short: "Reserve a table",
		Args:  exactArgs(1, "<restaurant-id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireUser()
			if err != nil {
				return err
			}

			if _, err := time.Parse(dateLayout, date); err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			if _, err := time.Parse("15:04", at); err != nil {
				return fmt.Errorf("--time: %w", err)
			}
			if people < 1 {
				return fmt.Errorf("--people must be at least 1")
			}

			restaurant, err := a.facade.Restaurant(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			booking := models.RestaurantBooking{
				ID:              "booking-" + uuid.NewString(),
				UserID:          user.ID,
				RestaurantID:    restaurant.ID,
				Date:            date,
				Time:            at,
				NumberOfPeople:  people,
				SpecialRequests: requests,
				Status:          models.StatusConfirmed,
				CreatedAt:       time.Now().UTC(),
			}

			if err := a.session.AddRestaurantBooking(cmd.Context(), booking); err != nil {
				return fmt.Errorf("failed to add booking: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Table for %d at %s on %s %s. Booking id %s.\n",
				people, restaurant.Name, date, at, booking.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&at, "time", "", "time, HH:MM")
	cmd.Flags().IntVar(&people, "people", 2, "party size")
	cmd.Flags().StringVar(&requests, "requests", "", "special requests")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func cancelCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <hotel|restaurant> <booking-id>",
		Short: "Cancel a booking",
		Args:  exactArgs(2, "<hotel|restaurant> <booking-id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireUser(); err != nil {
				return err
			}

			var err error

			switch models.BookingType(args[0]) {
			case models.BookingHotel:
				err = a.session.CancelHotelBooking(cmd.Context(), args[1])
			case models.BookingRestaurant:
				err = a.session.CancelRestaurantBooking(cmd.Context(), args[1])
			default:
				return fmt.Errorf("unknown booking type %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to cancel booking: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Booking %s cancelled.\n", args[1])

			return nil
		},
	}
}

func reviewCmd(a *App) *cobra.Command {
	var rating int
	var comment string

	cmd := &cobra.Command{
		Use:   "review <hotel|restaurant> <id>",
		Short: "Leave a review",
		Args:  exactArgs(2, "<hotel|restaurant> <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireUser()
			if err != nil {
				return err
			}

			if rating < 1 || rating > 5 {
				return fmt.Errorf("--rating must be between 1 and 5")
			}

			review := models.Review{
				ID:        "review-" + uuid.NewString(),
				UserID:    user.ID,
				UserName:  user.Name,
				Rating:    rating,
				Comment:   comment,
				CreatedAt: time.Now().UTC(),
			}

			switch models.BookingType(args[0]) {
			case models.BookingHotel:
				review.HotelID = args[1]
			case models.BookingRestaurant:
				review.RestaurantID = args[1]
			default:
				return fmt.Errorf("unknown review target %q", args[0])
			}

			if err := a.session.AddReview(cmd.Context(), review); err != nil {
				return fmt.Errorf("failed to add review: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Thanks for your review!")

			return nil
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 5, "rating from 1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "review text")
	_ = cmd.MarkFlagRequired("comment")

	return cmd
}

func dashboardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your bookings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.requireUser()
			if err != nil {
				return err
			}

			if err := a.session.Sync(cmd.Context()); err != nil {
				return err
			}

			st := a.session.State()

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), views.Dashboard{
					User:               user,
					HotelBookings:      st.HotelBookings,
					RestaurantBookings: st.RestaurantBookings,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", user.Name)
			renderHotelBookings(cmd.OutOrStdout(), "Hotel bookings", st.HotelBookings)
			renderRestaurantBookings(cmd.OutOrStdout(), "Restaurant bookings", st.RestaurantBookings)

			return nil
		},
	}
}
