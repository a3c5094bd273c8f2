package cli

import (
	"fmt"

	"booking_service/internal/models"
	"booking_service/internal/services/views"

	"github.com/spf13/cobra"
)

func hotelsCmd(a *App) *cobra.Command {
	var search, price string

	cmd := &cobra.Command{
		Use:   "hotels",
		Short: "List hotels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch price {
			case views.PriceAll, views.PriceBudget, views.PriceMid, views.PriceLuxury:
			default:
				return fmt.Errorf("unknown price tier %q (all, budget, mid, luxury)", price)
			}

			hotels, err := a.facade.Hotels(cmd.Context())
			if err != nil {
				return err
			}

			hotels = views.FilterHotels(hotels, search, price)

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), hotels)
			}

			renderHotels(cmd.OutOrStdout(), "Hotels", hotels)

			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name")
	cmd.Flags().StringVar(&price, "price", views.PriceAll, "price tier: all, budget, mid, luxury")

	return cmd
}

func hotelCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hotel <id>",
		Short: "Show a hotel with its reviews",
		Args:  exactArgs(1, "<id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			hotel, err := a.facade.Hotel(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			reviews, err := a.facade.Reviews(cmd.Context(), models.BookingHotel, hotel.ID)
			if err != nil {
				return err
			}

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), map[string]any{
					"hotel":   hotel,
					"reviews": reviews,
					"summary": views.Summary(reviews),
				})
			}

			renderHotel(cmd.OutOrStdout(), hotel, reviews)

			return nil
		},
	}
}

func restaurantsCmd(a *App) *cobra.Command {
	var search, cuisine string

	cmd := &cobra.Command{
		Use:   "restaurants",
		Short: "List restaurants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			restaurants, err := a.facade.Restaurants(cmd.Context())
			if err != nil {
				return err
			}

			filtered := views.FilterRestaurants(restaurants, search, cuisine)

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), filtered)
			}

			renderRestaurants(cmd.OutOrStdout(), "Restaurants", filtered)
			fmt.Fprintf(cmd.OutOrStdout(), "Cuisines: %v\n", views.Cuisines(restaurants))

			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name")
	cmd.Flags().StringVar(&cuisine, "cuisine", views.CuisineAll, "exact cuisine or all")

	return cmd
}

func restaurantCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restaurant <id>",
		Short: "Show a restaurant with its reviews",
		Args:  exactArgs(1, "<id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			restaurant, err := a.facade.Restaurant(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			reviews, err := a.facade.Reviews(cmd.Context(), models.BookingRestaurant, restaurant.ID)
			if err != nil {
				return err
			}

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), map[string]any{
					"restaurant": restaurant,
					"reviews":    reviews,
					"summary":    views.Summary(reviews),
				})
			}

			renderRestaurant(cmd.OutOrStdout(), restaurant, reviews)

			return nil
		},
	}
}

func featuredCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Show the featured hotels and restaurants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.facade.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			featured := views.FeaturedOf(snap.Hotels, snap.Restaurants)

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), featured)
			}

			renderHotels(cmd.OutOrStdout(), "Featured hotels", featured.Hotels)
			renderRestaurants(cmd.OutOrStdout(), "Featured restaurants", featured.Restaurants)

			return nil
		},
	}
}
