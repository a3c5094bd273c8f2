package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) password(given string) (string, error) {
	if given != "" {
		return given, nil
	}

	if a.rl == nil {
		return "", errors.New("--password is required")
	}

	raw, err := a.rl.ReadPassword("password: ")
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func registerCmd(a *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := a.password(password)
			if err != nil {
				return err
			}

			res, err := a.client.Register(cmd.Context(), name, email, pw)
			if err != nil {
				return err
			}

			if err := a.session.SetCurrentUser(res.User, res.Token); err != nil {
				return err
			}
			// новый пользователь виден всем следующим чтениям
			a.facade.Invalidate(cmd.Context())

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are signed in as %s.\n", res.User.Name, res.User.Email)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 6 characters")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func loginCmd(a *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := a.password(password)
			if err != nil {
				return err
			}

			res, err := a.client.Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}

			if err := a.session.SetCurrentUser(res.User, res.Token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", res.User.Email)

			return a.session.Sync(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func logoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			a.client.WithToken("")

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")

			return nil
		},
	}
}

func whoamiCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.requireUser()
			if err != nil {
				return err
			}

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), user)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)

			return nil
		},
	}
}

func profileCmd(a *App) *cobra.Command {
	var name, phone string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := a.requireUser()
			if err != nil {
				return err
			}

			if name != "" || phone != "" {
				if name != "" {
					current.Name = name
				}
				if phone != "" {
					current.Phone = phone
				}

				if err := a.facade.UpdateUser(cmd.Context(), current); err != nil {
					return err
				}
			}

			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.session.SetCurrentUser(user, a.session.Token()); err != nil {
				return err
			}

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), user)
			}

			renderUser(cmd.OutOrStdout(), user)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone")

	return cmd
}

func adminCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Show the admin dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.requireUser()
			if err != nil {
				return err
			}
			if !user.IsAdmin {
				return errors.New("admin access required")
			}

			stats, err := a.client.AdminStats(cmd.Context())
			if err != nil {
				return err
			}

			if a.opts.JSON {
				return a.printJSON(cmd.OutOrStdout(), stats)
			}

			renderStats(cmd.OutOrStdout(), stats.Stats)
			renderHotelBookings(cmd.OutOrStdout(), "All hotel bookings", stats.HotelBookings)
			renderRestaurantBookings(cmd.OutOrStdout(), "All restaurant bookings", stats.RestaurantBookings)

			return nil
		},
	}
}
