package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"booking_service/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	//go:embed hotels.json
	hotelsJSON []byte
	//go:embed restaurants.json
	restaurantsJSON []byte
	//go:embed reviews.json
	reviewsJSON []byte
	//go:embed users.json
	usersJSON []byte
)

// Data is the static catalog plus demo accounts loaded at startup.
type Data struct {
	Hotels      []models.Hotel
	Restaurants []models.Restaurant
	Reviews     []models.Review
	Users       []models.User
}

type demoUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	IsAdmin   bool      `json:"isAdmin"`
}

// Load decodes the embedded seed. Demo passwords are hashed with the given bcrypt cost.
func Load(cost int) (Data, error) {
	const op = "storage.seed.Load"

	var data Data

	if err := json.Unmarshal(hotelsJSON, &data.Hotels); err != nil {
		return Data{}, fmt.Errorf("%s: hotels: %w", op, err)
	}
	if err := json.Unmarshal(restaurantsJSON, &data.Restaurants); err != nil {
		return Data{}, fmt.Errorf("%s: restaurants: %w", op, err)
	}
	if err := json.Unmarshal(reviewsJSON, &data.Reviews); err != nil {
		return Data{}, fmt.Errorf("%s: reviews: %w", op, err)
	}

	var users []demoUser
	if err := json.Unmarshal(usersJSON, &users); err != nil {
		return Data{}, fmt.Errorf("%s: users: %w", op, err)
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return Data{}, fmt.Errorf("%s: hash %s: %w", op, u.Email, err)
		}

		data.Users = append(data.Users, models.User{
			ID:        u.ID,
			Email:     u.Email,
			PassHash:  hash,
			Name:      u.Name,
			Phone:     u.Phone,
			CreatedAt: u.CreatedAt,
			IsAdmin:   u.IsAdmin,
		})
	}

	return data, nil
}
