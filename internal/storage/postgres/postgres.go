package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking_service/internal/config"
	"booking_service/internal/models"
	"booking_service/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const usersPKey = "users_pkey"

// pool is the part of *pgxpool.Pool the repository uses.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Close()
}

type PostgresRepo struct {
	pool pool
}

// Connect создает подключение к базе данных и возвращает репозиторий.
func Connect(ctx context.Context, cfg *config.Config) (*PostgresRepo, error) {
	const op = "storage.postgres.Connect"

	poolConfig, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostgresRepo{pool: pool}, nil
}

// Seed upserts the static catalog and inserts demo users and reviews that are not present yet.
func (r *PostgresRepo) Seed(
	ctx context.Context,
	hotels []models.Hotel,
	restaurants []models.Restaurant,
	users []models.User,
	reviews []models.Review,
) error {
	const op = "storage.postgres.Seed"

	batch := &pgx.Batch{}

	for _, h := range hotels {
		batch.Queue(
			`INSERT INTO hotels (id, name, location, rating, review_count, image, description, amenities, price_per_night)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, location = EXCLUDED.location, rating = EXCLUDED.rating,
				review_count = EXCLUDED.review_count, image = EXCLUDED.image, description = EXCLUDED.description,
				amenities = EXCLUDED.amenities, price_per_night = EXCLUDED.price_per_night`,
			h.ID, h.Name, h.Location, h.Rating, h.ReviewCount, h.Image, h.Description, h.Amenities, h.PricePerNight,
		)
	}

	for _, rs := range restaurants {
		batch.Queue(
			`INSERT INTO restaurants (id, name, location, rating, review_count, image, cuisine, price_range, description, working_hours)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, location = EXCLUDED.location, rating = EXCLUDED.rating,
				review_count = EXCLUDED.review_count, image = EXCLUDED.image, cuisine = EXCLUDED.cuisine,
				price_range = EXCLUDED.price_range, description = EXCLUDED.description,
				working_hours = EXCLUDED.working_hours`,
			rs.ID, rs.Name, rs.Location, rs.Rating, rs.ReviewCount, rs.Image, rs.Cuisine, rs.PriceRange, rs.Description, rs.WorkingHours,
		)
	}

	for _, u := range users {
		batch.Queue(
			`INSERT INTO users (id, email, pass_hash, name, phone, created_at, is_admin)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT DO NOTHING`,
			u.ID, u.Email, u.PassHash, u.Name, u.Phone, u.CreatedAt, u.IsAdmin,
		)
	}

	for _, rv := range reviews {
		batch.Queue(
			`INSERT INTO reviews (id, user_id, user_name, hotel_id, restaurant_id, rating, comment, created_at)
			VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			rv.ID, rv.UserID, rv.UserName, rv.HotelID, rv.RestaurantID, rv.Rating, rv.Comment, rv.CreatedAt,
		)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PostgresRepo) Users(ctx context.Context) ([]models.User, error) {
	const op = "storage.postgres.Users"

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, email, pass_hash, name, phone, created_at, is_admin FROM users ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PassHash, &u.Name, &u.Phone, &u.CreatedAt, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func (r *PostgresRepo) User(ctx context.Context, email string) (models.User, error) {
	const op = "storage.postgres.User"

	return r.userBy(ctx, op, `WHERE lower(email) = lower($1)`, email)
}

func (r *PostgresRepo) UserByID(ctx context.Context, id string) (models.User, error) {
	const op = "storage.postgres.UserByID"

	return r.userBy(ctx, op, `WHERE id = $1`, id)
}

func (r *PostgresRepo) userBy(ctx context.Context, op, where string, arg string) (models.User, error) {
	var u models.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, email, pass_hash, name, phone, created_at, is_admin FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Email, &u.PassHash, &u.Name, &u.Phone, &u.CreatedAt, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (r *PostgresRepo) SaveUser(ctx context.Context, u models.User) error {
	const op = "storage.postgres.SaveUser"

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, email, pass_hash, name, phone, created_at, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.PassHash, u.Name, u.Phone, u.CreatedAt, u.IsAdmin,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if pgErr.ConstraintName == usersPKey {
				return fmt.Errorf("%s: %w", op, storage.ErrUserIDExists)
			}

			return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PostgresRepo) UpdateUser(ctx context.Context, u models.User) error {
	const op = "storage.postgres.UpdateUser"

	cmdTag, err := r.pool.Exec(
		ctx,
		`UPDATE users SET name = $2, phone = $3 WHERE id = $1`,
		u.ID, u.Name, u.Phone,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return nil
}

func (r *PostgresRepo) Hotels(ctx context.Context) ([]models.Hotel, error) {
	const op = "storage.postgres.Hotels"

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name, location, rating, review_count, image, description, amenities, price_per_night
		FROM hotels ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	hotels := []models.Hotel{}
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Rating, &h.ReviewCount, &h.Image, &h.Description, &h.Amenities, &h.PricePerNight); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		hotels = append(hotels, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hotels, nil
}

func (r *PostgresRepo) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	const op = "storage.postgres.Restaurants"

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name, location, rating, review_count, image, cuisine, price_range, description, working_hours
		FROM restaurants ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		var rs models.Restaurant
		if err := rows.Scan(&rs.ID, &rs.Name, &rs.Location, &rs.Rating, &rs.ReviewCount, &rs.Image, &rs.Cuisine, &rs.PriceRange, &rs.Description, &rs.WorkingHours); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		restaurants = append(restaurants, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return restaurants, nil
}

func (r *PostgresRepo) Bookings(ctx context.Context) (models.Bookings, error) {
	const op = "storage.postgres.Bookings"

	out := models.Bookings{
		HotelBookings:      []models.HotelBooking{},
		RestaurantBookings: []models.RestaurantBooking{},
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, hotel_id, room_id, check_in_date, check_out_date, number_of_rooms, total_price, status, created_at
		FROM hotel_bookings ORDER BY position`,
	)
	if err != nil {
		return models.Bookings{}, fmt.Errorf("%s: %w", op, err)
	}

	for rows.Next() {
		var b models.HotelBooking
		if err := rows.Scan(&b.ID, &b.UserID, &b.HotelID, &b.RoomID, &b.CheckInDate, &b.CheckOutDate, &b.NumberOfRooms, &b.TotalPrice, &b.Status, &b.CreatedAt); err != nil {
			rows.Close()
			return models.Bookings{}, fmt.Errorf("%s: %w", op, err)
		}
		out.HotelBookings = append(out.HotelBookings, b)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return models.Bookings{}, fmt.Errorf("%s: %w", op, err)
	}

	rows, err = r.pool.Query(
		ctx,
		`SELECT id, user_id, restaurant_id, date, time, number_of_people, special_requests, status, created_at
		FROM restaurant_bookings ORDER BY position`,
	)
	if err != nil {
		return models.Bookings{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.RestaurantBooking
		if err := rows.Scan(&b.ID, &b.UserID, &b.RestaurantID, &b.Date, &b.Time, &b.NumberOfPeople, &b.SpecialRequests, &b.Status, &b.CreatedAt); err != nil {
			return models.Bookings{}, fmt.Errorf("%s: %w", op, err)
		}
		out.RestaurantBookings = append(out.RestaurantBookings, b)
	}

	if err := rows.Err(); err != nil {
		return models.Bookings{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (r *PostgresRepo) SaveHotelBooking(ctx context.Context, b models.HotelBooking) error {
	const op = "storage.postgres.SaveHotelBooking"

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO hotel_bookings (id, user_id, hotel_id, room_id, check_in_date, check_out_date, number_of_rooms, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.UserID, b.HotelID, b.RoomID, b.CheckInDate, b.CheckOutDate, b.NumberOfRooms, b.TotalPrice, b.Status, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PostgresRepo) SaveRestaurantBooking(ctx context.Context, b models.RestaurantBooking) error {
	const op = "storage.postgres.SaveRestaurantBooking"

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO restaurant_bookings (id, user_id, restaurant_id, date, time, number_of_people, special_requests, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.UserID, b.RestaurantID, b.Date, b.Time, b.NumberOfPeople, b.SpecialRequests, b.Status, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CancelBooking soft-cancels a booking. Unknown ids and already cancelled bookings
// affect no rows and are reported as unchanged.
func (r *PostgresRepo) CancelBooking(ctx context.Context, kind models.BookingType, id string) (bool, error) {
	const op = "storage.postgres.CancelBooking"

	var table string
	switch kind {
	case models.BookingHotel:
		table = "hotel_bookings"
	case models.BookingRestaurant:
		table = "restaurant_bookings"
	default:
		return false, fmt.Errorf("%s: %w", op, storage.ErrUnknownBookingType)
	}

	cmdTag, err := r.pool.Exec(
		ctx,
		`UPDATE `+table+` SET status = $2 WHERE id = $1 AND status <> $2`,
		id,
		models.StatusCancelled,
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) Reviews(ctx context.Context) ([]models.Review, error) {
	const op = "storage.postgres.Reviews"

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, user_name, COALESCE(hotel_id, ''), COALESCE(restaurant_id, ''), rating, comment, created_at
		FROM reviews ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.HotelID, &rv.RestaurantID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, nil
}

func (r *PostgresRepo) SaveReview(ctx context.Context, rv models.Review) error {
	const op = "storage.postgres.SaveReview"

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO reviews (id, user_id, user_name, hotel_id, restaurant_id, rating, comment, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)`,
		rv.ID, rv.UserID, rv.UserName, rv.HotelID, rv.RestaurantID, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает соединение с базой данных.
func (r *PostgresRepo) Close() {
	r.pool.Close()
}

// dsn формирует конфигурацию базы данных.
func dsn(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
}
