package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"booking_service/internal/lib/jwt"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPhone = "+1234567890"

	// idAttempts bounds the suffixed retries after a generated id clash.
	idAttempts = 5
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

type UserSaver interface {
	AddUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, user models.User) error
}

type UserProvider interface {
	User(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id string) (models.User, error)
}

type Auth struct {
	log         *slog.Logger
	usrSaver    UserSaver
	usrProvider UserProvider
	secret      string
	tokenTTL    time.Duration
	hashCost    int
	now         func() time.Time
}

// * New returns a new instance of the Auth service
func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	secret string,
	tokenTTL time.Duration,
) *Auth {
	return &Auth{
		log:         log,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		secret:      secret,
		tokenTTL:    tokenTTL,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
	}
}

// WithHashCost overrides the bcrypt cost, tests use bcrypt.MinCost.
func (a *Auth) WithHashCost(cost int) *Auth {
	a.hashCost = cost
	return a
}

// * Login checks if user with given credentials exists in the system.
// * Unknown email and wrong password are reported the same way.
func (a *Auth) Login(ctx context.Context, email string, password string) (models.User, string, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Info("attempting to login user")

	user, err := a.usrProvider.User(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")

			return models.User{}, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Error("failed to get user", sl.Err(err))

		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return models.User{}, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(user, a.secret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully", slog.String("uid", user.ID))

	return user, token, nil
}

// * RegisterNewUser registers new user and logs them in.
// * An email that is already present is rejected before anything is written.
func (a *Auth) RegisterNewUser(ctx context.Context, name, email, password string) (models.User, string, error) {
	const op = "auth.RegisterNewUser"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Info("registering new user")

	_, err := a.usrProvider.User(ctx, email)
	if err == nil {
		log.Warn("user already exists")

		return models.User{}, "", fmt.Errorf("%s: %w", op, ErrUserExists)
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		log.Error("failed to look up user", sl.Err(err))

		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.NewUser(name, email, password, "", false)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err = a.SaveNew(ctx, user)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			log.Warn("user already exists")
		}

		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := jwt.NewToken(user, a.secret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("uid", user.ID))

	return user, token, nil
}

// NewUser builds a user record with a timestamp-derived id and a hashed password.
func (a *Auth) NewUser(name, email, password, phone string, isAdmin bool) (models.User, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if err != nil {
		return models.User{}, err
	}

	if phone == "" {
		phone = defaultPhone
	}

	now := a.now()

	return models.User{
		ID:        fmt.Sprintf("user-%d", now.UnixMilli()),
		Email:     strings.TrimSpace(email),
		PassHash:  passHash,
		Name:      name,
		Phone:     phone,
		CreatedAt: now.UTC(),
		IsAdmin:   isAdmin,
	}, nil
}

// Save stores a prepared user. A taken email or id is reported as ErrUserExists.
func (a *Auth) Save(ctx context.Context, user models.User) error {
	const op = "auth.Save"

	if err := a.usrSaver.AddUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) || errors.Is(err, storage.ErrUserIDExists) {
			return fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		a.log.Error("failed to save user", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SaveNew stores a user built by NewUser. When another user got the same
// millisecond id, the id is suffixed (user-<millis>-1, -2, ...) and the insert retried.
func (a *Auth) SaveNew(ctx context.Context, user models.User) (models.User, error) {
	const op = "auth.SaveNew"

	base := user.ID

	for attempt := 1; ; attempt++ {
		err := a.usrSaver.AddUser(ctx, user)
		switch {
		case err == nil:
			return user, nil
		case errors.Is(err, storage.ErrUserExists):
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserExists)
		case errors.Is(err, storage.ErrUserIDExists) && attempt < idAttempts:
			a.log.Debug("generated user id is taken", slog.String("op", op), slog.String("uid", user.ID))

			user.ID = fmt.Sprintf("%s-%d", base, attempt)
		default:
			a.log.Error("failed to save user", slog.String("op", op), sl.Err(err))

			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}
	}
}

func (a *Auth) GetUser(ctx context.Context, userID string) (models.User, error) {
	const op = "auth.GetUser"

	user, err := a.usrProvider.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UpdateProfile changes the editable profile fields: name and phone.
func (a *Auth) UpdateProfile(ctx context.Context, userID, name, phone string) (models.User, error) {
	const op = "auth.UpdateProfile"

	user, err := a.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}

	if err := a.usrSaver.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("profile updated", slog.String("op", op), slog.String("uid", userID))

	return user, nil
}
