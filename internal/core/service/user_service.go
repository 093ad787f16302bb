package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

// UserService implements registration, login, logout and account lookups.
type UserService struct {
	users      ports.UserRepository
	addresses  ports.AddressRepository
	blacklist  ports.TokenBlacklist
	policy     ports.Policy
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	logger     zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	addresses ports.AddressRepository,
	blacklist ports.TokenBlacklist,
	policy ports.Policy,
	jwtSecret string,
	tokenTTL time.Duration,
	bcryptCost int,
	logger zerolog.Logger,
) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:      users,
		addresses:  addresses,
		blacklist:  blacklist,
		policy:     policy,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) response.Envelope[*domain.User] {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Error().Err(err).Msg("register: email lookup failed")
		return response.Internal[*domain.User]("An error occurred while creating user.")
	}
	if existing != nil {
		return response.Failure[*domain.User]("User already exists", http.StatusConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("register: password hash failed")
		return response.Internal[*domain.User]("An error occurred while creating user.")
	}

	now := time.Now().UTC()
	user := &domain.User{
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		Avatar:       in.Avatar,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return response.Failure[*domain.User]("User already exists", http.StatusConflict)
		}
		s.logger.Error().Err(err).Msg("register: insert failed")
		return response.Internal[*domain.User]("An error occurred while creating user.")
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	return response.Created("User created", created)
}

func (s *UserService) Login(ctx context.Context, in ports.LoginInput) response.Envelope[*ports.LoginResult] {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.Failure[*ports.LoginResult]("User not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Msg("login: lookup failed")
		return response.Internal[*ports.LoginResult]("An error occurred while logging in user.")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return response.Failure[*ports.LoginResult]("Invalid password", http.StatusUnauthorized)
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("login: token signing failed")
		return response.Internal[*ports.LoginResult]("An error occurred while logging in user.")
	}

	refresh := newRefreshToken()
	if err := s.users.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		s.logger.Error().Err(err).Msg("login: refresh token persist failed")
		return response.Internal[*ports.LoginResult]("An error occurred while logging in user.")
	}

	return response.OK("User logged in", &ports.LoginResult{
		ID:        user.ID,
		Name:      user.FullName(),
		Email:     user.Email,
		Token:     token,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

// Logout blacklists the presented token for exactly its remaining validity,
// so the entry evicts itself when the token would have expired anyway, and
// clears the account's persisted refresh token.
func (s *UserService) Logout(ctx context.Context, id domain.Identity, token string) response.Envelope[*struct{}] {
	ttl := s.remainingValidity(token)
	if ttl > 0 {
		if err := s.blacklist.Add(ctx, token, ttl); err != nil {
			s.logger.Error().Err(err).Msg("logout: blacklist add failed")
			return response.Internal[*struct{}]("An error occurred while logging out user.")
		}
	}
	if err := s.users.SetRefreshToken(ctx, id.UserID, nil); err != nil {
		s.logger.Error().Err(err).Msg("logout: refresh token clear failed")
		return response.Internal[*struct{}]("An error occurred while logging out user.")
	}
	return response.OK[*struct{}]("User logged out", nil)
}

func (s *UserService) FindAll(ctx context.Context, id domain.Identity) response.Envelope[[]*domain.User] {
	if !s.policy.Allow(id, domain.ActionViewUsers) {
		return response.Failure[[]*domain.User]("Unauthorized", http.StatusForbidden)
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("find all users failed")
		return response.Internal[[]*domain.User]("An error occurred while retrieving users.")
	}
	if len(users) == 0 {
		return response.Failure[[]*domain.User]("No Users found", http.StatusNotFound)
	}
	return response.OK("Users found", users)
}

func (s *UserService) FindByID(ctx context.Context, userID int64) response.Envelope[*domain.User] {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.Failure[*domain.User]("User not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("find user failed")
		return response.Internal[*domain.User]("An error occurred while finding user.")
	}
	return response.OK("User found", user)
}

func (s *UserService) AddAddress(ctx context.Context, id domain.Identity, in ports.AddressInput) response.Envelope[*domain.Address] {
	addr := &domain.Address{
		UserID:    id.UserID,
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		Zipcode:   in.Zipcode,
		Country:   in.Country,
		Phone:     in.Phone,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.addresses.Create(ctx, addr)
	if err != nil {
		s.logger.Error().Err(err).Msg("add address failed")
		return response.Internal[*domain.Address]("An error occurred while saving address.")
	}
	return response.Created("Address saved", created)
}

func (s *UserService) ListAddresses(ctx context.Context, id domain.Identity) response.Envelope[[]*domain.Address] {
	addrs, err := s.addresses.ListByUser(ctx, id.UserID)
	if err != nil {
		s.logger.Error().Err(err).Msg("list addresses failed")
		return response.Internal[[]*domain.Address]("An error occurred while retrieving addresses.")
	}
	return response.OK("Addresses retrieved", addrs)
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// remainingValidity parses the token's exp claim and returns how long it is
// still good for. An unparseable or already-expired token needs no blacklist
// entry, so zero is returned.
func (s *UserService) remainingValidity(token string) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return 0
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return time.Until(exp.Time)
}

func newRefreshToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
