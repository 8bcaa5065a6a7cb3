// Package service holds the account orchestration logic: registration, login
// and profile reads coordinating the store, hasher, token issuer, session
// cache, event publisher and wallet notifier.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jacksonn455/user-service/internal/apperrors"
	"github.com/jacksonn455/user-service/internal/events"
	"github.com/jacksonn455/user-service/internal/hashing"
	"github.com/jacksonn455/user-service/internal/models"
	"github.com/jacksonn455/user-service/internal/token"
)

// UserStore is the authoritative credential store.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
}

// SessionCache is the TTL-bound cache of redacted user views. Both methods
// fail soft: a miss or backend outage just means the store gets read.
type SessionCache interface {
	Get(ctx context.Context, userID string) (*models.UserView, bool)
	Set(ctx context.Context, view *models.UserView)
}

// EventPublisher delivers domain events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event string, data any) error
}

// WalletNotifier pushes best-effort signals to the wallet service.
type WalletNotifier interface {
	NotifyEvent(ctx context.Context, event string, data any)
}

// AuthUser is the minimal user projection returned with a fresh token.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type UserService struct {
	store     UserStore
	cache     SessionCache
	publisher EventPublisher
	wallet    WalletNotifier
	issuer    *token.Issuer
}

func NewUserService(
	store UserStore,
	cache SessionCache,
	publisher EventPublisher,
	wallet WalletNotifier,
	issuer *token.Issuer,
) *UserService {
	return &UserService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		wallet:    wallet,
		issuer:    issuer,
	}
}

// Register creates an account and issues a session token. The account write
// is the durable fact: event publish and wallet notify failures never roll it
// back.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	// Existence pre-check; the unique constraint in the store is the backstop
	// against concurrent registrations.
	_, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.ErrEmailExists
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := hashing.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	signed, err := s.issuer.IssueUserToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	payload := events.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}
	if err := s.publisher.Publish(ctx, events.UserRegistered, payload); err != nil {
		log.Printf("Failed to publish %s event for user %s: %v", events.UserRegistered, user.ID, err)
	}

	// Detached from the request context: the notify may outlive an abandoned
	// response, which is acceptable for a non-critical signal.
	go s.wallet.NotifyEvent(context.Background(), "user-created", payload)

	log.Printf("User registered: id=%s email=%s", user.ID, user.Email)

	return &AuthResult{
		Token: signed,
		User:  AuthUser{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

// Login verifies credentials, issues a session token and write-through
// populates the session cache.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password so account existence never leaks.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrInactiveAccount
	}

	if !hashing.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	signed, err := s.issuer.IssueUserToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.cache.Set(ctx, user.ToView())

	if err := s.publisher.Publish(ctx, events.UserLoggedIn, events.UserLoggedInEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		log.Printf("Failed to publish %s event for user %s: %v", events.UserLoggedIn, user.ID, err)
	}

	log.Printf("User logged in: id=%s email=%s", user.ID, user.Email)

	return &AuthResult{
		Token: signed,
		User:  AuthUser{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

// GetUserByID reads through the session cache: a hit skips the store, a miss
// reads the store and repopulates the cache. Returns apperrors.ErrNotFound
// for an unknown user.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.UserView, error) {
	if view, ok := s.cache.Get(ctx, id); ok {
		return view, nil
	}

	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := user.ToView()
	s.cache.Set(ctx, view)
	return view, nil
}

// GetProfile is GetUserByID under its API-facing name.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserView, error) {
	return s.GetUserByID(ctx, userID)
}

// GetAllUsers bypasses the cache and returns every user, most recent first.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.UserView, error) {
	users, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*models.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.ToView())
	}
	return views, nil
}
