package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUsernameTaken      = errors.New("username already exists")
)

// AuthService issues and resolves operator sessions. The session id lives
// server side in a SessionStore; clients hold it inside a signed token.
type AuthService struct {
	store        *store.Store
	sessions     SessionStore
	secret       []byte
	ttl          time.Duration
	passwordMode string
	logger       *zap.SugaredLogger

	usersMu sync.Mutex
}

// NewAuthService creates a new auth service
func NewAuthService(st *store.Store, sessions SessionStore, secret string, ttl time.Duration, passwordMode string, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		store:        st,
		sessions:     sessions,
		secret:       []byte(secret),
		ttl:          ttl,
		passwordMode: passwordMode,
		logger:       logger,
	}
}

// SessionTTL is the lifetime of a new session
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// Sessions exposes the backing session store
func (s *AuthService) Sessions() SessionStore {
	return s.sessions
}

// EncodePassword applies the configured password storage mode
func (s *AuthService) EncodePassword(password string) (string, error) {
	return EncodePassword(s.passwordMode, password)
}

// Login checks credentials and opens a session, returning the user and a
// signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	user, ok := s.store.UserByUsername(username)
	if !ok || !CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return models.User{}, "", err
	}

	s.logger.Infow("User logged in", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// CreateUser stores a new account with its password encoded. Usernames are
// unique.
func (s *AuthService) CreateUser(user models.User) (models.User, error) {
	encoded, err := s.EncodePassword(user.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("encode password: %w", err)
	}
	user.Password = encoded

	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	if _, taken := s.store.UserByUsername(user.Username); taken {
		return models.User{}, ErrUsernameTaken
	}
	return s.store.Users.Create(user), nil
}

// UpdateUser applies a validated patch to an account, encoding a new
// password and keeping usernames unique.
func (s *AuthService) UpdateUser(id int, patch store.Patch) (models.User, bool, error) {
	if raw, ok := patch["password"]; ok {
		var password string
		if err := json.Unmarshal(raw, &password); err != nil {
			return models.User{}, false, fmt.Errorf("decode password: %w", err)
		}
		encoded, err := s.EncodePassword(password)
		if err != nil {
			return models.User{}, false, fmt.Errorf("encode password: %w", err)
		}
		if patch["password"], err = json.Marshal(encoded); err != nil {
			return models.User{}, false, err
		}
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	if _, exists := s.store.Users.Get(id); !exists {
		return models.User{}, false, nil
	}
	if raw, ok := patch["username"]; ok {
		var username string
		if err := json.Unmarshal(raw, &username); err != nil {
			return models.User{}, false, fmt.Errorf("decode username: %w", err)
		}
		if other, taken := s.store.UserByUsername(username); taken && other.ID != id {
			return models.User{}, false, ErrUsernameTaken
		}
	}
	return s.store.Users.Update(id, patch)
}

// Register creates an account and opens a session for it
func (s *AuthService) Register(ctx context.Context, user models.User) (models.User, string, error) {
	created, err := s.CreateUser(user)
	if err != nil {
		return models.User{}, "", err
	}

	token, err := s.openSession(ctx, created.ID)
	if err != nil {
		return models.User{}, "", err
	}

	s.logger.Infow("User registered", "user_id", created.ID, "username", created.Username)
	return created, token, nil
}

// Authenticate resolves a session token to its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	sid, err := s.parseToken(token)
	if err != nil {
		return models.User{}, ErrUnauthorized
	}

	userID, err := s.sessions.Lookup(ctx, sid)
	if errors.Is(err, ErrSessionNotFound) {
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		return models.User{}, fmt.Errorf("resolve session: %w", err)
	}

	user, ok := s.store.Users.Get(userID)
	if !ok {
		// account was deleted while the session was live
		_ = s.sessions.Destroy(ctx, sid)
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}

// Logout destroys the session behind token. An invalid token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Destroy(ctx, sid)
}

func (s *AuthService) openSession(ctx context.Context, userID int) (string, error) {
	sid, err := s.sessions.Create(ctx, userID, s.ttl)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sid,
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		_ = s.sessions.Destroy(ctx, sid)
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

func (s *AuthService) parseToken(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return "", ErrUnauthorized
	}
	return claims.ID, nil
}
