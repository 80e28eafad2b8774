package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itbasis/go-clock"
	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// friendCodeAttempts bounds the retry loop when a generated code collides.
const friendCodeAttempts = 5

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("unknown username or bad password")
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]{3,24}$`)

// Service issues and verifies player credentials. Tokens are HS256 JWTs
// with the player id as the subject.
type Service interface {
	// Register creates a new account with a unique 8 digit friend code.
	Register(ctx context.Context, username, password string) (*model.Player, error)
	// Login checks the password and returns a signed token good for 24 hours.
	Login(ctx context.Context, username, password string) (string, error)
	// Verify returns the player id a token was issued to.
	Verify(token string) (model.PlayerID, error)
	// Middleware rejects requests without a valid bearer token and makes
	// the player id available via PlayerFrom.
	Middleware(next http.Handler) http.Handler
}

type service struct {
	db     db.DB
	clock  clock.Clock
	secret []byte
}

func New(clock clock.Clock, db db.DB, secret string) (Service, error) {
	if secret == "" {
		return nil, errors.New("auth secret must not be empty")
	}
	return &service{
		db:     db,
		clock:  clock,
		secret: []byte(secret),
	}, nil
}

func (s *service) Register(ctx context.Context, username, password string) (*model.Player, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, model.Validationf("username must be 3-24 characters of a-z, 0-9, - or _")
	}
	if len(password) < 8 {
		return nil, model.Validationf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	for i := 0; i < friendCodeAttempts; i++ {
		p, err := s.db.AddPlayer(ctx, username, string(hash), randomCode())
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, db.ErrDuplicate) {
			return nil, fmt.Errorf("error creating player: %w", err)
		}
		// The username may be the duplicate rather than the code.
		if _, nameErr := s.db.GetPlayerByUsername(ctx, username); nameErr == nil {
			return nil, model.Validationf("username %q is taken", username)
		}
	}
	return nil, fmt.Errorf("could not generate a unique friend code for %q", username)
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	id, hash, err := s.db.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("error loading credentials: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.clock.Now().UTC()
	claims := &jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(id), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return token, nil
}

func (s *service) Verify(tokenString string) (model.PlayerID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.clock.Now() }))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return model.PlayerID(id), nil
}

type contextKey struct{}

var playerKey contextKey

func (s *service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		id, err := s.Verify(token)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), playerKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PlayerFrom returns the authenticated player id set by Middleware.
func PlayerFrom(ctx context.Context) (model.PlayerID, bool) {
	id, ok := ctx.Value(playerKey).(model.PlayerID)
	return id, ok
}

func randomCode() string {
	const digits = "0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = digits[rand.IntN(len(digits))]
	}
	return string(b)
}
