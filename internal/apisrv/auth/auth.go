// Package auth issues admin JWTs against the configured master password.
package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/zenthra/zenthra-manager/internal/auth/jwt"
	"github.com/zenthra/zenthra-manager/internal/auth/pwhash"
	gerr "github.com/zenthra/zenthra-manager/internal/errors"
)

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret                string `mapstructure:"jwt_secret"`
	MasterPassword           string `mapstructure:"master_password"`
	PasswordHasherSaltSize   int    `mapstructure:"password_hasher_salt_size"`
	PasswordHasherIterations int    `mapstructure:"password_hasher_iterations"`
	JWTTTL                   string `mapstructure:"jwt_ttl"`
}

// Server handles admin login.
type Server struct {
	pwhash     *pwhash.PasswordHasher
	JwtAuth    *jwtauth.JWTAuth
	jwtTTL     time.Duration
	masterHash string
}

// New creates a new auth server.
func New(c *Config) (*Server, error) {
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}
	hash, err := ph.HashPassword(c.MasterPassword)
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, err
	}

	return &Server{
		pwhash:     ph,
		JwtAuth:    jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:     ttl,
		masterHash: hash,
	}, nil
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

// Login exchanges the master password for an auth token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := s.pwhash.Validate(req.Password, s.masterHash); err != nil {
		http.Error(w, gerr.NotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	token, err := jwt.NewToken(s.JwtAuth, s.jwtTTL)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't issue auth token",
			slog.String("err", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{AuthToken: token}); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't write login response",
			slog.String("err", err.Error()),
		)
	}
}
