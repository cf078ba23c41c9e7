package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenthra/zenthra-manager/internal/auth/jwt"
)

func testConfig() *Config {
	return &Config{
		JWTSecret:                "secret",
		MasterPassword:           "masterpw",
		PasswordHasherSaltSize:   16,
		PasswordHasherIterations: 1000,
		JWTTTL:                   "1h",
	}
}

func TestLogin(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"masterpw"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		AuthToken string `json:"authToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.AuthToken)

	_, err = jwt.VerifyToken(s.JwtAuth, res.AuthToken)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"nope"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	s.Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewBadConfig(t *testing.T) {
	c := testConfig()
	c.JWTTTL = "soon"
	_, err := New(c)
	assert.Error(t, err)

	c = testConfig()
	c.PasswordHasherSaltSize = 0
	_, err = New(c)
	assert.Error(t, err)
}
