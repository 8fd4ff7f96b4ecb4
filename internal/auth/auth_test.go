package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/config"
)

type nopLogger struct{}

func (nopLogger) Info(args ...interface{})                  {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warn(args ...interface{})                  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Error(args ...interface{})                 {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Debug(args ...interface{})                 {}
func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Fatal(args ...interface{})                 {}
func (nopLogger) Fatalf(format string, args ...interface{}) {}

func TestLocalAuthProvider(t *testing.T) {
	p := NewLocalAuthProvider("secret", "u42", nopLogger{})

	user, err := p.ValidateTokenLocal("secret")
	require.NoError(t, err)
	assert.Equal(t, "u42", user.ID)

	_, err = p.ValidateTokenLocal("nope")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = NewLocalAuthProvider("", "u1", nopLogger{}).ValidateTokenLocal("")
	assert.Error(t, err, "empty token must never match")
}

func TestRemoteAuthProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Token != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(internal.User{ID: "remote-1", Name: "Remote"})
	}))
	defer srv.Close()

	p := NewRemoteAuthProvider(srv.URL, nopLogger{})

	user, err := p.ValidateTokenRemote(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "remote-1", user.ID)

	_, err = p.ValidateTokenRemote(context.Background(), `bad","x":"`)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: config.EnvDevelopment}
	provider := NewProvider(&config.Config{Env: config.EnvDevelopment, AuthToken: "tok", AuthUserID: "u1"}, nopLogger{})

	r := gin.New()
	r.GET("/me", AuthMiddleware(provider, cfg), func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet("user").(*internal.User).ID)
	})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid", "Bearer tok", http.StatusOK},
		{"padded", "Bearer  tok ", http.StatusOK},
		{"wrong token", "Bearer other", http.StatusUnauthorized},
		{"no scheme", "tok", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "u1", w.Body.String())
			}
		})
	}
}
