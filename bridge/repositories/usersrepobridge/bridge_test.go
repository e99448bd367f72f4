package usersrepobridge_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrazmi/tasker/bridge/repositories/usersrepobridge"
	"github.com/jrazmi/tasker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/core/repositories/usersrepo"
	"github.com/jrazmi/tasker/infrastructure/web"
	"github.com/jrazmi/tasker/sdk/logger"
	"github.com/jrazmi/tasker/sdk/passwords"
	"github.com/jrazmi/tasker/sdk/tokens"
	"golang.org/x/crypto/bcrypt"
)

type memoryStorer struct {
	mu    sync.Mutex
	users map[string]usersrepo.User
}

func (s *memoryStorer) Create(ctx context.Context, nu usersrepo.NewUser) (usersrepo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[nu.Username]; ok {
		return usersrepo.User{}, repositories.ErrDuplicate
	}
	u := usersrepo.User{
		UserID:       "user-" + nu.Username,
		Username:     nu.Username,
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		CreatedAt:    nu.CreatedAt,
	}
	s.users[nu.Username] = u
	return u, nil
}

func (s *memoryStorer) GetByUsername(ctx context.Context, username string) (usersrepo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func setup(t *testing.T) (http.Handler, *memoryStorer, *tokens.Issuer) {
	t.Helper()
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	storer := &memoryStorer{users: map[string]usersrepo.User{}}

	issuer, err := tokens.New(tokens.Options{SigningKey: "test-key", TTL: time.Hour})
	if err != nil {
		t.Fatalf("tokens.New: %v", err)
	}

	wh := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(log), mid.Panics()))
	usersrepobridge.AddHttpRoutes(wh.Group(""), usersrepobridge.Config{
		Log:        log,
		Repository: usersrepo.NewRepository(log, storer, passwords.NewBcrypt(bcrypt.MinCost)),
		Tokens:     issuer,
	})
	return wh, storer, issuer
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return w
}

func TestSignupAndLogin(t *testing.T) {
	h, storer, issuer := setup(t)

	w := post(h, "/signup", `{"username":"alice","email":"a@example.com","password":"pw1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), "User registered successfully!") {
		t.Errorf("Unexpected body %s", w.Body)
	}
	if got := storer.users["alice"].PasswordHash; got == "" || got == "pw1" {
		t.Errorf("Expected a bcrypt hash, got %q", got)
	}

	w = post(h, "/login", `{"username":"alice","password":"pw1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body)
	}

	var resp usersrepobridge.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Username != "alice" || resp.User.Email != "a@example.com" || resp.User.ID == "" {
		t.Errorf("Unexpected user %+v", resp.User)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("Login response must not carry password material")
	}

	claims, err := issuer.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("Expected token for %s, got %s", resp.User.ID, claims.UserID)
	}
}

func TestSignupErrors(t *testing.T) {
	h, storer, _ := setup(t)

	if w := post(h, "/signup", `{"username":"bob","email":"b@example.com","password":"pw"}`); w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}
	original := storer.users["bob"]

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"duplicate username", `{"username":"bob","email":"x@example.com","password":"other"}`, http.StatusConflict, "Username already exists"},
		{"missing email", `{"username":"carol","password":"pw"}`, http.StatusBadRequest, "Missing required fields"},
		{"blank username", `{"username":"  ","email":"c@example.com","password":"pw"}`, http.StatusBadRequest, "Missing required fields"},
		{"empty body", ``, http.StatusBadRequest, "Missing required fields"},
		{"malformed", `{"username":`, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(h, "/signup", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body)
			}
			if !strings.Contains(w.Body.String(), tt.wantMsg) {
				t.Errorf("Expected %q in %s", tt.wantMsg, w.Body)
			}
		})
	}

	if storer.users["bob"] != original {
		t.Error("Duplicate signup altered the existing user")
	}
}

func TestLoginErrors(t *testing.T) {
	h, _, _ := setup(t)
	post(h, "/signup", `{"username":"dave","email":"d@example.com","password":"right"}`)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"wrong password", `{"username":"dave","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"nobody","password":"right"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"dave"}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(h, "/login", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body)
			}
			if strings.Contains(w.Body.String(), "access_token") {
				t.Error("Failed login returned a token")
			}
		})
	}
}
