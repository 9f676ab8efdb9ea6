package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/KothuriSowmya/blood-donation-backend/internal/application/auth"
	"github.com/KothuriSowmya/blood-donation-backend/internal/domain"
	domerrors "github.com/KothuriSowmya/blood-donation-backend/internal/domain/errors"
	infraauth "github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/auth"
	httprouter "github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/http"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/http/handlers"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/http/middleware"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/security"
)

// memRepo is an in-memory UserRepository with email uniqueness.
type memRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[string]*domain.User), byEmail: make(map[string]*domain.User)}
}

func (r *memRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domerrors.ErrUserExists
	}
	u := *user
	r.byID[u.ID.String()] = &u
	r.byEmail[u.Email] = &u
	return nil
}

func (r *memRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID.String()]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) UpdateProfile(ctx context.Context, userID domain.UserID, phone, location string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID.String()]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	u.Phone = phone
	u.Location = location
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	issuer, err := infraauth.NewTokenIssuer("test-secret", "blood-donation", infraauth.DefaultTokenTTL)
	if err != nil {
		t.Fatal(err)
	}
	log := zerolog.Nop()

	authHandler := handlers.NewAuthHandler(
		auth.NewRegister(repo, hasher),
		auth.NewLogin(repo, hasher, issuer, nil),
		auth.NewUpdateProfile(repo),
		repo,
		log,
	)
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler: authHandler,
		RequireJWT:  middleware.NewAuthValidator(issuer).Handler,
		Log:         log,
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, repo
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func registerAlice(t *testing.T, baseURL string) {
	t.Helper()
	resp := postJSON(t, baseURL+"/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "secret1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func loginAlice(t *testing.T, baseURL string) (token string) {
	t.Helper()
	resp := postJSON(t, baseURL+"/api/auth/login", map[string]string{
		"email": "alice@x.com", "password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	token, _ = body["token"].(string)
	if token == "" {
		t.Fatal("login response missing token")
	}
	return token
}

func TestRegisterEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "secret1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["username"] != "alice" || body["email"] != "alice@x.com" {
		t.Errorf("unexpected body: %v", body)
	}
	if _, ok := body["password"]; ok {
		t.Error("password echoed in response")
	}

	// Duplicate email conflicts regardless of the username.
	resp = postJSON(t, ts.URL+"/api/auth/register", map[string]string{
		"username": "bob", "email": "alice@x.com", "password": "secret2",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRegisterEndpointMissingFields(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, payload := range []map[string]string{
		{"email": "a@x.com", "password": "pw"},
		{"username": "a", "password": "pw"},
		{"username": "a", "email": "a@x.com"},
	} {
		resp := postJSON(t, ts.URL+"/api/auth/register", payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %v: status = %d", payload, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestLoginEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	registerAlice(t, ts.URL)

	resp := postJSON(t, ts.URL+"/api/auth/login", map[string]string{
		"email": "alice@x.com", "password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if token, _ := body["token"].(string); token == "" {
		t.Error("missing token")
	}
	user, _ := body["user"].(map[string]interface{})
	if user == nil || user["username"] != "alice" || user["email"] != "alice@x.com" {
		t.Errorf("unexpected user: %v", user)
	}
	if _, ok := user["passwordHash"]; ok {
		t.Error("password hash leaked in login response")
	}
}

func TestLoginEndpointFailuresAreIndistinguishable(t *testing.T) {
	ts, _ := newTestServer(t)
	registerAlice(t, ts.URL)

	respWrong := postJSON(t, ts.URL+"/api/auth/login", map[string]string{
		"email": "alice@x.com", "password": "wrong",
	})
	respNoUser := postJSON(t, ts.URL+"/api/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	if respWrong.StatusCode != http.StatusUnauthorized || respNoUser.StatusCode != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d", respWrong.StatusCode, respNoUser.StatusCode)
	}
	bodyWrong := decodeBody(t, respWrong)
	bodyNoUser := decodeBody(t, respNoUser)
	if bodyWrong["error"] != bodyNoUser["error"] || bodyWrong["code"] != bodyNoUser["code"] {
		t.Errorf("login failure responses differ: %v vs %v", bodyWrong, bodyNoUser)
	}
}

func TestUpdateEndpoint(t *testing.T) {
	ts, repo := newTestServer(t)
	registerAlice(t, ts.URL)
	token := loginAlice(t, ts.URL)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/auth/update",
		strings.NewReader(`{"phone":"555-1234"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	user, _ := body["user"].(map[string]interface{})
	if user["phone"] != "555-1234" {
		t.Errorf("phone not updated: %v", user)
	}
	if loc, ok := user["location"]; ok && loc != "" {
		t.Errorf("location should be untouched: %v", loc)
	}

	stored, _ := repo.GetByEmail(context.Background(), "alice@x.com")
	if stored.Phone != "555-1234" || stored.Location != "" {
		t.Errorf("stored record: %+v", stored)
	}
}

func TestUpdateEndpointRequiresToken(t *testing.T) {
	ts, _ := newTestServer(t)
	registerAlice(t, ts.URL)

	for _, header := range []string{"", "Bearer not-a-token", "Basic abc"} {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/auth/update",
			strings.NewReader(`{"phone":"1"}`))
		req.Header.Set("Content-Type", "application/json")
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d", header, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestMeEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	registerAlice(t, ts.URL)
	token := loginAlice(t, ts.URL)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	user, _ := body["user"].(map[string]interface{})
	if user == nil || user["email"] != "alice@x.com" {
		t.Errorf("unexpected profile: %v", body)
	}
}

func TestRootAndNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("root status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/unknown")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}
