package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/skillswap/api"
	"github.com/garnizeh/skillswap/internal/auth"
	"github.com/garnizeh/skillswap/internal/config"
	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
	"github.com/garnizeh/skillswap/pkg/assets"
	"github.com/garnizeh/skillswap/pkg/repository/mock"
)

const testSecret = "testsecret"

type testEnv struct {
	handler http.Handler
	mocks   *mock.Mocks
	svc     *service.Services
}

func newTestEnv(t *testing.T, debug bool, up assets.Uploader) *testEnv {
	t.Helper()
	m := mock.NewMocks()
	h, err := auth.NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	tok, err := auth.NewTokens(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	svc, err := service.New(service.Deps{Store: m.Store, Requests: m.Requests, Reports: m.Reports, Hasher: h, Tokens: tok, Uploader: up})
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	schemas, err := payload.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	cfg := &config.Config{Debug: debug, CORS: config.CORSConfig{AllowedOrigins: []string{"*"}}, Assets: assets.Config{MaxBytes: 1 << 20}}
	return &testEnv{
		handler: api.SetupRoutes(cfg, "test", "now", api.Deps{Services: svc, Schemas: schemas}),
		mocks:   m,
		svc:     svc,
	}
}

// signup creates an account and returns its id and token.
func (e *testEnv) signup(t *testing.T, email string) (int64, string) {
	t.Helper()
	res, err := e.svc.Accounts.Signup(t.Context(), service.SignupInput{Email: email, Password: "pw"})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return res.UserID, res.Token
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	res := w.Result()
	t.Cleanup(func() { res.Body.Close() })
	data, _ := io.ReadAll(res.Body)
	return res, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", string(data), err)
	}
	return v
}

type errBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
