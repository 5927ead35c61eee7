package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/inkpost/internal/handler"
	"github.com/msomdec/inkpost/internal/repository/sqlite"
	"github.com/msomdec/inkpost/internal/service"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-handler-tests-0123456789"

type testServices struct {
	auth     *service.AuthService
	posts    *service.PostService
	comments *service.CommentService
	tokens   *service.TokenService
	db       *sqlite.DB
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := service.NewTokenService(testJWTSecret, time.Hour)
	return testServices{
		// Use cost 4 for fast tests.
		auth:     service.NewAuthService(db.Users(), tokens, 4),
		posts:    service.NewPostService(db.Posts()),
		comments: service.NewCommentService(db.Comments(), db.Posts()),
		tokens:   tokens,
		db:       db,
	}
}

func newTestServer(t *testing.T, opts handler.Options) (*httptest.Server, testServices) {
	t.Helper()
	svc := newTestServices(t)
	srv := httptest.NewServer(handler.NewRouter(svc.auth, svc.posts, svc.comments, opts))
	t.Cleanup(srv.Close)
	return srv, svc
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) object(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.body, &m), "body: %s", r.body)
	return m
}

func (r response) array(t *testing.T) []any {
	t.Helper()
	var a []any
	require.NoError(t, json.Unmarshal(r.body, &a), "body: %s", r.body)
	return a
}

// do sends a request with an optional JSON body and bearer token.
func do(t *testing.T, srv *httptest.Server, method, path, token string, body any) response {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: data}
}

// signup registers an account over HTTP and returns its token and uid.
func signup(t *testing.T, srv *httptest.Server, email string) (token, uid string) {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.status, "register %s: %s", email, resp.body)
	m := resp.object(t)
	return m["token"].(string), m["user"].(map[string]any)["uid"].(string)
}

func createPost(t *testing.T, srv *httptest.Server, token string, published bool) string {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/posts", token, map[string]any{
		"title": "Hello", "content": "World", "published": published,
	})
	require.Equal(t, http.StatusCreated, resp.status, "create post: %s", resp.body)
	return resp.object(t)["uid"].(string)
}

func registerUser(t *testing.T, svc testServices, email string) *service.Session {
	t.Helper()
	sess, err := svc.auth.Register(context.Background(), service.RegisterInput{Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return sess
}
