package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blogem/enquiry-desk/config"
	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/repositories/mocks"
	"github.com/blogem/enquiry-desk/userctx"
)

// newSessionServer serves r behind the in-memory session store and returns a
// client that keeps cookies and does not follow redirects
func newSessionServer(t *testing.T, r *chi.Mux) (*httptest.Server, *http.Client) {
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:    "memory",
		CookieName:  "test_session",
		Gclifetime:  3600,
		Maxlifetime: 3600,
	})
	require.NoError(t, err)

	root := chi.NewRouter()
	root.Use(sessionHandler)
	root.Mount("/", r)

	server := httptest.NewServer(root)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return server, client
}

func TestRequireAuth(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/fake-login", func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		sess.Set(SessionUserID, "3")
		sess.Set(SessionUserEmail, "admin@example.com")
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/redirect-target", func(w http.ResponseWriter, r *http.Request) {
		target, _ := session.GetSession(r).Get(SessionRedirectAfter).(string)
		w.Write([]byte(target))
	})
	r.With(RequireAuth).Get("/enquiries/list/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userctx.GetUserID(r.Context()) + " " + userctx.GetUserEmail(r.Context())))
	})

	server, client := newSessionServer(t, r)

	// Anonymous request is redirected to the login page
	resp, err := client.Get(server.URL + "/enquiries/list/?q=ann")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))

	// The intended destination is remembered
	resp, err = client.Get(server.URL + "/redirect-target")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, "/enquiries/list/?q=ann", body)

	// Authenticated request passes through with the user in context
	resp, err = client.Get(server.URL + "/fake-login")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(server.URL + "/enquiries/list/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3 admin@example.com", readBody(t, resp))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestAuditLogger(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository(t)
	written := make(chan *models.AuditLogEntry, 2)
	auditRepo.EXPECT().Create(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, entry *models.AuditLogEntry) { written <- entry }).
		Return(nil).Times(2)

	handler := AuditLogger(auditRepo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Handlers can still read the form after auditing
		w.Header().Set("X-Ext-ID", r.FormValue("ext_id"))
		w.WriteHeader(http.StatusSeeOther)
	}))

	nextEntry := func() *models.AuditLogEntry {
		t.Helper()
		select {
		case entry := <-written:
			return entry
		case <-time.After(2 * time.Second):
			t.Fatal("audit entry was not written")
			return nil
		}
	}

	// Plain reads are not audited
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/enquiries/list/?q=ann", nil))

	form := url.Values{"ext_id": {"42"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/enquiries/delete/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.RemoteAddr = "192.0.2.10:4321"
	req = req.WithContext(userctx.SetUserEmail(req.Context(), "admin@example.com"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("X-Ext-ID"))

	entry := nextEntry()
	assert.Equal(t, "admin@example.com", entry.UserEmail)
	assert.Equal(t, http.MethodPost, entry.Method)
	assert.Equal(t, "/enquiries/delete/", entry.Path)
	assert.Equal(t, "test-agent", entry.UserAgent)
	assert.Equal(t, "192.0.2.10", entry.IPAddress)
	assert.JSONEq(t, `{"ext_id": "42"}`, entry.FormData)
	assert.False(t, entry.Timestamp.IsZero())

	// A GET naming an external enquiry deletes it, so it is audited too
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/enquiries/delete/?ext_id=77", nil))
	assert.Equal(t, "77", rec.Header().Get("X-Ext-ID"))

	entry = nextEntry()
	assert.Equal(t, http.MethodGet, entry.Method)
	assert.JSONEq(t, `{"ext_id": "77"}`, entry.FormData)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.RemoteAddr = "[::1]:5555"
	assert.Equal(t, "::1", ClientIP(req))

	// Forwarding headers are ignored unless RealIP rewrote RemoteAddr
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "::1", ClientIP(req))

	rec := httptest.NewRecorder()
	chimiddleware.RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ClientIP(r)))
	})).ServeHTTP(rec, req)
	assert.Equal(t, "198.51.100.7", rec.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RatePerSecond: 0.001, Burst: 2})
	t.Cleanup(rl.Stop)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remote string, ajax bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		if ajax {
			req.Header.Set("X-Requested-With", "XMLHttpRequest")
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("192.0.2.1:1000", false).Code)
	assert.Equal(t, http.StatusOK, send("192.0.2.1:1001", false).Code)

	// Burst exhausted for this client
	rec := send("192.0.2.1:1002", false)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	rec = send("192.0.2.1:1003", true)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])

	// Other clients have their own bucket
	assert.Equal(t, http.StatusOK, send("192.0.2.2:1000", false).Code)
}

func TestRateLimiterIgnoresForwardedFor(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RatePerSecond: 0.001, Burst: 2})
	t.Cleanup(rl.Stop)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	accepted := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "192.0.2.1:1000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			accepted++
		}
	}

	assert.Equal(t, 2, accepted)
	rl.mu.Lock()
	assert.Len(t, rl.clients, 1)
	rl.mu.Unlock()
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RatePerSecond: 1, Burst: 1})
	t.Cleanup(rl.Stop)

	rl.getClientLimiter("a")
	rl.getClientLimiter("b")

	assert.Equal(t, 0, rl.cleanup(time.Now()))
	assert.Equal(t, 2, rl.cleanup(time.Now().Add(limiterIdleTimeout+time.Minute)))
	assert.Empty(t, rl.clients)
}

func TestIsProgrammatic(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.False(t, IsProgrammatic(req))

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	assert.True(t, IsProgrammatic(req))
	assert.True(t, IsJSONBody(req))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	assert.True(t, IsProgrammatic(req))
	assert.False(t, IsJSONBody(req))
}

func TestSetupCORS(t *testing.T) {
	handler := SetupCORS(config.CORSConfig{AllowedOrigins: []string{"https://shop.example.com"}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Requested-With")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
