package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/enquiry-desk/authenticator"
	"github.com/blogem/enquiry-desk/config"
	"github.com/blogem/enquiry-desk/gateway"
	gatewaymocks "github.com/blogem/enquiry-desk/gateway/mocks"
	"github.com/blogem/enquiry-desk/middleware"
	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/repositories"
	"github.com/blogem/enquiry-desk/repositories/mocks"
	"github.com/blogem/enquiry-desk/services"
)

const testPassword = "s3cretpass"

// testApp wires the controllers to mocked repositories and gateway behind a
// real in-memory session store
type testApp struct {
	server      *httptest.Server
	client      *http.Client
	gateway     *gatewaymocks.MockClient
	enquiryRepo *mocks.MockEnquiryRepository
	adminRepo   *mocks.MockAdminUserRepository
}

func newTestApp(t *testing.T, provider authenticator.Provider, oidcCfg config.OIDCConfig) *testApp {
	app := &testApp{
		gateway:     gatewaymocks.NewMockClient(t),
		enquiryRepo: mocks.NewMockEnquiryRepository(t),
		adminRepo:   mocks.NewMockAdminUserRepository(t),
	}

	repos := &repositories.Repositories{
		Enquiry:   app.enquiryRepo,
		AdminUser: app.adminRepo,
	}
	ctrl := NewControllers(services.NewServices(repos, app.gateway, 10), provider, oidcCfg)

	sessionHandler, err := session.Sessioner(session.Options{
		Provider:    "memory",
		CookieName:  "test_session",
		Gclifetime:  3600,
		Maxlifetime: 3600,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(sessionHandler)
	r.Get("/", ctrl.Enquiry.Index)
	r.Post("/", ctrl.Enquiry.Submit)
	r.Get("/admin-login/", ctrl.Auth.LoginPage)
	r.Post("/admin-login/", ctrl.Auth.LoginSubmit)
	r.Get("/admin-logout/", ctrl.Auth.Logout)
	r.Post("/admin-logout/", ctrl.Auth.Logout)
	r.Get("/login", ctrl.Auth.Login)
	r.Get("/callback", ctrl.Auth.Callback)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/enquiries/list/", ctrl.Admin.List)
		r.Get("/enquiries/delete/", ctrl.Admin.Delete)
		r.Post("/enquiries/delete/", ctrl.Admin.Delete)
		r.Get("/enquiries/delete/{id}/", ctrl.Admin.Delete)
		r.Post("/enquiries/delete/{id}/", ctrl.Admin.Delete)
	})

	app.server = httptest.NewServer(r)
	t.Cleanup(app.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	app.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return app
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(t, err)
	return resp, readAll(t, resp)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, headers map[string]string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := a.client.Do(req)
	require.NoError(t, err)
	return resp, readAll(t, resp)
}

func (a *testApp) postJSON(t *testing.T, path, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	require.NoError(t, err)
	return resp, readAll(t, resp)
}

// login signs in through the real login form
func (a *testApp) login(t *testing.T) *http.Response {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	a.adminRepo.EXPECT().GetByUsername(mock.Anything, "admin").Return(&models.AdminUser{
		ID: 1, Username: "admin", Email: "admin@example.com", PasswordHash: string(hash), Active: true,
	}, nil).Once()
	a.adminRepo.EXPECT().UpdateLastLogin(mock.Anything, int64(1), mock.Anything).Return(nil).Once()

	resp, _ := a.postForm(t, "/admin-login/", url.Values{"username": {"admin"}, "password": {testPassword}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	return resp
}

// sessionID returns the session cookie the client currently holds
func (a *testApp) sessionID(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(a.server.URL)
	require.NoError(t, err)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == "test_session" {
			return c.Value
		}
	}
	return ""
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func intPtr(v int) *int { return &v }

var validEnquiry = url.Values{
	"first_name": {"Ann"},
	"last_name":  {""},
	"phone":      {"5551234"},
	"email":      {"ann@x.com"},
}

var ajax = map[string]string{"X-Requested-With": "XMLHttpRequest"}

func TestEnquiryIndex(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})

	resp, body := app.get(t, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Make an enquiry")
	assert.Contains(t, body, `name="first_name"`)
}

func TestEnquirySubmit_Ajax(t *testing.T) {
	tests := []struct {
		name       string
		response   gateway.Response
		wantStatus int
		wantJSON   string
	}{
		{
			name:       "accepted",
			response:   gateway.Response{MessageCode: intPtr(0), MessageText: "OK", MessageData: []any{}, ExternalStatus: intPtr(200)},
			wantStatus: http.StatusOK,
			wantJSON:   `{"message_code": 0, "message_text": "OK", "message_data": [], "external_status": 200}`,
		},
		{
			name:       "upstream error",
			response:   gateway.Response{MessageCode: intPtr(500), MessageText: "boom", MessageData: []any{}, ExternalStatus: intPtr(500)},
			wantStatus: http.StatusBadGateway,
			wantJSON:   `{"message_code": 500, "message_text": "boom", "message_data": [], "external_status": 500}`,
		},
		{
			name:       "network failure",
			response:   gateway.Response{MessageCode: intPtr(-1), MessageText: "Failed to send enquiry: timeout", MessageData: []any{}},
			wantStatus: http.StatusOK,
			wantJSON:   `{"message_code": -1, "message_text": "Failed to send enquiry: timeout", "message_data": [], "external_status": null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, nil, config.OIDCConfig{})
			app.gateway.EXPECT().
				Submit(mock.Anything, gateway.SubmitRequest{FirstName: "Ann", Phone: "5551234", Email: "ann@x.com"}).
				Return(tt.response).Once()
			app.enquiryRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

			resp, body := app.postForm(t, "/", validEnquiry, ajax)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.JSONEq(t, tt.wantJSON, body)
		})
	}
}

func TestEnquirySubmit_JSONBody(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})
	app.gateway.EXPECT().
		Submit(mock.Anything, gateway.SubmitRequest{FirstName: "Ann", LastName: "Lee", Phone: "5551234", Email: "ann@x.com"}).
		Return(gateway.Response{MessageText: "saved", MessageData: []any{}, ExternalStatus: intPtr(201)}).Once()
	app.enquiryRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(errors.New("database is locked")).Once()

	resp, body := app.postJSON(t, "/", `{"first_name": "Ann", "last_name": "Lee", "phone": "5551234", "email": "ann@x.com"}`)

	// Local save failures never change the reply
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message_code": null, "message_text": "saved", "message_data": [], "external_status": 201}`, body)
}

func TestEnquirySubmit_InvalidJSONBody(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})

	resp, body := app.postJSON(t, "/", `{"first_name": `)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, `"ok":false`)
}

func TestEnquirySubmit_AjaxValidationErrors(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})

	resp, body := app.postForm(t, "/", url.Values{"first_name": {""}, "phone": {"1"}, "email": {"bad"}}, ajax)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out struct {
		OK     bool                `json:"ok"`
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.False(t, out.OK)
	assert.Equal(t, map[string][]string{
		"first_name": {"This field is required."},
		"email":      {"Enter a valid email address."},
	}, out.Errors)
}

func TestEnquirySubmit_FormValidationErrors(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})

	resp, body := app.postForm(t, "/", url.Values{"first_name": {"Ann"}, "phone": {""}, "email": {"ann@x.com"}}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Please correct the errors.")
	assert.Contains(t, body, "This field is required.")
	assert.Contains(t, body, `value="Ann"`)
}

func TestEnquirySubmit_FormThankYou(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})
	app.gateway.EXPECT().Submit(mock.Anything, mock.Anything).
		Return(gateway.Response{MessageCode: intPtr(0), MessageText: "Enquiry received", MessageData: []any{}, ExternalStatus: intPtr(200)}).Once()
	app.enquiryRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

	resp, body := app.postForm(t, "/", validEnquiry, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Thank you")
	assert.Contains(t, body, "Enquiry received")
	assert.Contains(t, body, "Your enquiry has been sent.")
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})

	for _, path := range []string{"/enquiries/list/", "/enquiries/delete/", "/enquiries/delete/3/"} {
		resp, _ := app.get(t, path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/admin-login/", resp.Header.Get("Location"), path)
	}
}

func TestAdminLogin(t *testing.T) {
	t.Run("invalid credentials", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		app.adminRepo.EXPECT().GetByUsername(mock.Anything, "admin").Return(nil, repositories.ErrNotFound).Once()

		resp, body := app.postForm(t, "/admin-login/", url.Values{"username": {"admin"}, "password": {"nope"}}, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Invalid login credentials")
		assert.NotContains(t, body, "single sign-on")
	})

	t.Run("redirects to remembered page", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})

		resp, _ := app.get(t, "/enquiries/list/?q=ann")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		resp = app.login(t)
		assert.Equal(t, "/enquiries/list/?q=ann", resp.Header.Get("Location"))

		// Already signed in users skip the form
		resp, _ = app.get(t, "/admin-login/")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/enquiries/list/", resp.Header.Get("Location"))
	})

	t.Run("login issues a new session ID", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})

		resp, _ := app.get(t, "/admin-login/")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		before := app.sessionID(t)
		require.NotEmpty(t, before)

		app.login(t)

		after := app.sessionID(t)
		assert.NotEmpty(t, after)
		assert.NotEqual(t, before, after)
	})

	t.Run("logout", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		resp := app.login(t)
		assert.Equal(t, "/enquiries/list/", resp.Header.Get("Location"))

		resp, _ = app.postForm(t, "/admin-logout/", url.Values{}, nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/admin-login/", resp.Header.Get("Location"))

		resp, _ = app.get(t, "/enquiries/list/")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})
}

func TestAdminList(t *testing.T) {
	t.Run("external source", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		app.login(t)
		app.gateway.EXPECT().List(mock.Anything).Return(gateway.ListResult{
			Available: true,
			Enquiries: []models.ExternalEnquiry{
				{ID: "41", FirstName: "Ann", LastName: "Lee", Phone: "5551234", Email: "ann@x.com"},
				{ID: "42", FirstName: "Bob", Phone: "5559876", Email: "bob@y.org"},
			},
		}).Once()

		resp, body := app.get(t, "/enquiries/list/?q=ann")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Live data")
		assert.Contains(t, body, "Ann Lee")
		assert.NotContains(t, body, "bob@y.org")
		assert.Contains(t, body, `name="ext_id" value="41"`)
		assert.Contains(t, body, "Page 1 of 1")
	})

	t.Run("local fallback", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		app.login(t)
		app.gateway.EXPECT().List(mock.Anything).Return(gateway.ListResult{Err: "503 Service Unavailable"}).Once()
		app.enquiryRepo.EXPECT().Count(mock.Anything, "").Return(1, nil).Once()
		app.enquiryRepo.EXPECT().Search(mock.Anything, "", 10, 0).Return([]models.Enquiry{
			{ID: 7, FirstName: "Carla", Phone: "777", Email: "c@z.net", ResponseCode: intPtr(0), ResponseText: "OK"},
		}, nil).Once()

		resp, body := app.get(t, "/enquiries/list/?per_page=abc")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Local copy")
		assert.Contains(t, body, "503 Service Unavailable")
		assert.Contains(t, body, "Carla")
		assert.Contains(t, body, `href="/enquiries/delete/7/"`)
	})

	t.Run("local store failure", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		app.login(t)
		app.gateway.EXPECT().List(mock.Anything).Return(gateway.ListResult{Err: "down"}).Once()
		app.enquiryRepo.EXPECT().Count(mock.Anything, "").Return(0, errors.New("database is locked")).Once()

		resp, _ := app.get(t, "/enquiries/list/")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

// followToList follows a delete redirect and returns the list page body
func followToList(t *testing.T, app *testApp, resp *http.Response) string {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/enquiries/list/", resp.Header.Get("Location"))
	_, body := app.get(t, "/enquiries/list/")
	return body
}

func TestAdminDeleteExternal(t *testing.T) {
	tests := []struct {
		name      string
		result    gateway.DeleteResult
		err       error
		wantFlash string
	}{
		{"success", gateway.DeleteResult{Success: true, ResponseText: "deleted"}, nil, "External enquiry 42 deleted. Response: deleted"},
		{"all verbs rejected", gateway.DeleteResult{ResponseText: "nope"}, nil, "Delete failed. Response: nope"},
		{"network error", gateway.DeleteResult{}, errors.New("connection refused"), "External delete failed: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, nil, config.OIDCConfig{})
			app.login(t)
			app.gateway.EXPECT().Delete(mock.Anything, "42").Return(tt.result, tt.err).Once()
			app.gateway.EXPECT().List(mock.Anything).Return(gateway.ListResult{Available: true, Enquiries: []models.ExternalEnquiry{}})

			resp, _ := app.postForm(t, "/enquiries/delete/", url.Values{"ext_id": {"42"}}, nil)

			body := followToList(t, app, resp)
			assert.Contains(t, body, tt.wantFlash)

			// Flashes are shown once
			_, body = app.get(t, "/enquiries/list/")
			assert.NotContains(t, body, tt.wantFlash)
		})
	}
}

func TestAdminDeleteExternal_QueryParameterTakesPrecedence(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})
	app.login(t)
	app.gateway.EXPECT().Delete(mock.Anything, "abc").Return(gateway.DeleteResult{Success: true, ResponseText: "ok"}, nil).Once()
	app.gateway.EXPECT().List(mock.Anything).Return(gateway.ListResult{Available: true, Enquiries: []models.ExternalEnquiry{}})

	// ext_id wins over a local id and never touches the local store
	resp, _ := app.get(t, "/enquiries/delete/7/?ext_id=abc")

	body := followToList(t, app, resp)
	assert.Contains(t, body, "External enquiry abc deleted. Response: ok")
}

func TestAdminDeleteLocal(t *testing.T) {
	enquiry := &models.Enquiry{ID: 7, FirstName: "Carla", Phone: "777", Email: "c@z.net"}

	t.Run("confirmation page", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		app.login(t)
		app.enquiryRepo.EXPECT().GetByID(mock.Anything, int64(7)).Return(enquiry, nil).Once()

		resp, body := app.get(t, "/enquiries/delete/7/")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Carla - 777")
		assert.Contains(t, body, `action="/enquiries/delete/7/"`)
	})

	t.Run("delete", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		app.login(t)
		app.enquiryRepo.EXPECT().GetByID(mock.Anything, int64(7)).Return(enquiry, nil).Once()
		app.enquiryRepo.EXPECT().Delete(mock.Anything, int64(7)).Return(nil).Once()
		app.gateway.EXPECT().List(mock.Anything).Return(gateway.ListResult{Available: true, Enquiries: []models.ExternalEnquiry{}})

		resp, _ := app.postForm(t, "/enquiries/delete/7/", url.Values{}, nil)

		body := followToList(t, app, resp)
		assert.Contains(t, body, "Enquiry deleted.")
	})

	t.Run("missing row", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		app.login(t)
		app.enquiryRepo.EXPECT().GetByID(mock.Anything, int64(99)).Return(nil, repositories.ErrNotFound).Once()

		resp, _ := app.postForm(t, "/enquiries/delete/99/", url.Values{}, nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})
		app.login(t)

		resp, _ := app.get(t, "/enquiries/delete/abc/")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminDeleteWithoutID(t *testing.T) {
	app := newTestApp(t, nil, config.OIDCConfig{})
	app.login(t)
	app.gateway.EXPECT().List(mock.Anything).Return(gateway.ListResult{Available: true, Enquiries: []models.ExternalEnquiry{}})

	resp, _ := app.get(t, "/enquiries/delete/")

	body := followToList(t, app, resp)
	assert.Contains(t, body, "No ID provided to delete.")
}

// fakeProvider is a scripted single sign-on provider
type fakeProvider struct {
	claims authenticator.Claims
}

func (p *fakeProvider) GetAuthURL(state string) string {
	return "https://idp.example.com/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) ExchangeCode(ctx context.Context, code string) (*authenticator.Token, error) {
	if code != "good-code" {
		return nil, errors.New("invalid_grant")
	}
	return &authenticator.Token{IDToken: "id-token"}, nil
}

func (p *fakeProvider) GetClaims(ctx context.Context, token *authenticator.Token) (authenticator.Claims, error) {
	return p.claims, nil
}

func startSingleSignOn(t *testing.T, app *testApp) string {
	t.Helper()
	resp, _ := app.get(t, "/login")
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestSingleSignOn(t *testing.T) {
	claims := authenticator.Claims{"sub": "idp|1", "email": "Admin@Example.com", "nickname": "boss"}
	oidcCfg := config.OIDCConfig{Domain: "idp.example.com", AdminEmails: []string{"admin@example.com"}}

	t.Run("disabled", func(t *testing.T) {
		app := newTestApp(t, nil, config.OIDCConfig{})

		resp, _ := app.get(t, "/login")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("allowed admin", func(t *testing.T) {
		app := newTestApp(t, &fakeProvider{claims: claims}, oidcCfg)

		_, body := app.get(t, "/admin-login/")
		assert.Contains(t, body, "single sign-on")

		state := startSingleSignOn(t, app)
		resp, _ := app.get(t, "/callback?code=good-code&state="+url.QueryEscape(state))
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/enquiries/list/", resp.Header.Get("Location"))

		app.gateway.EXPECT().List(mock.Anything).Return(gateway.ListResult{Available: true, Enquiries: []models.ExternalEnquiry{}}).Once()
		resp, body = app.get(t, "/enquiries/list/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "boss")
	})

	t.Run("email not allowed", func(t *testing.T) {
		other := authenticator.Claims{"sub": "idp|2", "email": "someone@example.com"}
		app := newTestApp(t, &fakeProvider{claims: other}, oidcCfg)

		state := startSingleSignOn(t, app)
		resp, _ := app.get(t, "/callback?code=good-code&state="+url.QueryEscape(state))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, _ = app.get(t, "/enquiries/list/")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})

	t.Run("state mismatch", func(t *testing.T) {
		app := newTestApp(t, &fakeProvider{claims: claims}, oidcCfg)

		startSingleSignOn(t, app)
		resp, _ := app.get(t, "/callback?code=good-code&state=forged")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad code", func(t *testing.T) {
		app := newTestApp(t, &fakeProvider{claims: claims}, oidcCfg)

		state := startSingleSignOn(t, app)
		resp, _ := app.get(t, "/callback?code=bad&state="+url.QueryEscape(state))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestIsLocalPath(t *testing.T) {
	assert.True(t, isLocalPath("/enquiries/list/?q=ann"))
	assert.False(t, isLocalPath("//evil.example.com"))
	assert.False(t, isLocalPath("https://evil.example.com"))
	assert.False(t, isLocalPath("/\\evil.example.com"))
}
