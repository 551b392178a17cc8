package server_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/restaurant-console/gateway"
	"github.com/jrsteele09/restaurant-console/gateway/gatewayfake"
	"github.com/jrsteele09/restaurant-console/internal/config"
	"github.com/jrsteele09/restaurant-console/server"
	"github.com/jrsteele09/restaurant-console/sessions"
	"github.com/jrsteele09/restaurant-console/viewstate"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@example.com"
	testSubAdminEmail = "owner@example.com"
	testPassword      = "password123"
)

// testConfig overrides the environment backed config
type testConfig struct {
	config.Config
	rateLimit     bool
	loginAttempts int
}

func (testConfig) GetEnv() string                   { return "TEST" }
func (testConfig) GetAppName() string               { return "Console" }
func (c testConfig) GetEnableRateLimiting() bool    { return c.rateLimit }
func (c testConfig) GetLoginAttemptsPerMinute() int { return c.loginAttempts }

type testFixture struct {
	backend *gatewayfake.Backend
	views   *viewstate.Registry
	server  *server.Server
}

func setupTestFixture(t *testing.T, cfg testConfig) *testFixture {
	t.Helper()

	backend := gatewayfake.New()
	backend.AddUser(gatewayfake.User{ID: 1, Email: testAdminEmail, Password: testPassword, Role: "admin"})
	backend.AddUser(gatewayfake.User{ID: 7, Email: testSubAdminEmail, Password: testPassword, Role: "subadmin"})
	backend.AddCollection("plans", false)
	backend.AddCollection("menus", false)
	backend.AddCollection("tables", true)
	for i := 1; i <= 25; i++ {
		backend.Seed("plans", map[string]any{"name": fmt.Sprintf("plan %d", i), "price": 10, "duration_days": 30})
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	gw, err := gateway.New(srv.URL+"/api/", time.Second)
	require.NoError(t, err)
	store, err := sessions.NewCookieStore("test-secret", time.Hour)
	require.NoError(t, err)
	views := viewstate.NewRegistry(time.Minute)

	if cfg.Config == nil {
		cfg.Config = config.New()
	}
	s, err := server.New(cfg, store, gw, views)
	require.NoError(t, err)

	return &testFixture{backend: backend, views: views, server: s}
}

func (f *testFixture) do(method, target string, form url.Values, cookies []*http.Cookie, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

var viewKeyPattern = regexp.MustCompile(`view=([0-9a-f-]{36})`)

// open renders a list page the way a new tab would and returns its view key
func (f *testFixture) open(t *testing.T, target string, cookies []*http.Cookie) (string, string) {
	t.Helper()
	rec := f.do(http.MethodGet, target, nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m := viewKeyPattern.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2, "list page carries no view key")
	return m[1], rec.Body.String()
}

func (f *testFixture) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	rec := f.do(http.MethodPost, "/auth/login", url.Values{"email": {email}, "password": {testPassword}}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := server.New(testConfig{Config: config.New()}, nil, nil, nil)
	require.Error(t, err)
}

func TestRootRedirect(t *testing.T) {
	f := setupTestFixture(t, testConfig{})

	rec := f.do(http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	rec = f.do(http.MethodGet, "/", nil, f.login(t, testAdminEmail))
	require.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	rec = f.do(http.MethodGet, "/", nil, f.login(t, testSubAdminEmail))
	require.Equal(t, "/subadmin/dashboard", rec.Header().Get("Location"))
}

func TestLogin(t *testing.T) {
	f := setupTestFixture(t, testConfig{})

	t.Run("success redirects to the role dashboard", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/auth/login", url.Values{"email": {testSubAdminEmail}, "password": {testPassword}}, nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/subadmin/dashboard", rec.Header().Get("Location"))
		require.NotEmpty(t, rec.Result().Cookies())
	})

	t.Run("bad credentials stay on the login page", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/auth/login", url.Values{"email": {testAdminEmail}, "password": {"wrong"}}, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, rec.Header().Get("Location"))
		require.Empty(t, rec.Result().Cookies())
		require.Contains(t, rec.Body.String(), "Invalid email or password")
		require.Contains(t, rec.Body.String(), testAdminEmail)
	})

	t.Run("invalid form never reaches the backend", func(t *testing.T) {
		before := f.backend.CountRequests(http.MethodPost, "/api/auth/login/")
		rec := f.do(http.MethodPost, "/auth/login", url.Values{"email": {"nope"}}, nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "field-error")
		require.Equal(t, before, f.backend.CountRequests(http.MethodPost, "/api/auth/login/"))
	})

	t.Run("login page redirects a signed in operator", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/login", nil, f.login(t, testAdminEmail))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
	})

	t.Run("htmx login gets HX-Redirect", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/auth/login", url.Values{"email": {testAdminEmail}, "password": {testPassword}}, nil, "HX-Request", "true")
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "/admin/dashboard", rec.Header().Get("HX-Redirect"))
	})
}

func TestLogin_Throttled(t *testing.T) {
	f := setupTestFixture(t, testConfig{rateLimit: true, loginAttempts: 2})
	bad := url.Values{"email": {testAdminEmail}, "password": {"wrong"}}

	require.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/auth/login", bad, nil).Code)
	require.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/auth/login", bad, nil).Code)

	rec := f.do(http.MethodPost, "/auth/login", bad, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, 2, f.backend.CountRequests(http.MethodPost, "/api/auth/login/"))
}

func TestGuard(t *testing.T) {
	f := setupTestFixture(t, testConfig{})

	t.Run("anonymous goes to login", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/admin/plans", nil, nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("wrong role goes to unauthorized, not login", func(t *testing.T) {
		cookies := f.login(t, testSubAdminEmail)
		rec := f.do(http.MethodGet, "/admin/plans", nil, cookies)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/unauthorized", rec.Header().Get("Location"))

		rec = f.do(http.MethodGet, "/unauthorized", nil, cookies)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), `href="/subadmin/dashboard"`)
		require.Zero(t, f.backend.CountRequests(http.MethodGet, "/api/plans/"))
	})

	t.Run("htmx requests get HX-Redirect", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/subadmin/menu", nil, f.login(t, testAdminEmail), "HX-Request", "true")
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "/unauthorized", rec.Header().Get("HX-Redirect"))
	})

	t.Run("tampered cookie counts as signed out", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/admin/dashboard", nil, []*http.Cookie{{Name: sessions.CookieName, Value: "garbage"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestSubAdminMenu(t *testing.T) {
	f := setupTestFixture(t, testConfig{})

	rec := f.do(http.MethodGet, "/subadmin/menu", nil, f.login(t, testSubAdminEmail))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `href="/subadmin/menu-items"`)
	require.Contains(t, body, "Business Hours")
	require.NotContains(t, body, "/admin/restaurants")
	require.NotContains(t, body, "/admin/plans")
	require.Contains(t, body, "No Menu yet.")
}

func TestList_Pagination(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)

	rec := f.do(http.MethodGet, "/admin/plans", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Page 1 of 3 (25 total)")
	require.Contains(t, rec.Body.String(), `<span class="disabled">Previous</span>`)

	view, body := f.open(t, "/admin/plans?page=3", cookies)
	require.Contains(t, body, "Page 3 of 3 (25 total)")
	require.Equal(t, 5, strings.Count(body, "/delete?view="+view+`"`))
	require.Contains(t, body, "<td>plan 21</td>")
	require.Contains(t, body, `<span class="disabled">Next</span>`)
	require.Contains(t, body, `href="/admin/plans?page=2&amp;view=`+view+`"`)

	// a reload of the same view stays on its page, a new tab starts at 1
	rec = f.do(http.MethodGet, "/admin/plans?view="+view, nil, cookies)
	require.Contains(t, rec.Body.String(), "Page 3 of 3")
	rec = f.do(http.MethodGet, "/admin/plans", nil, cookies)
	require.Contains(t, rec.Body.String(), "Page 1 of 3")
}

func TestList_BareArray(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	for i := 1; i <= 12; i++ {
		f.backend.Seed("tables", map[string]any{"number": fmt.Sprintf("T%d", i), "capacity": 4})
	}
	cookies := f.login(t, testSubAdminEmail)

	rec := f.do(http.MethodGet, "/subadmin/tables?page=2", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Page 2 of 2 (12 total)")
	require.Contains(t, rec.Body.String(), "<td>T12</td>")
}

func TestDelete_CancelSendsNothing(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)
	view, _ := f.open(t, "/admin/plans", cookies)

	rec := f.do(http.MethodPost, "/admin/plans/7/delete?view="+view, url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/plans?page=1&view="+view, rec.Header().Get("Location"))

	rec = f.do(http.MethodGet, "/admin/plans?page=1&view="+view, nil, cookies)
	require.Contains(t, rec.Body.String(), "Delete Plan plan 7?")
	require.Contains(t, rec.Body.String(), `<input type="hidden" name="id" value="7">`)

	rec = f.do(http.MethodPost, "/admin/plans/delete/cancel?view="+view, url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = f.do(http.MethodGet, "/admin/plans?page=1&view="+view, nil, cookies)
	require.NotContains(t, rec.Body.String(), `role="dialog"`)
	require.Contains(t, rec.Body.String(), "<td>plan 7</td>")
	require.Zero(t, f.backend.CountRequests(http.MethodDelete, "/api/plans/"))
}

func TestDelete_ConfirmReloads(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)
	view, _ := f.open(t, "/admin/plans", cookies)

	require.Equal(t, http.StatusSeeOther, f.do(http.MethodPost, "/admin/plans/7/delete?view="+view, url.Values{}, cookies).Code)
	rec := f.do(http.MethodPost, "/admin/plans/delete/confirm?view="+view, url.Values{"id": {"7"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "notice=Plan+deleted")
	require.NotContains(t, f.backend.IDs("plans"), 7)

	rec = f.do(http.MethodGet, "/admin/plans?page=1&view="+view, nil, cookies)
	body := rec.Body.String()
	require.NotContains(t, body, "<td>plan 7</td>")
	require.Contains(t, body, "<td>plan 11</td>")
	require.Contains(t, body, "(24 total)")

	// a second confirm has nothing pending
	rec = f.do(http.MethodPost, "/admin/plans/delete/confirm?view="+view, url.Values{"id": {"7"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "error=")
	require.Equal(t, 1, f.backend.CountRequests(http.MethodDelete, "/api/plans/"))
}

func TestDelete_LastItemOnLastPage(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	for i := 1; i <= 11; i++ {
		f.backend.Seed("menus", map[string]any{"name": fmt.Sprintf("menu %d", i)})
	}
	cookies := f.login(t, testSubAdminEmail)
	view, body := f.open(t, "/subadmin/menu?page=2", cookies)
	require.Contains(t, body, "Page 2 of 2 (11 total)")

	require.Equal(t, http.StatusSeeOther, f.do(http.MethodPost, "/subadmin/menu/11/delete?view="+view, url.Values{}, cookies).Code)
	rec := f.do(http.MethodPost, "/subadmin/menu/delete/confirm?view="+view, url.Values{"id": {"11"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/subadmin/menu?page=1&view="+view))

	rec = f.do(http.MethodGet, "/subadmin/menu?view="+view, nil, cookies)
	require.Contains(t, rec.Body.String(), "Page 1 of 1 (10 total)")
}

func TestDelete_FailureKeepsDialogOpen(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)
	view, _ := f.open(t, "/admin/plans", cookies)
	require.Equal(t, http.StatusSeeOther, f.do(http.MethodPost, "/admin/plans/3/delete?view="+view, url.Values{}, cookies).Code)

	f.backend.Fail("plans", http.MethodDelete, http.StatusConflict, `{"detail":"Plan is used by a restaurant"}`)
	rec := f.do(http.MethodPost, "/admin/plans/delete/confirm?view="+view, url.Values{"id": {"3"}}, cookies)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Plan is used by a restaurant")
	require.Contains(t, body, "Delete Plan plan 3?")
	require.Contains(t, f.backend.IDs("plans"), 3)

	f.backend.ClearFailures()
	rec = f.do(http.MethodPost, "/admin/plans/delete/confirm?view="+view, url.Values{"id": {"3"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotContains(t, f.backend.IDs("plans"), 3)
}

func TestDelete_TwoTabsKeepSeparateDialogs(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)
	first, _ := f.open(t, "/admin/plans", cookies)
	second, _ := f.open(t, "/admin/plans", cookies)
	require.NotEqual(t, first, second)

	require.Equal(t, http.StatusSeeOther, f.do(http.MethodPost, "/admin/plans/3/delete?view="+first, url.Values{}, cookies).Code)
	require.Equal(t, http.StatusSeeOther, f.do(http.MethodPost, "/admin/plans/5/delete?view="+second, url.Values{}, cookies).Code)

	// the first tab still shows plan 3
	rec := f.do(http.MethodGet, "/admin/plans?view="+first, nil, cookies)
	require.Contains(t, rec.Body.String(), "Delete Plan plan 3?")

	rec = f.do(http.MethodPost, "/admin/plans/delete/confirm?view="+first, url.Values{"id": {"3"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotContains(t, f.backend.IDs("plans"), 3)
	require.Contains(t, f.backend.IDs("plans"), 5)

	rec = f.do(http.MethodGet, "/admin/plans?view="+second, nil, cookies)
	require.Contains(t, rec.Body.String(), "Delete Plan plan 5?")
}

func TestDelete_ConfirmForAnotherRecordSendsNothing(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)
	view, _ := f.open(t, "/admin/plans", cookies)

	// the dialog rendered plan 3, then the same view was asked about plan 5
	require.Equal(t, http.StatusSeeOther, f.do(http.MethodPost, "/admin/plans/3/delete?view="+view, url.Values{}, cookies).Code)
	require.Equal(t, http.StatusSeeOther, f.do(http.MethodPost, "/admin/plans/5/delete?view="+view, url.Values{}, cookies).Code)

	rec := f.do(http.MethodPost, "/admin/plans/delete/confirm?view="+view, url.Values{"id": {"3"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "error=")
	require.Zero(t, f.backend.CountRequests(http.MethodDelete, "/api/plans/"))
	require.Contains(t, f.backend.IDs("plans"), 3)
	require.Contains(t, f.backend.IDs("plans"), 5)

	// a confirm without any id is refused as well
	rec = f.do(http.MethodPost, "/admin/plans/delete/confirm?view="+view, url.Values{}, cookies)
	require.Contains(t, rec.Header().Get("Location"), "error=")
	require.Zero(t, f.backend.CountRequests(http.MethodDelete, "/api/plans/"))
}

func TestDelete_UnknownRecord(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)

	rec := f.do(http.MethodPost, "/admin/plans/99/delete", url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "error=")
	require.Zero(t, f.backend.CountRequests(http.MethodDelete, "/api/plans/"))
}

func TestCreate(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)

	t.Run("form renders", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/admin/plans/new", nil, cookies)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `action="/admin/plans/new"`)
	})

	t.Run("invalid form is not sent", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/admin/plans/new", url.Values{"price": {"-3"}}, cookies)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "Name is required")
		require.Contains(t, body, "Price must not be negative")
		require.Contains(t, body, `value="-3"`)
		require.Zero(t, f.backend.CountRequests(http.MethodPost, "/api/plans/"))
	})

	t.Run("valid form creates and redirects", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/admin/plans/new", url.Values{"name": {"Gold"}, "price": {"19.9"}, "duration_days": {"30"}}, cookies)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/admin/plans?notice=Plan+created", rec.Header().Get("Location"))
		require.Len(t, f.backend.IDs("plans"), 26)
	})

	t.Run("backend rejection is shown on the form", func(t *testing.T) {
		f.backend.Fail("plans", http.MethodPost, http.StatusBadRequest, `{"name":["plan with this name already exists."]}`)
		defer f.backend.ClearFailures()
		rec := f.do(http.MethodPost, "/admin/plans/new", url.Values{"name": {"Gold"}, "price": {"1"}, "duration_days": {"1"}}, cookies)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "plan with this name already exists.")
	})
}

func TestEdit(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)

	rec := f.do(http.MethodGet, "/admin/plans/2/edit", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `value="plan 2"`)
	require.Contains(t, rec.Body.String(), `value="30"`)

	rec = f.do(http.MethodPost, "/admin/plans/2/edit", url.Values{"name": {"Silver"}, "price": {"5"}, "duration_days": {"7"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, 1, f.backend.CountRequests(http.MethodPut, "/api/plans/2/"))

	rec = f.do(http.MethodGet, "/admin/plans/99/edit", nil, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "error=")
}

func TestBackendRejectsToken_EndsSession(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)
	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/admin/plans", nil, cookies).Code)
	require.Equal(t, 1, f.views.Count())

	f.backend.RevokeAll()
	rec := f.do(http.MethodGet, "/admin/plans?page=2", nil, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login?error="))
	require.Zero(t, f.views.Count())

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessions.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared)
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)
	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/admin/plans", nil, cookies).Code)

	rec := f.do(http.MethodPost, "/auth/logout", url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.Equal(t, 1, f.backend.CountRequests(http.MethodPost, "/api/auth/logout/"))
	require.Zero(t, f.views.Count())

	// the revoked token no longer works upstream
	rec = f.do(http.MethodGet, "/admin/plans", nil, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login"))
}

func TestLogout_BackendFailureStillSignsOut(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	cookies := f.login(t, testAdminEmail)
	f.backend.FailLogout(true)

	rec := f.do(http.MethodPost, "/auth/logout", url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSchedule(t *testing.T) {
	f := setupTestFixture(t, testConfig{})
	f.backend.AddCollection("business-hours", true)
	f.backend.Seed("business-hours", map[string]any{"day": "monday", "open_time": "09:00", "close_time": "17:00"})

	rec := f.do(http.MethodGet, "/subadmin/schedule", nil, f.login(t, testSubAdminEmail))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "09:00")
}

func TestOperationalRoutes(t *testing.T) {
	f := setupTestFixture(t, testConfig{})

	rec := f.do(http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = f.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/static/console.css", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Cache-Control"))
}

func TestHealthz_AllowedOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://status.example.com")
	f := setupTestFixture(t, testConfig{})

	rec := f.do(http.MethodGet, "/healthz", nil, nil, "Origin", "https://status.example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://status.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = f.do(http.MethodGet, "/healthz", nil, nil, "Origin", "https://elsewhere.example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
