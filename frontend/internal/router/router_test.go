package router

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aribt/hackathon-cms/frontend/internal/export"
	"github.com/aribt/hackathon-cms/frontend/internal/session"
	"github.com/aribt/hackathon-cms/frontend/internal/setup"
	"github.com/aribt/hackathon-cms/internal/testbackend"
	"github.com/aribt/hackathon-cms/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csrfToken = "test-csrf-token"

type console struct {
	t       *testing.T
	handler http.Handler
	backend *testbackend.Backend
	session *session.Session
}

func newConsole(t *testing.T, opts testbackend.Options, token string, tweak func(*config.Config)) *console {
	t.Helper()
	backend := testbackend.New(opts)
	api := httptest.NewServer(backend.Handler())
	t.Cleanup(api.Close)

	cfg := config.Default()
	cfg.API.BaseURL = api.URL
	if tweak != nil {
		tweak(cfg)
	}

	store := &session.MemoryStore{}
	if token != "" {
		require.NoError(t, store.Save(token))
	}
	deps, err := setup.SetupWithStore(cfg, store)
	require.NoError(t, err)

	return &console{
		t:       t,
		handler: New(deps),
		backend: backend,
		session: deps.Hooks.Client.Session(),
	}
}

func (c *console) serve(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: csrfToken})
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return rr
}

func (c *console) get(path string) *httptest.ResponseRecorder {
	return c.serve(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *console) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", csrfToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.serve(req)
}

func (c *console) postMultipart(path string, fields map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(c.t, mw.WriteField("csrf_token", csrfToken))
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.serve(req)
}

func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, location, rr.Header().Get("Location"))
}

func TestLoginFlow(t *testing.T) {
	c := newConsole(t, testbackend.Options{}, "", nil)

	assertRedirect(t, c.get("/"), "/login")
	page := c.get("/login")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Please log in to continue")

	t.Run("wrong password keeps the email", func(t *testing.T) {
		rr := c.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"nope"}})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid email or password")
		assert.Contains(t, rr.Body.String(), `value="admin@example.com"`)
		assert.False(t, c.session.Authenticated())
	})

	t.Run("valid credentials", func(t *testing.T) {
		rr := c.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"secret"}})
		assertRedirect(t, rr, "/")
		assert.True(t, c.session.Authenticated())

		dash := c.get("/")
		assert.Equal(t, http.StatusOK, dash.Code)
		assert.Contains(t, dash.Body.String(), "Login successful")
		assertRedirect(t, c.get("/login"), "/")
	})

	t.Run("logout", func(t *testing.T) {
		assertRedirect(t, c.post("/logout", nil), "/login")
		assert.False(t, c.session.Authenticated())
		assert.Contains(t, c.get("/login").Body.String(), "Logged out successfully")
	})
}

func TestLoginThrottle(t *testing.T) {
	c := newConsole(t, testbackend.Options{}, "", func(cfg *config.Config) {
		cfg.Server.LoginAttemptsPerMinute = 1
	})
	bad := url.Values{"email": {"admin@example.com"}, "password": {"nope"}}

	for i := 0; i < loginBurst; i++ {
		assert.Equal(t, http.StatusUnauthorized, c.post("/login", bad).Code)
	}
	sent := len(c.backend.Requests())

	assertRedirect(t, c.post("/login", bad), "/login")
	assert.Len(t, c.backend.Requests(), sent, "throttled attempt never reaches the backend")
	assert.Contains(t, c.get("/login").Body.String(), "Too many attempts")
}

func TestCSRFRequired(t *testing.T) {
	c := newConsole(t, testbackend.Options{}, "token", nil)

	req := httptest.NewRequest(http.MethodPost, "/sponsors", strings.NewReader("title=x&type=gold"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := c.serve(req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, c.backend.Requests())
}

func TestSponsorsLifecycle(t *testing.T) {
	c := newConsole(t, testbackend.Options{}, "token", nil)

	assert.Contains(t, c.get("/sponsors").Body.String(), "No sponsors yet.")

	assertRedirect(t, c.postMultipart("/sponsors", map[string]string{"title": "Acme", "type": "gold"}), "/sponsors")
	page := c.get("/sponsors").Body.String()
	assert.Contains(t, page, "Sponsor added successfully!")
	assert.Contains(t, page, "Acme")

	records := c.backend.Records("sponsers")
	require.Len(t, records, 1)
	id := records[0]["id"].(string)

	edit := c.get("/sponsors?edit=" + id).Body.String()
	assert.Contains(t, edit, "Edit sponsor")
	assert.Contains(t, edit, `action="/sponsors/`+id+`"`)

	assertRedirect(t, c.postMultipart("/sponsors/"+id, map[string]string{"title": "Acme Corp", "type": "silver"}), "/sponsors")
	page = c.get("/sponsors").Body.String()
	assert.Contains(t, page, "Sponsor updated successfully!")
	assert.Contains(t, page, "Acme Corp")

	assertRedirect(t, c.post("/sponsors/"+id+"/delete", nil), "/sponsors")
	page = c.get("/sponsors").Body.String()
	assert.Contains(t, page, "Sponsor removed successfully!")
	assert.Contains(t, page, "No sponsors yet.")
}

func TestSponsorInvalidFormIsNotSent(t *testing.T) {
	c := newConsole(t, testbackend.Options{}, "token", nil)

	assertRedirect(t, c.postMultipart("/sponsors", map[string]string{"type": "gold"}), "/sponsors")
	assert.Empty(t, c.backend.Requests())
	assert.Contains(t, c.get("/sponsors").Body.String(), "title is required")
}

func TestRegistrations(t *testing.T) {
	c := newConsole(t, testbackend.Options{}, "token", nil)
	ids := c.backend.Seed("registrationformhacker",
		map[string]any{"teamname": "Alpha Team", "email": "alpha@example.com", "contactno": "111", "verified": "no"},
		map[string]any{"teamname": "Beta Crew", "email": "beta@example.com", "contactno": "222", "verified": "yes"},
	)

	t.Run("search", func(t *testing.T) {
		page := c.get("/registrations?q=alpha").Body.String()
		assert.Contains(t, page, "Alpha Team")
		assert.NotContains(t, page, "Beta Crew")
	})

	t.Run("detail", func(t *testing.T) {
		rr := c.get("/registrations/" + ids[0])
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "alpha@example.com")
	})

	t.Run("verify from the detail page", func(t *testing.T) {
		back := "/registrations/" + ids[0]
		rr := c.post(back+"/status", url.Values{"verified": {"yes"}, "back": {back}})
		assertRedirect(t, rr, back)
		assert.Equal(t, "yes", c.backend.Records("registrationformhacker")[0]["verified"])
		assert.Contains(t, c.get(back).Body.String(), "Registration verified successfully!")
	})

	t.Run("foreign back target is ignored", func(t *testing.T) {
		rr := c.post("/registrations/"+ids[1]+"/status", url.Values{"verified": {"no"}, "back": {"//evil.example"}})
		assertRedirect(t, rr, "/registrations")
		assert.Equal(t, "no", c.backend.Records("registrationformhacker")[1]["verified"])
	})

	t.Run("export", func(t *testing.T) {
		rr := c.get("/registrations/export?q=beta")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), export.Filename)

		lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[1], "Beta Crew,beta@example.com,222,"))
	})

	t.Run("delete", func(t *testing.T) {
		assertRedirect(t, c.post("/registrations/"+ids[1]+"/delete", nil), "/registrations")
		assert.Len(t, c.backend.Records("registrationformhacker"), 1)
	})
}

func TestAbout(t *testing.T) {
	t.Run("renders and saves the description", func(t *testing.T) {
		c := newConsole(t, testbackend.Options{}, "token", nil)
		c.backend.Seed("abouthackerthon", map[string]any{"description": "Build **fast**"})

		page := c.get("/about").Body.String()
		assert.Contains(t, page, "<strong>fast</strong>")

		assertRedirect(t, c.post("/about", url.Values{"description": {"Ship it"}}), "/about")
		assert.Equal(t, "Ship it", c.backend.Records("abouthackerthon")[0]["description"])
	})

	t.Run("no record disables editing", func(t *testing.T) {
		c := newConsole(t, testbackend.Options{}, "token", nil)

		page := c.get("/about").Body.String()
		assert.Contains(t, page, "No existing hackathon information found")
		assert.NotContains(t, page, `name="description"`)
	})
}

func TestExpiredSessionRedirectsToLogin(t *testing.T) {
	c := newConsole(t, testbackend.Options{RequireAuth: true, FixedToken: "fresh"}, "stale", nil)

	assertRedirect(t, c.get("/sponsors"), "/login")
	assert.False(t, c.session.Authenticated())
	assert.Contains(t, c.get("/login").Body.String(), "Authentication failed")
}

func TestDashboardCounts(t *testing.T) {
	c := newConsole(t, testbackend.Options{}, "token", nil)
	c.backend.Seed("sponsers", map[string]any{"title": "A", "type": "gold"}, map[string]any{"title": "B", "type": "gold"})
	c.backend.Seed("registrationformhacker",
		map[string]any{"teamname": "T1", "verified": "yes"},
		map[string]any{"teamname": "T2", "verified": "no"},
		map[string]any{"teamname": "T3", "verified": "no"},
	)

	page := c.get("/").Body.String()
	assert.Contains(t, page, "<h2>2</h2>Sponsors")
	assert.Contains(t, page, "<h2>3</h2>Registrations")
	assert.Contains(t, page, "1 verified · 2 pending")
}

func TestMetricsIsPublic(t *testing.T) {
	c := newConsole(t, testbackend.Options{}, "", nil)

	rr := c.get("/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
}
