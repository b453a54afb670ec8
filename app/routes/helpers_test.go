package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"blog/app/application"
	"blog/app/config"
	"blog/app/logging"
	"blog/app/models"
	"blog/app/repositories"
)

func setupTestApp(t *testing.T) (*application.Application, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "blog.db")
	cfg.SessionPath = ""
	cfg.StaticDir = ""

	app, err := application.New(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	router, err := SetupRoutes(app)
	require.NoError(t, err)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return app, server
}

// client is a browser stand-in that keeps cookies and does not follow redirects.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, server *httptest.Server) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{
		t:    t,
		base: server.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// response is a fully read HTTP response.
type response struct {
	Code     int
	Location string
	Body     string
}

func (c *client) do(req *http.Request) response {
	c.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return response{Code: resp.StatusCode, Location: resp.Header.Get("Location"), Body: string(body)}
}

func (c *client) get(path string) response {
	c.t.Helper()
	req, err := http.NewRequest("GET", c.base+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

func (c *client) post(path string, form url.Values) response {
	c.t.Helper()
	req, err := http.NewRequest("POST", c.base+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) register(username, password string) response {
	c.t.Helper()
	return c.post("/register", url.Values{"username": {username}, "password": {password}})
}

func (c *client) login(username, password string) response {
	c.t.Helper()
	return c.post("/login", url.Values{"username": {username}, "password": {password}})
}

// signedIn registers and logs in a fresh client.
func signedIn(t *testing.T, server *httptest.Server, username string) *client {
	t.Helper()
	c := newClient(t, server)
	require.Equal(t, http.StatusSeeOther, c.register(username, "secret").Code)
	require.Equal(t, http.StatusSeeOther, c.login(username, "secret").Code)
	return c
}

func categoryByName(t *testing.T, app *application.Application, name string) *models.Category {
	t.Helper()
	categories, err := repositories.NewGormCategoryRepository(app.DB).List(context.Background())
	require.NoError(t, err)
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q not seeded", name)
	return nil
}

func summaries(t *testing.T, app *application.Application) []*models.PostSummary {
	t.Helper()
	posts, err := repositories.NewGormPostRepository(app.DB).ListSummaries(context.Background())
	require.NoError(t, err)
	return posts
}
