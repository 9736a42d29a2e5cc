package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfolio.dev/internal/config"
	"termfolio.dev/internal/fakeapi"
	"termfolio.dev/internal/gateway"
	"termfolio.dev/internal/models"
	"termfolio.dev/internal/observability"
	"termfolio.dev/internal/state"
	"termfolio.dev/internal/store"
)

type testEnv struct {
	fake   *fakeapi.Server
	state  *state.Container
	router http.Handler
	token  string
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	return setupWithStore(t, store.NewMemory())
}

func setupWithStore(t *testing.T, kv store.KV) *testEnv {
	t.Helper()
	logger := observability.Discard()

	fake := fakeapi.New(fakeapi.WithLogger(logger))
	require.NoError(t, fake.Load(fakeapi.Seed{
		Site: models.SiteInfo{ID: "owner-1", Name: "Jane Roe", Username: "jane", Password: "hunter2"},
		Experience: []models.Experience{
			{ID: "e1", Role: "Lead", Company: "Acme", StartPeriod: "2020"},
		},
		Projects: []models.Project{
			{ID: "p1", Name: "One", Tech: []models.Technology{{ID: "go", Name: "Go"}}},
		},
		Technologies: []models.Technology{{ID: "go", Name: "Go"}, {ID: "react", Name: "React"}},
	}))
	backend := httptest.NewServer(fake.Handler())
	t.Cleanup(backend.Close)

	defaults, err := config.LoadDefaults()
	require.NoError(t, err)

	tokens := store.NewTokenStore(kv)
	gw := gateway.New(backend.URL, tokens, gateway.WithLogger(logger))

	st, err := state.New(context.Background(), state.Deps{
		Gateway:     gw,
		Tokens:      tokens,
		Preferences: store.NewPreferences(kv),
		Defaults:    defaults,
		Logger:      logger,
	})
	require.NoError(t, err)
	st.Bootstrap(context.Background())

	router := SetupRoutes(Deps{
		Config:  &config.Config{AllowedOrigins: "http://localhost:5173"},
		State:   st,
		Gateway: gw,
		Logger:  logger,
	})
	return &testEnv{fake: fake, state: st, router: router}
}

// do sends a request carrying the session token obtained by login, if any
func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	return e.doAs(e.token, method, path, body)
}

func (e *testEnv) doAs(token, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	rec := e.do(http.MethodPost, "/admin/login", `{"username":"jane","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	e.token = decode[map[string]string](t, rec)["token"]
	require.NotEmpty(t, e.token)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	e := setup(t)
	rec := e.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestViewer_ServesLoadedContent(t *testing.T) {
	e := setup(t)

	site := decode[models.SiteInfo](t, e.do(http.MethodGet, "/api/site", ""))
	assert.Equal(t, "Jane Roe", site.Name)
	assert.Empty(t, site.Username)

	projects := decode[[]models.Project](t, e.do(http.MethodGet, "/api/projects", ""))
	require.Len(t, projects, 1)
	assert.Equal(t, "p1", projects[0].ID)

	rec := e.do(http.MethodGet, "/api/projects/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Project not found: nope")

	rec = e.do(http.MethodGet, "/api/projects/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tech_names":["Go"]`)

	assert.Len(t, decode[[]models.Project](t, e.do(http.MethodGet, "/api/projects?tech=go", "")), 1)
	assert.Empty(t, decode[[]models.Project](t, e.do(http.MethodGet, "/api/projects?tech=rust", "")))

	rec = e.do(http.MethodGet, "/api/experience", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"period":"2020 - Present"`)

	view := decode[state.View](t, e.do(http.MethodGet, "/api/state", ""))
	assert.False(t, view.Loading)
	assert.Equal(t, state.Loaded, view.Collections[state.CollectionProjects].State)
}

func TestViewer_Preferences(t *testing.T) {
	e := setup(t)

	rec := e.do(http.MethodPut, "/api/theme", `{"theme":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	view := decode[state.View](t, e.do(http.MethodPut, "/api/theme", `{"theme":"light"}`))
	assert.Equal(t, state.ThemeLight, view.Theme)

	view = decode[state.View](t, e.do(http.MethodPost, "/api/theme/toggle", ""))
	assert.Equal(t, state.ThemeDark, view.Theme)

	view = decode[state.View](t, e.do(http.MethodPut, "/api/mode", `{"mode":"classic"}`))
	assert.Equal(t, state.ModeClassic, view.Mode)

	view = decode[state.View](t, e.do(http.MethodPut, "/api/page", `{"page":"projects"}`))
	assert.Equal(t, state.PageProjects, view.Page)

	rec = e.do(http.MethodPut, "/api/page", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_RequiresSession(t *testing.T) {
	e := setup(t)

	for _, path := range []string{"/admin/info", "/admin/experience", "/admin/projects", "/admin/technologies"} {
		rec := e.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	assert.Zero(t, e.fake.CountCalls(http.MethodGet, "/technos"))
}

func TestAdmin_LoginFailure(t *testing.T) {
	e := setup(t)

	rec := e.do(http.MethodPost, "/admin/login", `{"username":"jane","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.False(t, e.state.Authenticated())
}

func TestAdmin_LoginLogout(t *testing.T) {
	e := setup(t)
	e.login(t)
	assert.True(t, e.state.Authenticated())

	rec := e.do(http.MethodGet, "/admin/info", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodPost, "/admin/logout", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, e.state.Authenticated())

	rec = e.do(http.MethodGet, "/admin/info", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_SessionRequiresTokenOnEveryRequest(t *testing.T) {
	e := setup(t)
	e.login(t)

	rec := e.doAs("", http.MethodGet, "/admin/info", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.doAs("not-the-token", http.MethodPost, "/admin/projects", `{"name":"Sneaky"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, e.fake.CountCalls(http.MethodPost, "/project"))

	rec = e.doAs("", http.MethodPost, "/admin/logout", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, e.state.Authenticated())

	rec = e.doAs("Bearer "+e.token, http.MethodGet, "/admin/info", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdmin_StoredTokenDoesNotOpenAdminToAnonymousCallers(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, store.NewTokenStore(kv).Set(context.Background(), "persisted-token"))

	e := setupWithStore(t, kv)
	require.True(t, e.state.Authenticated())

	rec := e.do(http.MethodGet, "/admin/info", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.doAs("persisted-token", http.MethodGet, "/admin/info", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdmin_ConcurrentSaveIsRejected(t *testing.T) {
	e := setup(t)
	h := NewAdminHandler(e.state, nil, observability.Discard())

	h.projects.Lock()
	rec := httptest.NewRecorder()
	h.CreateProject(rec, httptest.NewRequest(http.MethodPost, "/admin/projects", strings.NewReader(`{"name":"Two"}`)))
	h.projects.Unlock()

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in progress")
	assert.Zero(t, e.fake.CountCalls(http.MethodPost, "/project"))
}

func TestAdmin_ProjectLifecycle(t *testing.T) {
	e := setup(t)
	e.login(t)

	rec := e.do(http.MethodPost, "/admin/projects", `{"name":"Two","description":"second","technology_ids":["go","react"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Project](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"Go", "React"}, created.TechNames())

	projects := decode[[]models.Project](t, e.do(http.MethodGet, "/api/projects", ""))
	assert.Len(t, projects, 2)

	rec = e.do(http.MethodPut, "/admin/projects/"+created.ID, `{"name":"Two v2","description":"second"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p, ok := e.state.Project(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Two v2", p.Name)

	rec = e.do(http.MethodPut, "/admin/projects/missing", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(http.MethodDelete, "/admin/projects/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok = e.state.Project(created.ID)
	assert.False(t, ok)
}

func TestAdmin_BackendRejectionKeepsState(t *testing.T) {
	e := setup(t)
	e.login(t)
	e.fake.Fail(http.MethodPost, "/experience", fakeapi.Failure{Type: fakeapi.FailureStatus, Status: http.StatusInternalServerError})

	rec := e.do(http.MethodPost, "/admin/experience", `{"role":"Dev","company":"B","start_period":"2018"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, e.state.Experience(), 1)
}

func TestAdmin_UpdateInfo(t *testing.T) {
	e := setup(t)
	e.login(t)

	rec := e.do(http.MethodPut, "/admin/info", `{"name":"Jane Q. Roe","title":"Engineer","bio":["hi"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Jane Q. Roe", e.state.SiteInfo().Name)
	assert.Equal(t, "owner-1", e.state.SiteInfo().ID)
}

func TestAdmin_Technologies(t *testing.T) {
	e := setup(t)
	e.login(t)

	rec := e.do(http.MethodPost, "/admin/technologies", `{"id":"rust","name":"Rust"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(http.MethodPost, "/admin/technologies", `{"name":"NoID"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodPut, "/admin/technologies/rust", `{"id":"ignored","name":"Rust Lang"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Technology](t, rec)
	assert.Equal(t, "rust", updated.ID)

	techs := decode[[]models.Technology](t, e.do(http.MethodGet, "/admin/technologies", ""))
	assert.Len(t, techs, 3)

	rec = e.do(http.MethodDelete, "/admin/technologies/rust", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
