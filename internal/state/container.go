// Package state holds the application state shared by every surface: view
// mode, theme, page, auth status and the editable portfolio content.
//
// The container is the only writer of that state. Site info is written
// through the gateway before it changes locally; the experience and project
// lists are replaced or merged by editors once the backend has confirmed a
// change.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"termfolio.dev/internal/config"
	"termfolio.dev/internal/gateway"
	"termfolio.dev/internal/models"
	"termfolio.dev/internal/observability"
)

// Gateway is the part of the backend client the container needs
type Gateway interface {
	FetchSiteInfo(ctx context.Context) (models.SiteInfo, error)
	UpdateSiteInfo(ctx context.Context, info models.SiteInfo) error
	FetchExperience(ctx context.Context) ([]models.Experience, error)
	FetchProjects(ctx context.Context) ([]models.Project, error)
}

// TokenStore persists the auth token
type TokenStore interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Preferences persists the theme
type Preferences interface {
	Theme(ctx context.Context) (string, bool, error)
	SetTheme(ctx context.Context, theme string) error
	ForgetMode(ctx context.Context) error
}

// Deps are the container's collaborators
type Deps struct {
	Gateway      Gateway
	Tokens       TokenStore
	Preferences  Preferences
	Defaults     *config.Defaults
	DefaultTheme Theme
	Logger       *slog.Logger
}

// Container is the single source of truth for application state.
//
// It is safe for concurrent use.
type Container struct {
	gw     Gateway
	tokens TokenStore
	prefs  Preferences
	logger *slog.Logger

	bootstrap sync.Once

	mu            sync.RWMutex
	mode          Mode
	theme         Theme
	page          Page
	authenticated bool
	site          models.SiteInfo
	experience    []models.Experience
	projects      []models.Project
	status        map[Collection]*CollectionStatus
	lastError     string
}

// New creates a container seeded with the bundled defaults. It removes the
// legacy persisted mode, restores the persisted theme and treats a stored
// token as an authenticated session without asking the backend.
func New(ctx context.Context, deps Deps) (*Container, error) {
	if deps.Gateway == nil || deps.Tokens == nil || deps.Preferences == nil {
		return nil, errors.New("state: gateway, token store and preferences are required")
	}
	if deps.Defaults == nil {
		return nil, errors.New("state: defaults are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		gw:         deps.Gateway,
		tokens:     deps.Tokens,
		prefs:      deps.Preferences,
		logger:     logger,
		page:       PageHome,
		theme:      ThemeDark,
		site:       deps.Defaults.Site.Clone(),
		experience: cloneExperience(deps.Defaults.Experience),
		projects:   cloneProjects(deps.Defaults.Projects),
		status: map[Collection]*CollectionStatus{
			CollectionSite:       {State: Default, Loading: true},
			CollectionExperience: {State: Default, Loading: true},
			CollectionProjects:   {State: Default, Loading: true},
		},
	}
	if deps.DefaultTheme != "" {
		c.theme = deps.DefaultTheme
	}

	if err := c.prefs.ForgetMode(ctx); err != nil {
		logger.WarnContext(ctx, "failed to remove legacy mode preference", slog.String("error", err.Error()))
	}

	stored, ok, err := c.prefs.Theme(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}
	if ok {
		if theme, err := ParseTheme(stored); err == nil {
			c.theme = theme
		} else {
			logger.WarnContext(ctx, "ignoring stored theme", slog.String("theme", stored))
		}
	}

	_, ok, err = c.tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth token: %w", err)
	}
	c.authenticated = ok

	return c, nil
}

// Bootstrap fetches site info, experience and projects concurrently. A
// failed fetch keeps that collection's default. Only the first call does
// anything; there is no retry.
func (c *Container) Bootstrap(ctx context.Context) {
	c.bootstrap.Do(func() {
		var wg sync.WaitGroup
		wg.Add(3)

		go func() {
			defer wg.Done()
			site, err := c.gw.FetchSiteInfo(ctx)
			c.finishLoad(ctx, CollectionSite, err, func() { c.site = site })
		}()
		go func() {
			defer wg.Done()
			list, err := c.gw.FetchExperience(ctx)
			c.finishLoad(ctx, CollectionExperience, err, func() { c.experience = list })
		}()
		go func() {
			defer wg.Done()
			list, err := c.gw.FetchProjects(ctx)
			c.finishLoad(ctx, CollectionProjects, err, func() { c.projects = list })
		}()

		wg.Wait()
	})
}

// finishLoad records a bootstrap outcome; apply runs under the lock on success
func (c *Container) finishLoad(ctx context.Context, coll Collection, err error, apply func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.status[coll]
	st.Loading = false
	if err != nil {
		st.State = Failed
		st.Error = gateway.Message(err)
		observability.BootstrapOutcomes.WithLabelValues(string(coll), "failed").Inc()
		c.logger.WarnContext(ctx, "failed to fetch, keeping defaults",
			slog.String("collection", string(coll)),
			slog.String("error", err.Error()),
		)
		return
	}

	apply()
	st.State = Loaded
	st.Error = ""
	observability.BootstrapOutcomes.WithLabelValues(string(coll), "loaded").Inc()
}

// Status returns the load status of a collection
func (c *Container) Status(coll Collection) CollectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if st, ok := c.status[coll]; ok {
		return *st
	}
	return CollectionStatus{}
}

// Loading reports whether any collection is still loading
func (c *Container) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadingLocked()
}

func (c *Container) loadingLocked() bool {
	for _, st := range c.status {
		if st.Loading {
			return true
		}
	}
	return false
}

// Mode returns the current presentation mode
func (c *Container) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// SetMode changes the presentation mode for this session
func (c *Container) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
}

// Page returns the current page
func (c *Container) Page() Page {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// SetPage changes the current page for this session
func (c *Container) SetPage(p Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = p
}

// Theme returns the current theme
func (c *Container) Theme() Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theme
}

// SetTheme changes and persists the theme. The in-memory theme changes
// even when persisting fails.
func (c *Container) SetTheme(ctx context.Context, t Theme) error {
	c.mu.Lock()
	c.theme = t
	c.mu.Unlock()

	if err := c.prefs.SetTheme(ctx, string(t)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme
func (c *Container) ToggleTheme(ctx context.Context) (Theme, error) {
	c.mu.Lock()
	t := c.theme.Toggled()
	c.theme = t
	c.mu.Unlock()

	if err := c.prefs.SetTheme(ctx, string(t)); err != nil {
		return t, fmt.Errorf("failed to persist theme: %w", err)
	}
	return t, nil
}

// Authenticated reports whether an admin session is active
func (c *Container) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// Token returns the stored token while a session is active
func (c *Container) Token(ctx context.Context) (string, bool, error) {
	if !c.Authenticated() {
		return "", false, nil
	}
	return c.tokens.Get(ctx)
}

// Login stores token and marks the session authenticated
func (c *Container) Login(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token is required")
	}
	if err := c.tokens.Set(ctx, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	c.mu.Lock()
	c.authenticated = true
	c.mu.Unlock()
	return nil
}

// Logout clears the token and ends the session. The session ends even if
// the token could not be removed from the store.
func (c *Container) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.authenticated = false
	c.mu.Unlock()

	if err := c.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// SiteInfo returns a copy of the site info
func (c *Container) SiteInfo() models.SiteInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.site.Clone()
}

// UpdateSiteInfo writes info to the backend and, only if that succeeds,
// replaces the local copy. On failure nothing changes locally except
// LastError, and the gateway error is returned.
func (c *Container) UpdateSiteInfo(ctx context.Context, info models.SiteInfo) error {
	if err := c.gw.UpdateSiteInfo(ctx, info); err != nil {
		c.mu.Lock()
		c.lastError = gateway.Message(err)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.site = info.Clone()
	c.lastError = ""
	c.mu.Unlock()
	return nil
}

// LastError returns the message of the last failed site info update
func (c *Container) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Experience returns a copy of the experience list, most recent first
func (c *Container) Experience() []models.Experience {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneExperience(c.experience)
}

// ReplaceExperience swaps the whole experience list
func (c *Container) ReplaceExperience(list []models.Experience) {
	list = cloneExperience(list)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.experience = list
}

// MutateExperience replaces the list with fn's result, atomically with
// respect to other writers. fn receives a copy.
func (c *Container) MutateExperience(fn func([]models.Experience) []models.Experience) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.experience = cloneExperience(fn(cloneExperience(c.experience)))
}

// Projects returns a copy of the project list
func (c *Container) Projects() []models.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneProjects(c.projects)
}

// Project looks up a project by id
func (c *Container) Project(id string) (models.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.projects {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Project{}, false
}

// ReplaceProjects swaps the whole project list
func (c *Container) ReplaceProjects(list []models.Project) {
	list = cloneProjects(list)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = list
}

// MutateProjects replaces the list with fn's result, atomically with
// respect to other writers. fn receives a copy.
func (c *Container) MutateProjects(fn func([]models.Project) []models.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = cloneProjects(fn(cloneProjects(c.projects)))
}

// Snapshot returns a copy of the view state
func (c *Container) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := View{
		Mode:          c.mode,
		Theme:         c.theme,
		Page:          c.page,
		Authenticated: c.authenticated,
		Loading:       c.loadingLocked(),
		Error:         c.lastError,
		Collections:   make(map[Collection]CollectionStatus, len(c.status)),
	}
	for coll, st := range c.status {
		v.Collections[coll] = *st
	}
	return v
}

func cloneExperience(list []models.Experience) []models.Experience {
	if list == nil {
		return nil
	}
	out := make([]models.Experience, len(list))
	for i, e := range list {
		out[i] = e.Clone()
	}
	return out
}

func cloneProjects(list []models.Project) []models.Project {
	if list == nil {
		return nil
	}
	out := make([]models.Project, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return out
}
