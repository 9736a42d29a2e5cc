package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfolio.dev/internal/config"
	"termfolio.dev/internal/gateway"
	"termfolio.dev/internal/models"
	"termfolio.dev/internal/observability"
	"termfolio.dev/internal/store"
)

type stubGateway struct {
	mu        sync.Mutex
	site      models.SiteInfo
	siteErr   error
	exp       []models.Experience
	expErr    error
	projects  []models.Project
	projErr   error
	updateErr error
	fetches   int
	updates   int
}

func (g *stubGateway) FetchSiteInfo(context.Context) (models.SiteInfo, error) {
	g.count()
	return g.site, g.siteErr
}

func (g *stubGateway) FetchExperience(context.Context) ([]models.Experience, error) {
	g.count()
	return g.exp, g.expErr
}

func (g *stubGateway) FetchProjects(context.Context) ([]models.Project, error) {
	g.count()
	return g.projects, g.projErr
}

func (g *stubGateway) UpdateSiteInfo(context.Context, models.SiteInfo) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updates++
	return g.updateErr
}

func (g *stubGateway) count() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetches++
}

func defaults() *config.Defaults {
	return &config.Defaults{
		Site:       models.SiteInfo{Name: "Default Name", Bio: []string{"default bio"}},
		Experience: []models.Experience{{ID: "d1", Role: "Default Role"}},
		Projects:   []models.Project{{ID: "dp", Name: "Default Project"}},
	}
}

func newContainer(t *testing.T, gw Gateway, kv store.KV) *Container {
	t.Helper()
	c, err := New(context.Background(), Deps{
		Gateway:      gw,
		Tokens:       store.NewTokenStore(kv),
		Preferences:  store.NewPreferences(kv),
		Defaults:     defaults(),
		DefaultTheme: ThemeDark,
		Logger:       observability.Discard(),
	})
	require.NoError(t, err)
	return c
}

func rejection(msg string) error {
	return &gateway.Error{Kind: gateway.ServerRejection, Op: "fetch", Message: msg}
}

func TestNew_StartsWithDefaults(t *testing.T) {
	c := newContainer(t, &stubGateway{}, store.NewMemory())

	assert.Equal(t, "Default Name", c.SiteInfo().Name)
	assert.Equal(t, ModeUnset, c.Mode())
	assert.Equal(t, PageHome, c.Page())
	assert.Equal(t, ThemeDark, c.Theme())
	assert.False(t, c.Authenticated())
	assert.True(t, c.Loading())
	for _, coll := range []Collection{CollectionSite, CollectionExperience, CollectionProjects} {
		assert.Equal(t, CollectionStatus{State: Default, Loading: true}, c.Status(coll))
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(context.Background(), Deps{})
	assert.Error(t, err)
}

func TestBootstrap_LoadsAllCollections(t *testing.T) {
	gw := &stubGateway{
		site:     models.SiteInfo{ID: "o1", Name: "Server Name"},
		exp:      []models.Experience{{ID: "e1"}, {ID: "e2"}},
		projects: []models.Project{{ID: "p1"}},
	}
	c := newContainer(t, gw, store.NewMemory())

	c.Bootstrap(context.Background())

	assert.Equal(t, "Server Name", c.SiteInfo().Name)
	assert.Len(t, c.Experience(), 2)
	assert.Len(t, c.Projects(), 1)
	assert.False(t, c.Loading())
	assert.Equal(t, Loaded, c.Status(CollectionSite).State)
}

func TestBootstrap_FailureIsIsolated(t *testing.T) {
	tests := []struct {
		name   string
		gw     *stubGateway
		failed Collection
	}{
		{"site fails", &stubGateway{siteErr: rejection("no owner"), exp: []models.Experience{{ID: "e1"}}, projects: []models.Project{{ID: "p1"}}}, CollectionSite},
		{"experience fails", &stubGateway{site: models.SiteInfo{Name: "S"}, expErr: rejection("down"), projects: []models.Project{{ID: "p1"}}}, CollectionExperience},
		{"projects fail", &stubGateway{site: models.SiteInfo{Name: "S"}, exp: []models.Experience{{ID: "e1"}}, projErr: errors.New("dial tcp")}, CollectionProjects},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContainer(t, tt.gw, store.NewMemory())
			c.Bootstrap(context.Background())

			for _, coll := range []Collection{CollectionSite, CollectionExperience, CollectionProjects} {
				st := c.Status(coll)
				assert.False(t, st.Loading, coll)
				if coll == tt.failed {
					assert.Equal(t, Failed, st.State, coll)
					assert.NotEmpty(t, st.Error)
				} else {
					assert.Equal(t, Loaded, st.State, coll)
				}
			}

			switch tt.failed {
			case CollectionSite:
				assert.Equal(t, "Default Name", c.SiteInfo().Name)
				assert.Equal(t, "e1", c.Experience()[0].ID)
			case CollectionExperience:
				assert.Equal(t, "d1", c.Experience()[0].ID)
				assert.Equal(t, "S", c.SiteInfo().Name)
			case CollectionProjects:
				assert.Equal(t, "dp", c.Projects()[0].ID)
				assert.Equal(t, "e1", c.Experience()[0].ID)
			}
		})
	}
}

func TestBootstrap_RunsOnce(t *testing.T) {
	gw := &stubGateway{siteErr: rejection("x"), expErr: rejection("x"), projErr: rejection("x")}
	c := newContainer(t, gw, store.NewMemory())

	c.Bootstrap(context.Background())
	c.Bootstrap(context.Background())

	assert.Equal(t, 3, gw.fetches)
}

func TestUpdateSiteInfo_WriteThrough(t *testing.T) {
	gw := &stubGateway{}
	c := newContainer(t, gw, store.NewMemory())

	next := c.SiteInfo()
	next.ID = "o1"
	next.Title = "New Title"
	require.NoError(t, c.UpdateSiteInfo(context.Background(), next))

	assert.Equal(t, "New Title", c.SiteInfo().Title)
	assert.Equal(t, 1, gw.updates)
	assert.Empty(t, c.LastError())
}

func TestUpdateSiteInfo_RejectedLeavesStateUnchanged(t *testing.T) {
	gw := &stubGateway{updateErr: rejection("Invalid token")}
	c := newContainer(t, gw, store.NewMemory())
	before := c.SiteInfo()

	next := c.SiteInfo()
	next.Name = "Changed"
	next.Bio = append(next.Bio, "extra")
	err := c.UpdateSiteInfo(context.Background(), next)

	require.Error(t, err)
	assert.True(t, gateway.IsKind(err, gateway.ServerRejection))
	assert.Equal(t, before, c.SiteInfo())
	assert.Equal(t, "Invalid token", c.LastError())
	assert.Equal(t, "Invalid token", c.Snapshot().Error)
}

func TestLoginLogout(t *testing.T) {
	kv := store.NewMemory()
	tokens := store.NewTokenStore(kv)
	c := newContainer(t, &stubGateway{}, kv)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "tok123"))
	tok, ok, err := tokens.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok123", tok)
	assert.True(t, c.Authenticated())

	tok, ok, err = c.Token(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok123", tok)

	require.NoError(t, c.Logout(ctx))
	_, ok, err = tokens.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, c.Authenticated())

	_, ok, err = c.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_RejectsEmptyToken(t *testing.T) {
	c := newContainer(t, &stubGateway{}, store.NewMemory())
	assert.Error(t, c.Login(context.Background(), ""))
	assert.False(t, c.Authenticated())
}

func TestNew_StoredTokenMeansAuthenticated(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, store.NewTokenStore(kv).Set(context.Background(), "stale"))

	gw := &stubGateway{}
	c := newContainer(t, gw, kv)
	assert.True(t, c.Authenticated())
	assert.Zero(t, gw.fetches)
}

func TestTheme_PersistedAcrossContainers(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()

	c := newContainer(t, &stubGateway{}, kv)
	theme, err := c.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	c = newContainer(t, &stubGateway{}, kv)
	assert.Equal(t, ThemeLight, c.Theme())

	require.NoError(t, c.SetTheme(ctx, ThemeDark))
	v, ok, err := kv.Get(ctx, store.ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestNew_IgnoresInvalidStoredTheme(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(context.Background(), store.ThemeKey, "sepia"))

	c := newContainer(t, &stubGateway{}, kv)
	assert.Equal(t, ThemeDark, c.Theme())
}

func TestNew_RemovesLegacyModeAndStartsUnset(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.LegacyModeKey, "classic"))

	c := newContainer(t, &stubGateway{}, kv)
	assert.Equal(t, ModeUnset, c.Mode())
	_, ok, err := kv.Get(ctx, store.LegacyModeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	c.SetMode(ModeClassic)
	c.SetPage(PageContact)
	_, ok, err = kv.Get(ctx, store.LegacyModeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	c = newContainer(t, &stubGateway{}, kv)
	assert.Equal(t, ModeUnset, c.Mode())
	assert.Equal(t, PageHome, c.Page())
}

func TestMutate_ConcurrentMergesAreNotLost(t *testing.T) {
	c := newContainer(t, &stubGateway{}, store.NewMemory())
	c.ReplaceProjects(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.MutateProjects(func(list []models.Project) []models.Project {
				return append(list, models.Project{ID: string(rune('a' + i%26)), Name: "p"})
			})
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.Projects(), 50)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := newContainer(t, &stubGateway{}, store.NewMemory())

	list := c.Experience()
	list[0].Role = "Mutated"
	assert.Equal(t, "Default Role", c.Experience()[0].Role)

	p, ok := c.Project("dp")
	require.True(t, ok)
	p.Name = "Mutated"
	p2, _ := c.Project("dp")
	assert.Equal(t, "Default Project", p2.Name)

	_, ok = c.Project("missing")
	assert.False(t, ok)
}

func TestParsers(t *testing.T) {
	_, err := ParseTheme("blue")
	assert.Error(t, err)
	m, err := ParseMode("classic")
	require.NoError(t, err)
	assert.Equal(t, ModeClassic, m)
	_, err = ParseMode("")
	assert.Error(t, err)
	p, err := ParsePage("projects")
	require.NoError(t, err)
	assert.Equal(t, PageProjects, p)
	assert.Equal(t, "failed", Failed.String())
}
