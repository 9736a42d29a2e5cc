package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfolio.dev/internal/models"
)

type source struct {
	site     models.SiteInfo
	exp      []models.Experience
	projects []models.Project
}

func (s source) SiteInfo() models.SiteInfo       { return s.site }
func (s source) Experience() []models.Experience { return s.exp }
func (s source) Projects() []models.Project      { return s.projects }

func (s source) Project(id string) (models.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func TestProjectService(t *testing.T) {
	svc := NewProjectService(source{projects: []models.Project{{ID: "a", Name: "A"}}})

	assert.Len(t, svc.GetAll(), 1)
	p, err := svc.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)

	_, err = svc.GetByID("zzz")
	assert.EqualError(t, err, "project not found: zzz")
}

func TestProfileService(t *testing.T) {
	end := "2019"
	svc := NewProfileService(source{
		site: models.SiteInfo{Name: "Jane", Username: "jane", Password: "pw"},
		exp:  []models.Experience{{Role: "Lead", StartPeriod: "2020"}, {Role: "Dev", StartPeriod: "2017", EndPeriod: &end}},
	})

	site := svc.Site()
	assert.Equal(t, "Jane", site.Name)
	assert.Empty(t, site.Username)
	assert.Empty(t, site.Password)
	assert.Equal(t, []models.Social{}, svc.Contact())

	views := svc.Experience()
	require.Len(t, views, 2)
	assert.Equal(t, "2020 - Present", views[0].Period)
	assert.True(t, views[0].Current)
	assert.Equal(t, "2017 - 2019", views[1].Period)
}

func TestProjectService_UsingTechnologyAndDetail(t *testing.T) {
	svc := NewProjectService(source{projects: []models.Project{
		{ID: "a", Name: "A", Year: 2024, Tech: []models.Technology{{ID: "go", Name: "Go"}, {ID: "react", Name: "React"}}},
		{ID: "b", Name: "B", Tech: []models.Technology{{ID: "react", Name: "React"}}},
	}})

	assert.Len(t, svc.UsingTechnology("react"), 2)
	assert.Len(t, svc.UsingTechnology("go"), 1)
	assert.Empty(t, svc.UsingTechnology("rust"))

	d, err := svc.Detail("a")
	require.NoError(t, err)
	assert.Equal(t, "A (2024)", d.Heading)
	assert.Equal(t, []string{"Go", "React"}, d.TechNames)

	d, err = svc.Detail("b")
	require.NoError(t, err)
	assert.Equal(t, "B", d.Heading)

	_, err = svc.Detail("zzz")
	assert.Error(t, err)
}
