package editor

import (
	"context"

	"termfolio.dev/internal/models"
)

// ExperienceGateway is the backend surface used by the experience editor
type ExperienceGateway interface {
	CreateExperience(ctx context.Context, exp models.Experience) (models.Experience, error)
	UpdateExperience(ctx context.Context, id string, exp models.Experience) error
	DeleteExperience(ctx context.Context, id string) error
	FetchTechnologies(ctx context.Context) ([]models.Technology, error)
}

// ExperienceState is the shared experience list
type ExperienceState interface {
	Experience() []models.Experience
	MutateExperience(fn func([]models.Experience) []models.Experience)
}

// Experience edits work history entries
type Experience struct {
	*listEditor[models.Experience]
}

// NewExperience creates an experience editor
func NewExperience(gw ExperienceGateway, st ExperienceState, confirm Confirmer) *Experience {
	return &Experience{newListEditor(collectionOps[models.Experience]{
		noun:    "Experience",
		list:    st.Experience,
		mutate:  st.MutateExperience,
		create:  gw.CreateExperience,
		update:  gw.UpdateExperience,
		remove:  gw.DeleteExperience,
		fetch:   gw.FetchTechnologies,
		idOf:    func(e models.Experience) string { return e.ID },
		withID:  func(e models.Experience, id string) models.Experience { e.ID = id; return e },
		techIDs: experienceTechIDs,
		techs:   func(e models.Experience) []models.Technology { return e.Technologies },
		setTech: func(e models.Experience, ids []string, techs []models.Technology) models.Experience {
			e.TechnologyIDs = ids
			e.Technologies = techs
			return e
		},
	}, confirm)}
}

// SetDescription sets the description bullets from textarea input
func (e *Experience) SetDescription(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Description = Lines(text)
}

// SetAchievements sets the achievement bullets from textarea input
func (e *Experience) SetAchievements(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Achievements = Lines(text)
}

func experienceTechIDs(e models.Experience) []string {
	if len(e.TechnologyIDs) > 0 {
		return e.TechnologyIDs
	}
	return techIDs(e.Technologies)
}
