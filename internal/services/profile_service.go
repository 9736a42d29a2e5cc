package services

import "termfolio.dev/internal/models"

// ProfileSource provides the current site info and work history
type ProfileSource interface {
	SiteInfo() models.SiteInfo
	Experience() []models.Experience
}

// ProfileService serves the owner's public profile
type ProfileService struct {
	source ProfileSource
}

// NewProfileService creates a new ProfileService
func NewProfileService(source ProfileSource) *ProfileService {
	return &ProfileService{source: source}
}

// Site returns the site info without credentials
func (s *ProfileService) Site() models.SiteInfo {
	return s.source.SiteInfo().Public()
}

// Contact returns the social links
func (s *ProfileService) Contact() []models.Social {
	socials := s.source.SiteInfo().Socials
	if socials == nil {
		return []models.Social{}
	}
	return socials
}

// ExperienceView is an experience entry ready for display
type ExperienceView struct {
	models.Experience
	Period  string `json:"period"`
	Current bool   `json:"current"`
}

// Experience returns the work history, most recent first
func (s *ProfileService) Experience() []ExperienceView {
	list := s.source.Experience()
	views := make([]ExperienceView, 0, len(list))
	for _, e := range list {
		views = append(views, ExperienceView{Experience: e, Period: e.Period(), Current: e.Current()})
	}
	return views
}
