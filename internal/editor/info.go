package editor

import (
	"context"
	"fmt"

	"termfolio.dev/internal/models"
)

// SiteState is the shared site info with its write-through update
type SiteState interface {
	SiteInfo() models.SiteInfo
	UpdateSiteInfo(ctx context.Context, info models.SiteInfo) error
}

// Info edits the owner's personal information
type Info struct {
	form
	st    SiteState
	draft models.SiteInfo
}

// NewInfo creates an info editor prefilled from the shared state
func NewInfo(st SiteState) *Info {
	return &Info{st: st, draft: st.SiteInfo()}
}

// Reload refills the draft from the shared state
func (e *Info) Reload() {
	info := e.st.SiteInfo()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = info
}

// Draft returns the current draft
func (e *Info) Draft() models.SiteInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// SetDraft replaces the draft
func (e *Info) SetDraft(info models.SiteInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = info.Clone()
}

// SetBio sets the bio paragraphs from textarea input
func (e *Info) SetBio(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Bio = Lines(text)
}

// SetSocialURL changes the link of one social entry; names are fixed
func (e *Info) SetSocialURL(index int, url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.draft.Socials) {
		return fmt.Errorf("social link %d does not exist", index)
	}
	socials := append([]models.Social(nil), e.draft.Socials...)
	socials[index].URL = url
	e.draft.Socials = socials
	return nil
}

// Submit writes the draft through the shared state
func (e *Info) Submit(ctx context.Context) error {
	if err := e.begin(); err != nil {
		return err
	}
	err := e.st.UpdateSiteInfo(ctx, e.Draft())
	e.finish(err, "Failed to save changes. Please try again.", "Saved successfully!")
	return err
}
