package editor

import (
	"context"
	"slices"

	"termfolio.dev/internal/models"
)

// TechnologyGateway is the backend surface used by the technologies editor
type TechnologyGateway interface {
	FetchTechnologies(ctx context.Context) ([]models.Technology, error)
	CreateTechnology(ctx context.Context, t models.Technology) (models.Technology, error)
	UpdateTechnology(ctx context.Context, id string, t models.Technology) error
	DeleteTechnology(ctx context.Context, id string) error
}

// Technologies edits the technology catalogue. The catalogue is not part of
// the shared state; the editor keeps its own copy.
type Technologies struct {
	form
	gw        TechnologyGateway
	confirm   Confirmer
	list      []models.Technology
	draft     models.Technology
	editingID string
}

// NewTechnologies creates a technologies editor
func NewTechnologies(gw TechnologyGateway, confirm Confirmer) *Technologies {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &Technologies{gw: gw, confirm: confirm}
}

// Load fetches the catalogue
func (e *Technologies) Load(ctx context.Context) error {
	list, err := e.gw.FetchTechnologies(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.status.Error = "Failed to load technologies"
		return err
	}
	e.list = list
	return nil
}

// List returns the loaded catalogue
func (e *Technologies) List() []models.Technology {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.list)
}

// Edit loads the technology with id into the draft
func (e *Technologies) Edit(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.list {
		if t.ID == id {
			e.draft = t
			e.editingID = id
			return nil
		}
	}
	return ErrNotFound
}

// Reset clears the draft and leaves edit mode
func (e *Technologies) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = models.Technology{}
	e.editingID = ""
}

// Draft returns the current draft
func (e *Technologies) Draft() models.Technology {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// SetDraft replaces the draft. While editing, the id cannot change.
func (e *Technologies) SetDraft(t models.Technology) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editingID != "" {
		t.ID = e.editingID
	}
	e.draft = t
}

// Submit creates the draft, or updates the technology being edited
func (e *Technologies) Submit(ctx context.Context) (models.Technology, error) {
	if err := e.begin(); err != nil {
		return models.Technology{}, err
	}

	e.mu.Lock()
	id := e.editingID
	draft := e.draft
	e.mu.Unlock()

	var (
		saved = draft
		err   error
		msg   = "Technology added successfully!"
	)
	if id == "" {
		saved, err = e.gw.CreateTechnology(ctx, draft)
	} else {
		saved.ID = id
		err = e.gw.UpdateTechnology(ctx, id, saved)
		msg = "Technology updated successfully!"
	}
	e.finish(err, "", msg)
	if err != nil {
		return draft, err
	}

	e.mu.Lock()
	e.list = upsert(e.list, saved, func(t models.Technology) string { return t.ID })
	e.draft = models.Technology{}
	e.editingID = ""
	e.mu.Unlock()
	return saved, nil
}

// Delete asks for confirmation and removes the technology
func (e *Technologies) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validation("delete technology", "Technology id is required")
	}
	if !e.confirm.Confirm(ctx, "Are you sure you want to delete this technology?") {
		return ErrDeclined
	}
	if err := e.begin(); err != nil {
		return err
	}

	err := e.gw.DeleteTechnology(ctx, id)
	e.finish(err, "", "Technology deleted successfully!")
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.list = removeByID(e.list, id, func(t models.Technology) string { return t.ID })
	if e.editingID == id {
		e.draft = models.Technology{}
		e.editingID = ""
	}
	e.mu.Unlock()
	return nil
}
