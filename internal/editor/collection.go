package editor

import (
	"context"
	"slices"
	"strings"

	"termfolio.dev/internal/models"
)

// collectionOps binds a list editor to one entity type
type collectionOps[T any] struct {
	noun    string // "Experience", "Project"
	list    func() []T
	mutate  func(func([]T) []T)
	create  func(ctx context.Context, v T) (T, error)
	update  func(ctx context.Context, id string, v T) error
	remove  func(ctx context.Context, id string) error
	idOf    func(T) string
	withID  func(T, string) T
	techIDs func(T) []string
	techs   func(T) []models.Technology
	setTech func(v T, ids []string, techs []models.Technology) T
	fetch   func(ctx context.Context) ([]models.Technology, error)
}

// listEditor is the draft/submit/delete cycle shared by the experience and
// project editors
type listEditor[T any] struct {
	form
	ops       collectionOps[T]
	confirm   Confirmer
	draft     T
	editingID string
	selection *TechSelection
	catalogue []models.Technology
}

func newListEditor[T any](ops collectionOps[T], confirm Confirmer) *listEditor[T] {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &listEditor[T]{ops: ops, confirm: confirm, selection: NewTechSelection()}
}

// Entries returns the entries currently in the shared state
func (e *listEditor[T]) Entries() []T {
	return e.ops.list()
}

// LoadCatalogue fetches the technologies used to resolve selected ids
func (e *listEditor[T]) LoadCatalogue(ctx context.Context) error {
	techs, err := e.ops.fetch(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.catalogue = techs
	e.mu.Unlock()
	return nil
}

// Catalogue returns the loaded technologies
func (e *listEditor[T]) Catalogue() []models.Technology {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.catalogue)
}

// Edit loads the entry with id into the draft
func (e *listEditor[T]) Edit(id string) error {
	for _, v := range e.ops.list() {
		if e.ops.idOf(v) == id {
			e.mu.Lock()
			e.draft = v
			e.editingID = id
			e.selection.Set(e.ops.techIDs(v))
			e.mu.Unlock()
			return nil
		}
	}
	return ErrNotFound
}

// Reset clears the draft and leaves edit mode
func (e *listEditor[T]) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *listEditor[T]) resetLocked() {
	var zero T
	e.draft = zero
	e.editingID = ""
	e.selection.Set(nil)
}

// EditingID returns the id being edited, empty when adding
func (e *listEditor[T]) EditingID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editingID
}

// Draft returns the current draft
func (e *listEditor[T]) Draft() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// SetDraft replaces the draft fields. The technology selection is kept.
func (e *listEditor[T]) SetDraft(v T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = v
}

// ToggleTech flips a technology in the selection
func (e *listEditor[T]) ToggleTech(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.Toggle(id)
}

// SetTech replaces the technology selection
func (e *listEditor[T]) SetTech(ids []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.Set(ids)
}

// SelectedTech returns the selected technology ids
func (e *listEditor[T]) SelectedTech() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.IDs()
}

// Submit creates the draft when no entry is being edited and updates it
// otherwise. The shared list changes only after the backend accepted the
// call, and the change is merged by id.
func (e *listEditor[T]) Submit(ctx context.Context) (T, error) {
	if err := e.begin(); err != nil {
		var zero T
		return zero, err
	}

	e.mu.Lock()
	id := e.editingID
	ids := e.selection.IDs()
	payload := e.ops.setTech(e.draft, ids, resolveTech(ids, e.catalogue, e.ops.techs(e.draft)))
	e.mu.Unlock()

	saved, err := e.save(ctx, id, payload)

	action := "added"
	if id != "" {
		action = "updated"
	}
	e.finish(err, "", e.ops.noun+" "+action+" successfully!")
	if err != nil {
		return saved, err
	}

	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()
	return saved, nil
}

func (e *listEditor[T]) save(ctx context.Context, id string, payload T) (T, error) {
	if id == "" {
		created, err := e.ops.create(ctx, payload)
		if err != nil {
			return payload, err
		}
		e.ops.mutate(func(list []T) []T {
			return upsert(list, created, e.ops.idOf)
		})
		return created, nil
	}

	payload = e.ops.withID(payload, id)
	if err := e.ops.update(ctx, id, payload); err != nil {
		return payload, err
	}
	e.ops.mutate(func(list []T) []T {
		return replace(list, payload, e.ops.idOf)
	})
	return payload, nil
}

// Delete asks for confirmation, deletes the entry on the backend and then
// drops it from the shared list. An empty id does nothing.
func (e *listEditor[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validation("delete "+strings.ToLower(e.ops.noun), e.ops.noun+" id is required")
	}
	if !e.confirm.Confirm(ctx, "Are you sure you want to delete this "+strings.ToLower(e.ops.noun)+"?") {
		return ErrDeclined
	}
	if err := e.begin(); err != nil {
		return err
	}

	err := e.ops.remove(ctx, id)
	e.finish(err, "", e.ops.noun+" deleted successfully!")
	if err != nil {
		return err
	}

	e.ops.mutate(func(list []T) []T {
		return removeByID(list, id, e.ops.idOf)
	})

	e.mu.Lock()
	if e.editingID == id {
		e.resetLocked()
	}
	e.mu.Unlock()
	return nil
}

// resolveTech maps ids to the first matching technology in sources;
// unknown ids are shown by id
func resolveTech(ids []string, sources ...[]models.Technology) []models.Technology {
	out := make([]models.Technology, 0, len(ids))
	for _, id := range ids {
		out = append(out, lookupTech(id, sources))
	}
	return out
}

func lookupTech(id string, sources [][]models.Technology) models.Technology {
	for _, src := range sources {
		for _, t := range src {
			if t.ID == id {
				return t
			}
		}
	}
	return models.Technology{ID: id, Name: id}
}

// techIDs lists the ids of techs
func techIDs(techs []models.Technology) []string {
	ids := make([]string, 0, len(techs))
	for _, t := range techs {
		ids = append(ids, t.ID)
	}
	return ids
}

// upsert replaces the entry with v's id or appends v
func upsert[T any](list []T, v T, idOf func(T) string) []T {
	for i := range list {
		if idOf(list[i]) == idOf(v) {
			list[i] = v
			return list
		}
	}
	return append(list, v)
}

// replace swaps the entry with v's id; a missing entry is not re-added
func replace[T any](list []T, v T, idOf func(T) string) []T {
	for i := range list {
		if idOf(list[i]) == idOf(v) {
			list[i] = v
			break
		}
	}
	return list
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	out := list[:0]
	for _, v := range list {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}
