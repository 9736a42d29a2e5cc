// Package editor implements the admin forms that change portfolio content.
//
// An editor holds a draft of one entity. Submitting calls the backend first
// and only merges the confirmed result into the shared state, by id. Failures
// are kept on the editor as an inline message and the draft is left as it
// was so the user can retry.
package editor

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"termfolio.dev/internal/gateway"
)

var (
	// ErrBusy is returned when a submit or delete is already in flight
	ErrBusy = errors.New("editor: save already in progress")
	// ErrDeclined is returned when a delete was not confirmed
	ErrDeclined = errors.New("editor: delete not confirmed")
	// ErrNotFound is returned when editing an id that is not listed
	ErrNotFound = errors.New("editor: entry not found")
)

// Status is what a form shows around its fields
type Status struct {
	Saving  bool   `json:"saving"`
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt. The HTTP admin uses it since the
// DELETE request is the confirmation.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// form tracks the in-flight flag and the messages of one editor
type form struct {
	mu     sync.Mutex
	status Status
}

// begin marks the form as saving, or fails with ErrBusy
func (f *form) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status.Saving {
		return ErrBusy
	}
	f.status = Status{Saving: true}
	return nil
}

// finish clears the saving flag and records the outcome. Validation
// failures abort silently and leave no message.
func (f *form) finish(err error, failMsg, successMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status.Saving = false
	switch {
	case err == nil:
		f.status.Success = successMsg
	case gateway.IsKind(err, gateway.ValidationFailure):
	case failMsg != "":
		f.status.Error = failMsg
	default:
		f.status.Error = gateway.Message(err)
	}
}

// Status returns the form's current status
func (f *form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// TechSelection is the set of technology ids picked in a form, in the
// order they were picked
type TechSelection struct {
	ids []string
}

// NewTechSelection starts a selection holding ids
func NewTechSelection(ids ...string) *TechSelection {
	s := &TechSelection{}
	s.Set(ids)
	return s
}

// Toggle adds id if absent and removes it if present
func (s *TechSelection) Toggle(id string) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// Has reports whether id is selected
func (s *TechSelection) Has(id string) bool {
	return slices.Contains(s.ids, id)
}

// Set replaces the selection, dropping duplicates and empty ids
func (s *TechSelection) Set(ids []string) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		if id != "" && !slices.Contains(s.ids, id) {
			s.ids = append(s.ids, id)
		}
	}
}

// IDs returns a copy of the selected ids
func (s *TechSelection) IDs() []string {
	return append([]string{}, s.ids...)
}

// Lines splits textarea input into one entry per line
func Lines(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

// JoinLines renders entries for a textarea
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func validation(op, msg string) error {
	return &gateway.Error{Kind: gateway.ValidationFailure, Op: op, Message: msg}
}
