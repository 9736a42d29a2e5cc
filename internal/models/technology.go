package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Technology is a tag shared by experience and project entries
type Technology struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// TechRef is a technology as it appears on the wire: either a bare name
// ("React") or a full object ({"id":"react","name":"React"}).
type TechRef struct {
	named string
	full  *Technology
}

// NamedTech builds a reference holding only a display name
func NamedTech(name string) TechRef {
	return TechRef{named: name}
}

// FullTech builds a reference holding a complete technology
func FullTech(t Technology) TechRef {
	return TechRef{full: &t}
}

// IsNamed reports whether the reference carries only a name
func (r TechRef) IsNamed() bool {
	return r.full == nil
}

// Technology resolves the reference to its canonical form. Bare names get a
// slug id so they can be compared with catalogue entries.
func (r TechRef) Technology() Technology {
	if r.full != nil {
		return *r.full
	}
	return Technology{ID: Slug(r.named), Name: r.named}
}

// UnmarshalJSON accepts both a string and an object
func (r *TechRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = NamedTech(name)
		return nil
	}

	var t Technology
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("technology must be a name or an object: %w", err)
	}
	*r = FullTech(t)
	return nil
}

// MarshalJSON writes the reference back in the shape it was read in
func (r TechRef) MarshalJSON() ([]byte, error) {
	if r.full != nil {
		return json.Marshal(r.full)
	}
	return json.Marshal(r.named)
}

// ResolveTechRefs converts wire references to canonical technologies
func ResolveTechRefs(refs []TechRef) []Technology {
	out := make([]Technology, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Technology())
	}
	return out
}

// Slug lower-cases a name and joins its words with dashes
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
