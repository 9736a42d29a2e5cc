package models

import "slices"

// Social is a contact link shown on the contact page
type Social struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Phone string `json:"phone,omitempty"`
}

// SiteInfo holds the portfolio owner's identity and contact details.
// Username and Password are administrative and never rendered.
type SiteInfo struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Bio      []string `json:"bio"`
	Username string   `json:"username,omitempty"`
	Password string   `json:"password,omitempty"`
	Socials  []Social `json:"socials"`
}

// Public returns a copy without credentials
func (s SiteInfo) Public() SiteInfo {
	p := s.Clone()
	p.Username = ""
	p.Password = ""
	return p
}

// Clone returns a deep copy of the site info
func (s SiteInfo) Clone() SiteInfo {
	s.Bio = slices.Clone(s.Bio)
	s.Socials = slices.Clone(s.Socials)
	return s
}

// LoginResult is returned by a successful owner login
type LoginResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// AuthSession is the client's view of the current login
type AuthSession struct {
	Token         string `json:"-"`
	Authenticated bool   `json:"authenticated"`
}
