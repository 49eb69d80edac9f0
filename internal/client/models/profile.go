// Package models defines the client-side records kept in the local store:
// user profiles and the credential list.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidRecord is returned when stored JSON does not match the expected schema.
var ErrInvalidRecord = errors.New("invalid stored record")

// Profile is the public view of a registered user.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	// Favorites is an ordered list of movie ids; it may contain duplicates.
	Favorites []string `json:"favorites"`
}

// Clone returns a copy that shares no memory with p.
func (p Profile) Clone() Profile {
	p.Favorites = slices.Clone(p.Favorites)
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	return p
}

// HasFavorite reports whether movieID is in the favorites list.
func (p Profile) HasFavorite(movieID string) bool {
	return slices.Contains(p.Favorites, movieID)
}

// WithFavorite returns a copy with movieID appended. When unique is set and
// the id is already present the copy is unchanged.
func (p Profile) WithFavorite(movieID string, unique bool) Profile {
	c := p.Clone()
	if unique && c.HasFavorite(movieID) {
		return c
	}
	c.Favorites = append(c.Favorites, movieID)
	return c
}

// WithoutFavorite returns a copy with every occurrence of movieID removed.
func (p Profile) WithoutFavorite(movieID string) Profile {
	c := p.Clone()
	c.Favorites = slices.DeleteFunc(c.Favorites, func(id string) bool { return id == movieID })
	return c
}

// Validate checks the fields every stored profile must carry.
func (p Profile) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: profile id is empty", ErrInvalidRecord)
	case p.Email == "":
		return fmt.Errorf("%w: profile email is empty", ErrInvalidRecord)
	case p.Favorites == nil:
		return fmt.Errorf("%w: profile favorites missing", ErrInvalidRecord)
	}
	return nil
}

// DecodeProfile parses and validates a stored profile.
func DecodeProfile(data []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
