package models

import (
	"encoding/json"
	"fmt"
)

// Credential links an email/password pair to a profile id.
// The password is stored as entered.
type Credential struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the stored credential list.
type Credentials []Credential

// FindByEmail returns the record registered for email.
func (c Credentials) FindByEmail(email string) (Credential, bool) {
	for _, cred := range c {
		if cred.Email == email {
			return cred, true
		}
	}
	return Credential{}, false
}

// Match returns the record whose email and password both equal the input.
func (c Credentials) Match(email, password string) (Credential, bool) {
	for _, cred := range c {
		if cred.Email == email && cred.Password == password {
			return cred, true
		}
	}
	return Credential{}, false
}

// DecodeCredentials parses the stored list. Empty input is an empty list.
// Records without an id or email make the whole list invalid.
func DecodeCredentials(data []byte) (Credentials, error) {
	if len(data) == 0 {
		return Credentials{}, nil
	}
	var list Credentials
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	for i, cred := range list {
		if cred.ID == "" || cred.Email == "" {
			return nil, fmt.Errorf("%w: credential %d incomplete", ErrInvalidRecord, i)
		}
	}
	if list == nil {
		list = Credentials{}
	}
	return list, nil
}
