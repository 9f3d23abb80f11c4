package models

import "time"

// Client is a trainer's client as stored in the record store.
// Column names mirror the hosted schema (Italian), so the JSON tags do too.
type Client struct {
	ID        string     `json:"id"`
	FirstName string     `json:"nome"`
	LastName  string     `json:"cognome"`
	Email     string     `json:"email"`
	Phone     string     `json:"telefono,omitempty"`
	BirthDate *time.Time `json:"data_nascita,omitempty"`
	Sex       string     `json:"sesso,omitempty"` // "M" or "F"
	Notes     string     `json:"note,omitempty"`
	Active    bool       `json:"attivo"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FullName returns "Nome Cognome" for display and prompt headers.
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
