package models

import "time"

// ProgramFamily selects one of the two built-in rule preambles.
type ProgramFamily string

const (
	FamilyStandard   ProgramFamily = "base"
	FamilyPeriodized ProgramFamily = "periodizzato"
)

// Valid reports whether f is one of the built-in families.
func (f ProgramFamily) Valid() bool {
	return f == FamilyStandard || f == FamilyPeriodized
}

// Program lifecycle states.
const (
	ProgramStatusDraft     = "bozza"
	ProgramStatusActive    = "attivo"
	ProgramStatusCompleted = "completato"
	ProgramStatusArchived  = "archiviato"
)

// Program is a finalized, persisted training program. Content holds the
// extracted program document when extraction parsed, otherwise the raw
// model text the trainer approved.
type Program struct {
	ID       string `json:"id"`
	ClientID string `json:"cliente_id"`
	IntakeID string `json:"anamnesi_id,omitempty"`

	Name   string        `json:"nome"`
	Family ProgramFamily `json:"tipo"`
	Status string        `json:"stato"`

	StartDate *time.Time `json:"data_inizio,omitempty"`
	EndDate   *time.Time `json:"data_fine,omitempty"`

	Content  string `json:"contenuto_json,omitempty"`
	IsParsed bool   `json:"contenuto_strutturato"`

	Notes     string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
