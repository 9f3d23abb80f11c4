package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitmanager/internal/database"
	"fitmanager/internal/models"
)

// ProgramService persists finalized training programs.
type ProgramService struct {
	db *database.DB
}

// NewProgramService creates the program store.
func NewProgramService(db *database.DB) *ProgramService {
	return &ProgramService{db: db}
}

// Create saves a program. Missing fields get defaults: a fresh ID and
// draft status. The client must exist; the family must be a known one.
func (s *ProgramService) Create(p *models.Program) error {
	if p.ClientID == "" {
		return &ValidationError{Field: "cliente_id", Reason: "client ID is required"}
	}
	if !p.Family.Valid() {
		return &ValidationError{Field: "tipo", Reason: fmt.Sprintf("unknown program family %q", p.Family)}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = models.ProgramStatusDraft
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	contenutoStrutturato := 0
	if p.IsParsed {
		contenutoStrutturato = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO programmi (id, cliente_id, anamnesi_id, nome, tipo, stato, data_inizio, data_fine, contenuto, contenuto_strutturato, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.ClientID, nullableString(p.IntakeID), p.Name, string(p.Family), p.Status,
		nullableDate(p.StartDate), nullableDate(p.EndDate),
		p.Content, contenutoStrutturato, p.Notes,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert program: %w", err)
	}
	return nil
}

// GetByID fetches one program. Returns (nil, nil) when not found.
func (s *ProgramService) GetByID(id string) (*models.Program, error) {
	row := s.db.QueryRow(`
		SELECT id, cliente_id, anamnesi_id, nome, tipo, stato, data_inizio, data_fine, contenuto, contenuto_strutturato, note, created_at, updated_at
		FROM programmi WHERE id = ?
	`, id)
	p, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program: %w", err)
	}
	return p, nil
}

// ListByClient returns a client's programs, newest first.
func (s *ProgramService) ListByClient(clientID string) ([]*models.Program, error) {
	rows, err := s.db.Query(`
		SELECT id, cliente_id, anamnesi_id, nome, tipo, stato, data_inizio, data_fine, contenuto, contenuto_strutturato, note, created_at, updated_at
		FROM programmi WHERE cliente_id = ?
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	programs := []*models.Program{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate programs: %w", err)
	}
	return programs, nil
}

// UpdateStatus moves a program through its lifecycle (bozza, attivo,
// completato, archiviato). Returns a ValidationError on unknown states.
func (s *ProgramService) UpdateStatus(id, status string) error {
	switch status {
	case models.ProgramStatusDraft, models.ProgramStatusActive, models.ProgramStatusCompleted, models.ProgramStatusArchived:
	default:
		return &ValidationError{Field: "stato", Reason: fmt.Sprintf("unknown program status %q", status)}
	}

	res, err := s.db.Exec(`
		UPDATE programmi SET stato = ?, updated_at = ? WHERE id = ?
	`, status, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to update program status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &ValidationError{Field: "id", Reason: "program not found"}
	}
	return nil
}

func scanProgram(row rowScanner) (*models.Program, error) {
	var p models.Program
	var anamnesiID, dataInizio, dataFine, contenuto, note sql.NullString
	var tipo string
	var strutturato int
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.ClientID, &anamnesiID, &p.Name, &tipo, &p.Status,
		&dataInizio, &dataFine, &contenuto, &strutturato, &note, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.IntakeID = anamnesiID.String
	p.Family = models.ProgramFamily(tipo)
	p.Content = contenuto.String
	p.IsParsed = strutturato != 0
	p.Notes = note.String
	p.StartDate = parseNullableDate(dataInizio)
	p.EndDate = parseNullableDate(dataFine)
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}

func nullableString(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}

func nullableDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func parseNullableDate(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v.String)
	if err != nil {
		return nil
	}
	return &t
}
