package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"fitmanager/internal/database"
	"fitmanager/internal/models"
)

// RecordService is the read side of the record store: clients, intake
// records (most-recent-first) and body-composition measurements. Reads
// that feed the generation pipeline are cached for a short TTL so that
// repeated generations for the same client don't re-hit the store.
type RecordService struct {
	db    *database.DB
	cache *gocache.Cache
}

// NewRecordService creates a record service with a 5-minute read cache.
func NewRecordService(db *database.DB) *RecordService {
	return &RecordService{
		db:    db,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetClient fetches one client by ID. Returns (nil, nil) when not found.
func (s *RecordService) GetClient(id string) (*models.Client, error) {
	if cached, ok := s.cache.Get("cliente:" + id); ok {
		return cached.(*models.Client), nil
	}

	row := s.db.QueryRow(`
		SELECT id, nome, cognome, email, telefono, data_nascita, sesso, note, attivo, created_at, updated_at
		FROM clienti WHERE id = ?
	`, id)

	var c models.Client
	var telefono, dataNascita, sesso, note sql.NullString
	var attivo int
	var createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &telefono, &dataNascita, &sesso, &note, &attivo, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}

	c.Phone = telefono.String
	c.Sex = sesso.String
	c.Notes = note.String
	c.Active = attivo != 0
	if dataNascita.Valid && dataNascita.String != "" {
		t, err := time.Parse("2006-01-02", dataNascita.String)
		if err != nil {
			return nil, fmt.Errorf("invalid birth date for client %s: %w", id, err)
		}
		c.BirthDate = &t
	}
	c.CreatedAt = parseTimestamp(createdAt)
	c.UpdatedAt = parseTimestamp(updatedAt)

	s.cache.Set("cliente:"+id, &c, gocache.DefaultExpiration)
	return &c, nil
}

// CreateClient inserts a client, assigning an ID and timestamps when missing.
func (s *RecordService) CreateClient(c *models.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	var birthDate interface{}
	if c.BirthDate != nil {
		birthDate = c.BirthDate.Format("2006-01-02")
	}
	attivo := 0
	if c.Active {
		attivo = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO clienti (id, nome, cognome, email, telefono, data_nascita, sesso, note, attivo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, birthDate, c.Sex, c.Notes, attivo,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// GetIntake fetches one intake record by ID. Returns (nil, nil) when not found.
func (s *RecordService) GetIntake(id string) (*models.Intake, error) {
	if cached, ok := s.cache.Get("anamnesi:" + id); ok {
		return cached.(*models.Intake), nil
	}

	row := s.db.QueryRow(`
		SELECT id, cliente_id, tipo_cliente, dati, created_at, updated_at
		FROM anamnesi WHERE id = ?
	`, id)

	intake, err := scanIntake(row)
	if err != nil {
		return nil, err
	}
	if intake != nil {
		s.cache.Set("anamnesi:"+id, intake, gocache.DefaultExpiration)
	}
	return intake, nil
}

// GetLatestIntake fetches the most recent intake for a client.
// Returns (nil, nil) when the client has none.
func (s *RecordService) GetLatestIntake(clientID string) (*models.Intake, error) {
	row := s.db.QueryRow(`
		SELECT id, cliente_id, tipo_cliente, dati, created_at, updated_at
		FROM anamnesi WHERE cliente_id = ?
		ORDER BY created_at DESC LIMIT 1
	`, clientID)
	return scanIntake(row)
}

// CreateIntake inserts an intake record. The answer set is stored as one
// JSON document; only the lookup columns are materialized.
func (s *RecordService) CreateIntake(i *models.Intake) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.ClientType == "" {
		i.ClientType = models.ClientTypeNew
	}
	now := time.Now().UTC()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now

	dati, err := json.Marshal(i)
	if err != nil {
		return fmt.Errorf("failed to marshal intake: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO anamnesi (id, cliente_id, tipo_cliente, dati, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, i.ID, i.ClientID, i.ClientType, string(dati),
		i.CreatedAt.Format(time.RFC3339), i.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert intake: %w", err)
	}
	return nil
}

// GetLatestMeasurement fetches the client's most recent body-composition
// snapshot. Returns (nil, nil) when there is none: the dossier's
// measurement block is optional by design.
func (s *RecordService) GetLatestMeasurement(clientID string) (*models.Measurement, error) {
	row := s.db.QueryRow(`
		SELECT id, cliente_id, data_misurazione, peso_kg, dati, note, created_at
		FROM misurazioni WHERE cliente_id = ?
		ORDER BY data_misurazione DESC LIMIT 1
	`, clientID)

	var id, cID, measuredAt, dati, createdAt string
	var note sql.NullString
	var peso float64
	err := row.Scan(&id, &cID, &measuredAt, &peso, &dati, &note, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch measurement: %w", err)
	}

	var m models.Measurement
	if err := json.Unmarshal([]byte(dati), &m); err != nil {
		return nil, fmt.Errorf("corrupt measurement document %s: %w", id, err)
	}
	m.ID = id
	m.ClientID = cID
	m.MeasuredAt = parseTimestamp(measuredAt)
	m.WeightKg = peso
	m.Notes = note.String
	m.CreatedAt = parseTimestamp(createdAt)
	return &m, nil
}

// CreateMeasurement inserts a measurement snapshot.
func (s *RecordService) CreateMeasurement(m *models.Measurement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.MeasuredAt.IsZero() {
		m.MeasuredAt = now
	}

	dati, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal measurement: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO misurazioni (id, cliente_id, data_misurazione, peso_kg, dati, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.ClientID, m.MeasuredAt.Format(time.RFC3339), m.WeightKg, string(dati), m.Notes,
		m.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert measurement: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntake(row rowScanner) (*models.Intake, error) {
	var id, clienteID, tipoCliente, dati, createdAt, updatedAt string
	err := row.Scan(&id, &clienteID, &tipoCliente, &dati, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intake: %w", err)
	}

	var intake models.Intake
	if err := json.Unmarshal([]byte(dati), &intake); err != nil {
		return nil, fmt.Errorf("corrupt intake document %s: %w", id, err)
	}
	// Lookup columns win over whatever the document carries.
	intake.ID = id
	intake.ClientID = clienteID
	intake.ClientType = tipoCliente
	intake.CreatedAt = parseTimestamp(createdAt)
	intake.UpdatedAt = parseTimestamp(updatedAt)
	return &intake, nil
}

func parseTimestamp(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
