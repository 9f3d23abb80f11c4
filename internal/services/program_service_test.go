package services

import (
	"errors"
	"testing"
	"time"

	"fitmanager/internal/models"
)

func TestProgramService_CreateDefaults(t *testing.T) {
	db, cleanup := setupTestDB(t, "test_program_create.db")
	defer cleanup()

	service := NewProgramService(db)

	p := &models.Program{
		ClientID: "c-1",
		Name:     "Scheda Ipertrofia",
		Family:   models.FamilyStandard,
		Content:  `{"cliente": "MARIO ROSSI"}`,
		IsParsed: true,
	}
	if err := service.Create(p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID == "" {
		t.Error("Expected an assigned program ID")
	}
	if p.Status != models.ProgramStatusDraft {
		t.Errorf("Expected draft status by default, got %s", p.Status)
	}

	got, err := service.GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected program, got nil")
	}
	if got.Family != models.FamilyStandard || !got.IsParsed {
		t.Error("Expected family and parsed flag to survive the round trip")
	}
	if got.Content != p.Content {
		t.Error("Expected content to survive the round trip")
	}
}

func TestProgramService_CreateValidation(t *testing.T) {
	db, cleanup := setupTestDB(t, "test_program_validate.db")
	defer cleanup()

	service := NewProgramService(db)

	var ve *ValidationError
	if err := service.Create(&models.Program{Name: "x", Family: models.FamilyStandard}); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for missing client, got %v", err)
	}
	if err := service.Create(&models.Program{ClientID: "c-1", Family: models.ProgramFamily("ibrido")}); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for unknown family, got %v", err)
	}
}

func TestProgramService_ListByClient(t *testing.T) {
	db, cleanup := setupTestDB(t, "test_program_list.db")
	defer cleanup()

	service := NewProgramService(db)

	first := &models.Program{
		ClientID:  "c-1",
		Name:      "Scheda 1",
		Family:    models.FamilyStandard,
		CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	second := &models.Program{
		ClientID:  "c-1",
		Name:      "Scheda 2",
		Family:    models.FamilyPeriodized,
		CreatedAt: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	other := &models.Program{ClientID: "c-2", Name: "Altro", Family: models.FamilyStandard}

	for _, p := range []*models.Program{first, second, other} {
		if err := service.Create(p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	programs, err := service.ListByClient("c-1")
	if err != nil {
		t.Fatalf("ListByClient failed: %v", err)
	}
	if len(programs) != 2 {
		t.Fatalf("Expected 2 programs, got %d", len(programs))
	}
	if programs[0].Name != "Scheda 2" {
		t.Errorf("Expected newest program first, got %s", programs[0].Name)
	}
}

func TestProgramService_UpdateStatus(t *testing.T) {
	db, cleanup := setupTestDB(t, "test_program_status.db")
	defer cleanup()

	service := NewProgramService(db)

	p := &models.Program{ClientID: "c-1", Name: "Scheda", Family: models.FamilyStandard}
	if err := service.Create(p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := service.UpdateStatus(p.ID, models.ProgramStatusActive); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, err := service.GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.ProgramStatusActive {
		t.Errorf("Expected active status, got %s", got.Status)
	}

	var ve *ValidationError
	if err := service.UpdateStatus(p.ID, "sospeso"); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for unknown status, got %v", err)
	}
	if err := service.UpdateStatus("missing", models.ProgramStatusArchived); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for missing program, got %v", err)
	}
}
