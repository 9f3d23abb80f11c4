package services

import (
	"errors"
	"strings"
	"testing"

	"fitmanager/internal/models"
)

func TestNewTemplateService(t *testing.T) {
	service, err := NewTemplateService()
	if err != nil {
		t.Fatalf("Failed to build template service: %v", err)
	}
	if len(service.Equipment()) == 0 {
		t.Error("Expected a non-empty equipment catalog")
	}
}

func TestRulesFor_Families(t *testing.T) {
	service, err := NewTemplateService()
	if err != nil {
		t.Fatalf("Failed to build template service: %v", err)
	}

	standard, err := service.RulesFor(models.FamilyStandard)
	if err != nil {
		t.Fatalf("RulesFor(base) failed: %v", err)
	}
	periodized, err := service.RulesFor(models.FamilyPeriodized)
	if err != nil {
		t.Fatalf("RulesFor(periodizzato) failed: %v", err)
	}

	if standard == periodized {
		t.Error("Expected distinct preambles per family")
	}
	if !strings.Contains(periodized, "FASE 4") {
		t.Error("Expected the periodized preamble to list 4 phases")
	}
	// Both preambles embed the equipment catalog.
	for _, preamble := range []string{standard, periodized} {
		if !strings.Contains(preamble, "Lat Machine") || !strings.Contains(preamble, "Kettlebell") {
			t.Error("Expected the equipment catalog in the preamble")
		}
	}
}

func TestRulesFor_UnknownFamily(t *testing.T) {
	service, err := NewTemplateService()
	if err != nil {
		t.Fatalf("Failed to build template service: %v", err)
	}

	var ve *ValidationError
	if _, err := service.RulesFor(models.ProgramFamily("crossfit")); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for unknown family, got %v", err)
	}
}

func TestEquipment_ReturnsCopy(t *testing.T) {
	service, err := NewTemplateService()
	if err != nil {
		t.Fatalf("Failed to build template service: %v", err)
	}

	first := service.Equipment()
	first[0] = "MODIFICATO"
	if service.Equipment()[0] == "MODIFICATO" {
		t.Error("Expected Equipment to return an independent copy")
	}
}
