package export

import (
	"testing"

	"fitmanager/internal/models"
)

func parsedProgram() *models.Program {
	return &models.Program{
		ID:       "p-1",
		ClientID: "c-1",
		Name:     "Scheda Base",
		Family:   models.FamilyStandard,
		IsParsed: true,
		Content: `{
			"cliente": "MARIO ROSSI",
			"data_inizio_scheda": "01/09/2026",
			"data_fine_scheda": "31/10/2026",
			"riscaldamentoA": "5' CYCLETTE",
			"gruppiA": "PETTO, TRICIPITI",
			"es1A": "PANCA PIANA BILANCIERE", "serie1A": "4", "rep1A": "8", "rest1A": "120''", "speciali1A": "",
			"es2A": "CROCI AI CAVI", "serie2A": "3", "rep2A": "12", "rest2A": "90''", "speciali2A": "DROP SET",
			"cooldownA": "3' CAMMINATA",
			"gruppiB": "SCHIENA, BICIPITI",
			"es1B": "LAT MACHINE", "serie1B": "4", "rep1B": "10", "rest1B": "120''", "speciali1B": ""
		}`,
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(parsedProgram())
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("Expected one sheet per day, got %v", sheets)
	}
	if sheets[0] != "Giorno A" || sheets[1] != "Giorno B" {
		t.Errorf("Unexpected sheet names: %v", sheets)
	}

	name, err := f.GetCellValue("Giorno A", "A1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if name != "MARIO ROSSI" {
		t.Errorf("Expected client name in A1, got %q", name)
	}

	ex, err := f.GetCellValue("Giorno A", "A7")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if ex != "PANCA PIANA BILANCIERE" {
		t.Errorf("Expected first exercise under the table header, got %q", ex)
	}

	special, err := f.GetCellValue("Giorno A", "E8")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if special != "DROP SET" {
		t.Errorf("Expected special set note, got %q", special)
	}
}

func TestBuildWorkbook_RawProgram(t *testing.T) {
	p := &models.Program{
		ID:       "p-2",
		ClientID: "c-1",
		IsParsed: false,
		Content:  "Testo libero senza JSON",
	}
	if _, err := BuildWorkbook(p); err == nil {
		t.Error("Expected error for a program without structured content")
	}
}

func TestBuildWorkbook_NoDays(t *testing.T) {
	p := &models.Program{
		ID:       "p-3",
		ClientID: "c-1",
		IsParsed: true,
		Content:  `{"cliente": "MARIO ROSSI"}`,
	}
	if _, err := BuildWorkbook(p); err == nil {
		t.Error("Expected error for a document without training days")
	}
}
