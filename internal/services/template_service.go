package services

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"fitmanager/internal/models"
)

//go:embed families.yaml
var familiesYAML []byte

// familyConfig is the static configuration block shared by both rule
// preambles: the gym's equipment catalog and the periodization phases.
type familyConfig struct {
	Equipment         []string `yaml:"equipment"`
	Phases            []phase  `yaml:"phases"`
	PhaseVariationPct int      `yaml:"phase_variation_pct"`
}

type phase struct {
	Name        string `yaml:"name"`
	Duration    string `yaml:"duration"`
	Progression string `yaml:"progression"`
}

// TemplateService owns the built-in program families. Preambles are
// assembled once at construction and immutable afterwards.
type TemplateService struct {
	preambles map[models.ProgramFamily]string
	equipment []string
}

// NewTemplateService parses the embedded family configuration and builds
// the two rule preambles.
func NewTemplateService() (*TemplateService, error) {
	var cfg familyConfig
	if err := yaml.Unmarshal(familiesYAML, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse families config: %w", err)
	}
	if len(cfg.Equipment) == 0 {
		return nil, fmt.Errorf("families config has no equipment catalog")
	}
	if len(cfg.Phases) != 4 {
		return nil, fmt.Errorf("periodized family requires exactly 4 phases, got %d", len(cfg.Phases))
	}

	catalog := strings.Join(cfg.Equipment, ", ")

	s := &TemplateService{
		preambles: map[models.ProgramFamily]string{
			models.FamilyStandard:   buildStandardPreamble(catalog),
			models.FamilyPeriodized: buildPeriodizedPreamble(catalog, cfg.Phases, cfg.PhaseVariationPct),
		},
		equipment: cfg.Equipment,
	}
	return s, nil
}

// RulesFor returns the rule preamble for a family.
func (s *TemplateService) RulesFor(family models.ProgramFamily) (string, error) {
	preamble, ok := s.preambles[family]
	if !ok {
		return "", &ValidationError{Field: "tipo_programma", Reason: fmt.Sprintf("unknown program family %q", family)}
	}
	return preamble, nil
}

// Equipment returns the catalog entries (for display and validation).
func (s *TemplateService) Equipment() []string {
	out := make([]string, len(s.equipment))
	copy(out, s.equipment)
	return out
}

func buildStandardPreamble(catalog string) string {
	return `📋 PROGRAMMA BASE (NON PERIODIZZATO)

IO SONO UN PERSONAL TRAINER CHE LAVORA IN UNA PALESTRA ATTREZZATA CON
MACCHINARI ISOTONICI E LE CLASSICHE ATTREZZATURE DA PALESTRA (PESI
LIBERI, DISCHI, BILANCIERI, STEP, KETTLEBELL, TRX, CASTELLO, PANCHE,
CAVI ECC...).

🎯 IL TUO COMPITO:
Impersonificarti in una Personal Trainer Professionista e gestire la creazione di un PROGRAMMA DI ALLENAMENTO PERSONALIZZATO basato sui dati del cliente forniti.

📋 STRUTTURA JSON DA PRODURRE:
Il programma deve essere in formato JSON con questa struttura per ogni giorno (A, B, C, ecc.):

{
  "cliente": "NOME COGNOME",
  "data_inizio_scheda": "DD/MM/YYYY",
  "data_fine_scheda": "DD/MM/YYYY",
  "riscaldamentoA": "5' CYCLETTE (120-130 bpm)",
  "mobilita1A": "CIRCONDUZIONI BRACCIA 10 REP",
  "mobilita2A": "ROTAZIONI BUSTO 12 REP",
  "gruppiA": "PETTO, SPALLE, TRICIPITI (Buffer 2)",
  "es1A": "PANCA PIANA BILANCIERE", "serie1A": "4", "rep1A": "8", "rest1A": "120''", "speciali1A": "",
  "es2A": "SHOULDER PRESS", "serie2A": "3", "rep2A": "10", "rest2A": "90''", "speciali2A": "",
  "stretching1A": "ALLUNGAMENTO PETTORALI 30''",
  "cooldownA": "3' CAMMINATA LENTA"
}

⚠️ REGOLE FONDAMENTALI:
- Tutto in MAIUSCOLO eccetto unità di misura (kg, m, cm, s, bpm)
- Buffer/RPE tra parentesi: "(Buffer 2)", "(RPE 8)"
- Esercizi unilaterali: usa "pp" (per parte)
- Serie speciali nel campo dedicato "speciali"
- MOBILITÀ solo se richiesta dal cliente
- STRETCHING solo se richiesto dal cliente
- IL TEMPO NON DEVE MAI SFORARE la durata indicata

🔧 ATTREZZATURE DISPONIBILI:
` + catalog + `.`
}

func buildPeriodizedPreamble(catalog string, phases []phase, variationPct int) string {
	var phaseList strings.Builder
	var progression strings.Builder
	for i, p := range phases {
		phaseList.WriteString(fmt.Sprintf("- FASE %d → %s (%s)\n", i+1, p.Name, p.Duration))
		progression.WriteString(fmt.Sprintf("- FASE %d: %s\n", i+1, p.Progression))
	}

	return fmt.Sprintf(`📋 PROGRAMMA AVANZATO PERIODIZZATO (4 FASI)

IO SONO UN PERSONAL TRAINER CHE LAVORA IN UNA PALESTRA ATTREZZATA CON
MACCHINARI ISOTONICI E LE CLASSICHE ATTREZZATURE DA PALESTRA.

🎯 IL TUO COMPITO:
Creare un PROGRAMMA PERIODIZZATO SU 4 FASI:
%s
📈 PROGRESSIONE TRA FASI:
%s
📋 STRUTTURA JSON (4 JSON SEPARATI):
Ogni fase deve avere il proprio JSON completo con tutti i giorni di allenamento.

⚠️ REGOLE FONDAMENTALI:
- Tutto in MAIUSCOLO eccetto unità di misura
- Progressione logica tra le fasi
- Variare almeno %d%% esercizi tra fasi
- Il tempo NON deve mai sforare
- Verificare compatibilità con limitazioni fisiche del cliente

🔧 ATTREZZATURE DISPONIBILI:
%s.`, phaseList.String(), progression.String(), variationPct, catalog)
}
