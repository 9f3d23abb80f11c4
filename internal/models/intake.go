package models

import "time"

// Client-type values for Intake.ClientType.
const (
	ClientTypeNew       = "nuovo"
	ClientTypeReturning = "ricorrente"
)

// Intake is one completed anamnesis questionnaire for a client.
// A client can have several over time; the generation pipeline always
// operates on exactly one (the selected one).
//
// Optional scalar answers are pointers so that "not answered" is
// distinguishable from a zero value; the profile compiler renders every
// absent answer with the N/D sentinel.
type Intake struct {
	ID       string `json:"id"`
	ClientID string `json:"cliente_id"`

	// Sezione 0: tipo cliente
	ClientType            string   `json:"tipo_cliente"` // nuovo | ricorrente
	LastProgramConclusion *string  `json:"conclusione_ultimo_programma,omitempty"`
	LastProgramDuration   *string  `json:"durata_programma_precedente,omitempty"`
	LastProgramEfficacy   *int     `json:"efficacia_programma_precedente,omitempty"` // 1-10
	PositiveAspects       []string `json:"aspetti_positivi_precedente,omitempty"`
	DesiredChanges        *string  `json:"modifiche_desiderate,omitempty"`
	ProblematicExercises  *string  `json:"esercizi_problematici,omitempty"`
	AchievedResults       *string  `json:"risultati_ottenuti,omitempty"`
	SituationChanges      *string  `json:"cambiamenti_situazione,omitempty"`

	// Sezione 1-2: dati personali e fisici
	Profession *string  `json:"professione,omitempty"`
	HeightCm   *float64 `json:"altezza_cm,omitempty"`
	WeightKg   *float64 `json:"peso_kg,omitempty"`

	// Sezione 3: modalità di allenamento
	WeeklySessions    *int     `json:"allenamenti_fissi_settimana,omitempty"`
	OptionalSessions  *int     `json:"allenamenti_facoltativi_settimana,omitempty"`
	FixedDays         []string `json:"giorni_fissi_specifici,omitempty"`
	SessionMinutes    *int     `json:"durata_sessione_minuti,omitempty"`
	TrainingTime      *string  `json:"orario_allenamento,omitempty"`
	MobilityWarmup    bool     `json:"mobilita_pre"`
	PostStretching    bool     `json:"stretching_post"`
	FavoriteExercises *string  `json:"esercizi_preferiti,omitempty"`
	ExercisesToAvoid  *string  `json:"esercizi_da_evitare,omitempty"`

	// Sezione 4: esperienza sportiva
	ExperienceLevel     *string `json:"livello_esperienza,omitempty"`
	PastSport           *bool   `json:"sport_passato,omitempty"`
	PastSportDetails    *string `json:"sport_passato_dettagli,omitempty"`
	CurrentSport        *bool   `json:"sport_attuale,omitempty"`
	CurrentSportDetails *string `json:"sport_attuale_dettagli,omitempty"`
	CurrentMaxLifts     *string `json:"massimali_attuali,omitempty"`

	// Sezione 5: salute e benessere
	CurrentPain      *string  `json:"presenza_dolori,omitempty"`
	PainDescription  *string  `json:"descrizione_dolori,omitempty"`
	InjuryHistory    *string  `json:"storia_infortuni,omitempty"`
	InjuryDetails    *string  `json:"dettagli_infortuni,omitempty"`
	Pathologies      []string `json:"patologie,omitempty"`
	OtherPathologies *string  `json:"altre_patologie_dettagli,omitempty"`
	Medications      *string  `json:"farmaci_regolari,omitempty"`
	SleepQuality     *int     `json:"qualita_sonno_voto,omitempty"` // 1-10
	SleepHours       *string  `json:"ore_sonno_media,omitempty"`
	StressLevel      *int     `json:"livello_stress_voto,omitempty"` // 1-10

	// Sezione 6: obiettivi
	PrimaryGoal   *string `json:"obiettivo_principale,omitempty"`
	SecondaryGoal *string `json:"obiettivo_secondario,omitempty"`
	SpecificGoals *string `json:"obiettivi_specifici_dettagli,omitempty"`
	GoalTimeline  *string `json:"tempistica_obiettivo,omitempty"`
	Motivation    *string `json:"motivazione,omitempty"`

	// Sezione 7: preferenze
	MuscleFocus *string `json:"focus_gruppi_muscolari,omitempty"`

	// Sezione 8: note
	ExtraNotes       *string `json:"note_aggiuntive,omitempty"`
	TrainerQuestions *string `json:"domande_al_trainer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsReturning reports whether this intake flags the client as returning.
// Gated on the flag alone: returning-only fields being populated on a
// "nuovo" intake must not trigger the returning-client dossier block.
func (i *Intake) IsReturning() bool {
	return i.ClientType == ClientTypeReturning
}
