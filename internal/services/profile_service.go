package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fitmanager/internal/models"
)

// Sentinel rendered for every absent intake answer. The dossier never
// silently drops a field.
const notDefined = "N/D"

// ProfileService compiles client records into the canonical text dossier
// fed to the model. It is a pure function of its inputs plus the injected
// clock (used only for the age calculation).
type ProfileService struct {
	now func() time.Time
}

// NewProfileService creates a profile compiler using the system clock.
func NewProfileService() *ProfileService {
	return &ProfileService{now: time.Now}
}

// NewProfileServiceAt creates a profile compiler with a fixed clock.
func NewProfileServiceAt(now func() time.Time) *ProfileService {
	return &ProfileService{now: now}
}

// CompileProfile renders the dossier for one client + selected intake and,
// when available, the latest body-composition measurement. Identical
// inputs produce byte-identical output.
func (s *ProfileService) CompileProfile(client *models.Client, intake *models.Intake, measurement *models.Measurement) (string, error) {
	if client == nil {
		return "", &CompilationError{Reason: "client record is nil"}
	}
	if intake == nil {
		return "", &CompilationError{Reason: "intake record is nil"}
	}
	if intake.ClientID != "" && client.ID != "" && intake.ClientID != client.ID {
		return "", &CompilationError{Reason: fmt.Sprintf("intake %s does not belong to client %s", intake.ID, client.ID)}
	}

	weight := renderFloat(intake.WeightKg)
	if measurement != nil {
		weight = formatFloat(measurement.WeightKg)
	}

	var b strings.Builder

	section(&b, "DATI PERSONALI")
	line(&b, "01_DATI_nome", renderText(client.FirstName))
	line(&b, "01_DATI_cognome", renderText(client.LastName))
	line(&b, "01_DATI_eta", s.renderAge(client.BirthDate))
	line(&b, "01_DATI_sesso", renderText(client.Sex))
	line(&b, "01_DATI_altezza_cm", renderFloat(intake.HeightCm))
	line(&b, "01_DATI_peso_kg", weight)
	line(&b, "01_DATI_professione", renderString(intake.Profession))
	line(&b, "01_DATI_telefono", renderText(client.Phone))

	section(&b, "OBIETTIVI")
	line(&b, "02_OBIETTIVI_principale", renderString(intake.PrimaryGoal))
	line(&b, "02_OBIETTIVI_secondari", renderString(intake.SecondaryGoal))
	line(&b, "02_OBIETTIVI_specifici", renderString(intake.SpecificGoals))
	line(&b, "02_OBIETTIVI_tempistica", renderString(intake.GoalTimeline))
	line(&b, "02_OBIETTIVI_motivazione", renderString(intake.Motivation))

	section(&b, "ESPERIENZA")
	line(&b, "03_ESPERIENZA_livello", renderString(intake.ExperienceLevel))
	line(&b, "03_ESPERIENZA_sport_passato", renderBoolPtr(intake.PastSport))
	line(&b, "03_ESPERIENZA_sport_passato_dettagli", renderString(intake.PastSportDetails))
	line(&b, "03_ESPERIENZA_sport_attuale", renderBoolPtr(intake.CurrentSport))
	line(&b, "03_ESPERIENZA_sport_attuale_dettagli", renderString(intake.CurrentSportDetails))
	line(&b, "03_ESPERIENZA_massimali", renderString(intake.CurrentMaxLifts))

	section(&b, "DISPONIBILITÀ")
	line(&b, "04_DISPONIBILITA_giorni_garantiti", renderInt(intake.WeeklySessions))
	line(&b, "04_DISPONIBILITA_giorni_extra", renderIntDefault(intake.OptionalSessions, "0"))
	line(&b, "04_DISPONIBILITA_giorni_specifici", renderList(intake.FixedDays))
	line(&b, "04_DISPONIBILITA_durata", renderInt(intake.SessionMinutes))
	line(&b, "04_DISPONIBILITA_orari", renderString(intake.TrainingTime))
	line(&b, "04_DISPONIBILITA_mobilita_pre", renderBool(intake.MobilityWarmup))
	line(&b, "04_DISPONIBILITA_stretching_post", renderBool(intake.PostStretching))
	line(&b, "04_DISPONIBILITA_esercizi_preferiti", renderString(intake.FavoriteExercises))
	line(&b, "04_DISPONIBILITA_esercizi_evitare", renderString(intake.ExercisesToAvoid))

	section(&b, "SALUTE")
	line(&b, "05_SALUTE_dolori_attuali", renderString(intake.CurrentPain))
	line(&b, "05_SALUTE_descrizione_dolori", renderString(intake.PainDescription))
	line(&b, "05_SALUTE_infortuni", renderString(intake.InjuryHistory))
	line(&b, "05_SALUTE_dettagli_infortuni", renderString(intake.InjuryDetails))
	line(&b, "05_SALUTE_patologie", renderList(intake.Pathologies))
	line(&b, "05_SALUTE_altre_patologie", renderString(intake.OtherPathologies))
	line(&b, "05_SALUTE_farmaci", renderString(intake.Medications))

	section(&b, "STILE DI VITA")
	line(&b, "07_STILE_qualita_sonno", renderInt(intake.SleepQuality)+"/10")
	line(&b, "07_STILE_ore_sonno", renderString(intake.SleepHours))
	line(&b, "07_STILE_livello_stress", renderInt(intake.StressLevel)+"/10")

	section(&b, "PREFERENZE")
	line(&b, "07_PREFERENZE_focus_muscolare", renderString(intake.MuscleFocus))

	section(&b, "NOTE FINALI")
	line(&b, "08_NOTE_informazioni_extra", renderString(intake.ExtraNotes))
	line(&b, "08_NOTE_domande", renderString(intake.TrainerQuestions))

	if measurement != nil {
		s.writeMeasurementBlock(&b, measurement)
	}

	if intake.IsReturning() {
		writeReturningBlock(&b, intake)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// writeMeasurementBlock appends the bioimpedance section. Only called
// when a snapshot exists; its absence leaves the dossier untouched.
func (s *ProfileService) writeMeasurementBlock(b *strings.Builder, m *models.Measurement) {
	section(b, "DATI BIOIMPEDENZIOMETRICI (ULTIMA MISURAZIONE)")
	b.WriteString("- Data misurazione: " + m.MeasuredAt.Format("02/01/2006") + "\n")
	b.WriteString("- Peso: " + formatFloat(m.WeightKg) + " kg\n")
	b.WriteString("- Grasso corporeo: " + renderFloat(m.BodyFatPct) + "%\n")
	b.WriteString("- BMI: " + renderFloat(m.BMI) + "\n")
	b.WriteString("- Muscolo scheletrico: " + renderFloat(m.SkeletalMusclePct) + "%\n")
	b.WriteString("- Massa muscolare: " + renderFloat(m.MuscleMassKg) + " kg\n")
	b.WriteString("- Proteine: " + renderFloat(m.ProteinPct) + "%\n")
	b.WriteString("- Metabolismo basale: " + renderFloat(m.BasalMetabolism) + " kcal\n")
	b.WriteString("- Grasso viscerale: " + renderFloat(m.VisceralFatLevel) + "\n")
	b.WriteString("- Idratazione: " + renderFloat(m.HydrationPct) + "%\n")
	b.WriteString("- Massa ossea: " + renderFloat(m.BoneMassKg) + " kg\n")
	b.WriteString("- Età metabolica: " + renderInt(m.MetabolicAge) + " anni\n")
}

// writeReturningBlock appends the prior-program outcome section for
// returning clients.
func writeReturningBlock(b *strings.Builder, intake *models.Intake) {
	section(b, "CLIENTE RICORRENTE")
	b.WriteString("- Conclusione ultimo programma: " + renderString(intake.LastProgramConclusion) + "\n")
	b.WriteString("- Durata programma precedente: " + renderString(intake.LastProgramDuration) + "\n")
	b.WriteString("- Efficacia programma precedente: " + renderInt(intake.LastProgramEfficacy) + "/10\n")
	b.WriteString("- Aspetti positivi: " + renderList(intake.PositiveAspects) + "\n")
	b.WriteString("- Modifiche desiderate: " + renderString(intake.DesiredChanges) + "\n")
	b.WriteString("- Esercizi problematici: " + renderString(intake.ProblematicExercises) + "\n")
	b.WriteString("- Risultati ottenuti: " + renderString(intake.AchievedResults) + "\n")
	b.WriteString("- Cambiamenti situazione: " + renderString(intake.SituationChanges) + "\n")
}

// renderAge computes whole years with the month/day cutoff: a birthday
// later in the year than "today" subtracts one from the naive difference.
func (s *ProfileService) renderAge(birthDate *time.Time) string {
	if birthDate == nil {
		return notDefined
	}
	today := s.now()
	age := today.Year() - birthDate.Year()
	if today.Month() < birthDate.Month() ||
		(today.Month() == birthDate.Month() && today.Day() < birthDate.Day()) {
		age--
	}
	return strconv.Itoa(age)
}

func section(b *strings.Builder, name string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString("========== " + name + " ==========\n")
}

func line(b *strings.Builder, key, value string) {
	b.WriteString("- " + key + ": " + value + "\n")
}

func renderText(v string) string {
	if strings.TrimSpace(v) == "" {
		return notDefined
	}
	return v
}

func renderString(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return notDefined
	}
	return *v
}

func renderInt(v *int) string {
	if v == nil {
		return notDefined
	}
	return strconv.Itoa(*v)
}

func renderIntDefault(v *int, def string) string {
	if v == nil {
		return def
	}
	return strconv.Itoa(*v)
}

func renderFloat(v *float64) string {
	if v == nil {
		return notDefined
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderList(v []string) string {
	if len(v) == 0 {
		return notDefined
	}
	return strings.Join(v, ", ")
}

func renderBool(v bool) string {
	if v {
		return "Sì"
	}
	return "No"
}

func renderBoolPtr(v *bool) string {
	if v == nil {
		return notDefined
	}
	return renderBool(*v)
}
