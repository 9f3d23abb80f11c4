package services

import (
	"strings"

	"fitmanager/internal/models"
)

// PromptService assembles the first user turn of a generation
// conversation: rule preamble, dossier, then the optional prior-program
// and trainer-note blocks, closed by the output-order directive.
type PromptService struct {
	templates *TemplateService
}

// NewPromptService creates a prompt assembler over the template library.
func NewPromptService(templates *TemplateService) *PromptService {
	return &PromptService{templates: templates}
}

// Assemble builds the initial prompt. trainerNotes and priorPrograms are
// opaque pass-through text; empty values emit no block at all.
func (s *PromptService) Assemble(dossier string, family models.ProgramFamily, trainerNotes, priorPrograms string) (string, error) {
	if strings.TrimSpace(dossier) == "" {
		return "", &CompilationError{Reason: "empty dossier"}
	}

	preamble, err := s.templates.RulesFor(family)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n---\n\nANAMNESI DEL CLIENTE:\n\n")
	b.WriteString(dossier)
	b.WriteString("\n")

	if strings.TrimSpace(priorPrograms) != "" {
		b.WriteString("\nPROGRAMMI PRECEDENTI DEL CLIENTE:\n")
		b.WriteString(priorPrograms)
		b.WriteString("\n")
	}

	if strings.TrimSpace(trainerNotes) != "" {
		b.WriteString("\nISTRUZIONI AGGIUNTIVE DEL TRAINER:\n")
		b.WriteString(trainerNotes)
		b.WriteString("\n")
	}

	b.WriteString(`
⚡ CREA IL PROGRAMMA DI ALLENAMENTO PERSONALIZZATO

Prima fornisci:
1. Analisi del cliente e approccio metodologico
2. Struttura settimanale proposta
3. Calcolo tempi per ogni sessione

Poi presenta il programma in formato TABELLA chiaro.

Infine, fornisci il JSON completo pronto per l'uso.`)

	return b.String(), nil
}
