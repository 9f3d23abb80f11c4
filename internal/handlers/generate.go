package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"fitmanager/internal/models"
	"fitmanager/internal/services"
)

// GenerateHandler drives the program-generation pipeline over HTTP:
// record lookup, dossier compilation, prompt assembly, model call,
// extraction.
type GenerateHandler struct {
	records    *services.RecordService
	profiles   *services.ProfileService
	prompts    *services.PromptService
	generation *services.GenerationService
	extraction *services.ExtractionService
}

// NewGenerateHandler creates the generation handler.
func NewGenerateHandler(
	records *services.RecordService,
	profiles *services.ProfileService,
	prompts *services.PromptService,
	generation *services.GenerationService,
	extraction *services.ExtractionService,
) *GenerateHandler {
	return &GenerateHandler{
		records:    records,
		profiles:   profiles,
		prompts:    prompts,
		generation: generation,
		extraction: extraction,
	}
}

type generateRequest struct {
	ClientID      string `json:"cliente_id"`
	IntakeID      string `json:"anamnesi_id"`
	Family        string `json:"tipo_programma"`
	TrainerNotes  string `json:"istruzioni_aggiuntive"`
	PriorPrograms string `json:"programmi_precedenti"`
}

type continueRequest struct {
	History     models.History `json:"conversation_history"`
	UserMessage string         `json:"user_message"`
}

// Start begins a generation conversation for a client.
// POST /api/generate
func (h *GenerateHandler) Start(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.ClientID == "" || req.IntakeID == "" || req.Family == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cliente_id, anamnesi_id e tipo_programma sono obbligatori",
		})
	}
	family := models.ProgramFamily(req.Family)
	if !family.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "tipo_programma deve essere 'base' o 'periodizzato'",
		})
	}

	client, err := h.records.GetClient(req.ClientID)
	if err != nil {
		log.Printf("❌ Failed to fetch client %s: %v", req.ClientID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch client",
		})
	}
	if client == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Cliente non trovato",
		})
	}

	intake, err := h.records.GetIntake(req.IntakeID)
	if err != nil {
		log.Printf("❌ Failed to fetch intake %s: %v", req.IntakeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch intake",
		})
	}
	if intake == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Anamnesi non trovata",
		})
	}

	// Best effort: a client without measurements still gets a program.
	measurement, err := h.records.GetLatestMeasurement(req.ClientID)
	if err != nil {
		log.Printf("⚠️ Failed to fetch latest measurement for %s: %v", req.ClientID, err)
		measurement = nil
	}

	dossier, err := h.profiles.CompileProfile(client, intake, measurement)
	if err != nil {
		return errorResponse(c, err)
	}

	prompt, err := h.prompts.Assemble(dossier, family, req.TrainerNotes, req.PriorPrograms)
	if err != nil {
		return errorResponse(c, err)
	}

	history, usage, err := h.generation.Start(c.Context(), prompt)
	if err != nil {
		return errorResponse(c, err)
	}

	reply := history[len(history)-1].Content
	extracted := h.extraction.ExtractProgram(reply)

	return c.JSON(fiber.Map{
		"success":  true,
		"risposta": reply,
		"cliente": fiber.Map{
			"id":      client.ID,
			"nome":    client.FirstName,
			"cognome": client.LastName,
		},
		"anamnesi_id":          intake.ID,
		"tipo_programma":       family,
		"conversation_history": history,
		"programma":            extracted,
		"usage":                usage,
	})
}

// Continue appends a trainer message to an existing conversation and
// returns the next assistant reply.
// PUT /api/generate
func (h *GenerateHandler) Continue(c *fiber.Ctx) error {
	var req continueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.History) == 0 || req.UserMessage == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "conversation_history e user_message sono obbligatori",
		})
	}

	history, usage, err := h.generation.Continue(c.Context(), req.History, req.UserMessage)
	if err != nil {
		// The returned history already carries the pending user turn, so
		// the trainer can retry without retyping the message.
		status := statusFor(err)
		return c.Status(status).JSON(fiber.Map{
			"error":                err.Error(),
			"conversation_history": history,
		})
	}

	reply := history[len(history)-1].Content
	extracted := h.extraction.ExtractProgram(reply)

	return c.JSON(fiber.Map{
		"success":              true,
		"risposta":             reply,
		"conversation_history": history,
		"programma":            extracted,
		"usage":                usage,
	})
}

// statusFor maps pipeline error types onto HTTP statuses.
func statusFor(err error) int {
	var ve *services.ValidationError
	var ce *services.CompilationError
	var ge *services.GenerationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.As(err, &ce):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &ge):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= 500 {
		log.Printf("❌ Generation pipeline error: %v", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
