package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"fitmanager/internal/models"
	"fitmanager/internal/services"
)

// RecordHandler exposes the record store reads the generation flow needs
// plus the minimal writes used to seed it.
type RecordHandler struct {
	records *services.RecordService
}

// NewRecordHandler creates the record handler.
func NewRecordHandler(records *services.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// GetClient fetches one client.
// GET /api/clienti/:id
func (h *RecordHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.records.GetClient(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if client == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Cliente non trovato",
		})
	}
	return c.JSON(client)
}

// CreateClient inserts a client record.
// POST /api/clienti
func (h *RecordHandler) CreateClient(c *fiber.Ctx) error {
	var client models.Client
	if err := c.BodyParser(&client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if client.FirstName == "" || client.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "nome e cognome sono obbligatori",
		})
	}

	if err := h.records.CreateClient(&client); err != nil {
		return errorResponse(c, err)
	}
	log.Printf("✅ Client %s created", client.ID)
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetLatestIntake fetches a client's most recent intake.
// GET /api/clienti/:id/anamnesi/latest
func (h *RecordHandler) GetLatestIntake(c *fiber.Ctx) error {
	intake, err := h.records.GetLatestIntake(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if intake == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Anamnesi non trovata",
		})
	}
	return c.JSON(intake)
}

// CreateIntake inserts an intake record.
// POST /api/anamnesi
func (h *RecordHandler) CreateIntake(c *fiber.Ctx) error {
	var intake models.Intake
	if err := c.BodyParser(&intake); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if intake.ClientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cliente_id è obbligatorio",
		})
	}

	if err := h.records.CreateIntake(&intake); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(intake)
}

// CreateMeasurement inserts a body-composition snapshot.
// POST /api/misurazioni
func (h *RecordHandler) CreateMeasurement(c *fiber.Ctx) error {
	var m models.Measurement
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if m.ClientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cliente_id è obbligatorio",
		})
	}

	if err := h.records.CreateMeasurement(&m); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}
