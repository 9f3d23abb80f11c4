package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"fitmanager/internal/export"
	"fitmanager/internal/models"
	"fitmanager/internal/services"
)

// ProgramHandler exposes the program store: saving finalized programs,
// listing a client's history, and the xlsx export.
type ProgramHandler struct {
	programs *services.ProgramService
}

// NewProgramHandler creates the program handler.
func NewProgramHandler(programs *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{programs: programs}
}

// Create saves a finalized program.
// POST /api/programmi
func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	var p models.Program
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.programs.Create(&p); err != nil {
		return errorResponse(c, err)
	}

	log.Printf("✅ Program %s saved for client %s", p.ID, p.ClientID)
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Get fetches one program.
// GET /api/programmi/:id
func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	p, err := h.programs.GetByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Programma non trovato",
		})
	}
	return c.JSON(p)
}

// ListByClient returns a client's programs, newest first.
// GET /api/clienti/:id/programmi
func (h *ProgramHandler) ListByClient(c *fiber.Ctx) error {
	programs, err := h.programs.ListByClient(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"programmi": programs,
		"count":     len(programs),
	})
}

// UpdateStatus moves a program through its lifecycle.
// PATCH /api/programmi/:id/stato
func (h *ProgramHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"stato"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.programs.UpdateStatus(c.Params("id"), req.Status); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Export renders a program as an xlsx workbook.
// GET /api/programmi/:id/export
func (h *ProgramHandler) Export(c *fiber.Ctx) error {
	p, err := h.programs.GetByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Programma non trovato",
		})
	}

	f, err := export.BuildWorkbook(p)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("❌ Failed to render workbook for program %s: %v", p.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render workbook",
		})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="programma_%s.xlsx"`, p.ID))
	return c.Send(buf.Bytes())
}
