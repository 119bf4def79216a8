package handlers

import (
	"fmt"

	"emiverify/internal/models"
	"emiverify/internal/services/insurance"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type InsuranceHandler struct {
	service insurance.Service
}

func NewInsuranceHandler(service insurance.Service) *InsuranceHandler {
	return &InsuranceHandler{service: service}
}

// ListCases returns the cases matching the query filters, newest first
func (h *InsuranceHandler) ListCases(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	cases, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, utils.Envelope{
		Success: true,
		Data:    fiber.Map{"cases": cases, "count": len(cases)},
	})
}

func (h *InsuranceHandler) GetCase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ic, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.Success(c, "", ic)
}

func (h *InsuranceHandler) CreateCase(c *fiber.Ctx) error {
	var input models.InsuranceCaseInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	ic, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return utils.Created(c, "Insurance case created successfully", ic)
}

func (h *InsuranceHandler) UpdateCase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch models.InsuranceCasePatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	ic, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return utils.Success(c, "Insurance case updated successfully", ic)
}

func (h *InsuranceHandler) DeleteCase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.Success(c, "Insurance case deleted successfully", nil)
}

// BulkCreate accepts either a bare array or {"cases": [...]}.
// A row that fails to decode is reported as failed; the other rows are still created.
func (h *InsuranceHandler) BulkCreate(c *fiber.Ctx) error {
	result, err := bulkCreate(c, "cases", h.service.BulkCreate)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Bulk upload completed. %d successful, %d failed.", result.Successful, result.Failed)
	return utils.Created(c, msg, result)
}
