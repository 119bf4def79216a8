package handlers

import (
	"fmt"

	"emiverify/internal/models"
	"emiverify/internal/services/verification"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type VerificationHandler struct {
	service verification.Service
}

func NewVerificationHandler(service verification.Service) *VerificationHandler {
	return &VerificationHandler{service: service}
}

// ListVerifications returns the verifications matching the query filters, newest first
func (h *VerificationHandler) ListVerifications(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	records, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, utils.Envelope{
		Success: true,
		Data:    fiber.Map{"verifications": records, "count": len(records)},
	})
}

func (h *VerificationHandler) GetVerification(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	v, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.Success(c, "", v)
}

func (h *VerificationHandler) CreateVerification(c *fiber.Ctx) error {
	var input models.DocumentVerificationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	v, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return utils.Created(c, "Document verification created successfully", v)
}

func (h *VerificationHandler) UpdateVerification(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch models.DocumentVerificationPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	v, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return utils.Success(c, "Document verification updated successfully", v)
}

func (h *VerificationHandler) DeleteVerification(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.Success(c, "Document verification deleted successfully", nil)
}

// BulkCreate accepts either a bare array or {"verifications": [...]}.
// A row that fails to decode is reported as failed; the other rows are still created.
func (h *VerificationHandler) BulkCreate(c *fiber.Ctx) error {
	result, err := bulkCreate(c, "verifications", h.service.BulkCreate)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Bulk upload completed. %d successful, %d failed.", result.Successful, result.Failed)
	return utils.Created(c, msg, result)
}
