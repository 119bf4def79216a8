package handlers

import (
	"fmt"

	"emiverify/internal/services/export"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ExportHandler struct {
	service export.Service
}

func NewExportHandler(service export.Service) *ExportHandler {
	return &ExportHandler{service: service}
}

func (h *ExportHandler) InsuranceCases(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	f, err := h.service.InsuranceCases(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return sendCSV(c, f)
}

func (h *ExportHandler) DocumentVerifications(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	f, err := h.service.DocumentVerifications(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return sendCSV(c, f)
}

func (h *ExportHandler) Summary(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return utils.Success(c, "", summary)
}

// sendCSV streams the file; the body stream is closed by fasthttp, which deletes the file.
func sendCSV(c *fiber.Ctx, f *export.File) error {
	rc, err := f.Open()
	if err != nil {
		_ = f.Remove()
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.SendStream(rc)
}
