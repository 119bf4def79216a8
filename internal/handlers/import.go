package handlers

import (
	"context"
	"fmt"
	"io"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/services/importer"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	importer *importer.Importer
}

func NewImportHandler(im *importer.Importer) *ImportHandler {
	return &ImportHandler{importer: im}
}

func (h *ImportHandler) InsuranceCases(c *fiber.Ctx) error {
	return h.handle(c, h.importer.InsuranceCases)
}

func (h *ImportHandler) DocumentVerifications(c *fiber.Ctx) error {
	return h.handle(c, h.importer.DocumentVerifications)
}

func (h *ImportHandler) handle(c *fiber.Ctx, run func(context.Context, io.Reader) (*importer.Report, error)) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperrors.ErrInvalidImportFile.WithMessage("a CSV file is required in the 'file' field")
	}

	f, err := fh.Open()
	if err != nil {
		return apperrors.ErrInvalidImportFile.Wrap(err)
	}
	defer f.Close()

	report, err := run(c.UserContext(), f)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Import completed. %d imported, %d failed.", report.Imported, report.Failed)
	return utils.Created(c, msg, report)
}
