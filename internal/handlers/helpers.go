package handlers

import (
	"strconv"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"github.com/gofiber/fiber/v2"
)

func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.ErrInvalidBody.Wrap(err)
	}
	return nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

func parseFilter(c *fiber.Ctx) (models.RecordFilter, error) {
	var q models.FilterQuery
	if err := c.QueryParser(&q); err != nil {
		return models.RecordFilter{}, apperrors.ErrInvalidFilter.Wrap(err)
	}
	f, err := q.Filter()
	if err != nil {
		return models.RecordFilter{}, apperrors.ErrInvalidFilter.Wrap(err)
	}
	return f, nil
}
