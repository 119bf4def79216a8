package handlers

import (
	"context"
	"encoding/json"
	"sort"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"github.com/gofiber/fiber/v2"
)

// bulkRows splits the body into raw rows. It takes a bare array or an object
// holding the array under key.
func bulkRows(body []byte, key string) ([]json.RawMessage, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, apperrors.ErrInvalidBody.Wrap(err)
	}
	if raw, ok := wrapped[key]; ok {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, apperrors.ErrInvalidBody.Wrap(err)
		}
	}
	return rows, nil
}

// bulkCreate decodes every row on its own. Rows that do not decode are failed
// in place and the rest go to create; error indexes refer to the request rows.
func bulkCreate[T, R any](
	c *fiber.Ctx,
	key string,
	create func(context.Context, []T) (*models.BulkResult[R], error),
) (*models.BulkResult[R], error) {
	rows, err := bulkRows(c.Body(), key)
	if err != nil {
		return nil, err
	}

	inputs := make([]T, 0, len(rows))
	positions := make([]int, 0, len(rows))
	failed := make([]models.BulkError, 0)
	for i, row := range rows {
		var input T
		if err := json.Unmarshal(row, &input); err != nil {
			failed = append(failed, models.BulkError{Index: i, Row: row, Error: "invalid row: " + err.Error()})
			continue
		}
		inputs = append(inputs, input)
		positions = append(positions, i)
	}

	result := &models.BulkResult[R]{Created: make([]R, 0), Errors: make([]models.BulkError, 0)}
	if len(inputs) > 0 || len(rows) == 0 {
		result, err = create(c.UserContext(), inputs)
		if err != nil {
			return nil, err
		}
		for i, e := range result.Errors {
			if e.Index >= 0 && e.Index < len(positions) {
				result.Errors[i].Index = positions[e.Index]
			}
		}
	}

	result.Errors = append(result.Errors, failed...)
	sort.SliceStable(result.Errors, func(i, j int) bool { return result.Errors[i].Index < result.Errors[j].Index })
	result.TotalProcessed = len(rows)
	result.Successful = len(result.Created)
	result.Failed = len(result.Errors)
	return result, nil
}
