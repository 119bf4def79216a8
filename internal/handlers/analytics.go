package handlers

import (
	"emiverify/internal/services/analytics"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service analytics.Service
}

func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	report, err := h.service.Dashboard(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return utils.Success(c, "", report)
}

func (h *AnalyticsHandler) InsuranceCases(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	report, err := h.service.InsuranceReport(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return utils.Success(c, "", report)
}

func (h *AnalyticsHandler) DocumentVerifications(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	report, err := h.service.VerificationReport(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return utils.Success(c, "", report)
}
