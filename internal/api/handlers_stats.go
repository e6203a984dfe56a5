package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CycleLengthTrend(c *fiber.Ctx) error {
	trend, err := handler.trendService.CycleLengthTrend()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(trend)
}

// CycleLengthChart serves a standalone echarts page with the trend bars.
func (handler *Handler) CycleLengthChart(c *fiber.Ctx) error {
	chart, err := handler.trendService.Chart()
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	var page bytes.Buffer
	if err := chart.Render(&page); err != nil {
		return handler.respondServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page.Bytes())
}
