package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mahwari/internal/models"
	"github.com/terraincognita07/mahwari/internal/services"
)

type cycleResponse struct {
	ID        uint   `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Notes     string `json:"notes"`
	Length    int    `json:"length,omitempty"`
}

type phaseResponse struct {
	Date           string             `json:"date"`
	LastPeriodDate string             `json:"last_period_date"`
	CycleDay       int                `json:"cycle_day"`
	Phase          services.Phase     `json:"phase"`
	Fertility      services.Fertility `json:"fertility"`
	NextPeriodDate string             `json:"next_period_date"`
	AverageLength  int                `json:"avg_length"`
}

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	cycles, err := handler.cycleService.ListCycles()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	analyzer, err := handler.cycleService.Analyzer()
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"cycles":  buildCycleResponses(cycles),
		"summary": analyzer.Summary(),
	})
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	input := cycleInput{}
	if message, ok := bindInput(c, &input); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}
	day, err := services.ParseCalendarDate(strings.TrimSpace(input.StartDate))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "start_date must be a YYYY-MM-DD date")
	}

	cycle, err := handler.cycleService.LogPeriodStart(day, input.Notes, handler.today())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildCycleResponse(cycle, 0))
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	cycleID, err := c.ParamsInt("id")
	if err != nil || cycleID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid cycle id")
	}
	if err := handler.cycleService.DeleteCycle(uint(cycleID)); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPhase classifies a date. Both query values are optional and default to
// today and the latest logged period start.
func (handler *Handler) GetPhase(c *fiber.Ctx) error {
	day, err := parseOptionalDayQuery(c, "date", handler.today())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "date must be a YYYY-MM-DD date")
	}

	latest, found, err := handler.cycleService.LatestCycle()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	fallback := latest.StartDate
	if strings.TrimSpace(c.Query("last")) == "" && !found {
		return apiError(c, fiber.StatusBadRequest, "last period date is required")
	}
	lastPeriod, err := parseOptionalDayQuery(c, "last", services.CalendarDate(fallback))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "last must be a YYYY-MM-DD date")
	}

	analyzer, err := handler.cycleService.Analyzer()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	phase, fertility := analyzer.Phase(day, lastPeriod)
	return c.JSON(phaseResponse{
		Date:           services.FormatCalendarDate(day),
		LastPeriodDate: services.FormatCalendarDate(lastPeriod),
		CycleDay:       services.CycleDay(day, lastPeriod),
		Phase:          phase,
		Fertility:      fertility,
		NextPeriodDate: services.FormatCalendarDate(analyzer.PredictNextPeriod(lastPeriod)),
		AverageLength:  analyzer.AverageCycleLength(),
	})
}

func buildCycleResponses(cycles []models.Cycle) []cycleResponse {
	result := make([]cycleResponse, 0, len(cycles))
	for index, cycle := range cycles {
		length := 0
		if index+1 < len(cycles) {
			length = services.DaysBetween(cycle.StartDate, cycles[index+1].StartDate)
		}
		result = append(result, buildCycleResponse(cycle, length))
	}
	return result
}

func buildCycleResponse(cycle models.Cycle, length int) cycleResponse {
	response := cycleResponse{
		ID:        cycle.ID,
		StartDate: services.FormatCalendarDate(cycle.StartDate),
		Notes:     cycle.Notes,
		Length:    length,
	}
	if cycle.EndDate != nil {
		response.EndDate = services.FormatCalendarDate(*cycle.EndDate)
	}
	return response
}
