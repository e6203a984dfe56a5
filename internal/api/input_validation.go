package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mahwari/internal/services"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := instance.RegisterValidation("pin", validatePin); err != nil {
		panic(fmt.Sprintf("failed to register pin validator: %v", err))
	}
	return instance
}

func validatePin(fl validator.FieldLevel) bool {
	return services.ValidatePinFormat(fl.Field().String()) == nil
}

type pinInput struct {
	Pin string `json:"pin" validate:"required,pin"`
}

type changePinInput struct {
	CurrentPin string `json:"current_pin" validate:"required"`
	NewPin     string `json:"new_pin" validate:"required,pin"`
}

type cycleInput struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type dailyLogInput struct {
	WaterIntake  *int    `json:"water_intake" validate:"omitempty,min=0,max=50"`
	ExerciseType *string `json:"exercise_type" validate:"omitempty,max=100"`
	Symptoms     *string `json:"symptoms"`
}

// bindInput parses a JSON body into payload and validates it. The returned
// message is safe to send to the client.
func bindInput(c *fiber.Ctx, payload any) (string, bool) {
	if err := c.BodyParser(payload); err != nil {
		return "invalid request body", false
	}
	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return validationMessage(validationErrors[0]), false
		}
		return "invalid request body", false
	}
	return "", true
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "pin":
		return services.ErrPinFormat.Error()
	case "required":
		return fmt.Sprintf("%s is required", fieldError.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date", fieldError.Field())
	default:
		return fmt.Sprintf("%s is invalid", fieldError.Field())
	}
}
