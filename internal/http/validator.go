package http

import (
	"fmt"
	"reflect"
	"strings"

	"chessplay/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// square accepts a board label such as "E2", in either case
	if err := v.RegisterValidation("square", func(fl validator.FieldLevel) bool {
		_, err := core.ParseLabel(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// validationMiddleware parses and validates POST bodies by route, storing the
// result in c.Locals("validatedBody")
func validationMiddleware(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Next()
	}

	path := c.Path()
	var requestType any

	switch {
	case strings.HasSuffix(path, "/games"):
		requestType = &core.CreateGameRequest{}
	case strings.HasSuffix(path, "/moves"):
		requestType = &core.MoveRequest{}
	default:
		return c.Next()
	}

	if err := c.BodyParser(requestType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if err := validate.Struct(requestType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: describeValidation(err),
		})
	}

	c.Locals("validatedBody", requestType)
	c.Locals("validated", true)

	return c.Next()
}

// describeValidation renders validator errors as one readable line
func describeValidation(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var details strings.Builder
	for _, e := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch e.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		case "min", "max":
			bound := "at least"
			if e.Tag() == "max" {
				bound = "at most"
			}
			if e.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be %s %s characters", e.Field(), bound, e.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be %s %s", e.Field(), bound, e.Param()))
			}
		case "alphanum":
			details.WriteString(fmt.Sprintf("%s must be alphanumeric", e.Field()))
		case "square":
			details.WriteString(fmt.Sprintf("%s must be a square label like E2", e.Field()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", e.Field(), e.Tag()))
		}
	}
	return details.String()
}

// validatedBody fetches the request stored by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (*T, bool) {
	validated, _ := c.Locals("validated").(bool)
	req, ok := c.Locals("validatedBody").(*T)
	return req, validated && ok
}

func notValidated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "request body was not validated",
		Code:  core.ErrInternalError,
	})
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
