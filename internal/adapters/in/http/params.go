package http

import (
	"math"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// parseID converts an identifier taken from a request body.
func parseID(name, value string) (kernel.UUID, error) {
	if value == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func toKernelID(name string, id uuid.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

// pathID binds the :id path parameter.
func pathID(c echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return toKernelID("id", id)
}

// queryID binds an optional identifier and returns nil when it is absent.
func queryID(c echo.Context, name string) (*kernel.UUID, error) {
	var id *uuid.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &id); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if id == nil {
		return nil, nil
	}

	parsed, err := toKernelID(name, *id)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// requiredQueryID binds a mandatory identifier.
func requiredQueryID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := queryID(c, name)
	if err != nil {
		return kernel.UUID{}, err
	}
	if id == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	return *id, nil
}

// queryCoordinate returns NaN for an absent value, which the fee quote
// treats as an unknown destination.
func queryCoordinate(c echo.Context, name string) (float64, error) {
	var value *float64
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value == nil {
		return math.NaN(), nil
	}
	return *value, nil
}

// queryInt binds an optional integer, 0 when absent.
func queryInt(c echo.Context, name string) (int, error) {
	var value *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value == nil {
		return 0, nil
	}
	return *value, nil
}

// queryBool binds an optional flag, false when absent.
func queryBool(c echo.Context, name string) (bool, error) {
	var value *bool
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return false, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value != nil && *value, nil
}

// queryString binds an optional string, nil when absent.
func queryString(c echo.Context, name string) (*string, error) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func bind(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return badRequest("Invalid request body")
	}
	return nil
}
