package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/courier"

	"github.com/labstack/echo/v4"
)

// GetCouriers handles GET /api/v1/couriers. ?online=true keeps only the
// couriers taking deliveries.
func (s *Server) GetCouriers(c echo.Context) error {
	onlineOnly, err := queryBool(c, "online")
	if err != nil {
		return err
	}

	couriers, err := s.handlers.GetCouriers.Handle(c.Request().Context(), queries.NewGetCouriersQuery(onlineOnly))
	if err != nil {
		return err
	}

	response := make([]Courier, len(couriers))
	for i, r := range couriers {
		response[i] = courierFromQuery(r)
	}

	return c.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers. The courier starts offline,
// waiting for review.
func (s *Server) CreateCourier(c echo.Context) error {
	var body NewCourier
	if err := bind(c, &body); err != nil {
		return err
	}

	location, err := body.Location.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, location)
	if err != nil {
		return err
	}

	if err = s.handlers.CreateCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cmd.CourierID().String()})
}

// ReviewCourier handles POST /api/v1/couriers/:id/review.
func (s *Server) ReviewCourier(c echo.Context) error {
	courierID, err := pathID(c)
	if err != nil {
		return err
	}

	var body CourierReview
	if err = bind(c, &body); err != nil {
		return err
	}

	decision, err := courier.ParseApprovalStatus(body.Decision)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReviewCourierCommand(courierID, decision)
	if err != nil {
		return err
	}

	if err = s.handlers.ReviewCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SetCourierOnline handles POST /api/v1/couriers/:id/online.
func (s *Server) SetCourierOnline(c echo.Context) error {
	courierID, err := pathID(c)
	if err != nil {
		return err
	}

	var body CourierAvailability
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSetCourierOnlineCommand(courierID, body.Online)
	if err != nil {
		return err
	}

	if err = s.handlers.SetCourierOnline.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
