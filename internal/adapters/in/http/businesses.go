package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateBusiness handles POST /api/v1/businesses.
func (s *Server) CreateBusiness(c echo.Context) error {
	var body NewBusiness
	if err := bind(c, &body); err != nil {
		return err
	}

	location, err := body.Location.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateBusinessCommand(kernel.NewUUID(), body.Name, location, body.FixedDeliveryFee)
	if err != nil {
		return err
	}

	if err = s.handlers.CreateBusiness.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cmd.BusinessID().String()})
}

// GetDeliveryFeeQuote handles GET /api/v1/delivery-fee, the cart preview.
func (s *Server) GetDeliveryFeeQuote(c echo.Context) error {
	businessID, err := requiredQueryID(c, "business_id")
	if err != nil {
		return err
	}
	lat, err := queryCoordinate(c, "lat")
	if err != nil {
		return err
	}
	lng, err := queryCoordinate(c, "lng")
	if err != nil {
		return err
	}

	query, err := queries.NewGetDeliveryFeeQuoteQuery(businessID, lat, lng)
	if err != nil {
		return err
	}

	quote, err := s.handlers.GetDeliveryFeeQuote.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DeliveryFeeQuote{
		BusinessID: quote.BusinessID.String(),
		Fee:        quote.Fee.StringFixed(2),
		IsFixed:    quote.IsFixed,
	})
}
