package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// GetOrders handles GET /api/v1/orders, newest first. Filters:
// business_id, client_id, courier_id, status and limit.
func (s *Server) GetOrders(c echo.Context) error {
	var (
		filter queries.OrdersFilter
		err    error
	)

	if filter.BusinessID, err = queryID(c, "business_id"); err != nil {
		return err
	}
	if filter.ClientID, err = queryID(c, "client_id"); err != nil {
		return err
	}
	if filter.CourierID, err = queryID(c, "courier_id"); err != nil {
		return err
	}

	statusValue, err := queryString(c, "status")
	if err != nil {
		return err
	}
	if statusValue != nil {
		status, parseErr := order.ParseStatus(*statusValue)
		if parseErr != nil {
			return parseErr
		}
		filter.Status = &status
	}

	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return err
	}

	query, err := queries.NewGetOrdersQuery(filter)
	if err != nil {
		return err
	}

	orders, err := s.handlers.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Order, len(orders))
	for i, r := range orders {
		response[i] = orderFromQuery(r)
	}

	return c.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders. The delivery fee is quoted by the
// server, never taken from the request.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := bind(c, &body); err != nil {
		return err
	}

	cmd, err := body.toCommand(kernel.NewUUID())
	if err != nil {
		return err
	}

	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cmd.OrderID().String()})
}

func (b NewOrder) toCommand(orderID kernel.UUID) (commands.CreateOrderCommand, error) {
	clientID, err := parseID("client_id", b.ClientID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	businessID, err := parseID("business_id", b.BusinessID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	location, err := b.DeliveryLocation.toDomain()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	lines := make([]commands.OrderLine, len(b.Items))
	for i, item := range b.Items {
		productID, parseErr := parseID("product_id", item.ProductID)
		if parseErr != nil {
			return commands.CreateOrderCommand{}, parseErr
		}
		lines[i] = commands.OrderLine{
			ProductID: productID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	return commands.NewCreateOrderCommand(
		orderID,
		clientID,
		businessID,
		lines,
		b.DeliveryAddress,
		location,
		order.PaymentMethod(b.PaymentMethod),
		b.SpecialNotes,
	)
}

// GetOrderTracking handles GET /api/v1/orders/:id/tracking.
func (s *Server) GetOrderTracking(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return err
	}

	tracking, err := s.handlers.GetOrderTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, trackingFromQuery(tracking))
}

// AcceptOrder handles POST /api/v1/orders/:id/accept. The body is optional.
func (s *Server) AcceptOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var body OrderAcceptance
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, body.PreparationMinutes, body.DeliveryFee)
	if err != nil {
		return err
	}

	if err = s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:id/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	return s.orderTransition(c, s.handlers.RejectOrder)
}

// MarkOrderReady handles POST /api/v1/orders/:id/ready.
func (s *Server) MarkOrderReady(c echo.Context) error {
	return s.orderTransition(c, s.handlers.MarkOrderReady)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	return s.orderTransition(c, s.handlers.CancelOrder)
}

// PickUpOrder handles POST /api/v1/orders/:id/pickup, a courier accepting
// the delivery.
func (s *Server) PickUpOrder(c echo.Context) error {
	return s.courierTransition(c, s.handlers.AcceptDelivery)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	return s.courierTransition(c, s.handlers.MarkDelivered)
}

// RateOrder handles POST /api/v1/orders/:id/rate.
func (s *Server) RateOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var body OrderRating
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewRateOrderCommand(orderID, body.BusinessScore, body.CourierScore)
	if err != nil {
		return err
	}

	if err = s.handlers.RateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SendOrderMessage handles POST /api/v1/orders/:id/messages.
func (s *Server) SendOrderMessage(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var body OrderMessage
	if err = bind(c, &body); err != nil {
		return err
	}

	senderID, err := parseID("sender_id", body.SenderID)
	if err != nil {
		return err
	}
	recipientID, err := parseID("recipient_id", body.RecipientID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSendOrderMessageCommand(orderID, senderID, recipientID, body.Text)
	if err != nil {
		return err
	}

	if err = s.handlers.SendOrderMessage.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusCreated)
}

func (s *Server) orderTransition(c echo.Context, handler CommandHandler[commands.OrderCommand]) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewOrderCommand(orderID)
	if err != nil {
		return err
	}

	if err = handler.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) courierTransition(c echo.Context, handler CommandHandler[commands.CourierOrderCommand]) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	var body CourierAction
	if err = bind(c, &body); err != nil {
		return err
	}

	courierID, err := parseID("courier_id", body.CourierID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCourierOrderCommand(orderID, courierID)
	if err != nil {
		return err
	}

	if err = handler.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
