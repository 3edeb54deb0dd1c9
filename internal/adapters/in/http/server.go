package http

import (
	"context"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// CommandHandler is satisfied by every command handler of the application layer.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by every query handler of the application layer.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers lists the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateBusiness   CommandHandler[commands.CreateBusinessCommand]
	CreateCourier    CommandHandler[commands.CreateCourierCommand]
	ReviewCourier    CommandHandler[commands.ReviewCourierCommand]
	SetCourierOnline CommandHandler[commands.SetCourierOnlineCommand]
	CreateOrder      CommandHandler[commands.CreateOrderCommand]
	AcceptOrder      CommandHandler[commands.AcceptOrderCommand]
	RejectOrder      CommandHandler[commands.OrderCommand]
	MarkOrderReady   CommandHandler[commands.OrderCommand]
	CancelOrder      CommandHandler[commands.OrderCommand]
	AcceptDelivery   CommandHandler[commands.CourierOrderCommand]
	MarkDelivered    CommandHandler[commands.CourierOrderCommand]
	RateOrder        CommandHandler[commands.RateOrderCommand]
	SendOrderMessage CommandHandler[commands.SendOrderMessageCommand]

	// Query handlers
	GetCouriers         QueryHandler[queries.GetCouriersQuery, []queries.GetCouriersQueryResponse]
	GetOrders           QueryHandler[queries.GetOrdersQuery, []queries.GetOrdersQueryResponse]
	GetOrderTracking    QueryHandler[queries.GetOrderTrackingQuery, queries.GetOrderTrackingQueryResponse]
	GetDeliveryFeeQuote QueryHandler[queries.GetDeliveryFeeQuoteQuery, queries.GetDeliveryFeeQuoteQueryResponse]
}

// Server handles HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *metrics.Metrics
}

// NewServer creates a new HTTP server with the required command and query
// handlers. m may be nil, in which case requests are not measured and
// /metrics is not exposed.
func NewServer(handlers Handlers, m *metrics.Metrics) *Server {
	return &Server{
		handlers: handlers,
		metrics:  m,
	}
}

// NewEcho builds an echo instance with every route registered.
func (s *Server) NewEcho() (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = s.handleError
	if err := s.Register(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Register mounts the API routes on e. Requests under /api/v1 are validated
// against the embedded OpenAPI document.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := GetSwagger()
	if err != nil {
		return err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return err
	}

	if s.metrics != nil {
		e.Use(requestMetrics(s.metrics))
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", serveOpenAPIDocument)

	api := e.Group("/api/v1", validator)

	api.POST("/businesses", s.CreateBusiness)
	api.GET("/delivery-fee", s.GetDeliveryFeeQuote)

	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers", s.CreateCourier)
	api.POST("/couriers/:id/review", s.ReviewCourier)
	api.POST("/couriers/:id/online", s.SetCourierOnline)

	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id/tracking", s.GetOrderTracking)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/reject", s.RejectOrder)
	api.POST("/orders/:id/ready", s.MarkOrderReady)
	api.POST("/orders/:id/pickup", s.PickUpOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/rate", s.RateOrder)
	api.POST("/orders/:id/messages", s.SendOrderMessage)
	return nil
}
