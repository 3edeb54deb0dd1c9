package cmd

import (
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	redisout "fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/jobs"
	"fooddelivery/internal/pkg/metrics"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	notifier      *kafka.Notifier
	trackingStore *redisout.TrackingStore
	feeCalculator services.DeliveryFeeCalculator
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *goredis.Client,
	m *metrics.Metrics,
	logger *slog.Logger,
) *CompositionRoot {
	writer := kafka.NewWriter(configs.KafkaHost, configs.KafkaOrderChangedTopic, logger, m)

	return &CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:      kafka.NewNotifier(writer, logger, m),
		trackingStore: redisout.NewTrackingStore(redisClient, configs.TrackingTTL),
		feeCalculator: services.NewDeliveryFeeCalculator(),
		metrics:       m,
		logger:        logger,
	}
}

// Close flushes pending order events.
func (c *CompositionRoot) Close() error {
	return c.notifier.Close()
}

func (c *CompositionRoot) CreateCreateBusinessCommandHandler() commands.CreateBusinessCommandHandler {
	var f commands.BusinessUoWFactory = FuncBusinessUoWFactory(func() commands.BusinessUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBusinessCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateReviewCourierCommandHandler() commands.ReviewCourierCommandHandler {
	return commands.NewReviewCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierOnlineCommandHandler() commands.SetCourierOnlineCommandHandler {
	return commands.NewSetCourierOnlineCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.fullUoWFactory(), c.feeCalculator, c.notifier)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.fullUoWFactory(), c.trackingStore, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.orderUoWFactory(), c.trackingStore, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSendOrderMessageCommandHandler() commands.SendOrderMessageCommandHandler {
	return commands.NewSendOrderMessageCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMoveCouriersCommandHandler() commands.MoveCouriersCommandHandler {
	return commands.NewMoveCouriersCommandHandler(
		c.fullUoWFactory(),
		services.NewDeliveryTracker(),
		c.trackingStore,
		c.notifier,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB, c.trackingStore, c.logger)
}

func (c *CompositionRoot) CreateGetDeliveryFeeQuoteQueryHandler() queries.GetDeliveryFeeQuoteQueryHandler {
	return queries.NewGetDeliveryFeeQuoteQueryHandler(c.gormDB, c.feeCalculator)
}

// CreateHTTPServer wires every use case into the REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	createBusiness := c.CreateCreateBusinessCommandHandler()
	createCourier := c.CreateCreateCourierCommandHandler()
	reviewCourier := c.CreateReviewCourierCommandHandler()
	setCourierOnline := c.CreateSetCourierOnlineCommandHandler()
	createOrder := c.CreateCreateOrderCommandHandler()
	acceptOrder := c.CreateAcceptOrderCommandHandler()
	rejectOrder := c.CreateRejectOrderCommandHandler()
	markOrderReady := c.CreateMarkOrderReadyCommandHandler()
	cancelOrder := c.CreateCancelOrderCommandHandler()
	acceptDelivery := c.CreateAcceptDeliveryCommandHandler()
	markDelivered := c.CreateMarkDeliveredCommandHandler()
	rateOrder := c.CreateRateOrderCommandHandler()
	sendOrderMessage := c.CreateSendOrderMessageCommandHandler()

	return httpin.NewServer(httpin.Handlers{
		CreateBusiness:      &createBusiness,
		CreateCourier:       &createCourier,
		ReviewCourier:       &reviewCourier,
		SetCourierOnline:    &setCourierOnline,
		CreateOrder:         &createOrder,
		AcceptOrder:         &acceptOrder,
		RejectOrder:         &rejectOrder,
		MarkOrderReady:      &markOrderReady,
		CancelOrder:         &cancelOrder,
		AcceptDelivery:      &acceptDelivery,
		MarkDelivered:       &markDelivered,
		RateOrder:           &rateOrder,
		SendOrderMessage:    &sendOrderMessage,
		GetCouriers:         c.CreateGetCouriersQueryHandler(),
		GetOrders:           c.CreateGetOrdersQueryHandler(),
		GetOrderTracking:    c.CreateGetOrderTrackingQueryHandler(),
		GetDeliveryFeeQuote: c.CreateGetDeliveryFeeQuoteQueryHandler(),
	}, c.metrics)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	moveCouriers := c.CreateMoveCouriersCommandHandler()
	return jobs.NewJobManager(&moveCouriers, c.metrics, c.logger)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

type FuncBusinessUoWFactory func() commands.BusinessUoW

func (f FuncBusinessUoWFactory) Create() commands.BusinessUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
