package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/migrations"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/business"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Applies the embedded migrations to prepare the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(sqlDB))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, businesses, couriers CASCADE").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.BusinessRepository())
	suite.NotNil(uow1.CourierRepository())
	suite.NotNil(uow2.OrderRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	// deferred rollback after commit
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := suite.createTestOrder(kernel.NewUUID())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_PickUpAcrossRepositories runs the accept delivery flow:
// courier and order change in the same transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PickUpAcrossRepositories() {
	ctx := context.Background()
	testCourier := suite.createOnlineCourier()
	testOrder := suite.createReadyOrder()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.CourierRepository().Add(ctx, testCourier))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	c, err := uow.CourierRepository().Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	o, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(c.CanAcceptDelivery())
	suite.Require().NoError(o.PickUp(c.ID()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	retrievedOrder, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OnTheWay, retrievedOrder.Status())
	suite.Require().NotNil(retrievedOrder.Courier())
	suite.Equal(testCourier.ID(), *retrievedOrder.Courier())
}

// TestUnitOfWork_CourierCarriesOneOrder runs the accept delivery handler on
// two ready orders for the same courier: the second pickup is refused and
// leaves the order untouched.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CourierCarriesOneOrder() {
	ctx := context.Background()
	testCourier := suite.createOnlineCourier()
	first := suite.createReadyOrder()
	second := suite.createReadyOrder()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.CourierRepository().Add(ctx, testCourier))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, first))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, second))

	handler := commands.NewAcceptDeliveryCommandHandler(
		uowFactory{suite.factory}, discardTracking{}, discardNotifier{},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	firstCmd, err := commands.NewCourierOrderCommand(first.ID(), testCourier.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(handler.Handle(ctx, firstCmd))

	busy, err := suite.factory.Create().OrderRepository().HasActiveForCourier(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.True(busy)

	secondCmd, err := commands.NewCourierOrderCommand(second.ID(), testCourier.ID())
	suite.Require().NoError(err)
	err = handler.Handle(ctx, secondCmd)
	suite.Require().ErrorIs(err, order.ErrTransitionRefused)
	suite.Contains(err.Error(), courier.ErrCourierIsBusy.Error())

	untouched, err := suite.factory.Create().OrderRepository().Get(ctx, second.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReadyForPickup, untouched.Status())
	suite.Nil(untouched.Courier())
	suite.Equal(int64(0), untouched.Version())
}

// TestUnitOfWork_HasActiveForCourier only counts orders on the way.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_HasActiveForCourier() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	repo := suite.factory.Create().OrderRepository()

	suite.Require().NoError(repo.Add(ctx, suite.createDeliveredOrder(kernel.NewUUID(), courierID)))
	suite.Require().NoError(repo.Add(ctx, suite.createReadyOrder()))

	busy, err := repo.HasActiveForCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.False(busy, "a delivered order frees the courier")

	onTheWay := suite.createReadyOrder()
	suite.Require().NoError(onTheWay.PickUp(courierID))
	suite.Require().NoError(repo.Add(ctx, onTheWay))

	busy, err = repo.HasActiveForCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.True(busy)

	busy, err = repo.HasActiveForCourier(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(busy)
}

// TestUnitOfWork_RateAcrossRepositories flags the order and records both
// ratings atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RateAcrossRepositories() {
	ctx := context.Background()
	testBusiness := suite.createTestBusiness()
	testCourier := suite.createOnlineCourier()
	testOrder := suite.createDeliveredOrder(testBusiness.ID(), testCourier.ID())

	setup := suite.factory.Create()
	suite.Require().NoError(setup.BusinessRepository().Add(ctx, testBusiness))
	suite.Require().NoError(setup.CourierRepository().Add(ctx, testCourier))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	b, err := uow.BusinessRepository().Get(ctx, testBusiness.ID())
	suite.Require().NoError(err)
	c, err := uow.CourierRepository().Get(ctx, testCourier.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(o.Rate())
	suite.Require().NoError(b.RecordRating(5))
	suite.Require().NoError(c.RecordRating(3))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.BusinessRepository().Update(ctx, b))
	suite.Require().NoError(uow.CourierRepository().Update(ctx, c))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	ratedOrder, err := reader.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(ratedOrder.IsRated())

	ratedBusiness, err := reader.BusinessRepository().Get(ctx, testBusiness.ID())
	suite.Require().NoError(err)
	suite.Equal(1, ratedBusiness.Rating().Count())
	suite.Equal("5.00", ratedBusiness.Rating().Average().StringFixed(2))

	ratedCourier, err := reader.CourierRepository().Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.Equal("3.00", ratedCourier.Rating().Average().StringFixed(2))
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := suite.createTestOrder(kernel.NewUUID())
	testCourier := suite.createOnlineCourier()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.CourierRepository().Add(ctx, testCourier))
	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()

	_, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Order should not exist after rollback")

	_, err = newUow.CourierRepository().Get(ctx, testCourier.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Courier should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := suite.createTestOrder(kernel.NewUUID())
	order2 := suite.createTestOrder(kernel.NewUUID())

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_ConcurrentTransitionsSerialize checks that a second unit of
// work waits on the order row locked by the first, and then sees its commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentTransitionsSerialize() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(kernel.NewUUID())
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, testOrder))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	defer first.Rollback(ctx) //nolint:errcheck

	locked, err := first.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	secondResult := make(chan *order.Order, 1)
	secondErr := make(chan error, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			secondErr <- err
			return
		}
		defer second.Rollback(ctx) //nolint:errcheck

		o, err := second.OrderRepository().Get(ctx, testOrder.ID())
		if err != nil {
			secondErr <- err
			return
		}
		secondResult <- o
	}()

	select {
	case <-secondResult:
		suite.FailNow("second transaction read a locked row")
	case err := <-secondErr:
		suite.FailNow("second transaction failed", err)
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(locked.Accept(order.DefaultPreparationTime(), nil))
	suite.Require().NoError(first.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(first.Commit(ctx))

	select {
	case o := <-secondResult:
		suite.Equal(order.InPreparation, o.Status())
		suite.Equal(int64(1), o.Version())

		refused := o.Accept(order.DefaultPreparationTime(), nil)
		suite.Require().ErrorIs(refused, order.ErrTransitionRefused)
	case err := <-secondErr:
		suite.FailNow("second transaction failed", err)
	case <-time.After(5 * time.Second):
		suite.FailNow("second transaction never acquired the lock")
	}
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := suite.createTestOrder(kernel.NewUUID())

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	retrievedOrder, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(businessID kernel.UUID) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), businessID, "Tacos al pastor", decimal.RequireFromString("45.50"), 2)
	suite.Require().NoError(err)
	destination, err := kernel.NewLocation(19.4350, -99.1400)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Checkout{
		ClientID:         kernel.NewUUID(),
		BusinessID:       businessID,
		Items:            []order.Item{item},
		DeliveryFee:      decimal.RequireFromString("32.80"),
		DeliveryAddress:  "Av. Juárez 10, Centro",
		DeliveryLocation: destination,
		PaymentMethod:    order.PaymentTransfer,
	}, time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) createReadyOrder() *order.Order {
	o := suite.createTestOrder(kernel.NewUUID())
	suite.Require().NoError(o.Accept(order.DefaultPreparationTime(), nil))
	suite.Require().NoError(o.MarkReady())
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) createDeliveredOrder(businessID, courierID kernel.UUID) *order.Order {
	o := suite.createTestOrder(businessID)
	suite.Require().NoError(o.Accept(order.DefaultPreparationTime(), nil))
	suite.Require().NoError(o.MarkReady())
	suite.Require().NoError(o.PickUp(courierID))
	suite.Require().NoError(o.Deliver())
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) createOnlineCourier() *courier.Courier {
	location, err := kernel.NewLocation(19.4300, -99.1300)
	suite.Require().NoError(err)

	c, err := courier.NewCourier(kernel.NewUUID(), "Juan Pérez", location)
	suite.Require().NoError(err)
	suite.Require().NoError(c.Review(courier.ApprovalApproved))
	suite.Require().NoError(c.SetOnline(true))
	return c
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestBusiness() *business.Business {
	location, err := kernel.NewLocation(19.4300, -99.1300)
	suite.Require().NoError(err)

	b, err := business.NewBusiness(kernel.NewUUID(), "Taquería El Güero", location, decimal.Zero)
	suite.Require().NoError(err)
	return b
}

type uowFactory struct {
	ports.UnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.UnitOfWorkFactory.Create()
}

type discardTracking struct{}

func (discardTracking) Save(context.Context, kernel.UUID, kernel.Location) error { return nil }

func (discardTracking) Get(context.Context, kernel.UUID) (kernel.Location, bool, error) {
	return kernel.Location{}, false, nil
}

func (discardTracking) Delete(context.Context, kernel.UUID) error { return nil }

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, ports.OrderEvent) {}
