package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/business"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllOnTheWay(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) HasActiveForCourier(ctx context.Context, courierID kernel.UUID) (bool, error) {
	args := m.Called(ctx, courierID)
	return args.Bool(0), args.Error(1)
}

type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Add(ctx context.Context, b *business.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepository) Update(ctx context.Context, b *business.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepository) Get(ctx context.Context, id kernel.UUID) (*business.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*business.Business), args.Error(1)
}

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

// MockUoW implements every unit of work flavour used by the handlers.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) BusinessRepository() ports.BusinessRepository {
	args := m.Called()
	return args.Get(0).(ports.BusinessRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBusinessUoWFactory struct {
	mock.Mock
}

func (m *MockBusinessUoWFactory) Create() commands.BusinessUoW {
	args := m.Called()
	return args.Get(0).(commands.BusinessUoW)
}

type MockCourierUoWFactory struct {
	mock.Mock
}

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event ports.OrderEvent) {
	m.Called(ctx, event)
}

type MockTrackingStore struct {
	mock.Mock
}

func (m *MockTrackingStore) Save(ctx context.Context, orderID kernel.UUID, position kernel.Location) error {
	args := m.Called(ctx, orderID, position)
	return args.Error(0)
}

func (m *MockTrackingStore) Get(ctx context.Context, orderID kernel.UUID) (kernel.Location, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(kernel.Location), args.Bool(1), args.Error(2)
}

func (m *MockTrackingStore) Delete(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// eventFor matches a notification by type and recipient role.
func eventFor(eventType ports.EventType, recipient ports.Role) any {
	return mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Type == eventType && e.Recipient == recipient
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fixtures.
var (
	businessLocation = mustLocation(19.4300, -99.1300)
	clientLocation   = mustLocation(19.4350, -99.1400)
)

func mustLocation(lat, lng float64) kernel.Location {
	location, err := kernel.NewLocation(lat, lng)
	if err != nil {
		panic(err)
	}
	return location
}

func newBusiness(t *testing.T, fixedFee decimal.Decimal) *business.Business {
	t.Helper()
	b, err := business.NewBusiness(kernel.NewUUID(), "Taquería El Güero", businessLocation, fixedFee)
	require.NoError(t, err)
	return b
}

func newOnlineCourier(t *testing.T, location kernel.Location) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Juan Pérez", location)
	require.NoError(t, err)
	require.NoError(t, c.Review(courier.ApprovalApproved))
	require.NoError(t, c.SetOnline(true))
	return c
}

func newPendingOrder(t *testing.T, businessID kernel.UUID) *order.Order {
	t.Helper()

	tacos, err := order.NewItem(kernel.NewUUID(), businessID, "Tacos al pastor", decimal.RequireFromString("45.50"), 2)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Checkout{
		ClientID:         kernel.NewUUID(),
		BusinessID:       businessID,
		Items:            []order.Item{tacos},
		DeliveryFee:      decimal.RequireFromString("32.80"),
		DeliveryAddress:  "Av. Juárez 10, Centro",
		DeliveryLocation: clientLocation,
		PaymentMethod:    order.PaymentCash,
	}, time.Now().UTC())
	require.NoError(t, err)
	return o
}

// newOrderInStatus walks a fresh order through the lifecycle. courierID is
// used for statuses past pick up.
func newOrderInStatus(t *testing.T, status order.Status, courierID kernel.UUID) *order.Order {
	t.Helper()

	o := newPendingOrder(t, kernel.NewUUID())
	accept := func() error { return o.Accept(order.DefaultPreparationTime(), nil) }
	pickUp := func() error { return o.PickUp(courierID) }

	steps := map[order.Status][]func() error{
		order.Pending:        nil,
		order.Rejected:       {o.Reject},
		order.InPreparation:  {accept},
		order.ReadyForPickup: {accept, o.MarkReady},
		order.OnTheWay:       {accept, o.MarkReady, pickUp},
		order.Delivered:      {accept, o.MarkReady, pickUp, o.Deliver},
		order.Cancelled:      {o.Cancel},
	}

	for _, step := range steps[status] {
		require.NoError(t, step())
	}
	require.Equal(t, status, o.Status())
	return o
}
