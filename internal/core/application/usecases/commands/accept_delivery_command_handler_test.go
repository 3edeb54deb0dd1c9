package commands_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptDeliveryCommandHandler_Handle(t *testing.T) {
	t.Run("should put the order on the way and publish the position", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		c := newOnlineCourier(t, businessLocation)
		o := newOrderInStatus(t, order.ReadyForPickup, kernel.NewUUID())
		cmd, err := commands.NewCourierOrderCommand(o.ID(), c.ID())
		require.NoError(t, err)

		mockOrderRepo := new(MockOrderRepository)
		mockCourierRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)
		mockStore := new(MockTrackingStore)
		mockNotifier := new(MockNotifier)

		mock.InOrder(
			mockFactory.On("Create").Return(mockUoW).Once(),
			mockUoW.On("Begin", ctx).Return(nil).Once(),
			mockUoW.On("OrderRepository").Return(mockOrderRepo).Once(),
			mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			mockUoW.On("CourierRepository").Return(mockCourierRepo).Once(),
			mockCourierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once(),
			mockOrderRepo.On("HasActiveForCourier", ctx, c.ID()).Return(false, nil).Once(),
			mockOrderRepo.On("Update", ctx, o).Return(nil).Once(),
			mockUoW.On("Commit", ctx).Return(nil).Once(),
			mockStore.On("Save", ctx, o.ID(), c.Location()).Return(nil).Once(),
			mockNotifier.On("Notify", ctx, eventFor(ports.EventOrderOnTheWay, ports.RoleClient)).Once(),
			mockUoW.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewAcceptDeliveryCommandHandler(mockFactory, mockStore, mockNotifier, discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.OnTheWay, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(c.ID()))
		mockUoW.AssertExpectations(t)
		mockOrderRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("should succeed when the tracking store is down", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		c := newOnlineCourier(t, businessLocation)
		o := newOrderInStatus(t, order.ReadyForPickup, kernel.NewUUID())
		cmd, err := commands.NewCourierOrderCommand(o.ID(), c.ID())
		require.NoError(t, err)

		mockOrderRepo := new(MockOrderRepository)
		mockCourierRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)
		mockStore := new(MockTrackingStore)
		mockNotifier := new(MockNotifier)

		mockFactory.On("Create").Return(mockUoW).Once()
		mockUoW.On("Begin", ctx).Return(nil).Once()
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
		mockCourierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
		mockOrderRepo.On("HasActiveForCourier", ctx, c.ID()).Return(false, nil).Once()
		mockOrderRepo.On("Update", ctx, o).Return(nil).Once()
		mockUoW.On("Commit", ctx).Return(nil).Once()
		mockUoW.On("Rollback", ctx).Return(nil).Once()
		mockStore.On("Save", ctx, o.ID(), mock.Anything).Return(errors.New("connection refused")).Once()
		mockNotifier.On("Notify", ctx, mock.Anything).Once()

		handler := commands.NewAcceptDeliveryCommandHandler(mockFactory, mockStore, mockNotifier, discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("should refuse an offline courier", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		c := newOnlineCourier(t, businessLocation)
		require.NoError(t, c.SetOnline(false))
		o := newOrderInStatus(t, order.ReadyForPickup, kernel.NewUUID())
		cmd, err := commands.NewCourierOrderCommand(o.ID(), c.ID())
		require.NoError(t, err)

		mockOrderRepo := new(MockOrderRepository)
		mockCourierRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)
		mockStore := new(MockTrackingStore)
		mockNotifier := new(MockNotifier)

		mockFactory.On("Create").Return(mockUoW).Once()
		mockUoW.On("Begin", ctx).Return(nil).Once()
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
		mockCourierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
		mockUoW.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewAcceptDeliveryCommandHandler(mockFactory, mockStore, mockNotifier, discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, order.ErrTransitionRefused)
		assert.Contains(t, err.Error(), courier.ErrCourierIsOffline.Error())
		assert.Equal(t, order.ReadyForPickup, o.Status())
		assert.Nil(t, o.Courier())
		mockOrderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should refuse an order already on the way", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		c := newOnlineCourier(t, businessLocation)
		o := newOrderInStatus(t, order.OnTheWay, kernel.NewUUID())
		cmd, err := commands.NewCourierOrderCommand(o.ID(), c.ID())
		require.NoError(t, err)

		mockOrderRepo := new(MockOrderRepository)
		mockCourierRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)

		mockFactory.On("Create").Return(mockUoW).Once()
		mockUoW.On("Begin", ctx).Return(nil).Once()
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
		mockCourierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
		mockOrderRepo.On("HasActiveForCourier", ctx, c.ID()).Return(false, nil).Once()
		mockUoW.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewAcceptDeliveryCommandHandler(
			mockFactory, new(MockTrackingStore), new(MockNotifier), discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, order.ErrTransitionRefused)
		assert.False(t, o.Courier().IsEqual(c.ID()))
		mockUoW.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should refuse a courier already carrying an order", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		c := newOnlineCourier(t, businessLocation)
		o := newOrderInStatus(t, order.ReadyForPickup, kernel.NewUUID())
		cmd, err := commands.NewCourierOrderCommand(o.ID(), c.ID())
		require.NoError(t, err)

		mockOrderRepo := new(MockOrderRepository)
		mockCourierRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)
		mockStore := new(MockTrackingStore)
		mockNotifier := new(MockNotifier)

		mockFactory.On("Create").Return(mockUoW).Once()
		mockUoW.On("Begin", ctx).Return(nil).Once()
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
		mockCourierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
		mockOrderRepo.On("HasActiveForCourier", ctx, c.ID()).Return(true, nil).Once()
		mockUoW.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewAcceptDeliveryCommandHandler(mockFactory, mockStore, mockNotifier, discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, order.ErrTransitionRefused)
		assert.Contains(t, err.Error(), courier.ErrCourierIsBusy.Error())
		assert.Equal(t, order.ReadyForPickup, o.Status())
		assert.Nil(t, o.Courier())
		mockOrderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockUoW.AssertNotCalled(t, "Commit", ctx)
		mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("should fail when the active order lookup fails", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		c := newOnlineCourier(t, businessLocation)
		o := newOrderInStatus(t, order.ReadyForPickup, kernel.NewUUID())
		cmd, err := commands.NewCourierOrderCommand(o.ID(), c.ID())
		require.NoError(t, err)
		lookupErr := errors.New("connection reset")

		mockOrderRepo := new(MockOrderRepository)
		mockCourierRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)

		mockFactory.On("Create").Return(mockUoW).Once()
		mockUoW.On("Begin", ctx).Return(nil).Once()
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
		mockCourierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
		mockOrderRepo.On("HasActiveForCourier", ctx, c.ID()).Return(false, lookupErr).Once()
		mockUoW.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewAcceptDeliveryCommandHandler(
			mockFactory, new(MockTrackingStore), new(MockNotifier), discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, lookupErr)
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})
}

func TestMarkDeliveredCommandHandler_Handle(t *testing.T) {
	t.Run("should deliver and drop the tracked position", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		courierID := kernel.NewUUID()
		o := newOrderInStatus(t, order.OnTheWay, courierID)
		cmd, err := commands.NewCourierOrderCommand(o.ID(), courierID)
		require.NoError(t, err)

		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)
		mockStore := new(MockTrackingStore)
		mockNotifier := new(MockNotifier)
		expectTransition(ctx, o, mockUoW, mockRepo, mockFactory)
		mockStore.On("Delete", ctx, o.ID()).Return(nil).Once()
		mockNotifier.On("Notify", ctx, eventFor(ports.EventOrderDelivered, ports.RoleClient)).Once()

		handler := commands.NewMarkDeliveredCommandHandler(mockFactory, mockStore, mockNotifier, discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		mockStore.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("should refuse another courier", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		o := newOrderInStatus(t, order.OnTheWay, kernel.NewUUID())
		cmd, err := commands.NewCourierOrderCommand(o.ID(), kernel.NewUUID())
		require.NoError(t, err)

		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)
		mockStore := new(MockTrackingStore)
		mockNotifier := new(MockNotifier)
		expectRefusal(ctx, o, mockUoW, mockRepo, mockFactory)

		handler := commands.NewMarkDeliveredCommandHandler(mockFactory, mockStore, mockNotifier, discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, order.ErrTransitionRefused)
		assert.Equal(t, order.OnTheWay, o.Status())
		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("should refuse an order already delivered", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		courierID := kernel.NewUUID()
		o := newOrderInStatus(t, order.Delivered, courierID)
		cmd, err := commands.NewCourierOrderCommand(o.ID(), courierID)
		require.NoError(t, err)

		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)
		expectRefusal(ctx, o, mockUoW, mockRepo, mockFactory)

		handler := commands.NewMarkDeliveredCommandHandler(
			mockFactory, new(MockTrackingStore), new(MockNotifier), discardLogger())

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, order.ErrTransitionRefused)
	})
}
