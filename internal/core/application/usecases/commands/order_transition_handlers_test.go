package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectTransition wires a successful locked read-modify-write of o.
func expectTransition(ctx any, o *order.Order, mockUoW *MockUoW, mockRepo *MockOrderRepository, mockFactory *MockOrderUoWFactory) {
	mockFactory.On("Create").Return(mockUoW).Once()
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		mockRepo.On("Update", ctx, o).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
}

// expectRefusal wires a locked read of o that ends in rollback.
func expectRefusal(ctx any, o *order.Order, mockUoW *MockUoW, mockRepo *MockOrderRepository, mockFactory *MockOrderUoWFactory) {
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockRepo).Once()
	mockRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
}

func TestAcceptOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should start preparation with a revised fee", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		o := newOrderInStatus(t, order.Pending, kernel.NewUUID())
		fee := decimal.RequireFromString("40")
		cmd, err := commands.NewAcceptOrderCommand(o.ID(), 30, &fee)
		require.NoError(t, err)

		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)
		mockNotifier := new(MockNotifier)
		expectTransition(ctx, o, mockUoW, mockRepo, mockFactory)
		mockNotifier.On("Notify", ctx, eventFor(ports.EventOrderAccepted, ports.RoleClient)).Once()

		handler := commands.NewAcceptOrderCommandHandler(mockFactory, mockNotifier)

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.InPreparation, o.Status())
		assert.Equal(t, 30, o.PreparationTime().Minutes())
		assert.Equal(t, "131.00", o.TotalPrice().StringFixed(2))
		mockUoW.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("should refuse accepting twice without change", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		o := newOrderInStatus(t, order.InPreparation, kernel.NewUUID())
		cmd, err := commands.NewAcceptOrderCommand(o.ID(), 0, nil)
		require.NoError(t, err)

		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)
		mockNotifier := new(MockNotifier)
		expectRefusal(ctx, o, mockUoW, mockRepo, mockFactory)

		handler := commands.NewAcceptOrderCommandHandler(mockFactory, mockNotifier)

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, order.ErrTransitionRefused)
		assert.Equal(t, order.InPreparation, o.Status())
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockUoW.AssertNotCalled(t, "Commit", ctx)
		mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("should surface a version conflict", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		o := newOrderInStatus(t, order.Pending, kernel.NewUUID())
		cmd, err := commands.NewAcceptOrderCommand(o.ID(), 0, nil)
		require.NoError(t, err)

		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)
		mockNotifier := new(MockNotifier)

		mockFactory.On("Create").Return(mockUoW).Once()
		mockUoW.On("Begin", ctx).Return(nil).Once()
		mockUoW.On("OrderRepository").Return(mockRepo).Once()
		mockRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		mockRepo.On("Update", ctx, o).Return(errs.NewVersionIsInvalidError("order")).Once()
		mockUoW.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewAcceptOrderCommandHandler(mockFactory, mockNotifier)

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		mockUoW.AssertNotCalled(t, "Commit", ctx)
		mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestNewAcceptOrderCommand(t *testing.T) {
	t.Run("should default to 20 minutes", func(t *testing.T) {
		cmd, err := commands.NewAcceptOrderCommand(kernel.NewUUID(), 0, nil)

		require.NoError(t, err)
		assert.Equal(t, 20, cmd.PreparationTime().Minutes())
		assert.Nil(t, cmd.RevisedFee())
	})

	t.Run("should refuse a preparation time off the 5 minute step", func(t *testing.T) {
		_, err := commands.NewAcceptOrderCommand(kernel.NewUUID(), 12, nil)

		require.Error(t, err)
	})

	t.Run("should refuse a negative fee", func(t *testing.T) {
		fee := decimal.NewFromInt(-5)
		_, err := commands.NewAcceptOrderCommand(kernel.NewUUID(), 20, &fee)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRejectOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should reject a pending order", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		o := newOrderInStatus(t, order.Pending, kernel.NewUUID())
		cmd, err := commands.NewOrderCommand(o.ID())
		require.NoError(t, err)

		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)
		mockNotifier := new(MockNotifier)
		expectTransition(ctx, o, mockUoW, mockRepo, mockFactory)
		mockNotifier.On("Notify", ctx, eventFor(ports.EventOrderRejected, ports.RoleClient)).Once()

		handler := commands.NewRejectOrderCommandHandler(mockFactory, mockNotifier)

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.Rejected, o.Status())
		mockNotifier.AssertExpectations(t)
	})

	t.Run("should refuse rejecting an order in preparation", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		o := newOrderInStatus(t, order.InPreparation, kernel.NewUUID())
		cmd, err := commands.NewOrderCommand(o.ID())
		require.NoError(t, err)

		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)
		mockNotifier := new(MockNotifier)
		expectRefusal(ctx, o, mockUoW, mockRepo, mockFactory)

		handler := commands.NewRejectOrderCommandHandler(mockFactory, mockNotifier)

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, order.ErrTransitionRefused)
		mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestMarkOrderReadyCommandHandler_Handle(t *testing.T) {
	// Arrange
	ctx := t.Context()
	o := newOrderInStatus(t, order.InPreparation, kernel.NewUUID())
	cmd, err := commands.NewOrderCommand(o.ID())
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockNotifier := new(MockNotifier)
	expectTransition(ctx, o, mockUoW, mockRepo, mockFactory)
	mockNotifier.On("Notify", ctx, eventFor(ports.EventOrderReady, ports.RoleClient)).Once()
	mockNotifier.On("Notify", ctx, eventFor(ports.EventOrderReady, ports.RoleDelivery)).Once()

	handler := commands.NewMarkOrderReadyCommandHandler(mockFactory, mockNotifier)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, o.Status())
	mockNotifier.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		status   order.Status
		refused  bool
		expected order.Status
	}{
		{"pending", order.Pending, false, order.Cancelled},
		{"in preparation", order.InPreparation, false, order.Cancelled},
		{"ready for pickup", order.ReadyForPickup, false, order.Cancelled},
		{"on the way", order.OnTheWay, true, order.OnTheWay},
		{"delivered", order.Delivered, true, order.Delivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := t.Context()
			o := newOrderInStatus(t, tt.status, kernel.NewUUID())
			cmd, err := commands.NewOrderCommand(o.ID())
			require.NoError(t, err)

			mockRepo := new(MockOrderRepository)
			mockUoW := new(MockUoW)
			mockFactory := new(MockOrderUoWFactory)
			mockNotifier := new(MockNotifier)
			if tt.refused {
				expectRefusal(ctx, o, mockUoW, mockRepo, mockFactory)
			} else {
				expectTransition(ctx, o, mockUoW, mockRepo, mockFactory)
				mockNotifier.On("Notify", ctx, eventFor(ports.EventOrderCancelled, ports.RoleBusiness)).Once()
			}

			handler := commands.NewCancelOrderCommandHandler(mockFactory, mockNotifier)

			// Act
			err = handler.Handle(ctx, cmd)

			// Assert
			if tt.refused {
				require.ErrorIs(t, err, order.ErrTransitionRefused)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, o.Status())
			mockNotifier.AssertExpectations(t)
		})
	}
}

func TestOrderCommand_Validate(t *testing.T) {
	var cmd commands.OrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrOrderCommandIsNotConstructed)

	_, err := commands.NewOrderCommand(kernel.UUID{})
	require.Error(t, err)
}
