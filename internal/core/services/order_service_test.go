package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID string, limit int, createdBefore time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, userID, limit, createdBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByIDs(ctx context.Context, orderIDs []string) ([]domain.Order, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByFreightGroup(ctx context.Context, freightGroupID string) ([]domain.Order, error) {
	args := m.Called(ctx, freightGroupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateOrderFromCart(ctx context.Context, order domain.Order, cartID string) error {
	args := m.Called(ctx, order, cartID)
	return args.Error(0)
}

func (m *MockOrderRepository) AssignFreightGroup(ctx context.Context, orderIDs []string, freightGroupID string, status domain.OrderStatus, updaterUserID string) error {
	args := m.Called(ctx, orderIDs, freightGroupID, status, updaterUserID)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateDeliveryFee(ctx context.Context, orderID string, fee, total decimal.Decimal, status domain.OrderStatus, updaterUserID string) error {
	args := m.Called(ctx, orderID, fee, total, status, updaterUserID)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, updaterUserID string) error {
	args := m.Called(ctx, orderID, status, updaterUserID)
	return args.Error(0)
}

func (m *MockOrderRepository) SetPurchased(ctx context.Context, orderID string, purchased bool, purchasedAt *time.Time, updaterUserID string) error {
	args := m.Called(ctx, orderID, purchased, purchasedAt, updaterUserID)
	return args.Error(0)
}

// --- Test Suite ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo *MockOrderRepository
	mockCartRepo  *MockCartRepository
	service       portssvc.OrderSvcFacade
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockCartRepo = new(MockCartRepository)
	suite.service = services.NewOrderService(suite.mockOrderRepo, suite.mockCartRepo, noopActivity{})
}

func (suite *OrderServiceTestSuite) TestCreateFromCart_FreezesSnapshotPrices() {
	ctx := context.Background()
	userID := "user-1"
	cart := &domain.Cart{CartID: "cart-1", UserID: userID}

	suite.mockCartRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil).Once()
	suite.mockCartRepo.On("ListLines", ctx, "cart-1").Return([]domain.CartLine{
		{ProductID: "a", ProductName: "A", Quantity: 2, Snapshot: &domain.PriceSnapshot{FinalPerItemPrice: decimal.NewFromFloat(100.50)}},
		{ProductID: "b", ProductName: "B", Quantity: 1, Snapshot: &domain.PriceSnapshot{FinalPerItemPrice: decimal.NewFromFloat(49.00)}},
	}, nil).Once()

	var created domain.Order
	suite.mockOrderRepo.On("CreateOrderFromCart", ctx, mock.MatchedBy(func(o domain.Order) bool {
		created = o
		return o.UserID == userID
	}), "cart-1").Return(nil).Once()

	order, err := suite.service.CreateFromCart(ctx, userID)

	suite.Require().NoError(err)
	suite.True(order.Subtotal.Equal(decimal.NewFromFloat(250.00)), "subtotal, got %s", order.Subtotal)
	suite.True(order.DeliveryFee.IsZero())
	suite.True(order.Total.Equal(order.Subtotal))
	suite.Equal(domain.OrderStatusPendingProcessing, order.Status)
	suite.Require().Len(created.Lines, 2)
	suite.True(created.Lines[0].FinalPriceAtPurchase.Equal(decimal.NewFromFloat(100.50)))
	suite.Equal(created.OrderID, created.Lines[0].OrderID)
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockCartRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateFromCart_NoCartIsInvalidState() {
	ctx := context.Background()
	suite.mockCartRepo.On("FindCartByUserID", ctx, "user-1").Return(nil, apperrors.ErrNotFound).Once()

	order, err := suite.service.CreateFromCart(ctx, "user-1")

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "CreateOrderFromCart")
}

func (suite *OrderServiceTestSuite) TestCreateFromCart_EmptyCartIsInvalidState() {
	ctx := context.Background()
	cart := &domain.Cart{CartID: "cart-1", UserID: "user-1"}
	suite.mockCartRepo.On("FindCartByUserID", ctx, "user-1").Return(cart, nil).Once()
	suite.mockCartRepo.On("ListLines", ctx, "cart-1").Return([]domain.CartLine{}, nil).Once()

	order, err := suite.service.CreateFromCart(ctx, "user-1")

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *OrderServiceTestSuite) TestGetOrder_OtherUsersOrderIsNotFound() {
	ctx := context.Background()
	order := &domain.Order{OrderID: "order-1", UserID: "owner"}
	suite.mockOrderRepo.On("FindOrderByID", ctx, "order-1").Return(order, nil).Once()

	got, err := suite.service.GetOrder(ctx, "intruder", "order-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestListOrders_FullPageEmitsNextToken() {
	ctx := context.Background()
	cutoff := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	page := []domain.Order{
		{OrderID: "o1", AuditFields: domain.AuditFields{CreatedAt: cutoff.Add(2 * time.Hour)}},
		{OrderID: "o2", AuditFields: domain.AuditFields{CreatedAt: cutoff}},
	}
	suite.mockOrderRepo.On("ListOrdersByUser", ctx, "user-1", 2, time.Time{}).Return(page, nil).Once()

	orders, token, err := suite.service.ListOrders(ctx, "user-1", 2, "")

	suite.Require().NoError(err)
	suite.Len(orders, 2)
	suite.NotEmpty(token, "a full page must carry a continuation token")
}

func (suite *OrderServiceTestSuite) TestListOrders_PartialPageHasNoToken() {
	ctx := context.Background()
	page := []domain.Order{{OrderID: "o1"}}
	suite.mockOrderRepo.On("ListOrdersByUser", ctx, "user-1", 20, time.Time{}).Return(page, nil).Once()

	// limit <= 0 falls back to the default page size
	orders, token, err := suite.service.ListOrders(ctx, "user-1", 0, "")

	suite.Require().NoError(err)
	suite.Len(orders, 1)
	suite.Empty(token)
}

func (suite *OrderServiceTestSuite) TestListOrders_BadTokenIsValidationError() {
	ctx := context.Background()

	_, _, err := suite.service.ListOrders(ctx, "user-1", 10, "not-a-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "ListOrdersByUser")
}

func (suite *OrderServiceTestSuite) TestOverrideStatus_RejectsUnknownStatus() {
	ctx := context.Background()

	order, err := suite.service.OverrideStatus(ctx, "order-1", domain.OrderStatus("TELEPORTED"), "admin")

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateStatus")
}

func (suite *OrderServiceTestSuite) TestOverrideStatus_WritesAnyKnownStatus() {
	ctx := context.Background()
	updated := &domain.Order{OrderID: "order-1", Status: domain.OrderStatusDelivered}
	suite.mockOrderRepo.On("UpdateStatus", ctx, "order-1", domain.OrderStatusDelivered, "admin").Return(nil).Once()
	suite.mockOrderRepo.On("FindOrderByID", ctx, "order-1").Return(updated, nil).Once()

	order, err := suite.service.OverrideStatus(ctx, "order-1", domain.OrderStatusDelivered, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusDelivered, order.Status)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestSetPurchased_AdvancesPendingToProcured() {
	ctx := context.Background()
	pending := &domain.Order{OrderID: "order-1", UserID: "user-1", Status: domain.OrderStatusPendingProcessing}
	procured := &domain.Order{OrderID: "order-1", UserID: "user-1", Status: domain.OrderStatusProcured, Purchased: true}

	suite.mockOrderRepo.On("FindOrderByID", ctx, "order-1").Return(pending, nil).Once()
	suite.mockOrderRepo.On("SetPurchased", ctx, "order-1", true, mock.MatchedBy(func(t *time.Time) bool {
		return t != nil && !t.IsZero()
	}), "admin").Return(nil).Once()
	suite.mockOrderRepo.On("UpdateStatus", ctx, "order-1", domain.OrderStatusProcured, "admin").Return(nil).Once()
	suite.mockOrderRepo.On("FindOrderByID", ctx, "order-1").Return(procured, nil).Once()

	order, err := suite.service.SetPurchased(ctx, "order-1", true, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusProcured, order.Status)
	suite.True(order.Purchased)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestSetPurchased_DoesNotTouchLaterStatuses() {
	ctx := context.Background()
	inTransit := &domain.Order{OrderID: "order-1", Status: domain.OrderStatusInTransit}

	suite.mockOrderRepo.On("FindOrderByID", ctx, "order-1").Return(inTransit, nil)
	suite.mockOrderRepo.On("SetPurchased", ctx, "order-1", true, mock.AnythingOfType("*time.Time"), "admin").Return(nil).Once()

	_, err := suite.service.SetPurchased(ctx, "order-1", true, "admin")

	suite.Require().NoError(err)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateStatus")
}

func (suite *OrderServiceTestSuite) TestSetPurchased_UnsetClearsTimestampKeepsStatus() {
	ctx := context.Background()
	procured := &domain.Order{OrderID: "order-1", Status: domain.OrderStatusProcured, Purchased: true}

	suite.mockOrderRepo.On("FindOrderByID", ctx, "order-1").Return(procured, nil)
	suite.mockOrderRepo.On("SetPurchased", ctx, "order-1", false, (*time.Time)(nil), "admin").Return(nil).Once()

	_, err := suite.service.SetPurchased(ctx, "order-1", false, "admin")

	suite.Require().NoError(err)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateStatus")
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
