package services_test

import (
	"context"
	"testing"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portsrepo "github.com/BekhzodS/china_shop_app/internal/core/ports/repositories"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/core/services"
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock CartRepository ---
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindCartByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) CreateCart(ctx context.Context, cart domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) ListLines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *MockCartRepository) SaveSnapshot(ctx context.Context, snapshot domain.PriceSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockCartRepository) UpsertLine(ctx context.Context, line domain.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteLine(ctx context.Context, cartID, productID, variantSelector string) error {
	args := m.Called(ctx, cartID, productID, variantSelector)
	return args.Error(0)
}

func (m *MockCartRepository) ClearLines(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// --- Mock ProductProvider ---
type MockProductProvider struct {
	mock.Mock
}

func (m *MockProductProvider) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductProvider) Search(ctx context.Context, query string) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// noopActivity is a do-nothing activity recorder for tests.
type noopActivity struct{}

func (noopActivity) Record(userID string, event string, properties map[string]any) {}

// --- Test Suite ---
type CartServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockCartRepository
	mockProducts *MockProductProvider
	service      portssvc.CartSvcFacade
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCartRepository)
	suite.mockProducts = new(MockProductProvider)
	resolver := &stubResolver{resolution: domain.RateResolution{
		Rate:   decimal.NewFromInt(13),
		Markup: decimal.NewFromFloat(1.05),
	}}
	pricing := services.NewPricingService(resolver)
	suite.service = services.NewCartService(suite.mockRepo, pricing, suite.mockProducts, noopActivity{})
}

func (suite *CartServiceTestSuite) TestAddItem_CreatesCartAndFreezesPrice() {
	ctx := context.Background()
	userID := "user-1"
	product := &domain.Product{
		ProductID: "prod-1",
		Title:     "Thermal Mug",
		BasePrice: decimal.NewFromInt(100),
	}
	// 100 * 13 * 1.05 * 1.03 = 1405.95
	expectedFinal := decimal.NewFromFloat(1405.95)

	suite.mockProducts.On("GetProduct", ctx, "prod-1").Return(product, nil).Once()
	suite.mockRepo.On("FindCartByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateCart", ctx, mock.MatchedBy(func(c domain.Cart) bool {
		return c.UserID == userID && c.CartID != ""
	})).Return(nil).Once()
	var savedSnapshot domain.PriceSnapshot
	suite.mockRepo.On("SaveSnapshot", ctx, mock.MatchedBy(func(s domain.PriceSnapshot) bool {
		savedSnapshot = s
		return s.FinalPerItemPrice.Equal(expectedFinal) && s.RateUsed.Equal(decimal.NewFromInt(13))
	})).Return(nil).Once()

	var savedLine domain.CartLine
	suite.mockRepo.On("UpsertLine", ctx, mock.MatchedBy(func(l domain.CartLine) bool {
		savedLine = l
		return l.ProductID == "prod-1" && l.Quantity == 2
	})).Return(nil).Once()

	// GetCart at the end of AddItem re-reads the cart
	cart := &domain.Cart{CartID: "cart-1", UserID: userID}
	suite.mockRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil).Once()
	suite.mockRepo.On("ListLines", ctx, "cart-1").Return([]domain.CartLine{
		{
			ProductID:   "prod-1",
			ProductName: "Thermal Mug",
			Quantity:    2,
			Snapshot:    &domain.PriceSnapshot{FinalPerItemPrice: expectedFinal},
		},
	}, nil).Once()

	resp, err := suite.service.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 2})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 1)
	suite.True(resp.Items[0].FinalPerItemPrice.Equal(expectedFinal))
	suite.True(resp.Subtotal.Equal(expectedFinal.Mul(decimal.NewFromInt(2))))
	suite.Equal(savedSnapshot.SnapshotID, savedLine.SnapshotID, "line must point at the snapshot just saved")
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockProducts.AssertExpectations(suite.T())
}

func (suite *CartServiceTestSuite) TestAddItem_RejectsZeroQuantity() {
	ctx := context.Background()

	resp, err := suite.service.AddItem(ctx, "user-1", dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 0})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProducts.AssertNotCalled(suite.T(), "GetProduct")
}

func (suite *CartServiceTestSuite) TestAddItem_VariantPriceWins() {
	ctx := context.Background()
	userID := "user-1"
	product := &domain.Product{
		ProductID: "prod-1",
		Title:     "Jacket",
		BasePrice: decimal.NewFromInt(100),
		Variants: []domain.ProductVariant{
			{VariantID: "sku-red", Price: decimal.NewFromInt(120)},
		},
	}
	// 120 * 13 * 1.05 * 1.03 = 1687.14
	expectedFinal := decimal.NewFromFloat(1687.14)

	suite.mockProducts.On("GetProduct", ctx, "prod-1").Return(product, nil).Once()
	cart := &domain.Cart{CartID: "cart-1", UserID: userID}
	suite.mockRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil)
	suite.mockRepo.On("SaveSnapshot", ctx, mock.MatchedBy(func(s domain.PriceSnapshot) bool {
		return s.FinalPerItemPrice.Equal(expectedFinal)
	})).Return(nil).Once()
	suite.mockRepo.On("UpsertLine", ctx, mock.AnythingOfType("domain.CartLine")).Return(nil).Once()
	suite.mockRepo.On("ListLines", ctx, "cart-1").Return([]domain.CartLine{}, nil).Once()

	_, err := suite.service.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: "prod-1", VariantSelector: "sku-red", Quantity: 1})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CartServiceTestSuite) TestAddItem_LosingCreateRaceReReads() {
	ctx := context.Background()
	userID := "user-1"
	product := &domain.Product{ProductID: "prod-1", Title: "Mug", BasePrice: decimal.NewFromInt(10)}
	cart := &domain.Cart{CartID: "cart-1", UserID: userID}

	suite.mockProducts.On("GetProduct", ctx, "prod-1").Return(product, nil).Once()
	suite.mockRepo.On("FindCartByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateCart", ctx, mock.AnythingOfType("domain.Cart")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil)
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.PriceSnapshot")).Return(nil).Once()
	suite.mockRepo.On("UpsertLine", ctx, mock.MatchedBy(func(l domain.CartLine) bool {
		return l.CartID == "cart-1"
	})).Return(nil).Once()
	suite.mockRepo.On("ListLines", ctx, "cart-1").Return([]domain.CartLine{}, nil).Once()

	_, err := suite.service.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 1})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CartServiceTestSuite) TestGetCart_NoCartRowYieldsEmptyView() {
	ctx := context.Background()
	suite.mockRepo.On("FindCartByUserID", ctx, "user-1").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.GetCart(ctx, "user-1")

	suite.Require().NoError(err)
	suite.NotNil(resp.Items)
	suite.Empty(resp.Items)
	suite.True(resp.Subtotal.IsZero())
}

func (suite *CartServiceTestSuite) TestGetCart_SubtotalSumsLineTotals() {
	ctx := context.Background()
	cart := &domain.Cart{CartID: "cart-1", UserID: "user-1"}
	suite.mockRepo.On("FindCartByUserID", ctx, "user-1").Return(cart, nil).Once()
	suite.mockRepo.On("ListLines", ctx, "cart-1").Return([]domain.CartLine{
		{ProductID: "a", Quantity: 2, Snapshot: &domain.PriceSnapshot{FinalPerItemPrice: decimal.NewFromFloat(10.50)}},
		{ProductID: "b", Quantity: 1, Snapshot: &domain.PriceSnapshot{FinalPerItemPrice: decimal.NewFromFloat(5.25)}},
	}, nil).Once()

	resp, err := suite.service.GetCart(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 2)
	suite.True(resp.Items[0].LineTotal.Equal(decimal.NewFromFloat(21.00)))
	suite.True(resp.Subtotal.Equal(decimal.NewFromFloat(26.25)))
}

func (suite *CartServiceTestSuite) TestClear_NoCartIsNoop() {
	ctx := context.Background()
	suite.mockRepo.On("FindCartByUserID", ctx, "user-1").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.Clear(ctx, "user-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "ClearLines")
}

// --- Run Suite ---
func TestCartService(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

// fakeCartRepository is an in-memory stand-in carrying the same upsert
// semantics as the SQL repository: re-adding a (cart, product,
// variantSelector) combination merges quantities and repoints the line to
// the new snapshot.
type fakeCartRepository struct {
	carts     map[string]domain.Cart // keyed by userID
	lines     []domain.CartLine
	snapshots map[string]domain.PriceSnapshot
}

var _ portsrepo.CartRepositoryFacade = (*fakeCartRepository)(nil)

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{
		carts:     map[string]domain.Cart{},
		snapshots: map[string]domain.PriceSnapshot{},
	}
}

func (f *fakeCartRepository) FindCartByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cart, nil
}

func (f *fakeCartRepository) CreateCart(ctx context.Context, cart domain.Cart) error {
	if _, ok := f.carts[cart.UserID]; ok {
		return apperrors.ErrDuplicate
	}
	f.carts[cart.UserID] = cart
	return nil
}

func (f *fakeCartRepository) ListLines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	var out []domain.CartLine
	for _, line := range f.lines {
		if line.CartID != cartID {
			continue
		}
		if snap, ok := f.snapshots[line.SnapshotID]; ok {
			line.Snapshot = &snap
		}
		out = append(out, line)
	}
	return out, nil
}

func (f *fakeCartRepository) SaveSnapshot(ctx context.Context, snapshot domain.PriceSnapshot) error {
	f.snapshots[snapshot.SnapshotID] = snapshot
	return nil
}

func (f *fakeCartRepository) UpsertLine(ctx context.Context, line domain.CartLine) error {
	for i, existing := range f.lines {
		if existing.CartID == line.CartID && existing.ProductID == line.ProductID && existing.VariantSelector == line.VariantSelector {
			f.lines[i].Quantity += line.Quantity
			f.lines[i].SnapshotID = line.SnapshotID
			return nil
		}
	}
	f.lines = append(f.lines, line)
	return nil
}

func (f *fakeCartRepository) DeleteLine(ctx context.Context, cartID, productID, variantSelector string) error {
	for i, existing := range f.lines {
		if existing.CartID == cartID && existing.ProductID == productID && existing.VariantSelector == variantSelector {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeCartRepository) ClearLines(ctx context.Context, cartID string) error {
	kept := f.lines[:0]
	for _, line := range f.lines {
		if line.CartID != cartID {
			kept = append(kept, line)
		}
	}
	f.lines = kept
	return nil
}

func TestCartService_ReAddingSameVariantMergesQuantities(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepository()
	products := new(MockProductProvider)
	resolver := &stubResolver{resolution: domain.RateResolution{
		Rate:   decimal.NewFromInt(13),
		Markup: decimal.NewFromFloat(1.05),
	}}
	svc := services.NewCartService(repo, services.NewPricingService(resolver), products, noopActivity{})

	product := &domain.Product{ProductID: "prod-1", Title: "Thermal Mug", BasePrice: decimal.NewFromInt(100)}
	products.On("GetProduct", ctx, "prod-1").Return(product, nil).Twice()

	_, err := svc.AddItem(ctx, "user-1", dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)
	resp, err := svc.AddItem(ctx, "user-1", dto.AddCartItemRequest{ProductID: "prod-1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.EqualValues(t, 5, resp.Items[0].Quantity)
	perItem := decimal.NewFromFloat(1405.95)
	assert.True(t, resp.Items[0].FinalPerItemPrice.Equal(perItem))
	assert.True(t, resp.Subtotal.Equal(perItem.Mul(decimal.NewFromInt(5))))
	// both snapshots survive; the merged line points at the latest one
	assert.Len(t, repo.snapshots, 2)
	require.Len(t, repo.lines, 1)
	latest, ok := repo.snapshots[repo.lines[0].SnapshotID]
	require.True(t, ok)
	assert.True(t, latest.FinalPerItemPrice.Equal(perItem))
}
