package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/BekhzodS/china_shop_app/internal/handlers"
	"github.com/BekhzodS/china_shop_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CartService ---
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (*dto.CartResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CartResponse), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CartResponse), args.Error(1)
}

func (m *MockCartService) RemoveLine(ctx context.Context, userID, productID, variantSelector string) error {
	args := m.Called(ctx, userID, productID, variantSelector)
	return args.Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.CartSvcFacade = (*MockCartService)(nil)

// --- Test Suite ---
type CartHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCartService *MockCartService
	jwtSecret       string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CartHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "csa-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCartService = new(MockCartService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCartRoutes(v1, suite.mockCartService)
}

func (suite *CartHandlerTestSuite) authedRequest(method, url string, body string, userID string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CartHandlerTestSuite) TestGetCart_Success() {
	userID := uuid.NewString()
	expected := &dto.CartResponse{
		Items: []dto.CartItemResponse{
			{
				ProductID:         "prod-1",
				ProductName:       "Thermal Mug",
				Quantity:          2,
				FinalPerItemPrice: decimal.NewFromFloat(1405.95),
				LineTotal:         decimal.NewFromFloat(2811.90),
			},
		},
		Subtotal: decimal.NewFromFloat(2811.90),
	}

	suite.mockCartService.On("GetCart", mock.AnythingOfType("*context.valueCtx"), userID).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/cart", "", userID)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.CartResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Items, 1)
	suite.Equal("prod-1", body.Items[0].ProductID)
	suite.True(body.Subtotal.Equal(decimal.NewFromFloat(2811.90)))
	suite.mockCartService.AssertExpectations(suite.T())
}

func (suite *CartHandlerTestSuite) TestGetCart_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCartService.AssertNotCalled(suite.T(), "GetCart")
}

func (suite *CartHandlerTestSuite) TestAddItem_Success() {
	userID := uuid.NewString()
	expected := &dto.CartResponse{Items: []dto.CartItemResponse{{ProductID: "prod-1", Quantity: 1}}, Subtotal: decimal.NewFromInt(100)}

	suite.mockCartService.On("AddItem",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(r dto.AddCartItemRequest) bool {
			return r.ProductID == "prod-1" && r.Quantity == 1
		}),
	).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/cart/items", `{"productID":"prod-1","quantity":1}`, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockCartService.AssertExpectations(suite.T())
}

func (suite *CartHandlerTestSuite) TestAddItem_BadPayload() {
	userID := uuid.NewString()

	// quantity missing entirely fails binding
	w := suite.authedRequest(http.MethodPost, "/api/v1/cart/items", `{"productID":"prod-1"}`, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCartService.AssertNotCalled(suite.T(), "AddItem")
}

func (suite *CartHandlerTestSuite) TestAddItem_ProductNotFound() {
	userID := uuid.NewString()

	suite.mockCartService.On("AddItem",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.AnythingOfType("dto.AddCartItemRequest"),
	).Return(nil, fmt.Errorf("failed to resolve product: %w", apperrors.ErrNotFound)).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/cart/items", `{"productID":"ghost","quantity":1}`, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockCartService.AssertExpectations(suite.T())
}

func (suite *CartHandlerTestSuite) TestRemoveItem_Success() {
	userID := uuid.NewString()

	suite.mockCartService.On("RemoveLine",
		mock.AnythingOfType("*context.valueCtx"),
		userID, "prod-1", "sku-red",
	).Return(nil).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/cart/items?productID=prod-1&variantSelector=sku-red", "", userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockCartService.AssertExpectations(suite.T())
}

func (suite *CartHandlerTestSuite) TestRemoveItem_MissingProductID() {
	userID := uuid.NewString()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/cart/items", "", userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCartService.AssertNotCalled(suite.T(), "RemoveLine")
}

func (suite *CartHandlerTestSuite) TestClearCart_Success() {
	userID := uuid.NewString()

	suite.mockCartService.On("Clear", mock.AnythingOfType("*context.valueCtx"), userID).Return(nil).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/cart", "", userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockCartService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCartHandler(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}
