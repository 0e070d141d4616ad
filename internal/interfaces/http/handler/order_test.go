package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	accountapp "github.com/bazaar/backend/internal/application/account"
	orderapp "github.com/bazaar/backend/internal/application/order"
	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/bazaar/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderHandlerFixture struct {
	customers *mockCustomerRepo
	addresses *mockAddressRepo
	carts     *mockCartRepo
	orders    *mockOrderRepo
	products  *mockProductRepo
	router    *gin.Engine
}

func newOrderHandlerFixture() *orderHandlerFixture {
	customers := new(mockCustomerRepo)
	addresses := new(mockAddressRepo)
	carts := new(mockCartRepo)
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)

	scope := &orderapp.NoOpTransactionScope{
		OrderRepo:    orders,
		CartRepo:     carts,
		CustomerRepo: customers,
		AddressRepo:  addresses,
		ProductRepo:  products,
	}
	accountService := accountapp.NewService(customers, nil, zap.NewNop())
	checkoutService := orderapp.NewCheckoutService(scope, nil, zap.NewNop())
	orderService := orderapp.NewService(scope, nil, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	NewOrderHandler(accountService, checkoutService, orderService).RegisterRoutes(api)

	return &orderHandlerFixture{
		customers: customers,
		addresses: addresses,
		carts:     carts,
		orders:    orders,
		products:  products,
		router:    router,
	}
}

// completeCustomer returns a customer with a filled profile
func completeCustomer(t *testing.T, userID uuid.UUID) *account.Customer {
	t.Helper()
	customer := account.NewCustomer(userID)
	birthDate := time.Date(1992, 3, 21, 0, 0, 0, 0, time.UTC)
	require.NoError(t, customer.UpdateProfile("Sara", "Ahmadi", account.GenderFemale, "09121234567", &birthDate))
	return customer
}

func TestOrderHandler_DeliveryDates(t *testing.T) {
	f := newOrderHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/delivery-dates", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data orderapp.DeliveryDatesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Dates, 3)

	for _, raw := range resp.Data.Dates {
		d, err := time.Parse("2006-01-02", raw)
		require.NoError(t, err)
		assert.NotEqual(t, time.Thursday, d.Weekday())
		assert.NotEqual(t, time.Friday, d.Weekday())
	}
}

func TestOrderHandler_Checkout(t *testing.T) {
	deliveryDate := func(t *testing.T, f *orderHandlerFixture) string {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/delivery-dates", nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		var resp struct {
			Data orderapp.DeliveryDatesResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Data.Dates)
		return resp.Data.Dates[0]
	}

	t.Run("requires authentication", func(t *testing.T) {
		f := newOrderHandlerFixture()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("places order from cart", func(t *testing.T) {
		f := newOrderHandlerFixture()

		userID := uuid.New()
		customer := completeCustomer(t, userID)
		address, err := account.NewAddress(account.OwnerKindCustomer, customer.ID, "Tehran", "Tehran", "Valiasr St 12", "1234567890")
		require.NoError(t, err)

		product, err := catalog.NewProduct(uuid.New(), "Damask Rose Water", "damask-rose-water", valueobject.NewMoneyIRRFromInt(450000), 20)
		require.NoError(t, err)
		customerCart := cart.NewCart(customer.ID)
		require.NoError(t, customerCart.AddItem(product.ID, 2))

		f.customers.On("FindByUserID", mock.Anything, userID).Return(customer, nil)
		f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		f.addresses.On("FindByID", mock.Anything, address.ID).Return(address, nil)
		f.carts.On("FindByCustomer", mock.Anything, customer.ID).Return(customerCart, nil)
		f.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		f.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		f.carts.On("Save", mock.Anything, customerCart).Return(nil)

		body, _ := json.Marshal(map[string]string{
			"address_id":    address.ID.String(),
			"delivery_date": deliveryDate(t, f),
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Data orderapp.OrderResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "UNPAID", resp.Data.Status)
		assert.Equal(t, "900000", resp.Data.Total)
		assert.True(t, customerCart.IsEmpty())
	})

	t.Run("incomplete profile rejected", func(t *testing.T) {
		f := newOrderHandlerFixture()

		userID := uuid.New()
		customer := account.NewCustomer(userID)
		f.customers.On("FindByUserID", mock.Anything, userID).Return(customer, nil)
		f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

		body, _ := json.Marshal(map[string]string{
			"address_id":    uuid.New().String(),
			"delivery_date": deliveryDate(t, f),
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeIncompleteProfile, resp.Error.Code)
	})

	t.Run("ineligible delivery date rejected", func(t *testing.T) {
		f := newOrderHandlerFixture()

		userID := uuid.New()
		customer := completeCustomer(t, userID)
		f.customers.On("FindByUserID", mock.Anything, userID).Return(customer, nil)

		body, _ := json.Marshal(map[string]string{
			"address_id":    uuid.New().String(),
			"delivery_date": "2020-01-01",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		f := newOrderHandlerFixture()

		userID := uuid.New()
		customer := completeCustomer(t, userID)
		f.customers.On("FindByUserID", mock.Anything, userID).Return(customer, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderHandler_Delete(t *testing.T) {
	t.Run("deletes own unpaid order", func(t *testing.T) {
		f := newOrderHandlerFixture()

		userID := uuid.New()
		customer := completeCustomer(t, userID)
		o, err := order.NewOrder(customer.ID, uuid.New(), time.Now().AddDate(0, 0, 1), []order.Line{
			{ProductID: uuid.New(), Quantity: 1},
		})
		require.NoError(t, err)

		f.customers.On("FindByUserID", mock.Anything, userID).Return(customer, nil)
		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.orders.On("Delete", mock.Anything, o.ID).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+o.ID.String(), nil)
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("paid order rejected", func(t *testing.T) {
		f := newOrderHandlerFixture()

		userID := uuid.New()
		customer := completeCustomer(t, userID)
		productID := uuid.New()
		o, err := order.NewOrder(customer.ID, uuid.New(), time.Now().AddDate(0, 0, 1), []order.Line{
			{ProductID: productID, Quantity: 1},
		})
		require.NoError(t, err)
		require.NoError(t, o.MarkPaid(order.PaymentMethodWallet, "", map[uuid.UUID]valueobject.Money{
			productID: valueobject.NewMoneyIRRFromInt(100000),
		}))

		f.customers.On("FindByUserID", mock.Anything, userID).Return(customer, nil)
		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+o.ID.String(), nil)
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		f.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_OverrideStatus_RequiresAdmin(t *testing.T) {
	f := newOrderHandlerFixture()

	body, _ := json.Marshal(map[string]string{"status": "PAID"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+uuid.New().String()+"/status", bytes.NewReader(body))
	req.Header.Set("X-User-ID", uuid.New().String())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
