package listOrders_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"picstore/internal/http-server/handlers/order/listOrders"
	listerMocks "picstore/internal/http-server/handlers/order/listOrders/mocks"
	"picstore/internal/http-server/middleware/auth"
	"picstore/internal/models"
)

func TestListOrders(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	orders := []models.Order{
		{ID: uuid.New(), CustomerEmail: "buyer@example.com", Status: models.OrderStatusCompleted},
		{ID: uuid.New(), CustomerEmail: "buyer@example.com", Status: models.OrderStatusPending},
	}

	t.Run("Success", func(t *testing.T) {
		listerMock := listerMocks.NewOrderLister(t)
		listerMock.On("GetOrdersByEmail", mock.Anything, "buyer@example.com").
			Return(orders, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req = req.WithContext(auth.WithUser(req.Context(), auth.User{Email: "buyer@example.com"}))

		rr := httptest.NewRecorder()
		listOrders.New(log, listerMock).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp listOrders.OrdersResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Orders, 2)
	})

	t.Run("No Orders Returns Empty List", func(t *testing.T) {
		listerMock := listerMocks.NewOrderLister(t)
		listerMock.On("GetOrdersByEmail", mock.Anything, "new@example.com").
			Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req = req.WithContext(auth.WithUser(req.Context(), auth.User{Email: "new@example.com"}))

		rr := httptest.NewRecorder()
		listOrders.New(log, listerMock).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), `"orders":[]`)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		listerMock := listerMocks.NewOrderLister(t)

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		rr := httptest.NewRecorder()
		listOrders.New(log, listerMock).ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
