package listOrders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"picstore/internal/http-server/middleware/auth"
	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
)

type OrdersResponse struct {
	response.Response
	Orders []models.Order `json:"orders"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OrderLister
type OrderLister interface {
	GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
}

// New returns the authenticated customer's order history.
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Success      200  {object}  listOrders.OrdersResponse
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /orders [get]
func New(log *slog.Logger, lister OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.order.listOrders.New"

		log := log.With(
			slog.String("op", op),
		)

		user, ok := auth.FromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		orders, err := lister.GetOrdersByEmail(r.Context(), user.Email)
		if err != nil {
			log.Error("failed to list orders", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list orders"))
			return
		}

		if orders == nil {
			orders = []models.Order{}
		}

		render.JSON(w, r, OrdersResponse{
			Response: response.OK(),
			Orders:   orders,
		})
	}
}
