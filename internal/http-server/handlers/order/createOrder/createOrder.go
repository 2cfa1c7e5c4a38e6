package createOrder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"picstore/internal/http-server/middleware/auth"
	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
)

type ItemRequest struct {
	Type         string    `json:"type" validate:"required,oneof=photo album"`
	ItemID       uuid.UUID `json:"item_id" validate:"required"`
	Name         string    `json:"name"`
	Price        int       `json:"price" validate:"gte=0"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

type Request struct {
	TotalAmount int           `json:"total_amount" validate:"required,gt=0"`
	Items       []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderResponse struct {
	response.Response
	OrderID uuid.UUID `json:"order_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OrderCreator
type OrderCreator interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
}

// New records a completed order for the authenticated customer. Payment
// confirmation happens upstream of this service; by the time the order
// reaches us the checkout has settled.
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        input  body  createOrder.Request  true  "Order contents"
// @Success      200  {object}  createOrder.OrderResponse
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /orders [post]
func New(log *slog.Logger, creator OrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.order.createOrder.New"

		log := log.With(
			slog.String("op", op),
		)

		user, ok := auth.FromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request"))
			return
		}
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErrs validator.ValidationErrors
			errors.As(err, &validateErrs)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				Type:         item.Type,
				ItemID:       item.ItemID,
				Name:         item.Name,
				Price:        item.Price,
				ThumbnailURL: item.ThumbnailURL,
			})
		}

		order, err := creator.CreateOrder(r.Context(), &models.Order{
			CustomerEmail: user.Email,
			CustomerName:  user.DisplayName,
			TotalAmount:   req.TotalAmount,
			Status:        models.OrderStatusCompleted,
			Items:         items,
		})
		if err != nil {
			log.Error("failed to create order", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create order"))
			return
		}

		log.Info("order created",
			slog.String("order_id", order.ID.String()),
			slog.String("customer", user.Email),
			slog.Int("items", len(order.Items)),
		)

		render.JSON(w, r, OrderResponse{
			Response: response.OK(),
			OrderID:  order.ID,
		})
	}
}
