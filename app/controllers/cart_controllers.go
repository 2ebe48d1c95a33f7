package controllers

import (
	"errors"
	"net/http"

	"github.com/novastreet/storefront/app/services"
	"github.com/novastreet/storefront/pkg/bind"
	"github.com/novastreet/storefront/pkg/logger"
	"github.com/novastreet/storefront/pkg/middleware"
	"github.com/novastreet/storefront/pkg/response"
)

// CartController manages the signed-in shopper's cart. Every route behind it
// sits behind middleware.Auth, so UserID is always populated.
type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

type addToCartInput struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Add handles POST /cart: puts one unit of a product into the cart and
// returns the updated cart.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in addToCartInput

	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.UserID(r.Context())

	items, err := c.cart.Add(r.Context(), userID, in.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("add to cart",
			"user_id", userID, "product_id", in.ProductID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Unable to update cart")
		return
	}
	response.Success(w, items)
}

// Items handles GET /cart: the shopper's current cart as a bare JSON array.
func (c *CartController) Items(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.cart.Items(middleware.UserID(r.Context())))
}

// Clear handles DELETE /cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := c.cart.Clear(userID); err != nil {
		logger.WithCtx(r.Context()).Error("clear cart", "user_id", userID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Unable to clear cart")
		return
	}
	response.Success(w, []struct{}{})
}
