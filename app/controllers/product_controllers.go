package controllers

import (
	"errors"
	"net/http"

	"github.com/novastreet/storefront/app/services"
	"github.com/novastreet/storefront/pkg/bind"
	"github.com/novastreet/storefront/pkg/logger"
	"github.com/novastreet/storefront/pkg/response"
)

// ProductController exposes the catalog over HTTP.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index handles GET /products: the full catalog as a bare JSON array.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list products", "error", err)
		response.Error(w, http.StatusInternalServerError, "Unable to fetch products")
		return
	}
	response.Success(w, products)
}

// Search handles GET /products/search?q=. Zero matches is a 200 with an
// empty array, not a failure.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	products, err := c.catalog.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrInvalidQuery) {
			response.Error(w, http.StatusBadRequest, "Invalid search query")
			return
		}
		logger.WithCtx(r.Context()).Error("search products", "query", query, "error", err)
		response.Error(w, http.StatusInternalServerError, "Unable to search products")
		return
	}
	response.Success(w, products)
}

// Store handles POST /products: a multipart submission with scalar fields,
// a primary image slot, and any number of secondary images.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.CreateProductInput

	errs, err := bind.Multipart(r, &in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("parse product form", "error", err)
		response.Error(w, http.StatusInternalServerError, "Error parsing form data")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.Create(r.Context(), in)
	if err != nil {
		var vErr *services.ValidationError
		var upErr *services.UploadError

		switch {
		case errors.As(err, &vErr):
			response.ValidationError(w, vErr.Fields)
		case errors.As(err, &upErr):
			logger.WithCtx(r.Context()).Error("store product assets", "error", err)
			response.Error(w, http.StatusInternalServerError, "Unable to store uploaded images")
		default:
			logger.WithCtx(r.Context()).Error("create product", "error", err)
			response.Error(w, http.StatusInternalServerError, "Unable to create product")
		}
		return
	}

	logger.WithCtx(r.Context()).Info("product created",
		"product_id", product.ID.Hex(), "name", product.Name)
	response.Created(w, product)
}
