// Package routes wires controllers onto the router. Route names follow the
// resource.action convention and feed the routes CLI command.
package routes

import (
	"github.com/novastreet/storefront/app/controllers"
	"github.com/novastreet/storefront/app/repositories"
	"github.com/novastreet/storefront/app/services"
	"github.com/novastreet/storefront/pkg/middleware"
	"github.com/novastreet/storefront/pkg/router"
)

// Register mounts the whole API surface on r.
func Register(r *router.Router) {
	productRepo := repositories.NewProductRepository()
	userRepo := repositories.NewUserRepository()

	catalog := services.NewCatalogService(productRepo, services.DiskAssets{})
	auth := services.NewAuthService(userRepo)
	cart := services.NewCartService(productRepo, services.NewRedisKV())

	products := controllers.NewProductController(catalog)
	authCtrl := controllers.NewAuthController(auth)
	cartCtrl := controllers.NewCartController(cart)

	r.Get("/products", "products.index", products.Index)
	r.Post("/products", "products.store", products.Store)
	r.Get("/products/search", "products.search", products.Search)

	r.Post("/auth/register", "auth.register", authCtrl.Register)
	r.Post("/auth/login", "auth.login", authCtrl.Login)
	r.Post("/auth/logout", "auth.logout", authCtrl.Logout)

	cartGroup := r.Group("/cart", middleware.Auth)
	cartGroup.Get("/", "cart.items", cartCtrl.Items)
	cartGroup.Post("/", "cart.add", cartCtrl.Add)
	cartGroup.Delete("/", "cart.clear", cartCtrl.Clear)
}
