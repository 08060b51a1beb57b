package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/ecommerce-api/internal/service/models/category"
	"github.com/corray333/ecommerce-api/internal/service/models/discount"
	"github.com/corray333/ecommerce-api/internal/service/models/order"
	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/corray333/ecommerce-api/internal/service/models/profile"
	"github.com/corray333/ecommerce-api/internal/service/models/review"
	"github.com/corray333/ecommerce-api/internal/service/models/user"
	"github.com/corray333/ecommerce-api/internal/service/models/wishlist"
	"github.com/corray333/ecommerce-api/internal/transport/http/categories"
	"github.com/corray333/ecommerce-api/internal/transport/http/discounts"
	"github.com/corray333/ecommerce-api/internal/transport/http/orders"
	"github.com/corray333/ecommerce-api/internal/transport/http/products"
	"github.com/corray333/ecommerce-api/internal/transport/http/reviews"
	"github.com/corray333/ecommerce-api/internal/transport/http/users"
	wishlisthandler "github.com/corray333/ecommerce-api/internal/transport/http/wishlist"
	"github.com/corray333/ecommerce-api/pkg/http/middleware/auth"
	"github.com/corray333/ecommerce-api/pkg/http/middleware/trace"
	"github.com/corray333/ecommerce-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type orderService interface {
	PlaceOrder(ctx context.Context, userID int64, items []orderitem.OrderItem) (int64, error)
	ListOrders(ctx context.Context, userID int64) ([]order.Summary, error)
	GetOrder(ctx context.Context, userID, orderID int64) (order.Summary, error)
}

type catalogService interface {
	CreateProduct(ctx context.Context, p product.Product) (product.Product, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	QueryProducts(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	UpdateProduct(ctx context.Context, p product.Product) (product.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, c category.Category) (category.Category, error)
	GetCategory(ctx context.Context, id int64) (*category.Category, error)
	ListCategories(ctx context.Context) ([]category.Category, error)
	UpdateCategory(ctx context.Context, c category.Category) (category.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type userService interface {
	Register(ctx context.Context, email, password, passwordConfirm string) (user.User, error)
	Login(ctx context.Context, email, password string) (user.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (user.TokenPair, error)

	CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error)
	GetProfile(ctx context.Context, id int64) (*profile.Profile, error)
	ListProfiles(ctx context.Context) ([]profile.Profile, error)
	UpdateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

type reviewService interface {
	CreateReview(ctx context.Context, rv review.Review) (review.Review, error)
	ListReviews(ctx context.Context, productID int64) ([]review.Review, error)
	UpdateReview(
		ctx context.Context,
		userID, productID, reviewID int64,
		rating int,
		comment string,
	) (review.Review, error)
	DeleteReview(ctx context.Context, userID, productID, reviewID int64) error
}

type discountService interface {
	CreateDiscount(ctx context.Context, d discount.Discount) (discount.Discount, error)
	ListDiscounts(ctx context.Context) ([]discount.Discount, error)
	UpdateDiscount(ctx context.Context, d discount.Discount) (discount.Discount, error)
	DeleteDiscount(ctx context.Context, id int64) error
}

type wishlistService interface {
	GetWishlist(ctx context.Context, userID int64) (wishlist.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID int64) error
	RemoveProduct(ctx context.Context, userID, productID int64) error
}

// HTTPTransport serves the public HTTP API.
type HTTPTransport struct {
	server *http.Server
	router *chi.Mux

	orderService    orderService
	catalogService  catalogService
	userService     userService
	reviewService   reviewService
	discountService discountService
	wishlistService wishlistService
}

// NewHTTPTransport creates an HTTP transport over the given services.
func NewHTTPTransport(
	orderSvc orderService,
	catalogSvc catalogService,
	userSvc userService,
	reviewSvc reviewService,
	discountSvc discountService,
	wishlistSvc wishlistService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:          server,
		router:          router,
		orderService:    orderSvc,
		catalogService:  catalogSvc,
		userService:     userSvc,
		reviewService:   reviewSvc,
		discountService: discountSvc,
		wishlistService: wishlistSvc,
	}
}

// Run starts the HTTP server.
func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/users", func(r chi.Router) {
		r.Post("/register/", func(w http.ResponseWriter, r *http.Request) {
			users.Register(w, r, h.userService)
		})
		r.Post("/login/", func(w http.ResponseWriter, r *http.Request) {
			users.Login(w, r, h.userService)
		})
		r.Post("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
			users.Refresh(w, r, h.userService)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.NewAuthMiddleware)
			r.Get("/profiles/", func(w http.ResponseWriter, r *http.Request) {
				users.ListProfiles(w, r, h.userService)
			})
			r.Post("/profiles/", func(w http.ResponseWriter, r *http.Request) {
				users.CreateProfile(w, r, h.userService)
			})
			r.Get("/profiles/{id}/", func(w http.ResponseWriter, r *http.Request) {
				users.GetProfile(w, r, h.userService)
			})
			r.Put("/profiles/{id}/", func(w http.ResponseWriter, r *http.Request) {
				users.UpdateProfile(w, r, h.userService)
			})
			r.Delete("/profiles/{id}/", func(w http.ResponseWriter, r *http.Request) {
				users.DeleteProfile(w, r, h.userService)
			})
		})
	})

	h.router.Route("/products", func(r chi.Router) {
		r.Get("/{id}/reviews/", func(w http.ResponseWriter, r *http.Request) {
			reviews.ListReviews(w, r, h.reviewService)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.NewAuthMiddleware)

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				products.ListProducts(w, r, h.catalogService)
			})
			r.Post("/", func(w http.ResponseWriter, r *http.Request) {
				products.CreateProduct(w, r, h.catalogService)
			})
			r.Get("/{id}/", func(w http.ResponseWriter, r *http.Request) {
				products.GetProduct(w, r, h.catalogService)
			})
			r.Put("/{id}/", func(w http.ResponseWriter, r *http.Request) {
				products.UpdateProduct(w, r, h.catalogService)
			})
			r.Delete("/{id}/", func(w http.ResponseWriter, r *http.Request) {
				products.DeleteProduct(w, r, h.catalogService)
			})

			r.Post("/{id}/reviews/add/", func(w http.ResponseWriter, r *http.Request) {
				reviews.CreateReview(w, r, h.reviewService)
			})
			r.Put("/{id}/reviews/{review_id}/", func(w http.ResponseWriter, r *http.Request) {
				reviews.UpdateReview(w, r, h.reviewService)
			})
			r.Delete("/{id}/reviews/{review_id}/", func(w http.ResponseWriter, r *http.Request) {
				reviews.DeleteReview(w, r, h.reviewService)
			})

			r.Get("/discounts/", func(w http.ResponseWriter, r *http.Request) {
				discounts.ListDiscounts(w, r, h.discountService)
			})
			r.Post("/discounts/", func(w http.ResponseWriter, r *http.Request) {
				discounts.CreateDiscount(w, r, h.discountService)
			})
			r.Put("/discounts/{id}/", func(w http.ResponseWriter, r *http.Request) {
				discounts.UpdateDiscount(w, r, h.discountService)
			})
			r.Delete("/discounts/{id}/", func(w http.ResponseWriter, r *http.Request) {
				discounts.DeleteDiscount(w, r, h.discountService)
			})

			r.Get("/wishlist/", func(w http.ResponseWriter, r *http.Request) {
				wishlisthandler.GetWishlist(w, r, h.wishlistService)
			})
			r.Post("/wishlist/add/", func(w http.ResponseWriter, r *http.Request) {
				wishlisthandler.AddProduct(w, r, h.wishlistService)
			})
			r.Post("/wishlist/update/", func(w http.ResponseWriter, r *http.Request) {
				wishlisthandler.UpdateWishlist(w, r, h.wishlistService)
			})
		})
	})

	h.router.Route("/categories", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			categories.ListCategories(w, r, h.catalogService)
		})
		r.Get("/{id}/", func(w http.ResponseWriter, r *http.Request) {
			categories.GetCategory(w, r, h.catalogService)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.NewAuthMiddleware)
			r.Post("/", func(w http.ResponseWriter, r *http.Request) {
				categories.CreateCategory(w, r, h.catalogService)
			})
			r.Put("/{id}/", func(w http.ResponseWriter, r *http.Request) {
				categories.UpdateCategory(w, r, h.catalogService)
			})
			r.Delete("/{id}/", func(w http.ResponseWriter, r *http.Request) {
				categories.DeleteCategory(w, r, h.catalogService)
			})
		})
	})

	h.router.Route("/orders", func(r chi.Router) {
		r.Use(auth.NewAuthMiddleware)
		r.Post("/create/", func(w http.ResponseWriter, r *http.Request) {
			orders.PlaceOrder(w, r, h.orderService)
		})
		r.Get("/list/", func(w http.ResponseWriter, r *http.Request) {
			orders.ListOrders(w, r, h.orderService)
		})
		r.Get("/{order_id}/", func(w http.ResponseWriter, r *http.Request) {
			orders.GetOrder(w, r, h.orderService)
		})
	})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
