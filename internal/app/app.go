package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/dal/rabbitmq"
	categoryrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/category/postgres"
	discountrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/discount/postgres"
	outboxrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/product/postgres"
	profilerepo "github.com/corray333/ecommerce-api/internal/dal/repositories/profile/postgres"
	reviewrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/review/postgres"
	userrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/user/postgres"
	wishlistrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/wishlist/postgres"
	"github.com/corray333/ecommerce-api/internal/jaeger"
	"github.com/corray333/ecommerce-api/internal/service/services/catalogsvc"
	"github.com/corray333/ecommerce-api/internal/service/services/discountsvc"
	"github.com/corray333/ecommerce-api/internal/service/services/ordersvc"
	"github.com/corray333/ecommerce-api/internal/service/services/reviewsvc"
	"github.com/corray333/ecommerce-api/internal/service/services/usersvc"
	"github.com/corray333/ecommerce-api/internal/service/services/wishlistsvc"
	httptransport "github.com/corray333/ecommerce-api/internal/transport/http"
	"github.com/corray333/ecommerce-api/internal/worker/outbox"
	"golang.org/x/sync/errgroup"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outbox.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	jaeger.MustSetup()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	pool := postgresClient.Pool()
	productRepository := productrepo.NewPostgresProductRepository(pool)
	categoryRepository := categoryrepo.NewPostgresCategoryRepository(pool)
	userRepository := userrepo.NewPostgresUserRepository(pool)
	profileRepository := profilerepo.NewPostgresProfileRepository(pool)
	reviewRepository := reviewrepo.NewPostgresReviewRepository(pool)
	discountRepository := discountrepo.NewPostgresDiscountRepository(pool)
	wishlistRepository := wishlistrepo.NewPostgresWishlistRepository(pool)
	outboxRepository := outboxrepo.NewPostgresOutboxRepository(pool)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithProductRepository(productRepository),
		catalogsvc.WithCategoryRepository(categoryRepository),
		catalogsvc.WithDiscountRepository(discountRepository),
	)
	userSvc := usersvc.MustNewUserService(
		usersvc.WithUserRepository(userRepository),
		usersvc.WithProfileRepository(profileRepository),
	)
	reviewSvc := reviewsvc.MustNewReviewService(
		reviewsvc.WithReviewRepository(reviewRepository),
		reviewsvc.WithProductRepository(productRepository),
	)
	discountSvc := discountsvc.MustNewDiscountService(
		discountsvc.WithDiscountRepository(discountRepository),
		discountsvc.WithProductRepository(productRepository),
	)
	wishlistSvc := wishlistsvc.MustNewWishlistService(
		wishlistsvc.WithWishlistRepository(wishlistRepository),
		wishlistsvc.WithProductRepository(productRepository),
	)

	transport := httptransport.NewHTTPTransport(
		orderSvc,
		catalogSvc,
		userSvc,
		reviewSvc,
		discountSvc,
		wishlistSvc,
	)
	transport.RegisterRoutes()

	outboxWorker := outbox.NewWorker(slog.Default(), outboxRepository, rabbitClient)

	return &App{
		transport:      transport,
		outboxWorker:   outboxWorker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
	}
}

// Run starts the HTTP server and the outbox worker, and shuts both down
// gracefully on SIGINT/SIGTERM.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting HTTP server")

		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		a.outboxWorker.Start(gCtx)

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return a.transport.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("application stopped with error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("rabbitmq connection close error", "error", err)
	}

	a.postgresClient.Close()

	slog.Info("application shutdown complete")
}
