package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	_ "yelagiri_booking/docs" // swagger docs
	"yelagiri_booking/internal/adapter/http/handlers"
	"yelagiri_booking/internal/adapter/http/middleware"
	"yelagiri_booking/internal/adapter/persistence/repository"
	"yelagiri_booking/internal/infrastructure/config"
	"yelagiri_booking/internal/infrastructure/database"
	"yelagiri_booking/internal/infrastructure/messaging"
	"yelagiri_booking/internal/infrastructure/payments"
	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups everything the router serves.
type Handlers struct {
	Booking     *handlers.BookingHandler
	Payment     *handlers.PaymentHandler
	Invoice     *handlers.InvoiceHandler
	Idempotency gin.HandlerFunc
}

// Run wires the service and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	h, cleanup, err := buildHandlers(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	router := NewRouter(cfg.ServiceName, h)
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Logger.Info("[http] listening", zap.Int("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to startup the application: %w", err)
	case <-ctx.Done():
	}

	telemetry.Logger.Info("[http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildHandlers(ctx context.Context, cfg *config.Config) (Handlers, func(), error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return Handlers{}, nil, err
	}

	provider, err := payments.NewPaymentProvider(cfg)
	if err != nil {
		return Handlers{}, nil, err
	}
	telemetry.Logger.Info("[payment] provider selected", zap.String("provider", provider.Name()))

	publisher, closePublisher := messaging.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	bookingRepo := repository.NewBookingDynamoRepository(ddb, cfg.BookingsTable)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb, cfg.InvoicesTable)

	bookingUseCase := usecase.NewBookingUseCase(bookingRepo)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, bookingRepo)
	paymentUseCase := usecase.NewPaymentUseCase(bookingRepo, paymentRepo, provider, invoiceUseCase, publisher)

	h := Handlers{
		Booking:     handlers.NewBookingHandler(bookingUseCase),
		Payment:     handlers.NewPaymentHandler(paymentUseCase),
		Invoice:     handlers.NewInvoiceHandler(invoiceUseCase),
		Idempotency: middleware.Idempotency(redisClient, cfg.IdempotencyTTL),
	}

	cleanup := func() {
		if err := closePublisher(); err != nil {
			telemetry.Logger.Warn("[kafka] close failed", zap.Error(err))
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}
	return h, cleanup, nil
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(serviceName string, h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, serviceName)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if h.Idempotency == nil {
		h.Idempotency = func(c *gin.Context) { c.Next() }
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBookingRoutes(v1, h)
	addPaymentRoutes(v1, h.Payment)
	addInvoiceRoutes(v1, h.Invoice)
	return router
}

func setMiddlewares(router *gin.Engine, serviceName string) {
	router.Use(gin.Logger())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		telemetry.Logger.Error("[http] recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
