package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/hotel-booking/config"
	"github.com/Eursukkul/hotel-booking/internal/cache"
	"github.com/Eursukkul/hotel-booking/internal/consumer"
	"github.com/Eursukkul/hotel-booking/internal/handler"
	"github.com/Eursukkul/hotel-booking/internal/middleware"
	"github.com/Eursukkul/hotel-booking/internal/notification"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/Eursukkul/hotel-booking/pkg/obs"
	"github.com/Eursukkul/hotel-booking/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const serviceName = "hotel-booking"

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the subscription consumer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *RootOptions) error {
	cfg, db, err := opts.open()
	if err != nil {
		return err
	}

	shutdownTracer := obs.InitTracer(serviceName, "0.1.0", cfg.OtelEndpoint)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("[Otel] shutdown: %v", err)
		}
	}()

	// Redis: advisory availability cache
	var avail service.AvailabilityCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[Cache] redis at %s unreachable, cache disabled: %v", cfg.RedisAddr, err)
		} else {
			avail = cache.NewAvailability(rdb, cfg.AvailabilityCacheTTL)
		}
	}

	// RabbitMQ: notification publisher
	var publisher notification.Publisher = notification.LogPublisher{}
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.NotificationExchange)
		if err != nil {
			return err
		}
		defer mqPublisher.Close()
		publisher = mqPublisher
	}

	a := newApp(cfg, db, publisher, avail)

	// RabbitMQ consumer: subscription changes from billing
	if cfg.RabbitURL != "" {
		if err := startSubscriptionConsumer(ctx, cfg, a.tenants); err != nil {
			return err
		}
	}

	e := newEcho(a)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Hotel Booking Service starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Println("Hotel Booking Service shutting down")
	return e.Shutdown(shutdownCtx)
}

func startSubscriptionConsumer(ctx context.Context, cfg *config.Config, tenants service.TenantService) error {
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.SubscriptionExchange, cfg.SubscriptionQueue, "hotel.subscription.*")
	if err != nil {
		return err
	}
	msgs, err := mqConsumer.Consume()
	if err != nil {
		mqConsumer.Close()
		return err
	}
	consumer.NewSubscriptionConsumer(tenants).Start(ctx, msgs)
	go func() {
		<-ctx.Done()
		mqConsumer.Close()
	}()
	return nil
}

func newEcho(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})

	handler.NewHotelHandler(a.tenants).RegisterRoutes(e)
	handler.NewRoomHandler(a.rooms, a.bookings).RegisterRoutes(e)
	handler.NewClientHandler(a.clients).RegisterRoutes(e)
	handler.NewBookingHandler(a.bookings, a.logRepo).RegisterRoutes(e)

	return e
}
