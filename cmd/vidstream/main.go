package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/vidstream/vidstream/internal/config"
	"github.com/vidstream/vidstream/internal/infra/database"
	"github.com/vidstream/vidstream/internal/infra/media"
	"github.com/vidstream/vidstream/internal/infra/repository"
	"github.com/vidstream/vidstream/internal/present/rest"
	"github.com/vidstream/vidstream/internal/present/rest/middleware"
	"github.com/vidstream/vidstream/internal/service"
	"github.com/vidstream/vidstream/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(ctx, conf.Node.SiteName, conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Error("failed to flush traces", slog.String("error", err.Error()))
			}
		}()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	mediaStore, err := media.NewLocalStore(conf.Server.MediaDir, conf.Server.MediaBaseURL)
	if err != nil {
		slog.Error("failed to set up media store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := repository.NewGormStore(db)
	userRepo := repository.NewUserRepository(db, mc)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	statsRepo := repository.NewStatsRepository(db, rdb)

	authService := service.NewAuthService(conf.Node)
	signalService := service.NewSignalService(rdb)

	userUsecase := usecase.NewUserUsecase(userRepo, store, authService, mediaStore)
	videoUsecase := usecase.NewVideoUsecase(videoRepo, userRepo, store, mediaStore, signalService)
	commentUsecase := usecase.NewCommentUsecase(commentRepo, videoRepo, store, signalService)
	likeUsecase := usecase.NewLikeUsecase(store, store)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(store, store)
	playlistUsecase := usecase.NewPlaylistUsecase(playlistRepo, videoRepo, store)
	tweetUsecase := usecase.NewTweetUsecase(tweetRepo, store)
	dashboardUsecase := usecase.NewDashboardUsecase(statsRepo, store)

	handler := rest.NewHandler(
		conf.Node,
		userUsecase,
		videoUsecase,
		commentUsecase,
		likeUsecase,
		subscriptionUsecase,
		playlistUsecase,
		tweetUsecase,
		dashboardUsecase,
		signalService,
	)
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(conf.Node.SiteName))
	}

	e.Static("/media", mediaStore.Dir())
	handler.RegisterRoutes(e, authMiddleware)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(ctx context.Context, serviceName, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
