package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"picstore/internal/access"
	"picstore/internal/config"
	"picstore/internal/cover"
	"picstore/internal/derivative"
	"picstore/internal/export"
	"picstore/internal/http-server/handlers/album/createAlbum"
	"picstore/internal/http-server/handlers/album/generateCover"
	"picstore/internal/http-server/handlers/album/getAlbum"
	"picstore/internal/http-server/handlers/album/publishAlbum"
	"picstore/internal/http-server/handlers/download"
	"picstore/internal/http-server/handlers/order/createOrder"
	"picstore/internal/http-server/handlers/order/listOrders"
	"picstore/internal/http-server/handlers/photo/deletePhoto"
	"picstore/internal/http-server/handlers/photo/getPhoto"
	"picstore/internal/http-server/handlers/photo/listPhotos"
	"picstore/internal/http-server/handlers/photo/uploadPhoto"
	"picstore/internal/http-server/middleware/auth"
	"picstore/internal/http-server/middleware/mwlogger"
	"picstore/internal/ingest"
	"picstore/internal/kafka/consumer"
	"picstore/internal/kafka/producer"
	"picstore/internal/lib/logger/handlers/slogpretty"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting picstore", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	for _, dir := range []string{cfg.Media.UploadsDir, cfg.Media.ThumbnailsDir, cfg.Media.WatermarkedDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Error("failed to create media directory", slog.String("dir", dir), sl.Err(err))
			os.Exit(1)
		}
	}

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	generator, err := derivative.New(log)
	if err != nil {
		log.Error("failed to init derivative generator", sl.Err(err))
		os.Exit(1)
	}

	kafkaProducer, err := producer.NewProducer(&cfg.Kafka, log)
	if err != nil {
		log.Error("failed to create kafka producer", sl.Err(err))
		os.Exit(1)
	}

	kafkaConsumer, err := consumer.NewConsumer(&cfg.Kafka, log)
	if err != nil {
		log.Error("failed to create kafka consumer", sl.Err(err))
		os.Exit(1)
	}

	coverSelector := cover.NewSelector(log, storage, generator,
		cfg.Media.UploadsDir, cfg.Media.ThumbnailsDir, cfg.Media.CoverSize)

	go kafkaConsumer.ReadMessages(context.Background(), coverSelector.ProcessMessage)

	orchestrator := ingest.New(log, storage, generator, kafkaProducer,
		ingest.Dirs{
			Uploads:     cfg.Media.UploadsDir,
			Thumbnails:  cfg.Media.ThumbnailsDir,
			Watermarked: cfg.Media.WatermarkedDir,
		},
		cfg.Media.ThumbnailSize, cfg.Media.DefaultPrice, cfg.Media.MaxWorkers)

	gate := access.NewGate(storage)
	packager := export.NewPackager(log, storage, cfg.Media.UploadsDir)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(auth.New(log, cfg.Auth.Secret))

	// Derivatives are public; originals are served only through the
	// gated download route.
	router.Handle("/uploads/thumbnails/*",
		http.StripPrefix("/uploads/thumbnails/", http.FileServer(http.Dir(cfg.Media.ThumbnailsDir))))
	router.Handle("/uploads/watermarked/*",
		http.StripPrefix("/uploads/watermarked/", http.FileServer(http.Dir(cfg.Media.WatermarkedDir))))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/api", func(r chi.Router) {
		r.Get("/albums/{id}", getAlbum.New(log, storage))
		r.Get("/albums/{id}/photos", listPhotos.New(log, storage))
		r.Get("/photos/{id}", getPhoto.New(log, storage))

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/orders", createOrder.New(log, storage))
			r.Get("/orders", listOrders.New(log, storage))
			r.Get("/download/{type}/{id}", download.New(log, gate, packager))
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Post("/admin/albums", createAlbum.New(log, storage))
			r.Patch("/admin/albums/{id}/publish", publishAlbum.New(log, storage))
			r.Post("/albums/{id}/photos/upload", uploadPhoto.New(log, orchestrator, cfg.Media.MaxUploadBytes))
			r.Post("/albums/{id}/generate-cover", generateCover.New(log, coverSelector))
			r.Delete("/photos/{id}", deletePhoto.New(log, storage,
				cfg.Media.UploadsDir, cfg.Media.ThumbnailsDir, cfg.Media.WatermarkedDir))
		})
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", sl.Err(err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	if err = srv.Shutdown(context.Background()); err != nil {
		log.Error("failed to shut down server", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close database", slog.String("error", err.Error()))
	}

	log.Info("postgres connection closed")

	if err = kafkaProducer.Close(); err != nil {
		log.Error("failed to close kafka producer", slog.String("error", err.Error()))
	}

	if err = kafkaConsumer.Close(); err != nil {
		log.Error("failed to close kafka consumer", slog.String("error", err.Error()))
	}

	log.Info("kafka connection closed")

	log.Info("application stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
