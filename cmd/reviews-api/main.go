package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/smr-site/reviews-api/internal/config"
	"github.com/smr-site/reviews-api/internal/handler"
	"github.com/smr-site/reviews-api/internal/logger"
	"github.com/smr-site/reviews-api/internal/middleware"
	"github.com/smr-site/reviews-api/internal/router"
	"github.com/smr-site/reviews-api/internal/service"
	"github.com/smr-site/reviews-api/internal/session"
	"github.com/smr-site/reviews-api/internal/storage/fs"
	"github.com/smr-site/reviews-api/internal/storage/sqlite"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	storage, err := sqlite.New(cfg.Public.DBPath)
	if err != nil {
		logger.Log.Error("open database", "path", cfg.Public.DBPath, "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	media, err := fs.New(cfg.Public.MediaPath)
	if err != nil {
		logger.Log.Error("open media root", "path", cfg.Public.MediaPath, "error", err)
		os.Exit(1)
	}

	sessions := session.New(cfg.SessionSecret(), cfg.Public.SecureCookies)

	auth := service.NewAuth(cfg.AdminPassword(), cfg.AdminPasswordHash())
	codes := service.NewCodes(storage)
	reviews := service.NewReviews(storage)
	gallery := service.NewGallery(storage, media)

	h := handler.New(auth, codes, reviews, gallery, sessions, storage, handler.Config{
		MaxUploadSize:         cfg.Public.MaxUploadSize,
		AllowedImageMimeTypes: cfg.Public.AllowedImageMimeTypes,
	})

	r := router.New(&router.Deps{
		Handler:     h,
		Auth:        middleware.NewAuth(sessions),
		MediaRoot:   media.Root(),
		AdminOrigin: cfg.Public.AdminOrigin,
		HTTPS:       cfg.Public.SecureCookies,
	})

	srv := &http.Server{
		Addr:         cfg.Public.ListenAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Log.Info("server started", "addr", cfg.Public.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
