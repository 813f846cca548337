package main

import (
	"context"
	"encoding/json"
	"os"
	"playlists/config"
	"playlists/db"
	"playlists/handlers"
	"playlists/models"
	"playlists/storage"
	"playlists/utils"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
)

// setup loads the optional config file, then opens the database
func setup(cmd *cli.Command) error {
	if path := cmd.String("config"); path != "" {
		if err := config.LoadFile(path); err != nil {
			return err
		}
	}
	level, err := log.ParseLevel(config.LOG_LEVEL)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", config.LOG_LEVEL)
		level = log.InfoLevel
	}
	if config.DEBUG_MODE && level > log.DebugLevel {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	db.Init()
	models.Init()
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	if err := setup(cmd); err != nil {
		return err
	}
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{storage.DiskRoute})))
	}

	// Images are served by the API itself when there is no S3 bucket
	if bucket := storage.GetDefaultStorage().GetBucket(); !bucket.IsS3() {
		files := router.Group(storage.DiskRoute, utils.CacheControl(utils.CacheOneDay))
		files.Static("/", bucket.Path)
	}
	api := router.Group("/", utils.CacheControl(utils.CacheNoCache))
	handlers.RegisterRoutes(api)

	var err error
	if config.TLS_DOMAINS != "" {
		log.Info("Starting server", "domains", config.TLS_DOMAINS)
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		log.Info("Starting server", "address", config.BIND_ADDRESS)
		err = router.Run(config.BIND_ADDRESS)
	}
	return err
}

func dump(ctx context.Context, cmd *cli.Command) error {
	if err := setup(cmd); err != nil {
		return err
	}
	d, err := models.DumpAll()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
