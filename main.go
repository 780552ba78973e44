package main

import (
	"fmt"
	"net/http"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"tunescope/catalog"
	appConfig "tunescope/config"
	"tunescope/controller"
	"tunescope/handlers"
	"tunescope/pages"
	"tunescope/playback"
	"tunescope/seed"
	"tunescope/sentry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}
	appConfig.NewConfig()

	setupLogging()
	sentry.Init()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func setupLogging() {
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		TimestampFormat: "15:04:05",
	})

	level, err := log.ParseLevel(appConfig.Config.Options.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func run() error {
	artists, err := seed.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed catalog: %w", err)
	}
	store := catalog.NewStore(artists)

	opener := playback.NewExecOpener(appConfig.Config.Playback.OpenCommand)
	ctrl := controller.NewController(store, opener)
	manager := handlers.NewManager(store, ctrl)

	router := gin.Default()
	router.Use(sentry.GetSentryGin())

	router.GET("/", func(c *gin.Context) {
		artists, albums, songs := store.Counts()
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, fmt.Sprintf(pages.Index,
			humanize.Comma(int64(artists)),
			humanize.Comma(int64(albums)),
			humanize.Comma(int64(songs))))
	})

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/browse", manager.HandleBrowse)
	router.POST("/intent", manager.HandleIntent)
	router.GET("/events", manager.HandleEvents)
	router.GET("/stats", manager.HandleStats)

	port := appConfig.Config.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Infof("starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}
