package sentry

import (
	sentry "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"tunescope/config"
)

// Init wires Sentry when a DSN is configured; without one the SDK stays
// a no-op and capture calls are harmless.
func Init() {
	if !config.Config.Sentry.IsEnabled() {
		log.Info("sentry disabled, no DSN configured")
		return
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.Config.Sentry.DSN,
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
}

func GetSentryGin() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{})
}

func ReportError(err error) {
	sentry.CaptureException(err)
}

func ReportMessage(message string) {
	sentry.CaptureMessage(message)
}
