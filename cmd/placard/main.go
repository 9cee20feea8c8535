package main

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	placard "github.com/PlacardTeam/Placard-Daemon"
)

func main() {
	// Secrets come from the environment; a local .env is optional.
	_ = godotenv.Load()

	configurationLocation := flag.String("configuration", envDefault("PLACARD_CONFIGURATION", "placard.yaml"), "path to configuration file")
	httpHost := flag.String("httpHost", os.Getenv("PLACARD_HTTP_HOST"), "host to serve cards from")
	prometheusAddress := flag.String("prometheusAddress", os.Getenv("PLACARD_PROMETHEUS_ADDRESS"), "host to serve prometheus from")
	loggingLevel := flag.String("level", envDefault("PLACARD_LOGGING_LEVEL", "info"), "logging level")
	logFile := flag.String("logFile", os.Getenv("PLACARD_LOG_FILE"), "optional rotating log file")
	flag.Parse()

	level, err := zerolog.ParseLevel(*loggingLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	var writer io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.Stamp,
	}

	if *logFile != "" {
		writer = zerolog.MultiLevelWriter(writer, &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     14,
		})
	}

	p, err := placard.NewPlacard(writer, placard.Options{
		ConfigurationLocation: *configurationLocation,
		HTTPHost:              *httpHost,
		PrometheusAddress:     *prometheusAddress,
	})
	if err != nil {
		println("Failed to create placard:", err.Error())
		os.Exit(1)
	}

	p.Open()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	err = p.Close()
	if err != nil {
		println("Failed to close placard:", err.Error())
	}
}

func envDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
