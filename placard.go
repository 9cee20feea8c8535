// Package placard serves compact SVG status cards summarizing a discord
// user's live presence.
package placard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"go.uber.org/atomic"

	"github.com/PlacardTeam/Placard-Daemon/card"
	"github.com/PlacardTeam/Placard-Daemon/discord"
)

// Version follows semantic versioning.
const Version = "0.2.0"

// Deadline for one complete card request: lookup, image fetches and
// rendering.
const cardRequestTimeout = 15 * time.Second

type Placard struct {
	Logger zerolog.Logger `json:"-"`

	StartTime time.Time `json:"start_time"`

	ctx    context.Context
	cancel func()

	Directory discord.Directory   `json:"-"`
	Images    *card.ImageResolver `json:"-"`
	Resolver  *card.Resolver      `json:"-"`

	RouterHandler fasthttp.RequestHandler `json:"-"`

	CardsInflight *atomic.Int32 `json:"-"`

	ConfigurationLocation string `json:"configuration_location"`

	Options Options `json:"options"`

	Configuration Configuration `json:"configuration"`
}

// Options represents any options passable when creating the placard
// service.
type Options struct {
	ConfigurationLocation string `json:"configuration_location" yaml:"configuration_location"`
	HTTPHost              string `json:"http_host" yaml:"http_host"`
	PrometheusAddress     string `json:"prometheus_address" yaml:"prometheus_address"`
}

// NewPlacard creates the application state and initializes it.
func NewPlacard(logger io.Writer, options Options) (p *Placard, err error) {
	p = &Placard{
		Logger: zerolog.New(logger).With().Timestamp().Logger(),

		ConfigurationLocation: options.ConfigurationLocation,

		Options: options,

		CardsInflight: atomic.NewInt32(0),
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())

	configuration, err := p.LoadConfiguration(p.ConfigurationLocation)
	if err != nil {
		return nil, err
	}

	p.Configuration = configuration

	if p.Options.HTTPHost == "" {
		p.Options.HTTPHost = configuration.Placard.HTTPHost
	}

	if p.Options.PrometheusAddress == "" {
		p.Options.PrometheusAddress = configuration.Placard.PrometheusAddress
	}

	p.Images = card.NewImageResolver(p.Logger, configuration.FetchTimeout())

	p.Resolver = &card.Resolver{
		Images:    p.Images,
		Allowlist: card.NewAllowlist(configuration.Games),
	}

	p.Directory = discord.NewGatewayDirectory(
		p.Logger,
		"Bot "+configuration.Bot.Token,
		discord.Snowflake(configuration.Bot.GuildID),
	)

	return p, nil
}

// Open starts up the metrics and card listeners.
func (p *Placard) Open() {
	p.StartTime = time.Now().UTC()
	p.Logger.Info().Msgf("Starting placard. Version %s", Version)

	go p.setupPrometheus()
	go p.setupHTTP()
}

// Close stops serving new card requests.
func (p *Placard) Close() error {
	p.Logger.Info().Msg("Closing placard")

	if p.cancel != nil {
		p.cancel()
	}

	return nil
}

func (p *Placard) setupPrometheus() error {
	prometheus.MustRegister(placardCardsServedCount)
	prometheus.MustRegister(placardCardsInflightCount)
	prometheus.MustRegister(placardLookupDuration)

	http.Handle("/metrics", promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{},
	))

	p.Logger.Info().Msgf("Serving prometheus at %s", p.Options.PrometheusAddress)

	err := http.ListenAndServe(p.Options.PrometheusAddress, nil)
	if err != nil {
		p.Logger.Error().Str("host", p.Options.PrometheusAddress).Err(err).Msg("Failed to serve prometheus server")

		return fmt.Errorf("failed to serve prometheus: %w", err)
	}

	return nil
}

func (p *Placard) setupHTTP() error {
	p.Logger.Info().Msgf("Serving http at %s", p.Options.HTTPHost)

	p.RouterHandler = p.NewRestRouter()

	err := fasthttp.ListenAndServe(p.Options.HTTPHost, p.HandleRequest)
	if err != nil {
		p.Logger.Error().Str("host", p.Options.HTTPHost).Err(err).Msg("Failed to serve http server")

		return fmt.Errorf("failed to serve webserver: %w", err)
	}

	return nil
}
