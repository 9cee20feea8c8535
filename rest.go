package placard

import (
	"context"
	"sync"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/PlacardTeam/Placard-Daemon/card"
	"github.com/PlacardTeam/Placard-Daemon/discord"
	"github.com/PlacardTeam/Placard-Daemon/render"
)

// Rendered cards may be cached briefly by clients and proxies; presence
// is live data, so the window stays short.
const cacheControlValue = "public, max-age=30"

// NewRestRouter returns the router for the card surface.
func (p *Placard) NewRestRouter() fasthttp.RequestHandler {
	r := router.New()
	r.GET("/card/{user_id}", p.CardEndpoint)

	return r.Handler
}

// HandleRequest handles any incoming HTTP requests.
func (p *Placard) HandleRequest(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	defer func() {
		p.Logger.Info().Msgf("%s %s %s %d %v",
			ctx.RemoteAddr(),
			ctx.Request.Header.Method(),
			ctx.Request.URI().Path(),
			ctx.Response.StatusCode(),
			time.Since(start).Round(time.Millisecond))
	}()

	p.RouterHandler(ctx)
}

// CardEndpoint serves GET /card/{user_id}. Failures never surface as
// HTTP errors: every outcome is a 200 with a rendered card.
func (p *Placard) CardEndpoint(ctx *fasthttp.RequestCtx) {
	userID, _ := ctx.UserValue("user_id").(string)

	requestCtx, cancel := context.WithTimeout(p.ctx, cardRequestTimeout)
	defer cancel()

	state := p.BuildCard(requestCtx, discord.Snowflake(userID))

	body, err := render.Render(state)
	if err != nil {
		// The canned card has no request-dependent fields, rendering it
		// is the last resort before giving up on the response.
		p.Logger.Error().Err(err).Msg("Failed to render card")

		body, err = render.Render(card.FallbackCard(card.FailureUnexpected))
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)

			return
		}
	}

	ctx.Response.Header.SetContentType(render.ContentType)
	ctx.Response.Header.Set(fasthttp.HeaderCacheControl, cacheControlValue)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.Write(body)
}

// BuildCard runs the full pipeline for one user: directory lookup,
// concurrent avatar and presence resolution, assembly. Lookup failures
// are classified into a canned card; panics degrade the same way.
func (p *Placard) BuildCard(ctx context.Context, userID discord.Snowflake) (state card.CardState) {
	p.CardsInflight.Inc()
	placardCardsInflightCount.Inc()

	defer func() {
		p.CardsInflight.Dec()
		placardCardsInflightCount.Dec()

		if r := recover(); r != nil {
			p.Logger.Error().Interface("panic", r).Str("user_id", userID.String()).Msg("Recovered panic while building card")

			placardCardsServedCount.WithLabelValues(outcomeUnexpected).Inc()

			state = card.FallbackCard(card.FailureUnexpected)
		}
	}()

	lookupStart := time.Now()

	lookup, err := p.Directory.LookupMember(ctx, userID)

	placardLookupDuration.Observe(time.Since(lookupStart).Seconds())

	if err != nil {
		kind := card.ClassifyFailure(err)

		p.Logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Member lookup failed")

		placardCardsServedCount.WithLabelValues(failureOutcome(kind)).Inc()

		return card.FallbackCard(kind)
	}

	user := lookup.Member.User

	// Avatar and details-image resolution are independent; the avatar
	// fetch overlaps the presence resolution.
	var wg sync.WaitGroup

	var avatar card.Image

	wg.Add(1)

	go func() {
		defer wg.Done()

		avatar = p.Images.Resolve(ctx, user.AvatarURL())
	}()

	resolution := p.Resolver.Resolve(ctx, lookup.Presence)

	wg.Wait()

	placardCardsServedCount.WithLabelValues(outcomeOK).Inc()

	return card.BuildCardState(user.DisplayName(), avatar, resolution)
}

func failureOutcome(kind card.FailureKind) string {
	switch kind {
	case card.FailureNotInGuild:
		return outcomeNotInGuild
	case card.FailureAPIError:
		return outcomeAPIError
	default:
		return outcomeUnexpected
	}
}
