package card

import (
	"context"
	"strings"

	"github.com/PlacardTeam/Placard-Daemon/discord"
)

// Spotify listening sessions bypass the game allowlist.
const musicServiceName = "Spotify"

// Asset key prefixes understood by deriveAssetURL.
const (
	mediaProxyPrefix = "mp:"
	spotifyKeyPrefix = "spotify:"
)

const (
	mediaProxyURL = "https://media.discordapp.net/"
	spotifyArtURL = "https://i.scdn.co/image/"
	appAssetURL   = "https://cdn.discordapp.com/app-assets/"
)

// GameType labels.
const (
	gameTypePlaying   = "Playing"
	gameTypeListening = "Listening to"
)

// Allowlist is the curated set of lower-cased game names permitted on
// cards.
type Allowlist map[string]struct{}

func NewAllowlist(names []string) Allowlist {
	list := make(Allowlist, len(names))

	for _, name := range names {
		list[strings.ToLower(name)] = struct{}{}
	}

	return list
}

func (a Allowlist) Contains(name string) bool {
	_, ok := a[strings.ToLower(name)]

	return ok
}

// Resolution is the presence half of a card: everything below the
// username row.
type Resolution struct {
	Status       string
	GameType     string
	Game         string
	Details      string
	State        string
	DetailsImage Image
	Height       int
}

// Resolver arbitrates a raw presence snapshot into a status and at most
// one displayable activity. It holds no per-request state.
type Resolver struct {
	Images    *ImageResolver
	Allowlist Allowlist
}

// Resolve applies the selection procedure in preference order: a rich
// allowlisted activity, a plain allowlisted activity, then a Spotify
// listening session. The first two passes scan newest-first; the input
// list is never mutated.
func (r *Resolver) Resolve(ctx context.Context, presence *discord.Presence) Resolution {
	res := Resolution{Height: HeightShort}

	if presence == nil {
		res.Status = string(discord.PresenceStatusOffline)

		return res
	}

	status := firstDeviceStatus(presence.ClientStatus)
	if status == "" {
		res.Status = string(discord.PresenceStatusOffline)

		return res
	}

	res.Status = string(status)

	activity, listening := r.selectActivity(presence.Activities)
	if activity == nil {
		return res
	}

	res.Game = Sanitize(activity.Name)

	if listening {
		res.GameType = gameTypeListening
	} else {
		res.GameType = gameTypePlaying
	}

	if activity.Details == "" && activity.State == "" {
		return res
	}

	res.Height = HeightTall
	res.Details = Sanitize(activity.Details)
	res.State = Sanitize(activity.State)

	if url := deriveAssetURL(activity, listening); url != "" {
		res.DetailsImage = r.Images.Resolve(ctx, url)
	}

	return res
}

// firstDeviceStatus picks the displayed status by fixed device
// priority: desktop, then mobile, then web.
func firstDeviceStatus(cs discord.ClientStatus) discord.PresenceStatus {
	for _, status := range []discord.PresenceStatus{cs.Desktop, cs.Mobile, cs.Web} {
		if status != "" {
			return status
		}
	}

	return ""
}

// selectActivity returns the activity to display and whether it is the
// music-service fallback. Newest activities sit at the end of the
// platform-reported list.
func (r *Resolver) selectActivity(activities []discord.Activity) (*discord.Activity, bool) {
	for i := len(activities) - 1; i >= 0; i-- {
		activity := &activities[i]
		if r.Allowlist.Contains(activity.Name) && (activity.Details != "" || activity.State != "") {
			return activity, false
		}
	}

	for i := len(activities) - 1; i >= 0; i-- {
		activity := &activities[i]
		if r.Allowlist.Contains(activity.Name) && activity.Details == "" && activity.State == "" {
			return activity, false
		}
	}

	for i := range activities {
		activity := &activities[i]
		if activity.Type == discord.ActivityTypeListening && activity.Name == musicServiceName {
			return activity, true
		}
	}

	return nil, false
}

// deriveAssetURL maps an activity's large image key onto a fetchable
// URL. The three rules are mutually exclusive.
func deriveAssetURL(activity *discord.Activity, listening bool) string {
	if activity.Assets == nil || activity.Assets.LargeImage == "" {
		return ""
	}

	key := activity.Assets.LargeImage

	switch {
	case strings.HasPrefix(key, mediaProxyPrefix):
		return mediaProxyURL + strings.TrimPrefix(key, mediaProxyPrefix)
	case listening:
		return spotifyArtURL + strings.TrimPrefix(key, spotifyKeyPrefix)
	default:
		return appAssetURL + activity.ApplicationID.String() + "/" + key + ".png"
	}
}
