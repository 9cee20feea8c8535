package card

import (
	"errors"

	"github.com/PlacardTeam/Placard-Daemon/discord"
)

// FailureKind classifies a member lookup failure into one of the canned
// cards. The set is closed: every failure maps to exactly one kind.
type FailureKind int

const (
	// FailureNotInGuild means the platform reported the user is not a
	// member of the configured guild.
	FailureNotInGuild FailureKind = iota
	// FailureAPIError covers every other platform failure.
	FailureAPIError
	// FailureUnexpected covers non-platform faults, including recovered
	// panics.
	FailureUnexpected
)

const fallbackUsername = "Error"

// Placeholder artwork embedded in the canned cards.
const (
	fallbackPfpDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAIAAACQkWg2AAAAFklEQVR42mNQVtciCTGMahjVMHw1AACmb3QBDRCZegAAAABJRU5ErkJggg=="
	fallbackArtDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAIAAACQkWg2AAAAFklEQVR42mN46+RKEmIY1TCqYfhqAABsdnQQAxdk+AAAAABJRU5ErkJggg=="
)

// ClassifyFailure maps an error from the member/presence lookup onto a
// failure kind. The unknown-member case wins over the general platform
// case.
func ClassifyFailure(err error) FailureKind {
	switch {
	case errors.Is(err, discord.ErrMemberNotFound):
		return FailureNotInGuild
	case discord.IsAPIError(err):
		return FailureAPIError
	default:
		return FailureUnexpected
	}
}

// FallbackCard returns the canned card for a failure kind. The copy is
// fixed and all three cards use the tall layout.
func FallbackCard(kind FailureKind) CardState {
	state := CardState{
		Username:     fallbackUsername,
		PfpImage:     SomeImage(fallbackPfpDataURI),
		Status:       string(discord.PresenceStatusDND),
		DetailsImage: SomeImage(fallbackArtDataURI),
		Height:       HeightTall,
	}

	switch kind {
	case FailureNotInGuild:
		state.Game = "Member not found"
		state.Details = "You don't seem to be in the server."
		state.State = "Did you use the correct user ID?"
	case FailureAPIError:
		state.Game = "Discord API error"
		state.Details = "Sorry, an error occured!"
		state.State = "Are you in the server? Correct ID?"
	default:
		state.Game = "Something broke"
		state.Details = "Sorry, an unexpected error occured!"
		state.State = "Please open in an issue."
	}

	return state
}
