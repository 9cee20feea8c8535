package card

import "fmt"

// BuildCardState assembles the sanitized identity and a resolution into
// the final view model. The height invariant is rechecked as a
// post-condition; a violation is a programming fault and panics into
// the top-level fallback.
func BuildCardState(username string, avatar Image, res Resolution) CardState {
	state := CardState{
		Username:     Sanitize(username),
		PfpImage:     avatar,
		Status:       res.Status,
		GameType:     res.GameType,
		Game:         res.Game,
		Details:      res.Details,
		DetailsImage: res.DetailsImage,
		State:        res.State,
		Height:       res.Height,
	}

	tall := state.Details != "" || state.State != ""
	if (state.Height == HeightTall) != tall {
		panic(fmt.Sprintf("card height %d inconsistent with detail fields", state.Height))
	}

	return state
}
