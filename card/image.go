package card

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

// Cards inline all artwork at a fixed square size.
const imageSize = 128

const defaultFetchTimeout = 5 * time.Second

var errImageNotFound = errors.New("image not found")

// ImageResolver fetches remote images and normalizes them into inline
// data URIs. It never returns an error: artwork problems degrade to the
// absent image so they cannot abort card construction.
type ImageResolver struct {
	Logger zerolog.Logger
	HTTP   *http.Client
}

func NewImageResolver(logger zerolog.Logger, timeout time.Duration) *ImageResolver {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	return &ImageResolver{
		Logger: logger,
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve fetches url, normalizes it to a 128x128 PNG and returns it as
// a data URI. A 404 or a timeout is an expected absence and stays
// silent; any other failure is logged and still degrades to absent.
func (ir *ImageResolver) Resolve(ctx context.Context, url string) Image {
	img, err := ir.fetch(ctx, url)
	if err != nil {
		if !isExpectedAbsence(err) {
			ir.Logger.Warn().Err(err).Str("url", url).Msg("Failed to resolve image")
		}

		return NoImage()
	}

	return img
}

func (ir *ImageResolver) fetch(ctx context.Context, url string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Image{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := ir.HTTP.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("failed to fetch image: %w", err)
	}

	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Image{}, errImageNotFound
	case resp.StatusCode != http.StatusOK:
		return Image{}, fmt.Errorf("unexpected status %s fetching image", resp.Status)
	}

	src, err := imaging.Decode(resp.Body)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image: %w", err)
	}

	normalized := imaging.Fill(src, imageSize, imageSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer

	err = imaging.Encode(&buf, normalized, imaging.PNG)
	if err != nil {
		return Image{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return SomeImage("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// isExpectedAbsence reports whether a fetch failure is routine enough to
// skip logging: missing images and timed-out fetches.
func isExpectedAbsence(err error) bool {
	if errors.Is(err, errImageNotFound) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
