package video

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrNoVideoID means no recognizable video id was found in the URL.
// Callers fall back to the raw URL instead of failing.
var ErrNoVideoID = errors.New("no video id in url")

// Fixed playback directives for embed URLs: autoplay on, no related-video
// sidebar, minimal branding. These are policy, not per-call options.
const (
	embedBase   = "https://www.youtube.com/embed/"
	embedParams = "autoplay=1&rel=0&modestbranding=1"
)

var watchHosts = map[string]bool{
	"www.youtube.com":   true,
	"youtube.com":       true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
}

// ExtractVideoID pulls the video id out of any accepted URL shape:
// watch links (?v=), youtu.be short links, /embed/, /v/ and /shorts/
// paths. Trailing query parameters and fragments are tolerated.
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrNoVideoID
	}

	host := strings.ToLower(parsed.Host)

	if host == "youtu.be" {
		if id := firstPathSegment(parsed.Path); id != "" {
			return id, nil
		}
		return "", ErrNoVideoID
	}

	if !watchHosts[host] {
		return "", ErrNoVideoID
	}

	if id := parsed.Query().Get("v"); id != "" {
		return id, nil
	}

	for _, prefix := range []string{"/embed/", "/v/", "/shorts/"} {
		if strings.HasPrefix(parsed.Path, prefix) {
			if id := firstPathSegment(strings.TrimPrefix(parsed.Path, prefix)); id != "" {
				return id, nil
			}
		}
	}

	return "", ErrNoVideoID
}

// ToEmbedURL converts any accepted URL shape into an embeddable playback
// URL carrying the fixed playback directives. If no video id can be
// extracted the original URL is returned unchanged so downstream playback
// can still attempt to open it.
func ToEmbedURL(rawURL string) string {
	id, err := ExtractVideoID(rawURL)
	if err != nil {
		log.WithFields(log.Fields{"module": "video", "url": rawURL}).
			Trace("no video id found, passing url through")
		return rawURL
	}
	return embedBase + id + "?" + embedParams
}

// ThumbnailURL returns the cover image URL for a video id.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(path, '/'); idx != -1 {
		path = path[:idx]
	}
	return path
}
