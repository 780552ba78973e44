package playback

import (
	"sync"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"tunescope/catalog"
	"tunescope/video"
)

// Opener opens a URL in an external viewer. The attempt is asynchronous;
// its outcome arrives as a single value on the returned channel.
type Opener interface {
	OpenURL(url string) <-chan error
}

type EventType string

const (
	EventOpened     EventType = "opened"
	EventOpenFailed EventType = "open_failed"
)

// Notification reports the outcome of a delegated open attempt.
type Notification struct {
	Event EventType
	Title string
	Err   error
}

// Result is the synchronous part of a song selection: the resolved song
// metadata plus a user-facing status line. The open outcome follows later
// on the notifications channel.
type Result struct {
	Found    bool
	Title    string
	EmbedURL string
	Status   string
}

// Selector resolves a chosen song to a playable URL and hands it to the
// external opener. It never plays anything itself.
type Selector struct {
	opener        Opener
	notifications chan Notification

	mutex  sync.Mutex
	gen    uint64
	closed bool
}

func NewSelector(opener Opener, bufferSize int) *Selector {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &Selector{
		opener:        opener,
		notifications: make(chan Notification, bufferSize),
	}
}

func (s *Selector) Notifications() <-chan Notification {
	return s.notifications
}

// Select looks up the song whose SourceURL matches exactly (first match
// wins when duplicates exist) and delegates opening its embed URL. A miss
// is reported in the status string, never as an error.
func (s *Selector) Select(songs []catalog.Song, sourceURL string) Result {
	logger := log.WithFields(log.Fields{"module": "playback", "method": "Select"})

	var song *catalog.Song
	for i := range songs {
		if songs[i].SourceURL == sourceURL {
			song = &songs[i]
			break
		}
	}

	if song == nil {
		logger.Debugf("no song matches source url %s", sourceURL)
		return Result{Status: "That song isn't in the current list"}
	}

	embedURL := video.ToEmbedURL(song.SourceURL)

	s.mutex.Lock()
	s.gen++
	gen := s.gen
	s.mutex.Unlock()

	logger.Tracef("opening %s", embedURL)
	go s.await(gen, song.Title, s.opener.OpenURL(embedURL))

	return Result{
		Found:    true,
		Title:    song.Title,
		EmbedURL: embedURL,
		Status:   "Now playing **" + song.Title + "**",
	}
}

// Invalidate marks pending open callbacks as stale. Called when the view
// that requested playback goes away; a late callback then becomes a no-op
// instead of mutating detached state.
func (s *Selector) Invalidate() {
	s.mutex.Lock()
	s.gen++
	s.mutex.Unlock()
}

// Close shuts the selector down: pending callbacks become stale and the
// notifications channel is closed so the listener's range loop can exit.
// Safe to call more than once.
func (s *Selector) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	close(s.notifications)
}

func (s *Selector) await(gen uint64, title string, result <-chan error) {
	err := <-result

	notification := Notification{Event: EventOpened, Title: title}
	if err != nil {
		log.Errorf("external opener failed for %s: %v", title, err)
		sentry.CaptureException(err)
		notification = Notification{Event: EventOpenFailed, Title: title, Err: err}
	}

	// The send happens under the mutex so Close can't sneak in between a
	// closed check and the send.
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed || gen != s.gen {
		log.WithFields(log.Fields{"module": "playback", "title": title}).
			Trace("dropping stale open callback")
		return
	}

	select {
	case s.notifications <- notification:
	default:
		log.Warnf("playback notifications channel is full, dropping %s event", notification.Event)
	}
}

// StatusFor renders a notification as UI-facing text.
func StatusFor(n Notification) string {
	switch n.Event {
	case EventOpened:
		return "Now playing **" + n.Title + "**"
	case EventOpenFailed:
		if n.Err != nil {
			return "Couldn't open **" + n.Title + "**: " + n.Err.Error()
		}
		return "Couldn't open **" + n.Title + "**"
	default:
		return ""
	}
}
