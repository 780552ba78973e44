package controller

import (
	"errors"
	"sync"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"tunescope/catalog"
	"tunescope/config"
	"tunescope/filter"
	"tunescope/playback"
)

// Screen identifies a view in the browse flow.
type Screen string

const (
	ScreenArtistList   Screen = "artist_list"
	ScreenArtistDetail Screen = "artist_detail"
	ScreenSongList     Screen = "song_list"
)

// ErrBadPayload means a transition was pushed with a payload that doesn't
// match the target screen. This is a wiring mistake in the caller, so it
// is surfaced rather than silently patched.
var ErrBadPayload = errors.New("payload does not match target screen")

// ErrWrongScreen means a selection was made on a screen that doesn't
// support it.
var ErrWrongScreen = errors.New("operation not valid on current screen")

// Payload is the typed bag of data a transition hands to its destination
// screen. Each screen has a fixed payload shape, so a missing field is a
// construction-time mistake instead of a runtime key lookup failure.
type Payload interface {
	Screen() Screen
	complete() bool
}

// ArtistDetailPayload carries the selected artist into the detail screen.
type ArtistDetailPayload struct {
	Artist catalog.Artist
}

func (ArtistDetailPayload) Screen() Screen { return ScreenArtistDetail }
func (p ArtistDetailPayload) complete() bool {
	return p.Artist.Name != ""
}

// SongListPayload carries the selected album plus the owning artist's
// display name, copied at transition time so the song list never needs a
// back-reference to the artist.
type SongListPayload struct {
	Album      catalog.Album
	ArtistName string
}

func (SongListPayload) Screen() Screen { return ScreenSongList }
func (p SongListPayload) complete() bool {
	return p.Album.Title != "" && p.ArtistName != ""
}

type EventType string

const (
	EventFilterChanged EventType = "filter_changed"
	EventNavigated     EventType = "navigated"
	EventPlayback      EventType = "playback"
)

// Event is the change notification the rendering layer subscribes to.
// State isn't pushed through it; subscribers re-read the session.
type Event struct {
	Type   EventType
	Screen Screen
	Status string
}

type frame struct {
	screen  Screen
	payload Payload
}

// Session is one rendering client's browse state: its filter criteria and
// its screen stack. All mutations go through the session mutex because the
// HTTP surface serves requests concurrently.
type Session struct {
	ID       string
	store    *catalog.Store
	selector *playback.Selector

	mutex         sync.Mutex
	criteria      filter.Criteria
	stack         []frame
	lastSeen      time.Time
	notifications chan Event
}

// Controller owns the browse sessions, keyed by session id.
type Controller struct {
	store    *catalog.Store
	opener   playback.Opener
	sessions map[string]*Session
	mutex    sync.Mutex
}

func NewController(store *catalog.Store, opener playback.Opener) *Controller {
	return &Controller{
		store:    store,
		opener:   opener,
		sessions: make(map[string]*Session),
	}
}

// GetSession returns the session for the id, creating it on first use.
func (c *Controller) GetSession(id string) *Session {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if session, ok := c.sessions[id]; ok {
		session.touch()
		return session
	}

	c.pruneIdleLocked()

	session := &Session{
		ID:            id,
		store:         c.store,
		selector:      playback.NewSelector(c.opener, config.Config.Options.EventBufferSize),
		stack:         []frame{{screen: ScreenArtistList}},
		lastSeen:      time.Now(),
		notifications: make(chan Event, config.Config.Options.EventBufferSize),
	}
	session.listenForPlaybackEvents()

	c.sessions[id] = session
	log.WithFields(log.Fields{"module": "controller", "session": id}).Debug("session created")
	return session
}

// SessionCount returns the number of live sessions.
func (c *Controller) SessionCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.sessions)
}

// pruneIdleLocked drops sessions nobody has touched within the configured
// idle window. Closing the selector ends the session's playback listener
// goroutine. Caller holds c.mutex.
func (c *Controller) pruneIdleLocked() {
	idle := time.Duration(config.Config.Options.SessionIdleMinutes) * time.Minute
	for id, session := range c.sessions {
		session.mutex.Lock()
		stale := time.Since(session.lastSeen) > idle
		session.mutex.Unlock()
		if stale {
			session.selector.Close()
			delete(c.sessions, id)
			log.WithFields(log.Fields{"module": "controller", "session": id}).
				Debug("pruned idle session")
		}
	}
}

func (s *Session) touch() {
	s.mutex.Lock()
	s.lastSeen = time.Now()
	s.mutex.Unlock()
}

// Notifications exposes the change-notification hook the rendering layer
// subscribes to.
func (s *Session) Notifications() <-chan Event {
	return s.notifications
}

func (s *Session) emit(event Event) {
	select {
	case s.notifications <- event:
	default:
		msg := "session notifications channel is full for session " + s.ID
		sentry.CaptureMessage(msg)
		log.Warn(msg)
	}
}

// Criteria returns the current filter criteria.
func (s *Session) Criteria() filter.Criteria {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.criteria
}

func (s *Session) SetSearchText(text string) {
	s.mutex.Lock()
	s.criteria.Search = text
	s.mutex.Unlock()
	s.emit(Event{Type: EventFilterChanged, Screen: ScreenArtistList})
}

func (s *Session) SetGenreFilter(genre string) {
	s.mutex.Lock()
	s.criteria.Genre = genre
	s.mutex.Unlock()
	s.emit(Event{Type: EventFilterChanged, Screen: ScreenArtistList})
}

func (s *Session) SetYearFilter(year int) {
	s.mutex.Lock()
	s.criteria.Year = year
	s.mutex.Unlock()
	s.emit(Event{Type: EventFilterChanged, Screen: ScreenArtistList})
}

// VisibleArtists recomputes the filtered artist list from the backing
// store. No caching between calls; see filter.Apply.
func (s *Session) VisibleArtists() []catalog.Artist {
	return filter.Apply(s.store.Artists(), s.Criteria())
}

// top returns the current stack frame. Caller holds s.mutex.
func (s *Session) top() frame {
	return s.stack[len(s.stack)-1]
}

// Current returns the screen on top of the stack and its payload. The
// initial artist list screen has no payload.
func (s *Session) Current() (Screen, Payload) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	top := s.top()
	return top.screen, top.payload
}

// Push moves to a new screen, validating that the payload fits it. The
// artist list is the root and never a push target.
func (s *Session) Push(screen Screen, payload Payload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.pushLocked(screen, payload)
}

// pushLocked validates and appends the frame. Caller holds s.mutex, which
// keeps a screen check and its push atomic against concurrent intents on
// the same session.
func (s *Session) pushLocked(screen Screen, payload Payload) error {
	if payload == nil || payload.Screen() != screen || !payload.complete() {
		log.WithFields(log.Fields{
			"module":  "controller",
			"session": s.ID,
			"screen":  screen,
		}).Error("rejected push with mismatched payload")
		return ErrBadPayload
	}

	s.stack = append(s.stack, frame{screen: screen, payload: payload})
	s.emit(Event{Type: EventNavigated, Screen: screen})
	return nil
}

// Pop returns to the previous screen, discarding the current payload.
// At the root it is a no-op.
func (s *Session) Pop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.stack) <= 1 {
		return
	}
	leaving := s.top().screen
	s.stack = s.stack[:len(s.stack)-1]

	if leaving == ScreenSongList {
		// A pending open callback must not touch the detached view.
		s.selector.Invalidate()
	}

	s.emit(Event{Type: EventNavigated, Screen: s.top().screen})
}

// SelectArtist drills from the artist list into the artist's detail view.
func (s *Session) SelectArtist(name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.top().screen != ScreenArtistList {
		return ErrWrongScreen
	}

	artist, err := s.store.FindArtist(name)
	if err != nil {
		log.WithFields(log.Fields{"module": "controller", "session": s.ID}).
			Debugf("artist %q not in catalog", name)
		return err
	}

	return s.pushLocked(ScreenArtistDetail, ArtistDetailPayload{Artist: artist})
}

// SelectAlbum drills from the artist detail into the album's song list,
// copying the artist's display name into the payload.
func (s *Session) SelectAlbum(title string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	top := s.top()
	if top.screen != ScreenArtistDetail {
		return ErrWrongScreen
	}
	detail := top.payload.(ArtistDetailPayload)

	album, err := s.store.FindAlbum(detail.Artist.Name, title)
	if err != nil {
		return err
	}

	return s.pushLocked(ScreenSongList, SongListPayload{
		Album:      album,
		ArtistName: detail.Artist.Name,
	})
}

// SelectSong resolves the chosen song against the current song list and
// delegates opening. Valid only on the song list screen. The session
// mutex is held across the selection so a racing Pop either sees it
// complete or stales its callback, never half of each.
func (s *Session) SelectSong(sourceURL string) (playback.Result, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	top := s.top()
	if top.screen != ScreenSongList {
		return playback.Result{}, ErrWrongScreen
	}
	songs := top.payload.(SongListPayload).Album.Songs

	return s.selector.Select(songs, sourceURL), nil
}

// listenForPlaybackEvents forwards the selector's open outcomes to the
// session's subscribers as UI-facing status text.
func (s *Session) listenForPlaybackEvents() {
	go func() {
		for notification := range s.selector.Notifications() {
			log.Tracef("playback event: %s", notification.Event)
			s.emit(Event{
				Type:   EventPlayback,
				Status: playback.StatusFor(notification),
			})
		}
	}()
}
