package handlers

// handlers translate the rendering layer's user-intent calls into
// controller operations and render the resulting browse state as JSON.

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"tunescope/catalog"
	"tunescope/controller"
	"tunescope/video"
)

// SessionHeader carries the browse session id. Requests without one get a
// fresh session whose id is echoed back in the response header.
const SessionHeader = "X-Session-ID"

type Intent struct {
	Action string `json:"action" binding:"required"`
	Value  string `json:"value"`
	Year   int    `json:"year"`
}

type Response struct {
	OK      bool        `json:"ok"`
	Content string      `json:"content,omitempty"`
	Screen  string      `json:"screen,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type artistView struct {
	Name     string `json:"name"`
	Genre    string `json:"genre"`
	PhotoURL string `json:"photo_url"`
	Albums   int    `json:"albums"`
}

type albumView struct {
	Title    string `json:"title"`
	Year     int    `json:"year"`
	CoverURL string `json:"cover_url"`
	Songs    int    `json:"songs"`
}

type songView struct {
	Title        string `json:"title"`
	SourceURL    string `json:"source_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type Manager struct {
	Store      *catalog.Store
	Controller *controller.Controller
	Hints      *Hints
}

func NewManager(store *catalog.Store, ctrl *controller.Controller) *Manager {
	return &Manager{
		Store:      store,
		Controller: ctrl,
		Hints:      NewHints(),
	}
}

// Session resolves the request's browse session, minting an id when the
// header is absent, and echoes the id back so the client can keep it.
func (manager *Manager) Session(c *gin.Context) *controller.Session {
	id := c.GetHeader(SessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(SessionHeader, id)
	return manager.Controller.GetSession(id)
}

// HandleIntent is the single entry point for user intents from the
// rendering layer.
func (manager *Manager) HandleIntent(c *gin.Context) {
	var intent Intent
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, Response{Content: "invalid intent payload"})
		return
	}

	session := manager.Session(c)
	response, status := manager.dispatch(session, intent)

	if response.OK {
		if hint, show := manager.Hints.ShouldShowHint(session.ID); show {
			response.Content += "\n\n" + hint
		}
	}

	c.JSON(status, response)
}

func (manager *Manager) dispatch(session *controller.Session, intent Intent) (response Response, status int) {
	// Catch panics from miswired intents rather than dropping the request.
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("panic handling intent %q: %v", intent.Action, err)
			response = Response{Content: "something went wrong handling that action"}
			status = http.StatusInternalServerError
		}
	}()

	log.Tracef("received intent: %s", intent.Action)
	switch intent.Action {
	case "search":
		session.SetSearchText(intent.Value)
		return manager.renderBrowse(session), http.StatusOK
	case "genre":
		session.SetGenreFilter(intent.Value)
		return manager.renderBrowse(session), http.StatusOK
	case "year":
		session.SetYearFilter(intent.Year)
		return manager.renderBrowse(session), http.StatusOK
	case "select_artist":
		return manager.handleSelect(session, session.SelectArtist(intent.Value))
	case "select_album":
		return manager.handleSelect(session, session.SelectAlbum(intent.Value))
	case "select_song":
		return manager.handleSelectSong(session, intent.Value)
	case "back":
		session.Pop()
		return manager.renderBrowse(session), http.StatusOK
	default:
		return Response{Content: "unknown action: " + intent.Action}, http.StatusBadRequest
	}
}

func (manager *Manager) handleSelect(session *controller.Session, err error) (Response, int) {
	switch err {
	case nil:
		return manager.renderBrowse(session), http.StatusOK
	case catalog.ErrNotFound:
		// Recovered locally: the view stays where it is.
		response := manager.renderBrowse(session)
		response.Content = "that entry is no longer in the catalog"
		return response, http.StatusOK
	case controller.ErrWrongScreen, controller.ErrBadPayload:
		return Response{Content: err.Error()}, http.StatusConflict
	default:
		return Response{Content: err.Error()}, http.StatusInternalServerError
	}
}

func (manager *Manager) handleSelectSong(session *controller.Session, sourceURL string) (Response, int) {
	result, err := session.SelectSong(sourceURL)
	if err != nil {
		return Response{Content: err.Error()}, http.StatusConflict
	}

	response := manager.renderBrowse(session)
	response.Content = result.Status
	return response, http.StatusOK
}

// HandleBrowse renders the current screen without mutating anything.
func (manager *Manager) HandleBrowse(c *gin.Context) {
	session := manager.Session(c)
	c.JSON(http.StatusOK, manager.renderBrowse(session))
}

// HandleEvents drains and returns the session's pending change
// notifications. The rendering layer polls this to know when to re-render.
func (manager *Manager) HandleEvents(c *gin.Context) {
	session := manager.Session(c)

	events := make([]controller.Event, 0)
	for {
		select {
		case event := <-session.Notifications():
			events = append(events, event)
		default:
			c.JSON(http.StatusOK, Response{OK: true, Data: events})
			return
		}
	}
}

// HandleStats reports catalog totals.
func (manager *Manager) HandleStats(c *gin.Context) {
	artists, albums, songs := manager.Store.Counts()
	c.JSON(http.StatusOK, Response{
		OK: true,
		Data: gin.H{
			"artists":  humanize.Comma(int64(artists)),
			"albums":   humanize.Comma(int64(albums)),
			"songs":    humanize.Comma(int64(songs)),
			"sessions": manager.Controller.SessionCount(),
		},
	})
}

func (manager *Manager) renderBrowse(session *controller.Session) Response {
	screen, payload := session.Current()

	response := Response{OK: true, Screen: string(screen)}

	switch screen {
	case controller.ScreenArtistList:
		visible := session.VisibleArtists()
		views := make([]artistView, len(visible))
		for i, artist := range visible {
			views[i] = artistView{
				Name:     artist.Name,
				Genre:    artist.Genre,
				PhotoURL: artist.PhotoURL,
				Albums:   len(artist.Albums),
			}
		}
		response.Data = gin.H{
			"criteria": session.Criteria(),
			"artists":  views,
		}
	case controller.ScreenArtistDetail:
		detail := payload.(controller.ArtistDetailPayload)
		views := make([]albumView, len(detail.Artist.Albums))
		for i, album := range detail.Artist.Albums {
			views[i] = albumView{
				Title:    album.Title,
				Year:     album.Year,
				CoverURL: album.CoverURL,
				Songs:    len(album.Songs),
			}
		}
		response.Data = gin.H{
			"artist": artistView{
				Name:     detail.Artist.Name,
				Genre:    detail.Artist.Genre,
				PhotoURL: detail.Artist.PhotoURL,
				Albums:   len(detail.Artist.Albums),
			},
			"bio":    detail.Artist.Bio,
			"albums": views,
		}
	case controller.ScreenSongList:
		songList := payload.(controller.SongListPayload)
		views := make([]songView, len(songList.Album.Songs))
		for i, song := range songList.Album.Songs {
			view := songView{Title: song.Title, SourceURL: song.SourceURL}
			if id, err := video.ExtractVideoID(song.SourceURL); err == nil {
				view.ThumbnailURL = video.ThumbnailURL(id)
			}
			views[i] = view
		}
		response.Data = gin.H{
			"artist_name": songList.ArtistName,
			"album": albumView{
				Title:    songList.Album.Title,
				Year:     songList.Album.Year,
				CoverURL: songList.Album.CoverURL,
				Songs:    len(songList.Album.Songs),
			},
			"songs": views,
		}
	}

	return response
}
