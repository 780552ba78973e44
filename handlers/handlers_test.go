package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tunescope/catalog"
	"tunescope/config"
	"tunescope/controller"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.NewConfig()
}

type nopOpener struct{}

func (nopOpener) OpenURL(url string) <-chan error {
	result := make(chan error, 1)
	result <- nil
	return result
}

func testManager() *Manager {
	store := catalog.NewStore([]catalog.Artist{
		{
			Name:  "Nova",
			Genre: "Pop",
			Albums: []catalog.Album{
				{
					Title: "First Light",
					Year:  2020,
					Songs: []catalog.Song{
						{Title: "Dawn", SourceURL: "https://www.youtube.com/watch?v=aaa111"},
					},
				},
			},
		},
		{Name: "Echo", Genre: "Rock", Albums: []catalog.Album{{Title: "Reverb", Year: 2018}}},
	})
	ctrl := controller.NewController(store, nopOpener{})
	manager := NewManager(store, ctrl)
	// Hints are probabilistic; force them off so assertions are stable.
	manager.Hints.hintChance = 0
	return manager
}

func testRouter(manager *Manager) *gin.Engine {
	router := gin.New()
	router.POST("/intent", manager.HandleIntent)
	router.GET("/browse", manager.HandleBrowse)
	router.GET("/events", manager.HandleEvents)
	router.GET("/stats", manager.HandleStats)
	return router
}

func doIntent(t *testing.T, router *gin.Engine, session, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/intent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var response Response
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, response
}

func TestBrowseMintsSessionID(t *testing.T) {
	router := testRouter(testManager())

	req := httptest.NewRequest(http.MethodGet, "/browse", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get(SessionHeader) == "" {
		t.Error("expected a minted session id in the response header")
	}
}

func TestIntentSearchFiltersArtists(t *testing.T) {
	router := testRouter(testManager())

	rec, response := doIntent(t, router, "s1", `{"action":"search","value":"nova"}`)
	if rec.Code != http.StatusOK || !response.OK {
		t.Fatalf("status = %d, response = %+v", rec.Code, response)
	}
	if response.Screen != string(controller.ScreenArtistList) {
		t.Errorf("screen = %q, want artist_list", response.Screen)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Nova") || strings.Contains(body, "Echo") {
		t.Errorf("filtered body = %s, want only Nova", body)
	}
}

func TestIntentDrillDownAndBack(t *testing.T) {
	router := testRouter(testManager())

	_, response := doIntent(t, router, "s1", `{"action":"select_artist","value":"Nova"}`)
	if response.Screen != string(controller.ScreenArtistDetail) {
		t.Fatalf("screen = %q, want artist_detail", response.Screen)
	}

	rec, response := doIntent(t, router, "s1", `{"action":"select_album","value":"First Light"}`)
	if response.Screen != string(controller.ScreenSongList) {
		t.Fatalf("screen = %q, want song_list", response.Screen)
	}
	if !strings.Contains(rec.Body.String(), `"artist_name":"Nova"`) {
		t.Errorf("song list body = %s, want carried artist name", rec.Body.String())
	}

	_, response = doIntent(t, router, "s1", `{"action":"back"}`)
	if response.Screen != string(controller.ScreenArtistDetail) {
		t.Errorf("screen after back = %q, want artist_detail", response.Screen)
	}
}

func TestIntentSelectSong(t *testing.T) {
	router := testRouter(testManager())

	doIntent(t, router, "s1", `{"action":"select_artist","value":"Nova"}`)
	doIntent(t, router, "s1", `{"action":"select_album","value":"First Light"}`)

	rec, response := doIntent(t, router, "s1",
		`{"action":"select_song","value":"https://www.youtube.com/watch?v=aaa111"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(response.Content, "Dawn") {
		t.Errorf("content = %q, want song title", response.Content)
	}
}

func TestIntentSelectSongOnWrongScreen(t *testing.T) {
	router := testRouter(testManager())

	rec, _ := doIntent(t, router, "s1", `{"action":"select_song","value":"https://youtu.be/x"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestIntentUnknownArtistRecovers(t *testing.T) {
	router := testRouter(testManager())

	rec, response := doIntent(t, router, "s1", `{"action":"select_artist","value":"Nobody"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (not-found is recovered)", rec.Code)
	}
	if response.Screen != string(controller.ScreenArtistList) {
		t.Errorf("screen = %q, want artist_list", response.Screen)
	}
	if response.Content == "" {
		t.Error("expected an explanatory content string")
	}
}

func TestIntentUnknownAction(t *testing.T) {
	router := testRouter(testManager())

	rec, _ := doIntent(t, router, "s1", `{"action":"fly"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestIntentMalformedBody(t *testing.T) {
	router := testRouter(testManager())

	rec, _ := doIntent(t, router, "s1", `{"value":"no action"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestEventsDrain(t *testing.T) {
	router := testRouter(testManager())

	doIntent(t, router, "s1", `{"action":"search","value":"nova"}`)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set(SessionHeader, "s1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), string(controller.EventFilterChanged)) {
		t.Errorf("events body = %s, want a filter_changed event", rec.Body.String())
	}

	// A second drain comes back empty.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set(SessionHeader, "s1")
	router.ServeHTTP(rec, req)
	if strings.Contains(rec.Body.String(), string(controller.EventFilterChanged)) {
		t.Errorf("second drain body = %s, want no events", rec.Body.String())
	}
}

func TestStats(t *testing.T) {
	router := testRouter(testManager())

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"artists":"2"`) {
		t.Errorf("stats body = %s, want 2 artists", body)
	}
}
