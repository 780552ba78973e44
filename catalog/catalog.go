package catalog

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned by lookups when no entity matches. Callers are
// expected to recover locally (fall back to a default) rather than treat
// it as fatal.
var ErrNotFound = errors.New("not found")

// Song is a single track. SourceURL is an opaque external video reference;
// the video package knows how to turn it into something playable.
type Song struct {
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
}

// Album belongs to exactly one Artist. The owning artist's name is carried
// in navigation payloads, never stored here.
type Album struct {
	Title    string `json:"title"`
	Year     int    `json:"year"`
	CoverURL string `json:"cover_url"`
	Songs    []Song `json:"songs"`
}

type Artist struct {
	Name     string  `json:"name"`
	PhotoURL string  `json:"photo_url"`
	Genre    string  `json:"genre"`
	Bio      string  `json:"bio"`
	Albums   []Album `json:"albums"`
}

// Store holds the artist tree. It is populated once at construction and
// exposes no mutation API, so no locking is needed for reads.
type Store struct {
	artists []Artist
}

func NewStore(artists []Artist) *Store {
	// Copy the top-level slice so the seed supplier can't reorder the
	// catalog under us after construction.
	owned := make([]Artist, len(artists))
	copy(owned, artists)

	log.WithFields(log.Fields{"module": "catalog", "artists": len(owned)}).
		Debug("catalog store built")

	return &Store{artists: owned}
}

// Artists returns the full catalog in seed order.
func (s *Store) Artists() []Artist {
	return s.artists
}

func (s *Store) FindArtist(name string) (Artist, error) {
	for _, artist := range s.artists {
		if artist.Name == name {
			return artist, nil
		}
	}
	return Artist{}, ErrNotFound
}

func (s *Store) FindAlbum(artistName, albumTitle string) (Album, error) {
	artist, err := s.FindArtist(artistName)
	if err != nil {
		return Album{}, err
	}
	for _, album := range artist.Albums {
		if album.Title == albumTitle {
			return album, nil
		}
	}
	return Album{}, ErrNotFound
}

func (s *Store) FindSong(artistName, albumTitle, songTitle string) (Song, error) {
	album, err := s.FindAlbum(artistName, albumTitle)
	if err != nil {
		return Song{}, err
	}
	for _, song := range album.Songs {
		if song.Title == songTitle {
			return song, nil
		}
	}
	return Song{}, ErrNotFound
}

// Counts returns the number of artists, albums and songs in the catalog.
func (s *Store) Counts() (artists, albums, songs int) {
	artists = len(s.artists)
	for _, artist := range s.artists {
		albums += len(artist.Albums)
		for _, album := range artist.Albums {
			songs += len(album.Songs)
		}
	}
	return artists, albums, songs
}
