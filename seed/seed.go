package seed

import (
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"tunescope/catalog"
	"tunescope/config"
)

// Load returns the artist tree the catalog store is built from. When
// SEED_DB_PATH is set the tree is read from that sqlite file; otherwise
// the built-in sample catalog is used. The seed is read once at startup
// and never written back.
func Load() ([]catalog.Artist, error) {
	if !config.Config.Catalog.HasSeedDB() {
		log.Info("no seed database configured, using built-in sample catalog")
		return Sample(), nil
	}

	artists, err := LoadFile(config.Config.Catalog.SeedDBPath)
	if err != nil {
		return nil, err
	}

	log.Infof("seed catalog loaded from %s (%d artists)",
		config.Config.Catalog.SeedDBPath, len(artists))
	return artists, nil
}

// LoadFile reads the artist tree from an sqlite seed file.
func LoadFile(path string) ([]catalog.Artist, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed database: %w", err)
	}
	defer db.Close()

	// The seed is read-only input; refuse accidental writes.
	if _, err := db.Exec("PRAGMA query_only=ON"); err != nil {
		return nil, fmt.Errorf("failed to set query_only: %w", err)
	}

	artists, artistIndex, err := loadArtists(db)
	if err != nil {
		return nil, err
	}
	albumIndex, err := loadAlbums(db, artists, artistIndex)
	if err != nil {
		return nil, err
	}
	if err := loadSongs(db, artists, albumIndex); err != nil {
		return nil, err
	}

	return artists, nil
}

// albumRef locates an album inside the artists slice without holding
// pointers across append calls.
type albumRef struct {
	artist int
	album  int
}

func loadArtists(db *sql.DB) ([]catalog.Artist, map[int64]int, error) {
	rows, err := db.Query(
		`SELECT id, name, photo_url, genre, bio FROM artists ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []catalog.Artist
	index := make(map[int64]int)
	for rows.Next() {
		var id int64
		var artist catalog.Artist
		if err := rows.Scan(&id, &artist.Name, &artist.PhotoURL, &artist.Genre, &artist.Bio); err != nil {
			return nil, nil, fmt.Errorf("failed to scan artist row: %w", err)
		}
		index[id] = len(artists)
		artists = append(artists, artist)
	}
	return artists, index, rows.Err()
}

func loadAlbums(db *sql.DB, artists []catalog.Artist, artistIndex map[int64]int) (map[int64]albumRef, error) {
	rows, err := db.Query(
		`SELECT id, artist_id, title, year, cover_url FROM albums ORDER BY artist_id, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	index := make(map[int64]albumRef)
	for rows.Next() {
		var id, artistID int64
		var album catalog.Album
		if err := rows.Scan(&id, &artistID, &album.Title, &album.Year, &album.CoverURL); err != nil {
			return nil, fmt.Errorf("failed to scan album row: %w", err)
		}
		ai, ok := artistIndex[artistID]
		if !ok {
			log.Warnf("album %q references unknown artist id %d, skipping", album.Title, artistID)
			continue
		}
		index[id] = albumRef{artist: ai, album: len(artists[ai].Albums)}
		artists[ai].Albums = append(artists[ai].Albums, album)
	}
	return index, rows.Err()
}

func loadSongs(db *sql.DB, artists []catalog.Artist, albumIndex map[int64]albumRef) error {
	rows, err := db.Query(
		`SELECT album_id, title, source_url FROM songs ORDER BY album_id, id`)
	if err != nil {
		return fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var albumID int64
		var song catalog.Song
		if err := rows.Scan(&albumID, &song.Title, &song.SourceURL); err != nil {
			return fmt.Errorf("failed to scan song row: %w", err)
		}
		ref, ok := albumIndex[albumID]
		if !ok {
			log.Warnf("song %q references unknown album id %d, skipping", song.Title, albumID)
			continue
		}
		album := &artists[ref.artist].Albums[ref.album]
		album.Songs = append(album.Songs, song)
	}
	return rows.Err()
}
