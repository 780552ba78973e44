package filter

import (
	"strings"

	"tunescope/catalog"
)

// GenreAll is the sentinel meaning no genre constraint.
const GenreAll = "All"

// YearAny is the sentinel meaning no year constraint.
const YearAny = 0

// Criteria is the current search/genre/year constraint set. The zero
// value matches everything.
type Criteria struct {
	Search string `json:"search"`
	Genre  string `json:"genre"`
	Year   int    `json:"year"`
}

func (c Criteria) IsEmpty() bool {
	return c.Search == "" && !genreSet(c.Genre) && c.Year == YearAny
}

// Apply returns the artists matching all set predicates, preserving the
// input order (stable filter, no re-sort). The full sequence is walked on
// every call; with catalog-sized inputs an index isn't worth the
// bookkeeping, so recomputation stays O(artists x albums).
func Apply(artists []catalog.Artist, c Criteria) []catalog.Artist {
	if c.IsEmpty() {
		return artists
	}

	search := strings.ToLower(c.Search)

	matched := make([]catalog.Artist, 0, len(artists))
	for _, artist := range artists {
		if search != "" && !strings.Contains(strings.ToLower(artist.Name), search) {
			continue
		}
		if genreSet(c.Genre) && !strings.EqualFold(artist.Genre, c.Genre) {
			continue
		}
		if c.Year != YearAny && !anyAlbumFromYear(artist, c.Year) {
			continue
		}
		matched = append(matched, artist)
	}
	return matched
}

// anyAlbumFromYear reports whether the artist has at least one album from
// the given year. An artist with no albums never matches.
func anyAlbumFromYear(artist catalog.Artist, year int) bool {
	for _, album := range artist.Albums {
		if album.Year == year {
			return true
		}
	}
	return false
}

func genreSet(genre string) bool {
	return genre != "" && !strings.EqualFold(genre, GenreAll)
}
