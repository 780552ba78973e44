package seed

import "tunescope/catalog"

// Sample is the built-in catalog used when no seed database is configured.
func Sample() []catalog.Artist {
	return []catalog.Artist{
		{
			Name:     "Nova Harbor",
			PhotoURL: "https://picsum.photos/seed/novaharbor/400",
			Genre:    "Pop",
			Bio:      "Synth-heavy pop trio from the coast, known for layered vocal hooks.",
			Albums: []catalog.Album{
				{
					Title:    "First Light",
					Year:     2020,
					CoverURL: "https://picsum.photos/seed/firstlight/300",
					Songs: []catalog.Song{
						{Title: "Daybreak", SourceURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
						{Title: "Shoreline", SourceURL: "https://youtu.be/9bZkp7q19f0"},
						{Title: "Glasshouse", SourceURL: "https://www.youtube.com/watch?v=kJQP7kiw5Fk"},
					},
				},
				{
					Title:    "Afterglow",
					Year:     2022,
					CoverURL: "https://picsum.photos/seed/afterglow/300",
					Songs: []catalog.Song{
						{Title: "Static Bloom", SourceURL: "https://www.youtube.com/watch?v=fJ9rUzIMcZQ"},
						{Title: "Low Tide", SourceURL: "https://www.youtube.com/watch?v=YQHsXMglC9A"},
					},
				},
			},
		},
		{
			Name:     "Echo Division",
			PhotoURL: "https://picsum.photos/seed/echodivision/400",
			Genre:    "Rock",
			Bio:      "Four-piece rock outfit pulling from post-punk and shoegaze.",
			Albums: []catalog.Album{
				{
					Title:    "Reverb City",
					Year:     2018,
					CoverURL: "https://picsum.photos/seed/reverbcity/300",
					Songs: []catalog.Song{
						{Title: "Concrete Sky", SourceURL: "https://www.youtube.com/watch?v=hTWKbfoikeg"},
						{Title: "Night Bus", SourceURL: "https://youtu.be/CevxZvSJLk8"},
					},
				},
			},
		},
		{
			Name:     "Mara Vel",
			PhotoURL: "https://picsum.photos/seed/maravel/400",
			Genre:    "Jazz",
			Bio:      "Pianist and composer blending standards with modal improvisation.",
			Albums: []catalog.Album{
				{
					Title:    "Blue Hours",
					Year:     2019,
					CoverURL: "https://picsum.photos/seed/bluehours/300",
					Songs: []catalog.Song{
						{Title: "Quarter Past", SourceURL: "https://www.youtube.com/watch?v=RgKAFK5djSk"},
					},
				},
				{
					Title:    "Third Set",
					Year:     2023,
					CoverURL: "https://picsum.photos/seed/thirdset/300",
					Songs: []catalog.Song{
						{Title: "Walk-In", SourceURL: "https://www.youtube.com/watch?v=OPf0YbXqDm0"},
						{Title: "Closing Time", SourceURL: "https://youtu.be/09R8_2nJtjg"},
					},
				},
			},
		},
		{
			Name:     "Drift Index",
			PhotoURL: "https://picsum.photos/seed/driftindex/400",
			Genre:    "Ambient",
			Bio:      "Solo ambient project; long-form pieces, no percussion.",
			// No albums yet: exercises the zero-album edge in year filtering.
		},
	}
}
