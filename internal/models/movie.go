package models

// Movie is the full catalog record, as returned by create and fetch-by-id.
// The identifier is server-assigned at creation and immutable; callers never
// supply it.
type Movie struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Director string   `json:"director"`
	Duration int      `json:"duration"`
	Poster   string   `json:"poster"`
	Rate     float64  `json:"rate"`
	Genres   []string `json:"genres"`
}

// MovieSummary is the list projection. The plain list omits duration and
// genres; the genre-filtered list carries duration plus the matched genre's
// id and name on every row.
type MovieSummary struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Director  string  `json:"director"`
	Duration  int     `json:"duration,omitempty"`
	Poster    string  `json:"poster"`
	Rate      float64 `json:"rate"`
	GenreID   int64   `json:"genre_id,omitempty"`
	GenreName string  `json:"genre_name,omitempty"`
}

// Genre is a named category attachable to any number of movies. Names are
// unique case-insensitively; the stored casing is whoever created it first.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
