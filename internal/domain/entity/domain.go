package entity

// Domain selects the content category of a request: prompt template, creator
// field name and sample seed set all hang off it.
type Domain string

const (
	DomainSongs   Domain = "songs"
	DomainMovies  Domain = "movies"
	DomainTVShows Domain = "tvshows"
)

// Domains lists every recognized domain in display order.
var Domains = []Domain{DomainSongs, DomainMovies, DomainTVShows}

// ParseDomain accepts only the exact lowercase tags.
func ParseDomain(v any) (Domain, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	d := Domain(s)
	return d, d.Valid()
}

func (d Domain) Valid() bool {
	switch d {
	case DomainSongs, DomainMovies, DomainTVShows:
		return true
	}
	return false
}

// CreatorField is the JSON key carrying the creator for this domain.
func (d Domain) CreatorField() string {
	switch d {
	case DomainSongs:
		return "artist"
	case DomainMovies:
		return "director"
	default:
		return "creator"
	}
}

// UnknownCreator is the placeholder used when the model omits the creator.
func (d Domain) UnknownCreator() string {
	switch d {
	case DomainSongs:
		return "Unknown Artist"
	case DomainMovies:
		return "Unknown Director"
	default:
		return "Unknown Creator"
	}
}

// SampleSeeds returns a fresh copy of the domain's example seed set.
func (d Domain) SampleSeeds() []Seed {
	var src []Seed
	switch d {
	case DomainSongs:
		src = sampleSongs
	case DomainMovies:
		src = sampleMovies
	case DomainTVShows:
		src = sampleTVShows
	default:
		return nil
	}
	out := make([]Seed, len(src))
	copy(out, src)
	return out
}

var (
	sampleSongs = []Seed{
		{Title: "Bohemian Rhapsody", By: "Queen"},
		{Title: "Smells Like Teen Spirit", By: "Nirvana"},
		{Title: "Hotel California", By: "Eagles"},
		{Title: "Billie Jean", By: "Michael Jackson"},
		{Title: "Stairway to Heaven", By: "Led Zeppelin"},
	}
	sampleMovies = []Seed{
		{Title: "Pulp Fiction", By: "Quentin Tarantino"},
		{Title: "The Shawshank Redemption", By: "Frank Darabont"},
		{Title: "Inception", By: "Christopher Nolan"},
		{Title: "The Godfather", By: "Francis Ford Coppola"},
		{Title: "Spirited Away", By: "Hayao Miyazaki"},
	}
	sampleTVShows = []Seed{
		{Title: "Breaking Bad", By: "Vince Gilligan"},
		{Title: "The Wire", By: "David Simon"},
		{Title: "Game of Thrones", By: "David Benioff & D.B. Weiss"},
		{Title: "The Sopranos", By: "David Chase"},
		{Title: "Stranger Things", By: "The Duffer Brothers"},
	}
)
