package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shelftrack/shelftrack/internal/models"
)

const (
	tmdbBaseURL  = "https://api.themoviedb.org/3"
	tmdbImageURL = "https://image.tmdb.org/t/p/w500"

	// Detail lookups are one request per candidate, so cap how many
	// search hits get enriched.
	tmdbDetailLimit = 8
)

// tmdbGenreMap maps TMDB genre IDs to human-readable names.
var tmdbGenreMap = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
	27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance",
	878: "Science Fiction", 10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
	// TV-specific
	10759: "Action & Adventure", 10762: "Kids", 10763: "News", 10764: "Reality",
	10765: "Sci-Fi & Fantasy", 10766: "Soap", 10767: "Talk", 10768: "War & Politics",
}

type tmdbClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func newTMDBClient(apiKey string) *tmdbClient {
	return &tmdbClient{
		baseURL: tmdbBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *tmdbClient) get(ctx context.Context, path string, params url.Values, dst interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("TMDB API key not configured")
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func tmdbImage(path string) string {
	if path == "" {
		return ""
	}
	return tmdbImageURL + path
}

// ──────────────────── Movies ────────────────────

// TMDBMovieProvider searches TMDB for movies and enriches the top hits with
// credits to recover the director and cast.
type TMDBMovieProvider struct {
	c *tmdbClient
}

func NewTMDBMovieProvider(apiKey string) *TMDBMovieProvider {
	return &TMDBMovieProvider{c: newTMDBClient(apiKey)}
}

func (p *TMDBMovieProvider) Name() string { return "tmdb" }

type tmdbMovieSearchResponse struct {
	Results []struct {
		ID           int     `json:"id"`
		Title        string  `json:"title"`
		Overview     string  `json:"overview"`
		PosterPath   string  `json:"poster_path"`
		BackdropPath string  `json:"backdrop_path"`
		ReleaseDate  string  `json:"release_date"`
		VoteAverage  float64 `json:"vote_average"`
		GenreIDs     []int   `json:"genre_ids"`
	} `json:"results"`
}

type tmdbMovieDetails struct {
	Runtime int `json:"runtime"`
	Credits struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
}

func (p *TMDBMovieProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	var body tmdbMovieSearchResponse
	if err := p.c.get(ctx, "/search/movie", url.Values{"query": {query}}, &body); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(body.Results))
	for i, r := range body.Results {
		if i >= tmdbDetailLimit {
			break
		}
		result := models.SearchResult{
			ExternalID:  fmt.Sprintf("%d", r.ID),
			Source:      p.Name(),
			Title:       r.Title,
			CoverURL:    tmdbImage(r.PosterPath),
			BackdropURL: tmdbImage(r.BackdropPath),
			Description: r.Overview,
			Date:        r.ReleaseDate,
			Rating:      r.VoteAverage,
			Genres:      genreNames(r.GenreIDs),
		}

		// Best effort; a failed detail lookup leaves the search row usable.
		var details tmdbMovieDetails
		err := p.c.get(ctx, fmt.Sprintf("/movie/%d", r.ID),
			url.Values{"append_to_response": {"credits"}}, &details)
		if err == nil {
			result.Runtime = details.Runtime
			for _, crew := range details.Credits.Crew {
				if crew.Job == "Director" {
					result.Contributors = []string{crew.Name}
					break
				}
			}
			for j, cast := range details.Credits.Cast {
				if j >= 5 {
					break
				}
				result.Cast = append(result.Cast, cast.Name)
			}
		}

		results = append(results, result)
	}
	return results, nil
}

// ──────────────────── TV Shows ────────────────────

type TMDBTVProvider struct {
	c *tmdbClient
}

func NewTMDBTVProvider(apiKey string) *TMDBTVProvider {
	return &TMDBTVProvider{c: newTMDBClient(apiKey)}
}

func (p *TMDBTVProvider) Name() string { return "tmdb" }

type tmdbTVSearchResponse struct {
	Results []struct {
		ID           int     `json:"id"`
		Name         string  `json:"name"`
		Overview     string  `json:"overview"`
		PosterPath   string  `json:"poster_path"`
		BackdropPath string  `json:"backdrop_path"`
		FirstAirDate string  `json:"first_air_date"`
		VoteAverage  float64 `json:"vote_average"`
		GenreIDs     []int   `json:"genre_ids"`
	} `json:"results"`
}

type tmdbTVDetails struct {
	LastAirDate      string `json:"last_air_date"`
	NumberOfSeasons  int    `json:"number_of_seasons"`
	NumberOfEpisodes int    `json:"number_of_episodes"`
	CreatedBy        []struct {
		Name string `json:"name"`
	} `json:"created_by"`
	Networks []struct {
		Name string `json:"name"`
	} `json:"networks"`
}

func (p *TMDBTVProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	var body tmdbTVSearchResponse
	if err := p.c.get(ctx, "/search/tv", url.Values{"query": {query}}, &body); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(body.Results))
	for i, r := range body.Results {
		if i >= tmdbDetailLimit {
			break
		}
		result := models.SearchResult{
			ExternalID:  fmt.Sprintf("%d", r.ID),
			Source:      p.Name(),
			Title:       r.Name,
			CoverURL:    tmdbImage(r.PosterPath),
			BackdropURL: tmdbImage(r.BackdropPath),
			Description: r.Overview,
			Date:        r.FirstAirDate,
			Rating:      r.VoteAverage,
			Genres:      genreNames(r.GenreIDs),
		}

		var details tmdbTVDetails
		if err := p.c.get(ctx, fmt.Sprintf("/tv/%d", r.ID), nil, &details); err == nil {
			result.LastAirDate = details.LastAirDate
			result.NumberOfSeasons = details.NumberOfSeasons
			result.NumberOfEpisodes = details.NumberOfEpisodes
			for _, creator := range details.CreatedBy {
				result.Contributors = append(result.Contributors, creator.Name)
			}
			for _, network := range details.Networks {
				result.Networks = append(result.Networks, network.Name)
			}
		}

		results = append(results, result)
	}
	return results, nil
}

func genreNames(ids []int) []string {
	var genres []string
	for _, id := range ids {
		if name, ok := tmdbGenreMap[id]; ok {
			genres = append(genres, name)
		}
	}
	return genres
}
