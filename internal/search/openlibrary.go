package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shelftrack/shelftrack/internal/models"
)

const openLibraryBaseURL = "https://openlibrary.org"

// OpenLibraryProvider is the secondary book metadata source; its records
// fill in when Google Books has no match for a work.
type OpenLibraryProvider struct {
	baseURL string
	client  *http.Client
}

func NewOpenLibraryProvider() *OpenLibraryProvider {
	return &OpenLibraryProvider{
		baseURL: openLibraryBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *OpenLibraryProvider) Name() string { return "openlibrary" }

type openLibrarySearchResponse struct {
	Docs []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		CoverI           int      `json:"cover_i"`
		NumberOfPages    int      `json:"number_of_pages_median"`
		FirstSentence    []string `json:"first_sentence"`
		ISBN             []string `json:"isbn"`
		Subject          []string `json:"subject"`
	} `json:"docs"`
}

func (p *OpenLibraryProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	reqURL := fmt.Sprintf("%s/search.json?q=%s&limit=10", p.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary returned %d", resp.StatusCode)
	}

	var body openLibrarySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(body.Docs))
	for _, doc := range body.Docs {
		coverURL := ""
		if doc.CoverI > 0 {
			coverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", doc.CoverI)
		}
		description := ""
		if len(doc.FirstSentence) > 0 {
			description = doc.FirstSentence[0]
		}
		date := ""
		if doc.FirstPublishYear > 0 {
			date = strconv.Itoa(doc.FirstPublishYear)
		}
		isbn := ""
		if len(doc.ISBN) > 0 {
			isbn = doc.ISBN[0]
		}
		genres := doc.Subject
		if len(genres) > 5 {
			genres = genres[:5]
		}
		results = append(results, models.SearchResult{
			ExternalID:   "ol-" + doc.Key,
			Source:       p.Name(),
			Title:        doc.Title,
			Contributors: doc.AuthorName,
			CoverURL:     coverURL,
			Description:  description,
			Date:         date,
			PageCount:    doc.NumberOfPages,
			Genres:       genres,
			ISBN:         isbn,
		})
	}
	return results, nil
}
