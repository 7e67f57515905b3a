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

const googleBooksBaseURL = "https://www.googleapis.com/books/v1"

// GoogleBooksProvider is the primary book metadata source.
type GoogleBooksProvider struct {
	baseURL string
	client  *http.Client
}

func NewGoogleBooksProvider() *GoogleBooksProvider {
	return &GoogleBooksProvider{
		baseURL: googleBooksBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *GoogleBooksProvider) Name() string { return "google" }

type googleVolumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			PublishedDate string   `json:"publishedDate"`
			PageCount     int      `json:"pageCount"`
			Categories    []string `json:"categories"`
			AverageRating float64  `json:"averageRating"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (p *GoogleBooksProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	reqURL := fmt.Sprintf("%s/volumes?q=%s", p.baseURL, url.QueryEscape(query))
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
		return nil, fmt.Errorf("google books returned %d", resp.StatusCode)
	}

	var body googleVolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(body.Items))
	for _, item := range body.Items {
		info := item.VolumeInfo
		isbn := ""
		for _, id := range info.IndustryIdentifiers {
			if id.Type == "ISBN_13" {
				isbn = id.Identifier
				break
			}
		}
		results = append(results, models.SearchResult{
			ExternalID:   item.ID,
			Source:       p.Name(),
			Title:        info.Title,
			Contributors: info.Authors,
			CoverURL:     info.ImageLinks.Thumbnail,
			Description:  info.Description,
			Date:         info.PublishedDate,
			PageCount:    info.PageCount,
			Genres:       info.Categories,
			Rating:       info.AverageRating,
			ISBN:         isbn,
		})
	}
	return results, nil
}
