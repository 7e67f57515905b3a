package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/shelftrack/shelftrack/internal/models"
)

type fakeProvider struct {
	name    string
	results []models.SearchResult
	err     error
}

func (p *fakeProvider) Name() string { return p.name }
func (p *fakeProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	return p.results, p.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSearchDedupePrefersPrimary(t *testing.T) {
	primary := &fakeProvider{name: "google", results: []models.SearchResult{
		{Source: "google", Title: "Dune", Contributors: []string{"Frank Herbert"}, PageCount: 412},
	}}
	secondary := &fakeProvider{name: "openlibrary", results: []models.SearchResult{
		{Source: "openlibrary", Title: "dune", Contributors: []string{"frank herbert"}, PageCount: 400},
		{Source: "openlibrary", Title: "Dune Messiah", Contributors: []string{"Frank Herbert"}},
	}}

	svc := NewService(nil, quietLogger())
	svc.Register(models.MediaTypeBook, primary)
	svc.Register(models.MediaTypeBook, secondary)

	results, err := svc.Search(context.Background(), models.MediaTypeBook, "dune")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Source != "google" || results[0].PageCount != 412 {
		t.Errorf("duplicate not resolved to primary record: %+v", results[0])
	}
	if results[1].Title != "Dune Messiah" {
		t.Errorf("secondary-only result missing: %+v", results[1])
	}
}

func TestSearchSecondaryFillsInWhenPrimaryFails(t *testing.T) {
	primary := &fakeProvider{name: "google", err: errors.New("upstream down")}
	secondary := &fakeProvider{name: "openlibrary", results: []models.SearchResult{
		{Source: "openlibrary", Title: "Dune"},
	}}

	svc := NewService(nil, quietLogger())
	svc.Register(models.MediaTypeBook, primary)
	svc.Register(models.MediaTypeBook, secondary)

	results, err := svc.Search(context.Background(), models.MediaTypeBook, "dune")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Dune" {
		t.Errorf("got %+v, want the openlibrary result", results)
	}
}

func TestSearchErrorsOnlyWhenAllProvidersFail(t *testing.T) {
	svc := NewService(nil, quietLogger())
	svc.Register(models.MediaTypeBook, &fakeProvider{name: "google", err: errors.New("down")})
	svc.Register(models.MediaTypeBook, &fakeProvider{name: "openlibrary", err: errors.New("also down")})

	if _, err := svc.Search(context.Background(), models.MediaTypeBook, "dune"); err == nil {
		t.Error("expected error when every provider fails")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewService(nil, quietLogger())
	results, err := svc.Search(context.Background(), models.MediaTypeBook, "   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestGoogleBooksProviderParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"items":[{"id":"abc123","volumeInfo":{
			"title":"Dune","authors":["Frank Herbert"],"publishedDate":"1965-08-01",
			"pageCount":412,"categories":["Science Fiction"],"averageRating":4.5,
			"imageLinks":{"thumbnail":"http://example.com/dune.jpg"},
			"industryIdentifiers":[{"type":"ISBN_10","identifier":"0441013597"},{"type":"ISBN_13","identifier":"9780441013593"}]
		}}]}`))
	}))
	defer srv.Close()

	p := &GoogleBooksProvider{baseURL: srv.URL, client: srv.Client()}
	results, err := p.Search(context.Background(), "dune")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ExternalID != "abc123" || r.Source != "google" {
		t.Errorf("identity: %+v", r)
	}
	if r.Title != "Dune" || r.PageCount != 412 || r.ISBN != "9780441013593" {
		t.Errorf("fields: %+v", r)
	}
	if len(r.Contributors) != 1 || r.Contributors[0] != "Frank Herbert" {
		t.Errorf("contributors: %v", r.Contributors)
	}
}

func TestGoogleBooksProviderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := &GoogleBooksProvider{baseURL: srv.URL, client: srv.Client()}
	if _, err := p.Search(context.Background(), "dune"); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestOpenLibraryProviderParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"docs":[{
			"key":"/works/OL893415W","title":"Dune","author_name":["Frank Herbert"],
			"first_publish_year":1965,"cover_i":12345,"number_of_pages_median":412,
			"first_sentence":["A beginning is the time for taking the most delicate care."],
			"isbn":["9780441013593"],
			"subject":["Science Fiction","Deserts","Politics","Ecology","Religion","Extra"]
		}]}`))
	}))
	defer srv.Close()

	p := &OpenLibraryProvider{baseURL: srv.URL, client: srv.Client()}
	results, err := p.Search(context.Background(), "dune")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ExternalID != "ol-/works/OL893415W" || r.Source != "openlibrary" {
		t.Errorf("identity: %+v", r)
	}
	if r.Date != "1965" || r.CoverURL == "" || r.PageCount != 412 {
		t.Errorf("fields: %+v", r)
	}
	if len(r.Genres) != 5 {
		t.Errorf("subjects not capped at 5: %v", r.Genres)
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	if _, ok := c.Get(context.Background(), models.MediaTypeBook, "dune"); ok {
		t.Error("nil cache reported a hit")
	}
	c.Set(context.Background(), models.MediaTypeBook, "dune", nil) // must not panic
}
