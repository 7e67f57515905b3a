package httputil

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSONEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, 201, map[string]string{"id": "abc"})

	if w.Code != 201 {
		t.Errorf("status: got %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Error != nil {
		t.Errorf("envelope: %+v", resp)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok || data["id"] != "abc" {
		t.Errorf("data: %+v", resp.Data)
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, 404, "NOT_FOUND", "book not found")

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "error" || resp.Data != nil {
		t.Errorf("envelope: %+v", resp)
	}
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" || resp.Error.Message != "book not found" {
		t.Errorf("error body: %+v", resp.Error)
	}
}

func TestReadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Dune"}`))
	var dst struct {
		Title string `json:"title"`
	}
	if err := ReadJSON(r, &dst); err != nil {
		t.Fatal(err)
	}
	if dst.Title != "Dune" {
		t.Errorf("got %q", dst.Title)
	}
}

func TestReadJSONRejectsTrailingData(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Dune"}{"title":"Emma"}`))
	var dst struct {
		Title string `json:"title"`
	}
	if err := ReadJSON(r, &dst); err == nil {
		t.Error("expected error for trailing data")
	}
}

func TestReadJSONRejectsOversizedBody(t *testing.T) {
	body := `{"notes":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var dst struct {
		Notes string `json:"notes"`
	}
	if err := ReadJSON(r, &dst); err == nil {
		t.Error("expected error for body over the size cap")
	}
}

func TestReadJSONRejectsMalformedBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":`))
	var dst struct{}
	if err := ReadJSON(r, &dst); err == nil {
		t.Error("expected error for malformed body")
	}
}
