package imagesearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker/v2"
)

const samplePage = `{"total":2,"results":[
 {"id":"a1","description":"Dotonbori at night","urls":{"regular":"https://images.unsplash.com/a1?w=1080","small":"https://images.unsplash.com/a1?w=400"},"user":{"name":"Jane","username":"jane","links":{"html":"https://unsplash.com/@jane"}}},
 {"id":"b2","alt_description":"castle","urls":{"regular":"https://images.unsplash.com/b2?w=1080"},"user":{"name":"Kim","username":"kim","links":{"html":"https://unsplash.com/@kim"}}},
 {"id":"c3","urls":{"regular":"javascript:alert(1)"},"user":{}}
]}`

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/photos" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "Osaka" || q.Get("per_page") != "30" || q.Get("order_by") != "relevant" || q.Get("page") != "1" {
			t.Errorf("query params = %v", q)
		}
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, AccessKey: "test-key"})
	images, err := c.Search(context.Background(), "Osaka")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("Search() returned %d images, want 2 (unsafe url dropped)", len(images))
	}
	if images[0].ID != "a1" || images[0].ThumbnailURL() != "https://images.unsplash.com/a1?w=400" {
		t.Errorf("images[0] = %+v", images[0])
	}
	if images[0].Attribution.ProfileURL != "https://unsplash.com/@jane" {
		t.Errorf("attribution = %+v", images[0].Attribution)
	}
	if images[1].Description != "castle" {
		t.Errorf("images[1].Description = %q, want alt description", images[1].Description)
	}
}

func TestSearch_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0,"results":[]}`))
	}))
	defer srv.Close()

	images, err := New(Config{BaseURL: srv.URL, AccessKey: "k"}).Search(context.Background(), "Atlantis-9421")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(images) != 0 {
		t.Errorf("Search() = %v, want empty", images)
	}
}

func TestSearch_NoCredentials(t *testing.T) {
	_, err := New(Config{}).Search(context.Background(), "Osaka")
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Search() error = %v, want ErrNoCredentials", err)
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	images, err := New(Config{AccessKey: "k"}).Search(context.Background(), "  ")
	if err != nil || images != nil {
		t.Errorf("Search(blank) = %v, %v", images, err)
	}
}

func TestSearch_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, AccessKey: "k"})
	for i := 0; i < 5; i++ {
		if _, err := c.Search(context.Background(), "Osaka"); err == nil {
			t.Fatalf("Search() #%d error = nil, want status error", i)
		}
	}

	_, err := c.Search(context.Background(), "Osaka")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Search() after failures error = %v, want ErrOpenState", err)
	}
	if n := calls.Load(); n != 5 {
		t.Errorf("upstream calls = %d, want 5", n)
	}
}
