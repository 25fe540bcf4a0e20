package helixmind

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func Test_PubMedClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/esearch.fcgi":
			if r.URL.Query().Get("db") != "pubmed" || r.URL.Query().Get("retmode") != "json" {
				t.Errorf("unexpected esearch params: %s", r.URL.RawQuery)
			}
			fmt.Fprint(w, `{"esearchresult":{"idlist":["111","222"]}}`)
		case "/esummary.fcgi":
			if r.URL.Query().Get("id") != "111,222" {
				t.Errorf("unexpected esummary ids: %s", r.URL.Query().Get("id"))
			}
			fmt.Fprint(w, `{"result":{
				"uids":["111","222"],
				"111":{"title":"BRCA1 and cancer risk","source":"Nature","pubdate":"2021 Mar"},
				"222":{"title":"","source":""}
			}}`)
		default:
			t.Errorf("unexpected eutils path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewPubMedClient(srv.URL, 5*time.Second, nil)
	articles, err := c.Search("BRCA1", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("Search() = %v, want 2 articles", articles)
	}

	if articles[0].ID != "111" || articles[0].Title != "BRCA1 and cancer risk" || articles[0].Source != "Nature" || articles[0].PubDate != "2021 Mar" {
		t.Errorf("Search() first article = %+v", articles[0])
	}

	// missing summary fields fall back to defaults
	if articles[1].Title != "PubMed Article 222" || articles[1].Source != "PubMed" || articles[1].PubDate != "Unknown" {
		t.Errorf("Search() second article defaults = %+v", articles[1])
	}
}

func Test_PubMedClient_Search_noResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/esearch.fcgi" {
			fmt.Fprint(w, `{"esearchresult":{"idlist":[]}}`)
			return
		}
		t.Errorf("esummary called despite empty id list")
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewPubMedClient(srv.URL, 5*time.Second, nil)
	articles, err := c.Search("nonsensequeryzzz", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Search() = %v, want none", articles)
	}
}
