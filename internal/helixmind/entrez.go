package helixmind

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PubMedClient talks to NCBI's Entrez E-utilities for PubMed searches
type PubMedClient struct {
	// base URL of the eutils endpoints
	url string

	hc *http.Client

	// optional response cache, may be nil
	cache *Cache
}

// Article is one PubMed search result
type Article struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	PubDate string `json:"pubdate"`
}

// NewPubMedClient makes an Entrez client. cache may be nil.
func NewPubMedClient(baseURL string, timeout time.Duration, cache *Cache) *PubMedClient {
	return &PubMedClient{
		url:   strings.TrimRight(baseURL, "/"),
		hc:    &http.Client{Timeout: timeout},
		cache: cache,
	}
}

// get fetches an eutils endpoint with params, consulting the cache first
func (c *PubMedClient) get(endpoint string, params url.Values) ([]byte, error) {
	full := c.url + endpoint + "?" + params.Encode()

	key := "entrez:" + full
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	resp, err := c.hc.Get(full)
	if err != nil {
		return nil, fmt.Errorf("Entrez request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Entrez request failed (%d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Entrez response: %w", err)
	}

	c.cache.Set(key, body)
	return body, nil
}

// Search finds up to maxResults PubMed articles matching query:
// an esearch for the matching ids, then an esummary for each id's
// title, source and publication date.
func (c *PubMedClient) Search(query string, maxResults int) ([]Article, error) {
	if maxResults < 1 {
		maxResults = 5
	}

	searchBody, err := c.get("/esearch.fcgi", url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {strconv.Itoa(maxResults)},
		"retmode": {"json"},
	})
	if err != nil {
		return nil, err
	}

	var search struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(searchBody, &search); err != nil {
		return nil, fmt.Errorf("failed to parse esearch response: %w", err)
	}

	ids := search.ESearchResult.IDList
	if len(ids) == 0 {
		return []Article{}, nil
	}

	summaryBody, err := c.get("/esummary.fcgi", url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	})
	if err != nil {
		return nil, err
	}

	var summary struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(summaryBody, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse esummary response: %w", err)
	}

	articles := make([]Article, 0, len(ids))
	for _, pmid := range ids {
		a := Article{
			ID:      pmid,
			Title:   fmt.Sprintf("PubMed Article %s", pmid),
			Source:  "PubMed",
			PubDate: "Unknown",
		}

		if raw, ok := summary.Result[pmid]; ok {
			var item struct {
				Title   string `json:"title"`
				Source  string `json:"source"`
				PubDate string `json:"pubdate"`
			}
			if err := json.Unmarshal(raw, &item); err == nil {
				if item.Title != "" {
					a.Title = item.Title
				}
				if item.Source != "" {
					a.Source = item.Source
				}
				if item.PubDate != "" {
					a.PubDate = item.PubDate
				}
			}
		}

		articles = append(articles, a)
	}

	return articles, nil
}
