package helixmind

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// KEGGClient talks to the KEGG REST API (https://rest.kegg.jp)
type KEGGClient struct {
	// base URL of the REST endpoints
	url string

	hc *http.Client

	// optional response cache, may be nil
	cache *Cache
}

// PathwayMatch is one line of a find/pathway search
type PathwayMatch struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Pathway is a pathway reference on an enzyme record
type Pathway struct {
	// the KEGG database of the reference. Enzyme PATHWAY lines carry
	// no db column, so "path" is assumed for record-derived entries.
	DB   string `json:"db"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnzymeRecord is a parsed KEGG enzyme entry
type EnzymeRecord struct {
	// the EC number, ex "1.1.1.1"
	Entry string `json:"ec_number"`

	// the enzyme's accepted names
	Names []string `json:"name"`

	// the enzyme's class hierarchy
	Class []string `json:"class"`

	// pathways the enzyme takes part in
	Pathways []Pathway `json:"pathways"`

	// cofactor compounds
	Cofactors []string `json:"cofactors"`

	// effector compounds
	Effectors []string `json:"effectors"`
}

// NewKEGGClient makes a KEGG REST client. cache may be nil.
func NewKEGGClient(url string, timeout time.Duration, cache *Cache) *KEGGClient {
	return &KEGGClient{
		url:   strings.TrimRight(url, "/"),
		hc:    &http.Client{Timeout: timeout},
		cache: cache,
	}
}

// get fetches a KEGG REST path, consulting the cache first
func (c *KEGGClient) get(path string) (string, error) {
	key := "kegg:" + path
	if cached, ok := c.cache.Get(key); ok {
		return string(cached), nil
	}

	resp, err := c.hc.Get(c.url + path)
	if err != nil {
		return "", fmt.Errorf("KEGG request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("KEGG request failed (%d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read KEGG response: %w", err)
	}

	c.cache.Set(key, body)
	return string(body), nil
}

// FindPathways searches pathways by name or keyword
func (c *KEGGClient) FindPathways(query string) ([]PathwayMatch, error) {
	body, err := c.get("/find/pathway/" + query)
	if err != nil {
		return nil, err
	}

	var matches []PathwayMatch
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		id, desc, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		matches = append(matches, PathwayMatch{ID: id, Description: desc})
	}
	return matches, nil
}

// Get fetches the raw flat-file record for any KEGG id
func (c *KEGGClient) Get(id string) (string, error) {
	return c.get("/get/" + id)
}

// Enzyme fetches and parses the enzyme record for an EC number.
// When the record itself lists no pathways, link/pathway is queried
// as a fallback.
func (c *KEGGClient) Enzyme(ec string) (*EnzymeRecord, error) {
	body, err := c.get("/get/" + ensureECID(ec))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("empty KEGG response for %s", ec)
	}

	rec := parseEnzymeRecord(body)
	if len(rec.Pathways) == 0 {
		entry := rec.Entry
		if entry == "" {
			entry = ec
		}
		rec.Pathways = c.linkPathways(entry)
	}
	return rec, nil
}

// linkPathways resolves an EC number to its pathways via the link
// endpoint, then resolves their names via list. Best-effort: any
// failure returns nil rather than an error.
func (c *KEGGClient) linkPathways(ec string) []Pathway {
	ec = strings.TrimPrefix(strings.ToLower(ec), "ec:")

	body, err := c.get("/link/pathway/ec:" + ec)
	if err != nil || strings.TrimSpace(body) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) == 2 && strings.HasPrefix(parts[1], "path:") && !seen[parts[1]] {
			seen[parts[1]] = true
			ids = append(ids, parts[1])
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)

	// resolve the pathway names; fall back to empty names
	names := make(map[string]string)
	if listBody, err := c.get("/list/" + strings.Join(ids, "+")); err == nil {
		for _, line := range strings.Split(strings.TrimSpace(listBody), "\n") {
			if id, desc, found := strings.Cut(line, "\t"); found {
				names[id] = desc
			}
		}
	}

	pathways := make([]Pathway, 0, len(ids))
	for _, id := range ids {
		pathways = append(pathways, Pathway{DB: "path", ID: id, Name: names[id]})
	}
	return pathways
}

// ensureECID prefixes an EC number with "ec:" if it isn't already
func ensureECID(ec string) string {
	ec = strings.TrimSpace(ec)
	if strings.HasPrefix(strings.ToLower(ec), "ec:") {
		return ec
	}
	return "ec:" + ec
}

// parseEnzymeRecord reads KEGG's flat-file enzyme format: a 12-column
// field name followed by the field's content, continuation lines
// indented with spaces, the record closed by "///".
func parseEnzymeRecord(body string) *EnzymeRecord {
	rec := &EnzymeRecord{}

	field := ""
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "///") {
			break
		}

		var content string
		if len(line) > 12 {
			content = line[12:]
		}
		if !strings.HasPrefix(line, " ") {
			if name := strings.TrimSpace(line[:min(12, len(line))]); name != "" {
				field = name
			}
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		switch field {
		case "ENTRY":
			// ex: "EC 1.1.1.1                  Enzyme"
			cols := strings.Fields(content)
			if len(cols) > 1 && strings.EqualFold(cols[0], "EC") {
				rec.Entry = cols[1]
			} else if len(cols) > 0 {
				rec.Entry = cols[0]
			}
		case "NAME":
			rec.Names = append(rec.Names, strings.TrimSuffix(content, ";"))
		case "CLASS":
			rec.Class = append(rec.Class, strings.TrimSuffix(content, ";"))
		case "PATHWAY":
			if id, name, found := strings.Cut(content, " "); found {
				rec.Pathways = append(rec.Pathways, Pathway{
					DB:   "path",
					ID:   id,
					Name: strings.TrimSpace(name),
				})
			}
		case "COFACTOR":
			rec.Cofactors = append(rec.Cofactors, strings.TrimSuffix(content, ";"))
		case "EFFECTOR":
			rec.Effectors = append(rec.Effectors, strings.TrimSuffix(content, ";"))
		}
	}

	return rec
}
