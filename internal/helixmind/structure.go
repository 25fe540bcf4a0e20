package helixmind

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StructureClient fetches 3D structure files from the RCSB PDB and
// PubChem repositories.
type StructureClient struct {
	hc *http.Client

	// overridable for tests
	pdbURLs     func(id string) []string
	pubchemURLs func(cid string) []string
}

// NewStructureClient makes a structure repository client
func NewStructureClient(timeout time.Duration) *StructureClient {
	return &StructureClient{
		hc: &http.Client{Timeout: timeout},
		pdbURLs: func(id string) []string {
			return []string{
				fmt.Sprintf("https://files.rcsb.org/download/%s.pdb", id),
				fmt.Sprintf("https://models.rcsb.org/%s.pdb", id),
			}
		},
		pubchemURLs: func(cid string) []string {
			return []string{
				fmt.Sprintf("https://pubchem.ncbi.nlm.nih.gov/rest/pug/compound/cid/%s/SDF?record_type=3d", cid),
				fmt.Sprintf("https://pubchem.ncbi.nlm.nih.gov/rest/pug/compound/cid/%s/record/SDF/?record_type=3d", cid),
			}
		},
	}
}

// Fetch resolves a structure query of the form "pdb:<ID>" or "cid:<N>"
// to the structure file's contents and its format ("pdb" or "sdf").
// Each repository has two candidate URLs; the first 200 wins.
func (c *StructureClient) Fetch(query string) (data, format string, err error) {
	switch {
	case strings.HasPrefix(query, "pdb:"):
		id := strings.ToUpper(strings.TrimPrefix(query, "pdb:"))
		data, err = c.first(c.pdbURLs(id))
		return data, "pdb", err

	case strings.HasPrefix(query, "cid:"):
		cid := strings.TrimPrefix(query, "cid:")
		data, err = c.first(c.pubchemURLs(cid))
		return data, "sdf", err

	default:
		return "", "", fmt.Errorf("query must start with 'pdb:' or 'cid:'")
	}
}

// first returns the body of the first URL answering 200
func (c *StructureClient) first(urls []string) (string, error) {
	var lastErr error
	for _, u := range urls {
		resp, err := c.hc.Get(u)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				lastErr = err
				continue
			}
			return string(body), nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("structure fetch failed (%d) for %s", resp.StatusCode, u)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no structure URLs to try")
	}
	return "", lastErr
}
