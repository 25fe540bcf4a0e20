package helixmind

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func Test_StructureClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/download/1ABC.pdb":
			// primary URL is down, the client falls through
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		case "/models/1ABC.pdb":
			fmt.Fprint(w, "HEADER    TEST STRUCTURE")
		case "/sdf/42":
			fmt.Fprint(w, "42\n  -OEChem-3D\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewStructureClient(5 * time.Second)
	c.pdbURLs = func(id string) []string {
		return []string{srv.URL + "/download/" + id + ".pdb", srv.URL + "/models/" + id + ".pdb"}
	}
	c.pubchemURLs = func(cid string) []string {
		return []string{srv.URL + "/sdf/" + cid}
	}

	data, format, err := c.Fetch("pdb:1abc")
	if err != nil {
		t.Fatalf("Fetch(pdb) error = %v", err)
	}
	if format != "pdb" {
		t.Errorf("Fetch(pdb) format = %q, want pdb", format)
	}
	if data != "HEADER    TEST STRUCTURE" {
		t.Errorf("Fetch(pdb) data = %q", data)
	}

	data, format, err = c.Fetch("cid:42")
	if err != nil {
		t.Fatalf("Fetch(cid) error = %v", err)
	}
	if format != "sdf" {
		t.Errorf("Fetch(cid) format = %q, want sdf", format)
	}
	if data == "" {
		t.Error("Fetch(cid) returned no data")
	}
}

func Test_StructureClient_Fetch_badQuery(t *testing.T) {
	c := NewStructureClient(time.Second)
	if _, _, err := c.Fetch("1abc"); err == nil {
		t.Error("Fetch() without a pdb:/cid: prefix did not error")
	}
}
