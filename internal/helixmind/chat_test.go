package helixmind

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func Test_ChatClient_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth header")
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode chat request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("chat request messages = %+v", req.Messages)
		}
		if req.Messages[1].Content != "What is a FASTA file?" {
			t.Errorf("chat request prompt = %q", req.Messages[1].Content)
		}
		if req.MaxTokens != 512 {
			t.Errorf("chat request max_tokens = %d, want 512", req.MaxTokens)
		}

		fmt.Fprint(w, `{"choices":[{"message":{"content":"  A FASTA file holds sequences.  "}}]}`)
	}))
	defer srv.Close()

	c, err := NewChatClient(srv.URL, "test-model", "test-key", 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}

	reply, err := c.Ask(context.Background(), "What is a FASTA file?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if reply != "A FASTA file holds sequences." {
		t.Errorf("Ask() = %q, want trimmed reply", reply)
	}
}

func Test_ChatClient_Ask_httpError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewChatClient(srv.URL, "test-model", "bad-key", 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Ask(context.Background(), "hi"); err == nil {
		t.Error("Ask() on a 401 did not error")
	}
}

func Test_NewChatClient_missingKey(t *testing.T) {
	if _, err := NewChatClient("http://localhost", "m", "", time.Second); err == nil {
		t.Error("NewChatClient() without an API key did not error")
	}
}
