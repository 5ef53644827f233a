package jira

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeToken(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jira-token")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write token file: %v", err)
	}
	return path
}

func TestNewClient(t *testing.T) {
	t.Run("TokenTrimmed", func(t *testing.T) {
		c, err := NewClient("https://jira.example.com/", writeToken(t, "secret-token\n"))
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if c.token != "secret-token" {
			t.Errorf("Token not trimmed: %q", c.token)
		}
		if c.baseURL != "https://jira.example.com" {
			t.Errorf("Base URL not normalized: %q", c.baseURL)
		}
	})

	t.Run("MissingTokenFile", func(t *testing.T) {
		if _, err := NewClient("https://jira.example.com", "/no/such/token"); err == nil {
			t.Fatal("Expected error for missing token file")
		}
	})

	t.Run("EmptyTokenFile", func(t *testing.T) {
		if _, err := NewClient("https://jira.example.com", writeToken(t, "  \n")); err == nil {
			t.Fatal("Expected error for empty token file")
		}
	})
}

func TestGetIssue(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/rest/api/2/issue/FSDS-189" {
				t.Errorf("Unexpected path: %s", r.URL.Path)
			}
			if r.URL.Query().Get("fields") != "summary,reporter" {
				t.Errorf("Unexpected fields query: %s", r.URL.RawQuery)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer secret" {
				t.Errorf("Unexpected auth header: %q", got)
			}
			if r.Header.Get("X-Request-Id") == "" {
				t.Error("Missing request id header")
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"key": "FSDS-189",
				"fields": {
					"summary": "Fix crash",
					"reporter": {"displayName": "John Smith"}
				}
			}`))
		}))
		defer srv.Close()

		c, err := NewClient(srv.URL, writeToken(t, "secret"))
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		issue, err := c.GetIssue(context.Background(), "FSDS-189")
		if err != nil {
			t.Fatalf("GetIssue failed: %v", err)
		}
		if issue.Fields.Summary != "Fix crash" {
			t.Errorf("Unexpected summary: %q", issue.Fields.Summary)
		}
		if issue.Fields.Reporter.DisplayName != "John Smith" {
			t.Errorf("Unexpected reporter: %q", issue.Fields.Reporter.DisplayName)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"errorMessages":["Issue does not exist"]}`, http.StatusNotFound)
		}))
		defer srv.Close()

		c, err := NewClient(srv.URL, writeToken(t, "secret"))
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		_, err = c.GetIssue(context.Background(), "FSDS-9999")
		if !errors.Is(err, ErrRequestFailed) {
			t.Fatalf("Expected ErrRequestFailed, got %v", err)
		}
	})

	t.Run("AuthRejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c, err := NewClient(srv.URL, writeToken(t, "stale"))
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		_, err = c.GetIssue(context.Background(), "FSDS-1")
		if !errors.Is(err, ErrRequestFailed) {
			t.Fatalf("Expected ErrRequestFailed, got %v", err)
		}
	})

	t.Run("ServerUnreachable", func(t *testing.T) {
		c, err := NewClient("http://127.0.0.1:1", writeToken(t, "secret"))
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		_, err = c.GetIssue(context.Background(), "FSDS-1")
		if !errors.Is(err, ErrRequestFailed) {
			t.Fatalf("Expected ErrRequestFailed, got %v", err)
		}
	})
}

func TestSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"key": "FSDS-77",
			"fields": {"summary": "Tune cache limits", "reporter": {"displayName": "Jane Doe"}}
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, writeToken(t, "secret"))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	src := &Source{Client: c, Prefix: "FSDS"}
	if src.Name() != "jira" {
		t.Errorf("Unexpected source name: %q", src.Name())
	}

	rec, err := src.Fetch(context.Background(), 77)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if rec.Key() != "FSDS-77" {
		t.Errorf("Expected key FSDS-77, got %q", rec.Key())
	}
	if rec.Title != "Tune cache limits" {
		t.Errorf("Title not taken verbatim: %q", rec.Title)
	}
	if rec.Author != "Jane Doe" {
		t.Errorf("Author not taken verbatim: %q", rec.Author)
	}
}
