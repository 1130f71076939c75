package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"repodigest/pkg/gemini"
)

func TestBuildDigestPrompt(t *testing.T) {
	activity := "PUSH to main: 3 commits\n- fix: nil check in parser"

	prompt := gemini.BuildDigestPrompt(activity)

	if !strings.Contains(prompt, "release-notes assistant") {
		t.Errorf("prompt missing system context")
	}
	if !strings.Contains(prompt, activity) {
		t.Errorf("prompt missing activity context")
	}
}

func TestBuildPerspectivePrompt(t *testing.T) {
	prompt := gemini.BuildPerspectivePrompt("ui", "New settings page", "Adds a settings page component.")

	if !strings.Contains(prompt, "REQUESTED CATEGORY: ui") {
		t.Errorf("prompt missing requested category")
	}
	if !strings.Contains(prompt, "New settings page") {
		t.Errorf("prompt missing digest title")
	}
}

func TestClient_GenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req gemini.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		text := req.Contents[0].Parts[0].Text
		if text == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [
				{
					"content": {
						"parts": [
							{ "text": "mocked response string" }
						],
						"role": "model"
					}
				}
			]
		}`))
	}))
	defer ts.Close()

	client := gemini.NewClient("test-api-key")
	client.SetAPIURL(ts.URL)

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), gemini.GenerateRequest{
			Contents: []gemini.Content{
				{Parts: []gemini.Part{{Text: "Hello world"}}},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.FirstText() != "mocked response string" {
			t.Errorf("unexpected text: %q", resp.FirstText())
		}
	})

	t.Run("API Failure", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), gemini.GenerateRequest{
			Contents: []gemini.Content{
				{Parts: []gemini.Part{{Text: "cause_500"}}},
			},
		})
		if err == nil {
			t.Errorf("expected error on 500")
		}
	})

	t.Run("Wrong Key", func(t *testing.T) {
		bad := client.WithKey("other-key")
		_, err := bad.GenerateContent(context.Background(), gemini.GenerateRequest{
			Contents: []gemini.Content{
				{Parts: []gemini.Part{{Text: "Hello"}}},
			},
		})
		if err == nil {
			t.Errorf("expected error on wrong key")
		}
	})
}

func TestClient_GenerateJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gemini.GenerateRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt := req.Contents[0].Parts[0].Text

		body := `{"title": "A change", "category": "bugfix"}`
		if strings.Contains(prompt, "fenced") {
			// Models sometimes wrap JSON despite instructions.
			body = "```json\n" + body + "\n```"
		}

		resp := gemini.GenerateResponse{
			Candidates: []gemini.Candidate{
				{Content: gemini.Content{Parts: []gemini.Part{{Text: body}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	client := gemini.NewClient("k")
	client.SetAPIURL(ts.URL)

	var out struct {
		Title    string `json:"title"`
		Category string `json:"category"`
	}

	t.Run("Plain JSON", func(t *testing.T) {
		if err := client.GenerateJSON(context.Background(), "plain", &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Title != "A change" || out.Category != "bugfix" {
			t.Errorf("unexpected parse: %+v", out)
		}
	})

	t.Run("Fenced JSON", func(t *testing.T) {
		if err := client.GenerateJSON(context.Background(), "fenced", &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Title != "A change" {
			t.Errorf("unexpected parse: %+v", out)
		}
	})
}
