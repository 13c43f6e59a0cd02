package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vanschouwen/streakline/internal/contrib"
)

const graphqlBody = `{
  "data": {
    "user": {
      "contributionsCollection": {
        "contributionCalendar": {
          "totalContributions": 321,
          "weeks": [
            {"contributionDays": [
              {"date": "2025-01-12", "contributionCount": 0},
              {"date": "2025-01-13", "contributionCount": 6}
            ]},
            {"contributionDays": [
              {"date": "2025-01-19", "contributionCount": 2}
            ]}
          ]
        }
      }
    }
  }
}`

func TestGraphQLFetch(t *testing.T) {
	var gotAuth string
	var gotVars map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotVars = req.Variables
		w.Write([]byte(graphqlBody))
	}))
	defer srv.Close()

	g := NewGraphQL(srv.URL, "secret-token", 5*time.Second)
	payload, err := g.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotVars["login"] != "octocat" {
		t.Errorf("login variable = %v", gotVars["login"])
	}
	if len(payload.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(payload.Days))
	}
	if !payload.TotalExplicit || payload.Total != 321 {
		t.Errorf("total = %d (explicit=%v), want explicit 321", payload.Total, payload.TotalExplicit)
	}
	if !payload.Days[1].Date.Equal(contrib.NewDate(2025, time.January, 13)) || payload.Days[1].Count != 6 {
		t.Errorf("unexpected day: %+v", payload.Days[1])
	}
}

func TestGraphQLFetchUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":null},"errors":[{"type":"NOT_FOUND","message":"no such user"}]}`))
	}))
	defer srv.Close()

	g := NewGraphQL(srv.URL, "secret-token", 5*time.Second)
	if _, err := g.Fetch(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestGraphQLFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGraphQL(srv.URL, "secret-token", 5*time.Second)
	_, err := g.Fetch(context.Background(), "octocat")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("error = %v, want *NetworkError", err)
	}
}
