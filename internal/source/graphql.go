package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vanschouwen/streakline/internal/contrib"
)

const contributionsQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

// GraphQL is the authenticated alternate source. It yields exact
// per-day counts and an authoritative total, but requires a token, so
// it is only used when one is configured.
type GraphQL struct {
	client   *http.Client
	endpoint string
	token    string
}

// NewGraphQL builds the API source for the given endpoint (empty means
// the default API host derived from DefaultHost).
func NewGraphQL(endpoint, token string, timeout time.Duration) *GraphQL {
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://api.%s/graphql", DefaultHost)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GraphQL{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		token:    token,
	}
}

func (g *GraphQL) Name() string {
	return "graphql"
}

type graphqlResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (g *GraphQL) Fetch(ctx context.Context, username string) (Payload, error) {
	reqBody, err := json.Marshal(map[string]any{
		"query":     contributionsQuery,
		"variables": map[string]string{"login": username},
	})
	if err != nil {
		return Payload{}, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return Payload{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return Payload{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Payload{}, fmt.Errorf("%s: %w", username, ErrUserNotFound)
	case http.StatusTooManyRequests:
		return Payload{}, fmt.Errorf("%s: %w", username, ErrRateLimited)
	default:
		return Payload{}, &NetworkError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var decoded graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Payload{}, fmt.Errorf("decode response: %w", err)
	}

	for _, e := range decoded.Errors {
		if e.Type == "NOT_FOUND" {
			return Payload{}, fmt.Errorf("%s: %w", username, ErrUserNotFound)
		}
	}
	if decoded.Data.User == nil {
		return Payload{}, fmt.Errorf("%s: %w", username, ErrUserNotFound)
	}

	calendar := decoded.Data.User.ContributionsCollection.ContributionCalendar

	var days []contrib.Day
	for _, week := range calendar.Weeks {
		for _, d := range week.ContributionDays {
			date, err := time.ParseInLocation("2006-01-02", d.Date, time.UTC)
			if err != nil {
				return Payload{}, fmt.Errorf("decode day date %q: %w", d.Date, err)
			}
			days = append(days, contrib.Day{Date: date, Count: d.ContributionCount})
		}
	}

	return Payload{
		Days:          days,
		Total:         calendar.TotalContributions,
		TotalExplicit: true,
	}, nil
}
