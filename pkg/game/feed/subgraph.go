package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"quickhacks/pkg/game/world"
)

// Query limits for the player list
const (
	MinBalance    = 100
	MaxMapPlayers = 500
)

const playersQuery = `query GetMapPlayers {
  players(where: {currentBalance_gt: "%d"}, orderBy: currentBalance, orderDirection: desc, first: %d) {
    id
    currentBalance
  }
}`

// Subgraph fetches players from a GraphQL endpoint.
type Subgraph struct {
	URL    string
	Client *http.Client
}

// NewSubgraph creates a source for url with a 10 second timeout.
func NewSubgraph(url string) *Subgraph {
	return &Subgraph{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLResponse struct {
	Data struct {
		Players []struct {
			ID             string `json:"id"`
			CurrentBalance string `json:"currentBalance"`
		} `json:"players"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Fetch queries the endpoint. Any failure yields an empty list and is logged.
func (s *Subgraph) Fetch(ctx context.Context) Result {
	players, err := s.fetch(ctx)
	if err != nil {
		log.Printf("Error fetching map players: %v", err)
		return Result{Err: err}
	}
	return Result{Players: players}
}

func (s *Subgraph) fetch(ctx context.Context) ([]world.PlayerRecord, error) {
	body, err := json.Marshal(graphQLRequest{Query: fmt.Sprintf(playersQuery, MinBalance, MaxMapPlayers)})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	var out graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("graphql: %s", out.Errors[0].Message)
	}

	players := make([]world.PlayerRecord, 0, len(out.Data.Players))
	for _, p := range out.Data.Players {
		balance, err := strconv.ParseUint(p.CurrentBalance, 10, 64)
		if err != nil {
			log.Printf("Skipping player %s with balance %q", p.ID, p.CurrentBalance)
			continue
		}
		players = append(players, world.PlayerRecord{Address: p.ID, Balance: balance})
	}
	return players, nil
}
