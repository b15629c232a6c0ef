package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"othello/experiments/metrics"
	"othello/game"
	"time"
)

// MoveRequest is the payload an agent server receives.
type MoveRequest struct {
	State *game.GameState `json:"state" binding:"required"`
}

// MoveResponse is the agent server's answer.
type MoveResponse struct {
	Move game.Square `json:"move"`
}

// RemoteAgent asks an agent server over HTTP for its moves.
type RemoteAgent struct {
	url    string
	client *http.Client
}

func NewRemoteAgent(url string, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// FindMove encodes the current state in JSON and posts it to the agent's move endpoint.
func (a *RemoteAgent) FindMove(state *game.GameState) (game.Square, metrics.SearchMetric, error) {
	body, err := json.Marshal(MoveRequest{State: state})
	if err != nil {
		return game.Square{}, metrics.SearchMetric{}, fmt.Errorf("failed to encode state: %w", err)
	}

	start := time.Now()
	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return game.Square{}, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Square{}, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, out)
	}

	var move MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return game.Square{}, metrics.SearchMetric{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return move.Move, metrics.SearchMetric{Duration: time.Since(start)}, nil
}
