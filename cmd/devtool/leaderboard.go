package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
)

type LeaderboardCommand struct{}

func (c *LeaderboardCommand) Name() string {
	return "leaderboard"
}

func (c *LeaderboardCommand) Description() string {
	return "Print the archived top rounds ([limit] [api-url])"
}

func (c *LeaderboardCommand) Run(args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = n
		args = args[1:]
	}

	url := fmt.Sprintf("%s/api/v1/leaderboard?limit=%d", strings.TrimRight(apiURL(args), "/"), limit)
	entries, err := fetchLeaderboard(url)
	if err != nil {
		return err
	}

	PrintHeader("Leaderboard")
	if len(entries) == 0 {
		PrintInfo("No rounds archived yet")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(output, "%3d. %-32s %7d  whacks=%d misses=%d combo=%d saved=%d\n",
			e.Rank, e.PlayerName, e.Score, e.Whacks, e.Misses, e.MaxCombo, e.MoneySaved)
	}
	return nil
}

func fetchLeaderboard(url string) ([]domain.LeaderboardEntry, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var body struct {
		Entries []domain.LeaderboardEntry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return body.Entries, nil
}
