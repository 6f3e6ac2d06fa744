package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"charter/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateSession(ctx context.Context, players []string, startingCash int) (game.SessionView, error) {
	var out game.SessionView
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions", map[string]any{
		"players":       players,
		"starting_cash": startingCash,
	}, &out)
	return out, err
}

func (c *Client) ListSessions(ctx context.Context) ([]game.SessionSummary, error) {
	var out struct {
		Sessions []game.SessionSummary `json:"sessions"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions", nil, &out)
	return out.Sessions, err
}

func (c *Client) SessionView(ctx context.Context, sessionID string) (game.SessionView, error) {
	var out game.SessionView
	err := c.jsonRequest(ctx, http.MethodGet, c.sessionPath(sessionID, ""), nil, &out)
	return out, err
}

func (c *Client) Market(ctx context.Context, sessionID string) ([]game.MarketRow, error) {
	var out struct {
		Market []game.MarketRow `json:"market"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, c.sessionPath(sessionID, "/market"), nil, &out)
	return out.Market, err
}

func (c *Client) Log(ctx context.Context, sessionID string) ([]string, error) {
	var out struct {
		Log []string `json:"log"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, c.sessionPath(sessionID, "/log"), nil, &out)
	return out.Log, err
}

func (c *Client) AssignCompany(ctx context.Context, sessionID, company, player string) (game.SessionView, error) {
	var out game.SessionView
	err := c.jsonRequest(ctx, http.MethodPost, c.sessionPath(sessionID, "/companies"), map[string]any{
		"company": company,
		"player":  player,
	}, &out)
	return out, err
}

func (c *Client) FormCorporation(ctx context.Context, sessionID, charter, player, company string, cellIndex int) (game.CorporationView, error) {
	var out game.CorporationView
	err := c.jsonRequest(ctx, http.MethodPost, c.sessionPath(sessionID, "/corporations"), map[string]any{
		"charter":    charter,
		"player":     player,
		"company":    company,
		"cell_index": cellIndex,
	}, &out)
	return out, err
}

func (c *Client) Corporation(ctx context.Context, sessionID, charter string) (game.CorporationView, error) {
	var out game.CorporationView
	err := c.jsonRequest(ctx, http.MethodGet, c.corpPath(sessionID, charter, "/"), nil, &out)
	return out, err
}

func (c *Client) BuyShare(ctx context.Context, sessionID, charter, player string) (game.CorporationView, error) {
	return c.shareTrade(ctx, sessionID, charter, player, "/buy")
}

func (c *Client) SellShare(ctx context.Context, sessionID, charter, player string) (game.CorporationView, error) {
	return c.shareTrade(ctx, sessionID, charter, player, "/sell")
}

func (c *Client) shareTrade(ctx context.Context, sessionID, charter, player, action string) (game.CorporationView, error) {
	var out game.CorporationView
	err := c.jsonRequest(ctx, http.MethodPost, c.corpPath(sessionID, charter, action), map[string]any{
		"player": player,
	}, &out)
	return out, err
}

func (c *Client) IssueShare(ctx context.Context, sessionID, charter string) (game.CorporationView, error) {
	var out game.CorporationView
	err := c.jsonRequest(ctx, http.MethodPost, c.corpPath(sessionID, charter, "/issue"), map[string]any{}, &out)
	return out, err
}

func (c *Client) PayDividend(ctx context.Context, sessionID, charter string, amount int) (game.CorporationView, error) {
	var out game.CorporationView
	err := c.jsonRequest(ctx, http.MethodPost, c.corpPath(sessionID, charter, "/dividend"), map[string]any{
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) Income(ctx context.Context, sessionID, charter string, base int) (int, error) {
	var out struct {
		Income int `json:"income"`
	}
	path := fmt.Sprintf("%s?base=%d", c.corpPath(sessionID, charter, "/income"), base)
	err := c.jsonRequest(ctx, http.MethodGet, path, nil, &out)
	return out.Income, err
}

func (c *Client) sessionPath(sessionID, suffix string) string {
	return "/v1/sessions/" + url.PathEscape(sessionID) + suffix
}

func (c *Client) corpPath(sessionID, charter, suffix string) string {
	return c.sessionPath(sessionID, "/corporations/"+url.PathEscape(charter)+suffix)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
