package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Issue is the narrow slice of a Jira issue this backend creates.
type Issue struct {
	Summary     string
	Description string
	Priority    string
}

// Ticketer is the ticketing-service contract: create an issue, get back
// its external key.
type Ticketer interface {
	CreateIssue(ctx context.Context, issue Issue) (string, error)
}

// Client talks to the Jira Cloud REST API (v3) with basic auth.
type Client struct {
	host    string
	user    string
	apiKey  string
	project string
	http    *http.Client
}

func NewClient(host, user, apiKey, project string) *Client {
	return &Client{
		host:    host,
		user:    user,
		apiKey:  apiKey,
		project: project,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) CreateIssue(ctx context.Context, issue Issue) (string, error) {
	payload := map[string]any{
		"fields": map[string]any{
			"project":     map[string]string{"key": c.project},
			"summary":     issue.Summary,
			"description": issue.Description,
			"issuetype":   map[string]string{"name": "Bug"},
			"priority":    map[string]string{"name": issue.Priority},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://%s/rest/api/3/issue", c.host)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.user, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("jira: create issue returned %d: %s", resp.StatusCode, msg)
	}

	var out struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("jira: decode response: %w", err)
	}
	return out.Key, nil
}
