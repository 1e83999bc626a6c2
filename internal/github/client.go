// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

// Package github is a minimal GitHub REST client for repository discovery.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// TokenEnvVar names the environment variable holding the API token.
const TokenEnvVar = "GITHUB_TOKEN"

var (
	// ErrOwnerNotFound indicates the user or organization does not exist.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrRateLimited indicates the API rate limit is exhausted.
	ErrRateLimited = errors.New("rate limited by GitHub API")
)

// Repository is the subset of the repository object the tool needs.
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	CloneURL      string `json:"clone_url"`
	DefaultBranch string `json:"default_branch"`
	Language      string `json:"language"`
	Fork          bool   `json:"fork"`
	Archived      bool   `json:"archived"`
	Private       bool   `json:"private"`
	Owner         struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type Client struct {
	base  string
	token string
	http  *http.Client
}

// New creates a client for the given base URL. An empty base uses the
// public API; an empty token makes unauthenticated requests.
func New(base, token string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ListOwnerRepos returns all repositories of a user or organization,
// following pagination until exhausted.
func (c *Client) ListOwnerRepos(ctx context.Context, owner string) ([]Repository, error) {
	var all []Repository
	next := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=full_name",
		c.base, url.PathEscape(owner))

	for next != "" {
		page, nextURL, err := c.listPage(ctx, owner, next)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		next = nextURL
	}
	return all, nil
}

func (c *Client) listPage(ctx context.Context, owner, pageURL string) ([]Repository, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, "", fmt.Errorf("%w: %s", ErrOwnerNotFound, owner)
	case http.StatusForbidden, http.StatusTooManyRequests:
		if res.Header.Get("X-RateLimit-Remaining") == "0" {
			return nil, "", ErrRateLimited
		}
		return nil, "", fmt.Errorf("github API: forbidden listing %s", owner)
	default:
		return nil, "", fmt.Errorf("github API: unexpected status %d listing %s", res.StatusCode, owner)
	}

	var page []Repository
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, "", err
	}
	return page, nextLink(res.Header.Get("Link")), nil
}

// nextLink extracts the rel="next" URL from a Link header, or "".
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		seg := strings.Split(part, ";")
		if len(seg) < 2 {
			continue
		}
		if strings.TrimSpace(seg[1]) != `rel="next"` {
			continue
		}
		u := strings.TrimSpace(seg[0])
		return strings.TrimSuffix(strings.TrimPrefix(u, "<"), ">")
	}
	return ""
}
