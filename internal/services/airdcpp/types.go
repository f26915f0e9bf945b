package airdcpp

import (
	"encoding/json"
	"fmt"
	"strings"
)

type authorizeRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	MaxInactivity int    `json:"max_inactivity"`
}

type authorizeResponse struct {
	AuthToken string `json:"auth_token"`
}

type searchInstanceRequest struct {
	Pattern    string `json:"pattern"`
	Limit      int    `json:"limit"`
	Expiration int    `json:"expiration"`
}

type searchInstanceResponse struct {
	ID json.Number `json:"id"`
}

type hubSearchQuery struct {
	Pattern        string   `json:"pattern"`
	Limit          int      `json:"limit"`
	FileExtensions []string `json:"file_extensions,omitempty"`
}

type hubSearchRequest struct {
	Query hubSearchQuery `json:"query"`
}

type hubSearchResponse struct {
	SearchID json.Number `json:"search_id"`
}

type searchResult struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
	Path string      `json:"path"`
	Size int64       `json:"size"`
	TTH  string      `json:"tth"`
}

type queueBundleRequest struct {
	TargetName string `json:"target_name"`
	Size       int64  `json:"size"`
	TTH        string `json:"tth"`
}

// Candidate is a single accepted search result, carrying everything the
// download dispatcher needs to queue it.
type Candidate struct {
	ID   string
	Name string
	Path string
	Size int64
	TTH  string
	Ext  string
}

// statusError carries a non-2xx response so callers can inspect the body for
// backend rejection markers.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	body := strings.TrimSpace(e.body)
	if body == "" {
		return fmt.Sprintf("backend returned %d", e.status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.status, body)
}
