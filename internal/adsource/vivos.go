// Package adsource fetches candidate ads from the Vivos ad network.
package adsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chatads/internal/models"
	"chatads/internal/validation"
)

// maxCandidates is the most candidates considered per call; the network may
// return more, the rest are ignored.
const maxCandidates = 8

// networkAd is the wire format of a single ad from the Vivos API.
type networkAd struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	TargetURL     string  `json:"target_url"`
	ImageURL      string  `json:"image_url"`
	CPCBid        float64 `json:"cpc_bid"`
	ImpressionURL string  `json:"impression_url"`
	ClickURL      string  `json:"click_url"`
}

type adsResponse struct {
	Ads []networkAd `json:"ads"`
}

// Client is an HTTP client for the Vivos ad network.
type Client struct {
	baseURL      string
	publisherKey string
	httpClient   *http.Client
}

// New creates a Client with the default publisher key.
func New(baseURL, publisherKey string) *Client {
	return &Client{
		baseURL:      baseURL,
		publisherKey: publisherKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch requests ads for the keyword set. publisherKey overrides the
// configured default when non-empty. Returns at most 8 candidates; an empty
// slice means the network had nothing for these keywords.
func (c *Client) Fetch(ctx context.Context, kws []string, publisherKey string) ([]models.AdResult, error) {
	if publisherKey == "" {
		publisherKey = c.publisherKey
	}

	params := url.Values{}
	params.Set("keywords", strings.Join(kws, " "))
	params.Set("publisher_key", publisherKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ad network returned %d: %s", resp.StatusCode, string(body))
	}

	var data adsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make([]models.AdResult, 0, min(len(data.Ads), maxCandidates))
	for _, ad := range data.Ads {
		if len(out) == maxCandidates {
			break
		}
		// Drop ads whose landing page is not plain http(s); a javascript:
		// or data: link must never reach the chat client.
		if ok, _ := validation.ValidateURL(ad.TargetURL); !ok {
			continue
		}
		out = append(out, toResult(ad))
	}

	return out, nil
}

// toResult maps the Vivos wire format to the internal candidate shape,
// substituting display fallbacks for missing text.
func toResult(ad networkAd) models.AdResult {
	title := ad.Title
	if title == "" {
		title = "Sponsored Ad"
	}
	snippet := ad.Message
	if snippet == "" {
		snippet = ad.Title
	}
	if snippet == "" {
		snippet = "Click to learn more"
	}
	source := ad.Title
	if source == "" {
		source = "Sponsored"
	}
	return models.AdResult{
		Title:         title,
		Link:          ad.TargetURL,
		Snippet:       snippet,
		Thumbnail:     ad.ImageURL,
		Source:        source,
		BidValue:      ad.CPCBid,
		AdCreativeID:  ad.ID,
		ImpressionURL: ad.ImpressionURL,
		ClickURL:      ad.ClickURL,
	}
}
