package swgoh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/swgoh-tools/holotable/internal/cache"
)

// ErrNoGuild is returned when resolving a guild from an ally code whose
// player is not in one.
var ErrNoGuild = errors.New("player is not in a guild")

// authHeader is the swgoh.gg bot access header.
const authHeader = "x-gg-bot-access"

// Client talks to the swgoh.gg API with cache-through GETs. Catalog payloads
// that fail to decode are hard errors; the lenient-degradation policy for
// stale ids lives in the analyzers, not here.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *cache.Store

	// Logf receives progress messages (cache hits, fetches). Nil is silent.
	Logf func(format string, args ...any)
}

// NewClient creates a client for the API at baseURL. store may be nil to
// disable caching.
func NewClient(baseURL, apiKey string, timeout time.Duration, store *cache.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		cache:   store,
	}
}

func (c *Client) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// Units fetches the unit catalog.
func (c *Client) Units(ctx context.Context) (*UnitsResponse, error) {
	body, err := c.getCached(ctx, "units", "/units/")
	if err != nil {
		return nil, err
	}
	var resp UnitsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("swgoh: decode units: %w", err)
	}
	return &resp, nil
}

// GearPieces fetches the gear catalog. The endpoint returns a bare array.
func (c *Client) GearPieces(ctx context.Context) ([]GearPiece, error) {
	body, err := c.getCached(ctx, "gear", "/gear/")
	if err != nil {
		return nil, err
	}
	var pieces []GearPiece
	if err := json.Unmarshal(body, &pieces); err != nil {
		return nil, fmt.Errorf("swgoh: decode gear: %w", err)
	}
	return pieces, nil
}

// Player fetches a player's profile and roster. Dashes in the ally code are
// accepted and stripped.
func (c *Client) Player(ctx context.Context, allyCode string) (*PlayerResponse, error) {
	normalized := strings.ReplaceAll(allyCode, "-", "")
	body, err := c.getCached(ctx, "player_"+normalized, "/player/"+normalized+"/")
	if err != nil {
		return nil, err
	}
	var resp PlayerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("swgoh: decode player %s: %w", normalized, err)
	}
	return &resp, nil
}

// Guild fetches a guild profile by id.
func (c *Client) Guild(ctx context.Context, guildID string) (*GuildResponse, error) {
	body, err := c.getCached(ctx, "guild_"+guildID, "/guild-profile/"+guildID+"/")
	if err != nil {
		return nil, err
	}
	var resp GuildResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("swgoh: decode guild %s: %w", guildID, err)
	}
	return &resp, nil
}

// GuildFromAllyCode resolves the guild a player belongs to.
func (c *Client) GuildFromAllyCode(ctx context.Context, allyCode string) (*GuildProfile, error) {
	player, err := c.Player(ctx, allyCode)
	if err != nil {
		return nil, err
	}
	if player.Data.GuildID == "" {
		return nil, fmt.Errorf("%w: ally code %s", ErrNoGuild, allyCode)
	}

	guild, err := c.Guild(ctx, player.Data.GuildID)
	if err != nil {
		return nil, err
	}
	return &guild.Data, nil
}

// getCached returns the response body for path, serving from the cache when
// a fresh entry exists and storing the body on a miss.
func (c *Client) getCached(ctx context.Context, key, path string) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			c.logf("loaded %s from cache", key)
			return body, nil
		}
	}

	c.logf("fetching %s from API", key)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("swgoh: build request %s: %w", path, err)
	}
	if c.apiKey != "" {
		req.Header.Set(authHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("swgoh: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("swgoh: get %s: unexpected status %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("swgoh: read %s: %w", path, err)
	}
	return body, nil
}
