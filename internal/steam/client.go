package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jellydator/ttlcache/v3"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"golang.org/x/time/rate"
)

// New creates a Steam Web API client. The returned func stops the hero cache janitor.
func New(baseURL, apiKey string, heroTTL time.Duration, requestsPerSecond float64) (Client, func()) {
	heroes := ttlcache.New[string, map[int]string](
		ttlcache.WithTTL[string, map[int]string](heroTTL),
		ttlcache.WithDisableTouchOnHit[string, map[int]string](),
	)
	go heroes.Start()

	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), max(1, int(requestsPerSecond))),
		heroes:     heroes,
	}, heroes.Stop
}

// AccountToSteamID64 converts a 32-bit Dota account id into a 64-bit Steam ID.
func AccountToSteamID64(accountID int64) int64 {
	return steamID64Base + accountID
}

func (c *client) PlayerSummary(ctx context.Context, steamID int64) (*PlayerSummary, error) {
	params := url.Values{}
	params.Set("steamids", strconv.FormatInt(steamID, 10))

	var resp playerSummariesResponse
	if err := c.get(ctx, "/ISteamUser/GetPlayerSummaries/v0002/", params, &resp); err != nil {
		return nil, err
	}
	for _, p := range resp.Response.Players {
		if p.SteamID != strconv.FormatInt(steamID, 10) {
			continue
		}
		return &PlayerSummary{SteamID: steamID, Nickname: p.PersonaName, Avatar: p.AvatarFull}, nil
	}
	return nil, fmt.Errorf("steam profile %d: %w", steamID, apperrors.ErrNotFound)
}

func (c *client) HeroName(ctx context.Context, heroID int) (string, error) {
	heroes, err := c.Heroes(ctx)
	if err != nil {
		return "", err
	}
	name, ok := heroes[heroID]
	if !ok {
		return "", fmt.Errorf("hero id %d: %w", heroID, apperrors.ErrUnknownHero)
	}
	return name, nil
}

// Heroes returns the hero id to name table, fetching it at most once per TTL.
func (c *client) Heroes(ctx context.Context) (map[int]string, error) {
	if item := c.heroes.Get(heroesKey); item != nil {
		return item.Value(), nil
	}

	// Callers share the fetch, so one caller's cancellation must not fail the rest.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(heroesKey, func() (any, error) {
		var resp heroesResponse
		params := url.Values{}
		params.Set("language", "en_us")
		if err := c.get(fetchCtx, "/IEconDOTA2_570/GetHeroes/v1/", params, &resp); err != nil {
			return nil, err
		}
		heroes := make(map[int]string, len(resp.Result.Heroes))
		for _, h := range resp.Result.Heroes {
			heroes[h.ID] = strings.TrimPrefix(h.Name, heroPrefix)
		}
		c.heroes.Set(heroesKey, heroes, ttlcache.DefaultTTL)
		log.Debug("Refreshed hero table", "count", len(heroes))
		return heroes, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hero table: %w", err)
	}
	if shared {
		log.Debug("Shared in-flight hero table fetch")
	}
	return v.(map[int]string), nil
}

func (c *client) get(ctx context.Context, path string, params url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("steam request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("steam request %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("steam request %s: failed to decode response: %w", path, err)
	}
	return nil
}
