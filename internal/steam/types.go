package steam

import (
	"net/http"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// steamID64Base is added to a 32-bit Dota account id to get the 64-bit Steam ID.
const steamID64Base int64 = 76561197960265728

const heroPrefix = "npc_dota_hero_"

const heroesKey = "heroes"

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	heroes     *ttlcache.Cache[string, map[int]string]
	group      singleflight.Group
}

// PlayerSummary is the public profile of a Steam account.
type PlayerSummary struct {
	SteamID  int64  `json:"steam_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type playerSummariesResponse struct {
	Response struct {
		Players []struct {
			SteamID     string `json:"steamid"`
			PersonaName string `json:"personaname"`
			AvatarFull  string `json:"avatarfull"`
		} `json:"players"`
	} `json:"response"`
}

type heroesResponse struct {
	Result struct {
		Heroes []struct {
			Name string `json:"name"`
			ID   int    `json:"id"`
		} `json:"heroes"`
	} `json:"result"`
}
