package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, heroCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ISteamUser/GetPlayerSummaries/v0002/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		if r.URL.Query().Get("steamids") != "76561197960265729" {
			w.Write([]byte(`{"response":{"players":[]}}`))
			return
		}
		w.Write([]byte(`{"response":{"players":[{"steamid":"76561197960265729","personaname":"Puppey","avatarfull":"https://example.com/a.jpg"}]}}`))
	})
	mux.HandleFunc("/IEconDOTA2_570/GetHeroes/v1/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(heroCalls, 1)
		w.Write([]byte(`{"result":{"heroes":[{"name":"npc_dota_hero_antimage","id":1},{"name":"npc_dota_hero_crystal_maiden","id":5}],"status":200}}`))
	})
	mux.HandleFunc("/broken/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return httptest.NewServer(mux)
}

func TestAccountToSteamID64(t *testing.T) {
	assert.Equal(t, int64(76561197960265728), AccountToSteamID64(0))
	assert.Equal(t, int64(76561198000000000), AccountToSteamID64(39734272))
}

func TestPlayerSummary(t *testing.T) {
	var heroCalls int32
	srv := newTestServer(t, &heroCalls)
	defer srv.Close()

	c, stop := New(srv.URL, "test-key", time.Hour, 100)
	defer stop()

	t.Run("known profile", func(t *testing.T) {
		p, err := c.PlayerSummary(context.Background(), 76561197960265729)
		require.NoError(t, err)
		assert.Equal(t, "Puppey", p.Nickname)
		assert.Equal(t, "https://example.com/a.jpg", p.Avatar)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := c.PlayerSummary(context.Background(), 42)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestHeroName(t *testing.T) {
	var heroCalls int32
	srv := newTestServer(t, &heroCalls)
	defer srv.Close()

	c, stop := New(srv.URL, "test-key", time.Hour, 100)
	defer stop()
	ctx := context.Background()

	name, err := c.HeroName(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "crystal_maiden", name, "prefix must be stripped")

	name, err = c.HeroName(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "antimage", name)

	_, err = c.HeroName(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUnknownHero)

	assert.Equal(t, int32(1), atomic.LoadInt32(&heroCalls), "hero table should be fetched once and cached")
}

func TestGet_ErrorStatus(t *testing.T) {
	var heroCalls int32
	srv := newTestServer(t, &heroCalls)
	defer srv.Close()

	c, stop := New(srv.URL+"/broken", "test-key", time.Hour, 100)
	defer stop()

	_, err := c.HeroName(context.Background(), 1)
	assert.Error(t, err)
}

func TestHeroes_SharedFetchOutlivesCallerCancellation(t *testing.T) {
	var heroCalls int32
	srv := newTestServer(t, &heroCalls)
	defer srv.Close()

	c, stop := New(srv.URL, "test-key", time.Hour, 100)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	heroes, err := c.Heroes(ctx)
	require.NoError(t, err, "the hero table fetch is shared and must not inherit one caller's cancellation")
	assert.Equal(t, "antimage", heroes[1])

	name, err := c.HeroName(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "crystal_maiden", name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&heroCalls))
}
