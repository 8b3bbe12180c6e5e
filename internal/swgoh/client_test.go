package swgoh

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/swgoh-tools/holotable/internal/cache"
)

// newTestServer serves canned payloads and counts requests per path.
func newTestServer(t *testing.T, payloads map[string]string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestCache(t *testing.T) *cache.Store {
	t.Helper()
	s, err := cache.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUnitsDecodesCatalog(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/units/": `{"data":[{"name":"Darth Vader","base_id":"VADER","combat_type":1,"alignment":2}]}`,
	})
	c := NewClient(srv.URL, "key", 5*time.Second, nil)

	units, err := c.Units(context.Background())
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	if len(units.Data) != 1 || units.Data[0].BaseID != "VADER" {
		t.Errorf("units = %+v", units)
	}
}

func TestSecondCallServedFromCache(t *testing.T) {
	srv, hits := newTestServer(t, map[string]string{
		"/gear/": `[{"base_id":"172","tier":12}]`,
	})
	c := NewClient(srv.URL, "key", 5*time.Second, newTestCache(t))
	ctx := context.Background()

	if _, err := c.GearPieces(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GearPieces(ctx); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (second call cached)", hits.Load())
	}
}

func TestPlayerNormalizesAllyCode(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/player/123456789/": `{"data":{"ally_code":123456789,"name":"alice"}}`,
	})
	c := NewClient(srv.URL, "key", 5*time.Second, nil)

	player, err := c.Player(context.Background(), "123-456-789")
	if err != nil {
		t.Fatalf("Player: %v", err)
	}
	if player.Data.Name != "alice" {
		t.Errorf("player = %+v", player.Data)
	}
}

func TestMalformedPayloadIsHardError(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/units/": `{"data": not json`,
	})
	c := NewClient(srv.URL, "key", 5*time.Second, nil)

	if _, err := c.Units(context.Background()); err == nil {
		t.Error("expected decode error for malformed payload")
	}
}

func TestErrorStatusIsHardError(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := NewClient(srv.URL, "key", 5*time.Second, nil)

	if _, err := c.Units(context.Background()); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestGuildFromAllyCode(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/player/111111111/":      `{"data":{"ally_code":111111111,"name":"alice","guild_id":"G-42","guild_name":"Shadow Collective"}}`,
		"/guild-profile/G-42/": `{"data":{"guild_id":"G-42","name":"Shadow Collective","member_count":2,"members":[{"player_name":"alice","ally_code":111111111},{"player_name":"bob","ally_code":222222222}]}}`,
	})
	c := NewClient(srv.URL, "key", 5*time.Second, nil)

	guild, err := c.GuildFromAllyCode(context.Background(), "111111111")
	if err != nil {
		t.Fatalf("GuildFromAllyCode: %v", err)
	}
	if guild.Name != "Shadow Collective" || len(guild.Members) != 2 {
		t.Errorf("guild = %+v", guild)
	}
}

func TestGuildFromAllyCodeWithoutGuild(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/player/111111111/": `{"data":{"ally_code":111111111,"name":"loner"}}`,
	})
	c := NewClient(srv.URL, "key", 5*time.Second, nil)

	_, err := c.GuildFromAllyCode(context.Background(), "111111111")
	if !errors.Is(err, ErrNoGuild) {
		t.Errorf("err = %v, want ErrNoGuild", err)
	}
}

func TestGuildRostersSkipsFailedMembers(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/player/111111111/": `{"data":{"ally_code":111111111,"name":"alice"}}`,
		"/player/333333333/": `{"data":{"ally_code":333333333,"name":"carol"}}`,
		// 222222222 is missing and will 404.
	})
	c := NewClient(srv.URL, "key", 5*time.Second, nil)

	members := []GuildMember{
		{PlayerName: "alice", AllyCode: 111111111},
		{PlayerName: "bob", AllyCode: 222222222},
		{PlayerName: "carol", AllyCode: 333333333},
	}

	var progressed atomic.Int64
	rosters, failed, err := c.GuildRosters(context.Background(), members, RosterFetchOptions{
		Workers:    2,
		OnProgress: func(GuildMember, error) { progressed.Add(1) },
	})
	if err != nil {
		t.Fatalf("GuildRosters: %v", err)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(rosters) != 2 {
		t.Fatalf("len(rosters) = %d, want 2", len(rosters))
	}
	// Member order is preserved regardless of worker scheduling.
	if rosters[0].Data.Name != "alice" || rosters[1].Data.Name != "carol" {
		t.Errorf("order = %s, %s; want alice, carol", rosters[0].Data.Name, rosters[1].Data.Name)
	}
	if progressed.Load() != 3 {
		t.Errorf("progress callbacks = %d, want 3", progressed.Load())
	}
}

func TestGuildRostersCancelled(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/player/111111111/": `{"data":{"ally_code":111111111,"name":"alice"}}`,
	})
	c := NewClient(srv.URL, "key", 5*time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.GuildRosters(ctx, []GuildMember{{AllyCode: 111111111}}, RosterFetchOptions{Workers: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
