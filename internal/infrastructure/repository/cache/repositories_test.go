package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/basketball-roster/internal/domain/player"
	"github.com/riskibarqy/basketball-roster/internal/domain/team"
	"github.com/riskibarqy/basketball-roster/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/basketball-roster/internal/platform/cache"
)

type countingTeams struct {
	*memory.TeamRepository
	listAllCalls int
}

func (c *countingTeams) ListAll(ctx context.Context) ([]team.Team, error) {
	c.listAllCalls++
	return c.TeamRepository.ListAll(ctx)
}

type countingPlayers struct {
	*memory.PlayerRepository
	listAllCalls int
}

func (c *countingPlayers) ListAll(ctx context.Context) ([]player.Player, error) {
	c.listAllCalls++
	return c.PlayerRepository.ListAll(ctx)
}

// gatedPlayers holds the first ListAll after its snapshot is taken until release is closed.
type gatedPlayers struct {
	*memory.PlayerRepository
	once     sync.Once
	snapshot chan struct{}
	release  chan struct{}
}

func (g *gatedPlayers) ListAll(ctx context.Context) ([]player.Player, error) {
	items, err := g.PlayerRepository.ListAll(ctx)
	g.once.Do(func() {
		close(g.snapshot)
		<-g.release
	})
	return items, err
}

func TestPlayerRepository_WritesInvalidateScoreboard(t *testing.T) {
	ctx := t.Context()
	store := basecache.NewStore(time.Minute)
	teamsMem := memory.NewTeamRepository(memory.SeedTeams())
	teams := &countingTeams{TeamRepository: teamsMem}
	players := &countingPlayers{PlayerRepository: memory.NewPlayerRepository(teamsMem, memory.SeedPlayers())}

	cachedTeams := NewTeamRepository(teams, store)
	cachedPlayers := NewPlayerRepository(players, store)

	for i := 0; i < 2; i++ {
		if _, err := cachedTeams.ListAll(ctx); err != nil {
			t.Fatalf("list all teams: %v", err)
		}
		if _, err := cachedPlayers.ListAll(ctx); err != nil {
			t.Fatalf("list all players: %v", err)
		}
	}
	if teams.listAllCalls != 1 || players.listAllCalls != 1 {
		t.Fatalf("expected one backend read each, got teams=%d players=%d", teams.listAllCalls, players.listAllCalls)
	}

	err := cachedPlayers.Create(ctx, player.Player{
		ID: "p-new", OwnerUserID: memory.DemoUserID, TeamID: "team-hawks", TeamName: "Hawks",
		LeagueID: memory.LeagueIDEastern, FullName: "New Guy", Height: 190, Weight: 80, Position: "Guard",
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	got, err := cachedPlayers.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all players: %v", err)
	}
	if players.listAllCalls != 2 {
		t.Fatalf("expected cache miss after write, calls=%d", players.listAllCalls)
	}
	if len(got) != len(memory.SeedPlayers())+1 {
		t.Fatalf("expected new player in scoreboard, got %d players", len(got))
	}
}

func TestPlayerRepository_NoopDeleteKeepsCache(t *testing.T) {
	ctx := t.Context()
	store := basecache.NewStore(time.Minute)
	teamsMem := memory.NewTeamRepository(memory.SeedTeams())
	players := &countingPlayers{PlayerRepository: memory.NewPlayerRepository(teamsMem, memory.SeedPlayers())}
	cachedPlayers := NewPlayerRepository(players, store)

	if _, err := cachedPlayers.ListAll(ctx); err != nil {
		t.Fatalf("list all players: %v", err)
	}
	ok, err := cachedPlayers.Delete(ctx, memory.DemoUserID, "player-other-01")
	if err != nil || ok {
		t.Fatalf("expected foreign delete to match nothing, ok=%v err=%v", ok, err)
	}
	if _, err := cachedPlayers.ListAll(ctx); err != nil {
		t.Fatalf("list all players: %v", err)
	}
	if players.listAllCalls != 1 {
		t.Fatalf("expected cache to survive no-op delete, calls=%d", players.listAllCalls)
	}
}

func TestPlayerRepository_WriteDuringLoadIsNotMasked(t *testing.T) {
	ctx := t.Context()
	store := basecache.NewStore(time.Minute)
	teamsMem := memory.NewTeamRepository(memory.SeedTeams())
	players := &gatedPlayers{
		PlayerRepository: memory.NewPlayerRepository(teamsMem, memory.SeedPlayers()),
		snapshot:         make(chan struct{}),
		release:          make(chan struct{}),
	}
	cachedPlayers := NewPlayerRepository(players, store)

	loaded := make(chan int, 1)
	go func() {
		items, _ := cachedPlayers.ListAll(ctx)
		loaded <- len(items)
	}()
	<-players.snapshot

	err := cachedPlayers.Create(ctx, player.Player{
		ID: "p-late", OwnerUserID: memory.DemoUserID, TeamID: "team-hawks", TeamName: "Hawks",
		LeagueID: memory.LeagueIDEastern, FullName: "Late Signing", Height: 188, Weight: 82, Position: "Guard",
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	close(players.release)
	if n := <-loaded; n != len(memory.SeedPlayers()) {
		t.Fatalf("expected in-flight read to see the pre-write snapshot, got %d players", n)
	}

	got, err := cachedPlayers.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all players: %v", err)
	}
	found := false
	for _, p := range got {
		if p.ID == "p-late" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected player created during an in-flight load to be listed, got %d players", len(got))
	}
}
