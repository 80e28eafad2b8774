package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mfields/courtside/containers"
	"github.com/mfields/courtside/model"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// a counter to keep usernames, friend codes, and bdl ids from colliding across tests.
	idCtr = int32(0)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestDB_playerSaveAndLoad(t *testing.T) {
	ctx := context.Background()

	p := addPlayer(t)
	if p.ID <= 0 {
		t.Fatalf("expected the id to be assigned, got: %d", p.ID)
	}
	if p.Created.IsZero() {
		t.Error("expected the created time to be set")
	}

	byID, err := testDB.GetPlayer(ctx, p.ID)
	assertFatalf(t, err == nil, "error getting player: %v", err)
	if !reflect.DeepEqual(p, byID) {
		t.Errorf("player not as expected - actual: %v", byID)
	}

	byUsername, err := testDB.GetPlayerByUsername(ctx, p.Username)
	assertFatalf(t, err == nil, "error getting player by username: %v", err)
	assertEquals(t, "ID", p.ID, byUsername.ID)

	byCode, err := testDB.GetPlayerByFriendCode(ctx, p.FriendCode)
	assertFatalf(t, err == nil, "error getting player by friend code: %v", err)
	assertEquals(t, "ID", p.ID, byCode.ID)

	id, hash, err := testDB.GetCredentials(ctx, p.Username)
	assertFatalf(t, err == nil, "error getting credentials: %v", err)
	assertEquals(t, "ID", p.ID, id)
	assertEquals(t, "hash", "hash", hash)

	if _, err := testDB.GetPlayer(ctx, model.PlayerID(99999)); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got: %v", err)
	}
}

func TestDB_playerUniqueness(t *testing.T) {
	ctx := context.Background()
	p := addPlayer(t)

	if _, err := testDB.AddPlayer(ctx, p.Username, "hash", newFriendCode()); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for a taken username, got: %v", err)
	}
	if _, err := testDB.AddPlayer(ctx, newUsername(), "hash", p.FriendCode); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for a taken friend code, got: %v", err)
	}
}

func TestDB_friends(t *testing.T) {
	ctx := context.Background()
	a := addPlayer(t)
	b := addPlayer(t)

	err := testDB.AddFriendRequest(ctx, a.ID, b.ID)
	assertFatalf(t, err == nil, "error adding friend request: %v", err)

	if err := testDB.AddFriendRequest(ctx, a.ID, b.ID); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for a repeated request, got: %v", err)
	}

	requests, err := testDB.ListFriendRequests(ctx, b.ID)
	assertFatalf(t, err == nil, "error listing friend requests: %v", err)
	assertEquals(t, "requests", 1, len(requests))
	assertEquals(t, "from", a.ID, requests[0].FromID)

	// Accepting a request that doesn't exist changes nothing.
	if err := testDB.AcceptFriendRequest(ctx, b.ID, a.ID); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got: %v", err)
	}

	err = testDB.AcceptFriendRequest(ctx, a.ID, b.ID)
	assertFatalf(t, err == nil, "error accepting friend request: %v", err)

	requests, err = testDB.ListFriendRequests(ctx, b.ID)
	assertFatalf(t, err == nil, "error listing friend requests: %v", err)
	assertEquals(t, "requests", 0, len(requests))

	// The friendship reads the same from both sides.
	for _, tc := range []struct{ who, friend model.PlayerID }{{a.ID, b.ID}, {b.ID, a.ID}} {
		friends, err := testDB.ListFriends(ctx, tc.who)
		assertFatalf(t, err == nil, "error listing friends: %v", err)
		if !reflect.DeepEqual([]model.PlayerID{tc.friend}, friends) {
			t.Errorf("friends not as expected: %v", friends)
		}
	}

	err = testDB.DeleteFriend(ctx, b.ID, a.ID)
	assertFatalf(t, err == nil, "error deleting friend: %v", err)

	friends, err := testDB.ListFriends(ctx, a.ID)
	assertFatalf(t, err == nil, "error listing friends: %v", err)
	assertEquals(t, "friends", 0, len(friends))
}

func TestDB_gameSaveAndLoad(t *testing.T) {
	ctx := context.Background()

	g := newGame(t, 2*time.Hour)
	err := testDB.AddGame(ctx, g)
	assertFatalf(t, err == nil, "error adding game: %v", err)
	if g.ID <= 0 {
		t.Fatalf("expected the id to be assigned, got: %d", g.ID)
	}

	res, err := testDB.GetGame(ctx, g.ID)
	assertFatalf(t, err == nil, "error getting game: %v", err)
	assertEquals(t, "BDLID", g.BDLID, res.BDLID)
	assertEquals(t, "Season", g.Season, res.Season)
	assertEquals(t, "Status", model.GAME_UPCOMING, res.Status)
	assertEquals(t, "AwayTeam", g.AwayTeam, res.AwayTeam)
	assertEquals(t, "HomeTeam", g.HomeTeam, res.HomeTeam)
	assertTrue(t, "Date", g.Date.Equal(res.Date))

	byBDL, err := testDB.GetGameByBDLID(ctx, g.BDLID)
	assertFatalf(t, err == nil, "error getting game by bdl id: %v", err)
	assertEquals(t, "ID", g.ID, byBDL.ID)

	if err := testDB.AddGame(ctx, g); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for a repeated bdl id, got: %v", err)
	}
}

func TestDB_finalizeGameIsGuarded(t *testing.T) {
	ctx := context.Background()

	g := newGame(t, -2*time.Hour)
	err := testDB.AddGame(ctx, g)
	assertFatalf(t, err == nil, "error adding game: %v", err)

	unresolved, err := testDB.ListUnresolvedGamesBefore(ctx, time.Now().UTC())
	assertFatalf(t, err == nil, "error listing unresolved games: %v", err)
	assertTrue(t, "unresolved contains game", containsGame(unresolved, g.ID))

	changed, err := testDB.FinalizeGame(ctx, g.ID, 112, 108)
	assertFatalf(t, err == nil, "error finalizing game: %v", err)
	assertTrue(t, "changed", changed)

	// Finalizing twice is a no-op and the first score sticks.
	changed, err = testDB.FinalizeGame(ctx, g.ID, 50, 50)
	assertFatalf(t, err == nil, "error finalizing game again: %v", err)
	assertTrue(t, "not changed", !changed)

	res, err := testDB.GetGame(ctx, g.ID)
	assertFatalf(t, err == nil, "error getting game: %v", err)
	assertEquals(t, "Status", model.GAME_FINAL, res.Status)
	assertEquals(t, "AwayScore", 112, res.AwayScore)
	assertEquals(t, "HomeScore", 108, res.HomeScore)

	unresolved, err = testDB.ListUnresolvedGamesBefore(ctx, time.Now().UTC())
	assertFatalf(t, err == nil, "error listing unresolved games: %v", err)
	assertTrue(t, "no longer unresolved", !containsGame(unresolved, g.ID))
}

func TestDB_predictionLifecycle(t *testing.T) {
	ctx := context.Background()

	p := addPlayer(t)
	g := newGame(t, 2*time.Hour)
	err := testDB.AddGame(ctx, g)
	assertFatalf(t, err == nil, "error adding game: %v", err)

	pred, err := testDB.AddPrediction(ctx, p.ID, g.ID)
	assertFatalf(t, err == nil, "error adding prediction: %v", err)
	assertEquals(t, "Status", model.PREDICTION_PENDING, pred.Status)

	// Only one prediction per player and game.
	if _, err := testDB.AddPrediction(ctx, p.ID, g.ID); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for a repeated pair, got: %v", err)
	}

	found, err := testDB.FindPrediction(ctx, p.ID, g.ID)
	assertFatalf(t, err == nil, "error finding prediction: %v", err)
	assertEquals(t, "ID", pred.ID, found.ID)

	// Completing before submitting does nothing.
	ok, err := testDB.CompletePrediction(ctx, pred.ID, 90)
	assertFatalf(t, err == nil, "error completing prediction: %v", err)
	assertTrue(t, "not completed", !ok)

	leagueIDs := []model.LeagueID{addLeague(t, p.ID).ID}
	ok, err = testDB.SubmitPrediction(ctx, pred.ID, 110, 104, leagueIDs)
	assertFatalf(t, err == nil, "error submitting prediction: %v", err)
	assertTrue(t, "submitted", ok)

	// Submitting twice loses the guard.
	ok, err = testDB.SubmitPrediction(ctx, pred.ID, 90, 90, nil)
	assertFatalf(t, err == nil, "error submitting prediction again: %v", err)
	assertTrue(t, "not resubmitted", !ok)

	res, err := testDB.GetPrediction(ctx, pred.ID)
	assertFatalf(t, err == nil, "error getting prediction: %v", err)
	assertEquals(t, "Status", model.PREDICTION_SUBMITTED, res.Status)
	assertEquals(t, "AwayScore", 110, res.AwayScore)
	assertEquals(t, "HomeScore", 104, res.HomeScore)
	if !reflect.DeepEqual(leagueIDs, res.LeagueIDs) {
		t.Errorf("league ids not as expected: %v", res.LeagueIDs)
	}

	submitted, err := testDB.ListSubmittedPredictionsForGame(ctx, g.ID)
	assertFatalf(t, err == nil, "error listing submitted predictions: %v", err)
	assertEquals(t, "submitted", 1, len(submitted))

	ok, err = testDB.CompletePrediction(ctx, pred.ID, 88)
	assertFatalf(t, err == nil, "error completing prediction: %v", err)
	assertTrue(t, "completed", ok)

	// Completing twice keeps the first score.
	ok, err = testDB.CompletePrediction(ctx, pred.ID, 12)
	assertFatalf(t, err == nil, "error completing prediction again: %v", err)
	assertTrue(t, "not recompleted", !ok)

	completed, err := testDB.ListCompletedPredictions(ctx, p.ID)
	assertFatalf(t, err == nil, "error listing completed predictions: %v", err)
	assertEquals(t, "completed", 1, len(completed))
	assertEquals(t, "Score", 88, completed[0].Score)
}

func TestDB_deleteGameCascades(t *testing.T) {
	ctx := context.Background()

	p := addPlayer(t)
	g := newGame(t, 2*time.Hour)
	err := testDB.AddGame(ctx, g)
	assertFatalf(t, err == nil, "error adding game: %v", err)

	pred, err := testDB.AddPrediction(ctx, p.ID, g.ID)
	assertFatalf(t, err == nil, "error adding prediction: %v", err)

	err = testDB.DeleteGame(ctx, g.ID)
	assertFatalf(t, err == nil, "error deleting game: %v", err)

	if _, err := testDB.GetGame(ctx, g.ID); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got: %v", err)
	}
	if _, err := testDB.GetPrediction(ctx, pred.ID); !errors.Is(err, ErrPredictionNotFound) {
		t.Errorf("expected ErrPredictionNotFound, got: %v", err)
	}
}

func TestDB_leagueSetsStayDisjoint(t *testing.T) {
	ctx := context.Background()

	owner := addPlayer(t)
	joiner := addPlayer(t)
	league := addLeague(t, owner.ID)

	// The owner is a member from the start.
	res, err := testDB.GetLeague(ctx, league.ID)
	assertFatalf(t, err == nil, "error getting league: %v", err)
	if !reflect.DeepEqual([]model.PlayerID{owner.ID}, res.Members) {
		t.Fatalf("members not as expected: %v", res.Members)
	}

	err = testDB.AddLeaguePlayer(ctx, league.ID, joiner.ID, model.ROLE_REQUESTING)
	assertFatalf(t, err == nil, "error adding league player: %v", err)

	// A player holds exactly one role per league.
	if err := testDB.AddLeaguePlayer(ctx, league.ID, joiner.ID, model.ROLE_INVITED); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate adding a second role, got: %v", err)
	}

	// Moves are guarded on the source role.
	moved, err := testDB.MoveLeaguePlayer(ctx, league.ID, joiner.ID, model.ROLE_INVITED, model.ROLE_MEMBER)
	assertFatalf(t, err == nil, "error moving league player: %v", err)
	assertTrue(t, "not moved from wrong role", !moved)

	moved, err = testDB.MoveLeaguePlayer(ctx, league.ID, joiner.ID, model.ROLE_REQUESTING, model.ROLE_MEMBER)
	assertFatalf(t, err == nil, "error moving league player: %v", err)
	assertTrue(t, "moved", moved)

	res, err = testDB.GetLeague(ctx, league.ID)
	assertFatalf(t, err == nil, "error getting league: %v", err)
	assertEquals(t, "members", 2, len(res.Members))
	assertEquals(t, "requesting", 0, len(res.Requesting))

	invitee := addPlayer(t)
	err = testDB.AddLeaguePlayer(ctx, league.ID, invitee.ID, model.ROLE_INVITED)
	assertFatalf(t, err == nil, "error inviting player: %v", err)

	invites, err := testDB.ListLeagueInvites(ctx, invitee.ID)
	assertFatalf(t, err == nil, "error listing league invites: %v", err)
	if !reflect.DeepEqual([]model.LeagueID{league.ID}, invites) {
		t.Errorf("invites not as expected: %v", invites)
	}

	byCode, err := testDB.GetLeagueByJoinCode(ctx, league.JoinCode)
	assertFatalf(t, err == nil, "error getting league by join code: %v", err)
	assertEquals(t, "ID", league.ID, byCode.ID)

	// Only full members see the league in their list.
	leagues, err := testDB.ListLeaguesForPlayer(ctx, joiner.ID)
	assertFatalf(t, err == nil, "error listing leagues: %v", err)
	assertTrue(t, "league listed", containsLeague(leagues, league.ID))

	removed, err := testDB.RemoveLeaguePlayer(ctx, league.ID, joiner.ID)
	assertFatalf(t, err == nil, "error removing league player: %v", err)
	assertTrue(t, "removed", removed)

	removed, err = testDB.RemoveLeaguePlayer(ctx, league.ID, joiner.ID)
	assertFatalf(t, err == nil, "error removing league player again: %v", err)
	assertTrue(t, "not removed twice", !removed)

	err = testDB.DeleteLeague(ctx, league.ID)
	assertFatalf(t, err == nil, "error deleting league: %v", err)
	if _, err := testDB.GetLeague(ctx, league.ID); !errors.Is(err, ErrLeagueNotFound) {
		t.Errorf("expected ErrLeagueNotFound, got: %v", err)
	}
}

func addPlayer(t *testing.T) *model.Player {
	t.Helper()

	p, err := testDB.AddPlayer(context.Background(), newUsername(), "hash", newFriendCode())
	if err != nil {
		t.Fatalf("error adding player: %v", err)
	}
	return p
}

func addLeague(t *testing.T, ownerID model.PlayerID) *model.League {
	t.Helper()

	id := atomic.AddInt32(&idCtr, 1)
	l := &model.League{
		Name:     fmt.Sprintf("league-%d", id),
		OwnerID:  ownerID,
		JoinCode: fmt.Sprintf("%08d", 10000000+id),
		Mode:     model.MODE_CLASSIC,
	}
	if err := testDB.AddLeague(context.Background(), l); err != nil {
		t.Fatalf("error adding league: %v", err)
	}
	return l
}

func newGame(t *testing.T, delta time.Duration) *model.Game {
	t.Helper()

	id := atomic.AddInt32(&idCtr, 1)
	return &model.Game{
		BDLID:    int64(500000 + id),
		Date:     time.Now().UTC().Add(delta).Truncate(time.Microsecond),
		Season:   2024,
		Status:   model.GAME_UPCOMING,
		AwayTeam: model.ParseTeam("BOS"),
		HomeTeam: model.ParseTeam("NYK"),
	}
}

func newUsername() string {
	return fmt.Sprintf("player%d", atomic.AddInt32(&idCtr, 1))
}

func newFriendCode() string {
	return fmt.Sprintf("%08d", 20000000+atomic.AddInt32(&idCtr, 1))
}

func containsGame(games []model.Game, id model.GameID) bool {
	for _, g := range games {
		if g.ID == id {
			return true
		}
	}
	return false
}

func containsLeague(leagues []model.League, id model.LeagueID) bool {
	for _, l := range leagues {
		if l.ID == id {
			return true
		}
	}
	return false
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}
