package demo

import (
	"context"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mfields/courtside/auth"
	"github.com/mfields/courtside/controller/mockcontroller"
	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/db/mockdb"
	"github.com/mfields/courtside/model"
	"github.com/stretchr/testify/mock"
)

func TestUpdateAll(t *testing.T) {
	ctx := context.Background()

	mdb := &mockdb.DB{}
	ctrl := &mockcontroller.C{}

	c := clock.NewMock()
	c.Set(time.Date(2025, time.January, 15, 18, 0, 0, 0, time.UTC))
	authSvc, err := auth.New(c, mdb, "test-secret")
	if err != nil {
		t.Fatalf("error constructing auth service: %v", err)
	}

	// bot1 already exists with work to do, the rest get registered and
	// have nothing pending.
	bot1 := &model.Player{ID: 100, Username: "bot1"}
	mdb.On("GetPlayerByUsername", mock.Anything, "bot1").Return(bot1, nil)
	for i, name := range botNames[1:] {
		id := model.PlayerID(101 + i)
		mdb.On("GetPlayerByUsername", mock.Anything, name).Return(nil, db.ErrPlayerNotFound)
		mdb.On("AddPlayer", mock.Anything, name, mock.Anything, mock.Anything).
			Return(&model.Player{ID: id, Username: name}, nil)
		ctrl.On("ListFriendRequests", mock.Anything, id).Return([]model.FriendRequest{}, nil)
		mdb.On("ListLeagueInvites", mock.Anything, id).Return([]model.LeagueID{}, nil)
		ctrl.On("GetSchedule", mock.Anything, id).Return([]model.ScheduleDay{}, nil)
	}

	ctrl.On("ListFriendRequests", mock.Anything, bot1.ID).
		Return([]model.FriendRequest{{FromID: 7, ToID: bot1.ID}}, nil)
	ctrl.On("AcceptFriend", mock.Anything, bot1.ID, model.PlayerID(7)).Return(nil)

	mdb.On("ListLeagueInvites", mock.Anything, bot1.ID).Return([]model.LeagueID{3}, nil)
	ctrl.On("AcceptInvite", mock.Anything, bot1.ID, model.LeagueID(3)).Return(nil)

	schedule := []model.ScheduleDay{{
		Date: "2025-01-16",
		Games: []model.ScheduleEntry{
			{PredictionID: 40, Status: model.PREDICTION_PENDING},
			{PredictionID: 41, Status: model.PREDICTION_SUBMITTED},
		},
	}}
	ctrl.On("GetSchedule", mock.Anything, bot1.ID).Return(schedule, nil)
	ctrl.On("SubmitPrediction", mock.Anything, bot1.ID, model.PredictionID(40),
		mock.AnythingOfType("int"), mock.AnythingOfType("int")).Return(nil)

	bots := New(ctrl, authSvc, mdb)
	bots.UpdateAll(ctx)

	ctrl.AssertCalled(t, "AcceptFriend", mock.Anything, bot1.ID, model.PlayerID(7))
	ctrl.AssertCalled(t, "AcceptInvite", mock.Anything, bot1.ID, model.LeagueID(3))
	ctrl.AssertNumberOfCalls(t, "SubmitPrediction", 1)
	// Every missing bot was registered.
	mdb.AssertNumberOfCalls(t, "AddPlayer", len(botNames)-1)
}
