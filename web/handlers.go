package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mfields/courtside/auth"
	"github.com/mfields/courtside/controller"
	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error   string `json:"error"`
	Expired bool   `json:"expired,omitempty"`
}

// renderError maps controller errors onto status codes. Anything not
// explicitly typed is a 500 with the detail kept out of the response.
func renderError(render *render.Render, w http.ResponseWriter, err error) {
	var vErr *model.ValidationError
	var aErr *model.AuthorizationError
	var cErr *model.ConflictError

	switch {
	case errors.As(err, &vErr):
		render.JSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Msg})
	case errors.As(err, &aErr):
		render.JSON(w, http.StatusForbidden, errorResponse{Error: aErr.Msg})
	case errors.As(err, &cErr):
		render.JSON(w, http.StatusConflict, errorResponse{Error: cErr.Msg, Expired: cErr.Expired})
	case errors.Is(err, db.ErrPlayerNotFound),
		errors.Is(err, db.ErrGameNotFound),
		errors.Is(err, db.ErrPredictionNotFound),
		errors.Is(err, db.ErrLeagueNotFound):
		render.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		render.JSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		log.Printf("internal error handling request: %v", err)
		render.JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decode(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return model.Validationf("error parsing request body: %v", err)
	}
	return nil
}

// player returns the id set by the auth middleware. The router only
// reaches handlers through the middleware, so a missing id is a bug.
func player(r *http.Request) model.PlayerID {
	id, ok := auth.PlayerFrom(r.Context())
	if !ok {
		panic("handler reached without an authenticated player")
	}
	return id
}

func urlID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id
}

type playerResponse struct {
	ID         model.PlayerID `json:"id"`
	Username   string         `json:"username"`
	FriendCode string         `json:"friendCode"`
	Created    time.Time      `json:"created"`
}

func toPlayerResponse(p *model.Player) playerResponse {
	return playerResponse{
		ID:         p.ID,
		Username:   p.Username,
		FriendCode: p.FriendCode,
		Created:    p.Created,
	}
}

func registerHandler(authSvc auth.Service, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		p, err := authSvc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, toPlayerResponse(p))
	}
}

func loginHandler(authSvc auth.Service, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		token, err := authSvc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

func meHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := ctrl.GetPlayer(r.Context(), player(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, toPlayerResponse(p))
	}
}

func scheduleHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := ctrl.GetSchedule(r.Context(), player(r))
		if err != nil {
			renderError(render, w, err)
			return
		}

		type entry struct {
			PredictionID model.PredictionID     `json:"predictionId"`
			Date         time.Time              `json:"date"`
			Status       model.PredictionStatus `json:"status"`
			AwayTeam     string                 `json:"awayTeam"`
			HomeTeam     string                 `json:"homeTeam"`
			AwayScore    int                    `json:"awayScore"`
			HomeScore    int                    `json:"homeScore"`
			Leagues      []string               `json:"leagues"`
		}
		type day struct {
			Date  string  `json:"date"`
			Games []entry `json:"games"`
		}

		resp := make([]day, 0, len(days))
		for _, d := range days {
			games := make([]entry, 0, len(d.Games))
			for _, g := range d.Games {
				games = append(games, entry{
					PredictionID: g.PredictionID,
					Date:         g.Date,
					Status:       g.Status,
					AwayTeam:     g.AwayTeam,
					HomeTeam:     g.HomeTeam,
					AwayScore:    g.AwayScore,
					HomeScore:    g.HomeScore,
					Leagues:      g.Leagues,
				})
			}
			resp = append(resp, day{Date: d.Date, Games: games})
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func submitPredictionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AwayScore int `json:"awayScore"`
			HomeScore int `json:"homeScore"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		id := model.PredictionID(urlID(r, "predictionID"))
		if err := ctrl.SubmitPrediction(r.Context(), player(r), id, req.AwayScore, req.HomeScore); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "submitted"})
	}
}

func rankingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := ctrl.GetRanking(r.Context(), model.GameID(urlID(r, "gameID")), player(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{
			"rank":  ranking.Rank,
			"score": ranking.Score,
		})
	}
}

type leagueResponse struct {
	ID         model.LeagueID   `json:"id"`
	Name       string           `json:"name"`
	OwnerID    model.PlayerID   `json:"ownerId"`
	JoinCode   string           `json:"joinCode"`
	Mode       model.LeagueMode `json:"mode"`
	Team       string           `json:"team,omitempty"`
	Members    []model.PlayerID `json:"members"`
	Invited    []model.PlayerID `json:"invited,omitempty"`
	Requesting []model.PlayerID `json:"requesting,omitempty"`
}

func toLeagueResponse(l *model.League) leagueResponse {
	resp := leagueResponse{
		ID:         l.ID,
		Name:       l.Name,
		OwnerID:    l.OwnerID,
		JoinCode:   l.JoinCode,
		Mode:       l.Mode,
		Members:    l.Members,
		Invited:    l.Invited,
		Requesting: l.Requesting,
	}
	if l.Team != nil {
		resp.Team = l.Team.Friendly()
	}
	return resp
}

func createLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
			Mode string `json:"mode"`
			Team string `json:"team"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		mode, ok := model.ParseLeagueMode(req.Mode)
		if !ok {
			renderError(render, w, model.Validationf("unknown league mode %q", req.Mode))
			return
		}

		l, err := ctrl.CreateLeague(r.Context(), player(r), req.Name, mode, req.Team)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, toLeagueResponse(l))
	}
}

func listLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context(), player(r))
		if err != nil {
			renderError(render, w, err)
			return
		}

		resp := make([]leagueResponse, 0, len(leagues))
		for i := range leagues {
			resp = append(resp, toLeagueResponse(&leagues[i]))
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func getLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := ctrl.GetLeague(r.Context(), player(r), model.LeagueID(urlID(r, "leagueID")))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, toLeagueResponse(l))
	}
}

func deleteLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteLeague(r.Context(), player(r), model.LeagueID(urlID(r, "leagueID"))); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func invitePlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Usernames []string `json:"usernames"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		result, err := ctrl.InvitePlayers(r.Context(), player(r), model.LeagueID(urlID(r, "leagueID")), req.Usernames)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string][]string{
			"invited":         result.Invited,
			"alreadyInLeague": result.AlreadyInLeague,
			"invalid":         result.Invalid,
		})
	}
}

func acceptInviteHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.AcceptInvite(r.Context(), player(r), model.LeagueID(urlID(r, "leagueID"))); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "joined"})
	}
}

func requestJoinHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JoinCode string `json:"joinCode"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		l, err := ctrl.RequestJoin(r.Context(), player(r), req.JoinCode)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]any{
			"status": "requested",
			"league": toLeagueResponse(l).Name,
		})
	}
}

func approveRequestHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := model.LeagueID(urlID(r, "leagueID"))
		playerID := model.PlayerID(urlID(r, "playerID"))
		if err := ctrl.ApproveRequest(r.Context(), player(r), leagueID, playerID); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "approved"})
	}
}

func removePlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := model.LeagueID(urlID(r, "leagueID"))
		playerID := model.PlayerID(urlID(r, "playerID"))
		if err := ctrl.RemovePlayer(r.Context(), player(r), leagueID, playerID); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func leaderboardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, err := ctrl.GetLeaderboard(r.Context(), model.LeagueID(urlID(r, "leagueID")))
		if err != nil {
			renderError(render, w, err)
			return
		}

		type entry struct {
			PlayerID   model.PlayerID `json:"playerId"`
			Username   string         `json:"username"`
			TotalScore int            `json:"totalScore"`
			Rank       int            `json:"rank"`
		}
		entries := make([]entry, 0, len(lb.Entries))
		for _, e := range lb.Entries {
			entries = append(entries, entry{
				PlayerID:   e.PlayerID,
				Username:   e.Username,
				TotalScore: e.TotalScore,
				Rank:       e.Rank,
			})
		}
		render.JSON(w, http.StatusOK, map[string]any{
			"leagueId": lb.LeagueID,
			"entries":  entries,
			"stats": map[string]any{
				"gamesPlayed":   lb.Stats.GamesPlayed,
				"combinedScore": lb.Stats.CombinedScore,
				"avgGameScore":  lb.Stats.AvgGameScore,
			},
		})
	}
}

func requestFriendHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FriendCode string `json:"friendCode"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		if err := ctrl.RequestFriend(r.Context(), player(r), req.FriendCode); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "requested"})
	}
}

func acceptFriendHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromID := model.PlayerID(urlID(r, "playerID"))
		if err := ctrl.AcceptFriend(r.Context(), player(r), fromID); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "accepted"})
	}
}

func removeFriendHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		friendID := model.PlayerID(urlID(r, "playerID"))
		if err := ctrl.RemoveFriend(r.Context(), player(r), friendID); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func listFriendsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		friends, err := ctrl.ListFriends(r.Context(), player(r))
		if err != nil {
			renderError(render, w, err)
			return
		}

		resp := make([]playerResponse, 0, len(friends))
		for i := range friends {
			resp = append(resp, toPlayerResponse(&friends[i]))
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func listFriendRequestsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requests, err := ctrl.ListFriendRequests(r.Context(), player(r))
		if err != nil {
			renderError(render, w, err)
			return
		}

		type request struct {
			From model.PlayerID `json:"from"`
			Sent time.Time      `json:"sent"`
		}
		resp := make([]request, 0, len(requests))
		for _, fr := range requests {
			resp = append(resp, request{From: fr.FromID, Sent: fr.Sent})
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func loadGamesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := ctrl.LoadGames(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{"added": n})
	}
}

func reconcileGamesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := ctrl.ReconcileGames(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{"updated": n})
	}
}
