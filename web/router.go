package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mfields/courtside/auth"
	"github.com/mfields/courtside/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, authSvc auth.Service, render *render.Render, adminPass string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Post("/players/register", registerHandler(authSvc, render))
	r.Post("/players/login", loginHandler(authSvc, render))

	r.Group(func(r chi.Router) {
		r.Use(authSvc.Middleware)

		r.Get("/players/me", meHandler(ctrl, render))

		r.Get("/schedule", scheduleHandler(ctrl, render))
		r.Post("/predictions/{predictionID:\\d+}", submitPredictionHandler(ctrl, render))
		r.Get("/games/{gameID:\\d+}/ranking", rankingHandler(ctrl, render))

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", listLeaguesHandler(ctrl, render))
			r.Post("/", createLeagueHandler(ctrl, render))
			r.Post("/join", requestJoinHandler(ctrl, render))
			r.Get("/{leagueID:\\d+}", getLeagueHandler(ctrl, render))
			r.Delete("/{leagueID:\\d+}", deleteLeagueHandler(ctrl, render))
			r.Get("/{leagueID:\\d+}/leaderboard", leaderboardHandler(ctrl, render))
			r.Post("/{leagueID:\\d+}/invites", invitePlayersHandler(ctrl, render))
			r.Post("/{leagueID:\\d+}/invites/accept", acceptInviteHandler(ctrl, render))
			r.Post("/{leagueID:\\d+}/requests/{playerID:\\d+}/approve", approveRequestHandler(ctrl, render))
			r.Delete("/{leagueID:\\d+}/players/{playerID:\\d+}", removePlayerHandler(ctrl, render))
		})

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", listFriendsHandler(ctrl, render))
			r.Delete("/{playerID:\\d+}", removeFriendHandler(ctrl, render))
			r.Get("/requests", listFriendRequestsHandler(ctrl, render))
			r.Post("/requests", requestFriendHandler(ctrl, render))
			r.Post("/requests/{playerID:\\d+}/accept", acceptFriendHandler(ctrl, render))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("courtside", map[string]string{"admin": adminPass}))
		r.Use(middleware.Timeout(5 * time.Minute)) // Set a longer timeout for /admin actions

		r.Post("/games/load", loadGamesHandler(ctrl, render))
		r.Post("/games/reconcile", reconcileGamesHandler(ctrl, render))
	})

	return r
}
