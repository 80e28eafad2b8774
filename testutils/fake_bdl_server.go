package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed bdldata
var bdldata embed.FS

// FakeBDLServer serves canned balldontlie responses. The games list is
// keyed off start_date: a window starting at or after TestTime gets the
// upcoming schedule, anything earlier gets last week's results.
type FakeBDLServer struct {
	s *httptest.Server
}

func NewFakeBDLServer() *FakeBDLServer {
	r := chi.NewRouter()
	r.Get("/games", gamesHandler)
	r.Get("/games/{gameID}", gameHandler)

	return &FakeBDLServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeBDLServer) Close() {
	f.s.Close()
}

func (f *FakeBDLServer) URL() string {
	return f.s.URL
}

func gamesHandler(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start_date")
	if start >= TestTime.Format("2006-01-02") {
		serveFile(w, "upcoming.json")
	} else {
		serveFile(w, "recent.json")
	}
}

func gameHandler(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	switch gameID {
	case "101", "103", "104":
		serveFile(w, fmt.Sprintf("game_%s.json", gameID))
	default:
		// balldontlie 404s for ids it has dropped, e.g. postponed games
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := bdldata.ReadFile(fmt.Sprintf("bdldata/%s", name))
	if err != nil {
		log.Printf("error reading bdldata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
