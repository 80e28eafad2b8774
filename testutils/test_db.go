package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mfields/courtside/containers"
	"github.com/mfields/courtside/db"
)

// TestTime is the instant every TestDB clock starts at. Fixture games
// are placed relative to it so tests can reason about past and future.
var TestTime = time.Date(2025, time.January, 15, 18, 0, 0, 0, time.UTC)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()

	c := clock.NewMock()
	c.Set(TestTime)

	db, err := db.New(context.Background(), container.ConnectionString(), c)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestPlayers(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     c,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
