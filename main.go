package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/mfields/courtside/auth"
	"github.com/mfields/courtside/bdl"
	"github.com/mfields/courtside/controller"
	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/demo"
	"github.com/mfields/courtside/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	bdlAPIKey := os.Getenv("BDL_API_KEY")
	if bdlAPIKey == "" {
		log.Fatalf("BDL_API_KEY must be set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminPass == "" {
		log.Fatalf("ADMIN_PASSWORD must be set")
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	bdlClient, err := bdl.New(bdlAPIKey)
	if err != nil {
		log.Fatalf("error creating balldontlie client: %v", err)
	}

	ctrl, err := controller.New(clock, bdlClient, db)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	authSvc, err := auth.New(clock, db, jwtSecret)
	if err != nil {
		log.Fatalf("error creating auth service: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl, authSvc, adminPass)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Pull new schedules and settle finished games every hour.
	wg.Add(1)
	go ctrl.RunPeriodicGameUpdates(1*time.Hour, shutdown, wg)

	// Keep the demo bots playing.
	bots := demo.New(ctrl, authSvc, db)
	wg.Add(1)
	go bots.RunPeriodicUpdates(15*time.Minute, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
