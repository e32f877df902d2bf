package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"reserva.org/internal/httpapi"
	"reserva.org/internal/obs"
	"reserva.org/internal/reservation"
	"reserva.org/internal/store/pg"
	"reserva.org/internal/stream"
	"reserva.org/internal/task"
	"reserva.org/internal/user"
)

var version = "0.3.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("RESERVA_COMMIT"))

	var (
		reservationStore reservation.Store
		taskStore        task.Store
		userStore        user.Store
		taskGateway      reservation.TaskGateway
		probe            httpapi.ReadyProbe
		closeStore       func() error
	)

	if dsn := os.Getenv("RESERVA_PG_DSN"); dsn != "" {
		store, err := pg.Open(dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		reservationStore = store
		taskStore = store
		userStore = store
		taskGateway = store
		probe = httpapi.ReadyProbe{DB: store.DB()}
		closeStore = store.Close
	} else {
		log.Println("RESERVA_PG_DSN not set, using in-memory stores")
		tasks := task.NewInMemory()
		reservationStore = reservation.NewInMemory()
		taskStore = tasks
		userStore = user.NewInMemory()
		taskGateway = tasks
	}

	reservations := reservation.NewService(reservationStore, taskGateway)
	tasks := task.NewService(taskStore)
	users := user.NewService(userStore)

	api := httpapi.New(probe, version, reservations, tasks, users, stream.New())

	addr := os.Getenv("RESERVA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting reserva-api %s on %s", version, srv.Addr)
	obs.SetReady(true)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")
	obs.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if closeStore != nil {
		_ = closeStore()
	}
	log.Println("Stopped")
}
