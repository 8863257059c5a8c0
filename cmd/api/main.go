package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fundacite.org/internal/auth"
	"fundacite.org/internal/httpapi"
	"fundacite.org/internal/migrate"
	"fundacite.org/internal/obs"
	"fundacite.org/internal/report"
	"fundacite.org/internal/solicitud"
)

var version = "0.3.0"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("SOLICITUDES_COMMIT"))

	dsn := os.Getenv("SOLICITUDES_PG_DSN")
	if dsn == "" {
		log.Fatal("missing SOLICITUDES_PG_DSN")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer bootCancel()

	if err := migrate.NewManager(db).Up(bootCtx); err != nil {
		log.Fatalf("migrate up: %v", err)
	}

	authSvc := auth.NewService(auth.NewPGStore(db))
	created, err := authSvc.EnsureDepartmentUsers(bootCtx)
	if err != nil {
		log.Fatalf("seed department users: %v", err)
	}
	if len(created) > 0 {
		log.Printf("created department users: %v", created)
	}

	api := httpapi.New(
		authSvc,
		solicitud.NewPGStore(db),
		report.NewGenerator(),
		httpapi.WithVersion(version),
		httpapi.WithReadyProbe(httpapi.ReadyProbe{DB: db}),
	)

	addr := os.Getenv("SOLICITUDES_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting solicitudes-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}
