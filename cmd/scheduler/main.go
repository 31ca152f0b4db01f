package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/mhmd-zbib/library-management/internal/config"
	"github.com/mhmd-zbib/library-management/internal/repository"
	"github.com/mhmd-zbib/library-management/internal/service"
)

func main() {
	log.Println("Starting lending scheduler...")

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	bookRepo := repository.NewBookRepository(db)
	patronRepo := repository.NewPatronRepository(db)
	borrowingRepo := repository.NewBorrowingRepository(db)
	borrowingService := service.NewBorrowingService(borrowingRepo, bookRepo, patronRepo, cfg)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Daily job to accrue fines on overdue loans
	_, err = c.AddFunc(cfg.Scheduler.FineAccrualSpec, func() {
		log.Println("Running fine accrual job...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		updated, err := borrowingService.AccrueFines(ctx)
		if err != nil {
			log.Printf("Fine accrual job failed: %v", err)
			return
		}
		log.Printf("Fine accrual job finished, %d records updated", updated)
	})
	if err != nil {
		log.Fatalf("Error scheduling fine accrual job: %v", err)
	}

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}
