package main

import (
	"context" // Seed timeout
	"flag"    // Command-line flags
	"time"    // Seed timeout

	"hobbymatch/internal/config" // Custom import path (Config)
	"hobbymatch/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "insert the default hobby catalogue when it is empty")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatal(err)
	}
	if !*seed {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := db.SeedHobbies(ctx, gdb, db.DefaultHobbies); err != nil {
		logrus.Fatal(err)
	}
}
