// Package main is the entry point for the Temporal validation worker.
package main

import (
	"context"
	"log"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/labki-org/ontology-hub/internal/config"
	"github.com/labki-org/ontology-hub/internal/database"
	temporal_internal "github.com/labki-org/ontology-hub/internal/temporal"
	"github.com/labki-org/ontology-hub/internal/validation"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Build the validator, honoring a configured vocabulary override
	datatypes, err := cfg.Datatypes()
	if err != nil {
		log.Fatalf("failed to load datatype vocabulary: %v", err)
	}
	validator := validation.NewValidator(validation.WithDatatypes(datatypes))

	// Create Temporal client
	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalf("failed to create Temporal client: %v", err)
	}
	defer c.Close()

	// Create worker for the ontology task queue
	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})

	// Register validation activities
	validationActivities := temporal_internal.NewValidationActivities(db, validator)
	w.RegisterActivity(validationActivities.ValidateDraft)

	// Register workflows
	w.RegisterWorkflow(temporal_internal.DraftValidationWorkflow)

	log.Printf("Temporal worker started on task queue: %s", cfg.TemporalTaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker error: %v", err)
	}
}
