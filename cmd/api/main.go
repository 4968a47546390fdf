package main

import (
	"context"
	"log"
	"net/http"

	"github.com/lumen-studio/lumen-backend/config"
	"github.com/lumen-studio/lumen-backend/internal/ai"
	"github.com/lumen-studio/lumen-backend/internal/bootstrap"
	"github.com/lumen-studio/lumen-backend/internal/collections"
	"github.com/lumen-studio/lumen-backend/internal/contact"
	"github.com/lumen-studio/lumen-backend/internal/notes"
	"github.com/lumen-studio/lumen-backend/internal/profiles"
	"github.com/lumen-studio/lumen-backend/internal/projects"
)

const serviceName = "lumen-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	fb, err := bootstrap.InitFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fb.Close()

	store := collections.NewFirestoreStore(fb.Firestore)

	profileSvc := profiles.NewService(
		profiles.NewRepo(fb.Firestore),
		profiles.NewStorageUploader(fb.Bucket, cfg.Firebase.StorageBucket),
	)

	contactSvc := contact.NewService(
		contact.NewRepo(fb.Firestore),
		contact.NewResendClient(cfg.Email.APIKey, cfg.Email.BaseURL),
		cfg.Email.From,
		cfg.Email.To,
	)

	var aiClient *ai.Client
	if cfg.AI.APIKey != "" {
		aiClient, err = ai.NewClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("gemini: %v", err)
		}
	} else {
		log.Println("[warn] GEMINI_API_KEY not set; AI routes disabled")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth:           fb.Auth,
		Firestore:      fb.Firestore,
		Profiles:       profileSvc,
		Notes:          notes.NewService(store),
		Projects:       projects.NewService(store),
		Contact:        contactSvc,
		AI:             aiClient,
	})

	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
