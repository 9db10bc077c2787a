package main

import (
	"fmt"
	"log"

	"vulntrack/internal/config"
	"vulntrack/internal/db"
	httpserver "vulntrack/internal/http"
	"vulntrack/internal/jira"
	"vulntrack/internal/report"
	"vulntrack/internal/seed"
	"vulntrack/internal/store"
	"vulntrack/internal/token"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DSN)
	db.AutoMigrate(gdb)

	st := store.New(gdb)

	tokens := token.NewService(token.Config{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     "vulntrack",
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		ResetTTL:   cfg.ResetTTL,
		VerifyTTL:  cfg.VerifyTTL,
	}, st.RefreshTokens, st.OneTimeTokens)

	if err := seed.FirstSetup(st); err != nil {
		log.Fatalf("❌ Seed failed: %v", err)
	}

	ticketer := jira.NewClient(cfg.JiraHost, cfg.JiraUser, cfg.JiraAPIKey, cfg.JiraProject)
	renderer := report.NewHTTPRenderer(cfg.RendererURL)

	r := httpserver.NewRouter(st, tokens, ticketer, renderer)
	log.Printf("🚀 Server listening on :%s\n", cfg.AppPort)
	r.Run(fmt.Sprintf(":%s", cfg.AppPort))
}
