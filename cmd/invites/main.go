// cmd/invites/main.go
//
// Operator tool for minting invite codes. Run against the same
// environment as the server:
//
//	go run ./cmd/invites -code EARLY-ACCESS-2026 -label "2026 launch" -max-uses 50 -expires 2026-12-31
package main

import (
	"flag"
	"log"
	"time"

	"github.com/slabdesk/slabdesk-backend/internal/config"
	"github.com/slabdesk/slabdesk-backend/internal/database"
	"github.com/slabdesk/slabdesk-backend/internal/services"
)

func main() {
	code := flag.String("code", "", "plaintext invite code to mint (required)")
	label := flag.String("label", "", "operator-facing label for the code")
	maxUses := flag.Int("max-uses", 0, "maximum redemptions, 0 for unlimited")
	expires := flag.String("expires", "", "expiry date as YYYY-MM-DD, empty for none")
	flag.Parse()

	if *code == "" {
		log.Fatal("-code is required")
	}

	var expiresAt *time.Time
	if *expires != "" {
		parsed, err := time.Parse("2006-01-02", *expires)
		if err != nil {
			log.Fatal("Invalid -expires date:", err)
		}
		expiresAt = &parsed
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close(db)

	invite, err := services.NewInviteService(db).CreateInvite(*code, *label, *maxUses, expiresAt)
	if err != nil {
		log.Fatal("Failed to create invite code:", err)
	}

	log.Printf("Created invite code %s (label %q, max uses %d)", invite.ID, invite.Label, invite.MaxUses)
}
