package seed

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"vulntrack/internal/models"
	"vulntrack/internal/store"
)

// FirstSetup ensures a verified admin account exists so a fresh install
// can log in.
func FirstSetup(st *store.Store) error {
	const adminEmail = "admin@example.com"
	const adminPass = "admin123" // change after first login

	ctx := context.Background()

	if _, err := st.Users.ByEmail(ctx, adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        adminEmail,
		FirstName:    "Admin",
		PasswordHash: string(passHash),
		Role:         models.RoleAdmin,
		Verified:     true,
	}
	if err := st.Users.Create(ctx, &admin); err != nil {
		return err
	}

	log.Printf("✅ Seed OK | admin=%s pass=%s", adminEmail, adminPass)
	return nil
}
