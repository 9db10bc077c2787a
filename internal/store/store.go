package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Store bundles one repository per entity type. Handlers depend on the
// interfaces, never on gorm directly.
type Store struct {
	Users         UserRepository
	Orgs          OrganizationRepository
	Assets        AssetRepository
	Assessments   AssessmentRepository
	Vulns         VulnerabilityRepository
	RefreshTokens RefreshTokenRepository
	OneTimeTokens OneTimeTokenRepository
	Files         FileRepository
}

func New(gdb *gorm.DB) *Store {
	return &Store{
		Users:         &userRepository{db: gdb},
		Orgs:          &orgRepository{db: gdb},
		Assets:        &assetRepository{db: gdb},
		Assessments:   &assessmentRepository{db: gdb},
		Vulns:         &vulnRepository{db: gdb},
		RefreshTokens: &refreshTokenRepository{db: gdb},
		OneTimeTokens: &oneTimeTokenRepository{db: gdb},
		Files:         &fileRepository{db: gdb},
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
