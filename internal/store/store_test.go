package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vulntrack/internal/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return New(gdb), mock
}

func TestOrgSetArchivedSkipsNoOpUpdate(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM `organizations` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "archived"}).
			AddRow(7, "Acme", true))

	// Already archived: no UPDATE must be issued.
	if err := st.Orgs.SetArchived(context.Background(), 7, true); err != nil {
		t.Fatalf("SetArchived: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrgSetArchivedTogglesFlag(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM `organizations` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "archived"}).
			AddRow(7, "Acme", false))
	mock.ExpectExec("UPDATE `organizations` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := st.Orgs.SetArchived(context.Background(), 7, true); err != nil {
		t.Fatalf("SetArchived: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrgSetArchivedMissing(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM `organizations` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "archived"}))

	err := st.Orgs.SetArchived(context.Background(), 99, true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssetByIDScopedByOrg(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM `assets` WHERE id = \\? AND org_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "org_id", "name", "archived"}))

	// Wrong parent id: the scoped query finds nothing.
	_, err := st.Assets.ByID(context.Background(), 1, 3)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-org lookup, got %v", err)
	}
}

func TestAssetListPartitions(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM `assets` WHERE org_id = \\? AND archived = \\?").
		WithArgs(int64(1), false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "org_id", "name", "archived"}).
			AddRow(1, 1, "www", false).
			AddRow(2, 1, "api", false))

	assets, err := st.Assets.ListActive(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
	for _, a := range assets {
		if a.Archived {
			t.Fatalf("active listing returned archived asset %d", a.ID)
		}
	}
}

func TestRefreshTokenConsumeRevokes(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `refresh_tokens` WHERE jti = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "jti", "user_id", "revoked", "expires_at"}).
			AddRow(1, "some-jti", 42, false, time.Now().Add(time.Hour)))
	mock.ExpectExec("UPDATE `refresh_tokens` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	userID, err := st.RefreshTokens.Consume(context.Background(), "some-jti")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if userID != 42 {
		t.Fatalf("unexpected user id: %d", userID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRefreshTokenConsumeRevoked(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `refresh_tokens` WHERE jti = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "jti", "user_id", "revoked", "expires_at"}))
	mock.ExpectRollback()

	_, err := st.RefreshTokens.Consume(context.Background(), "revoked-jti")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssessmentDeleteCascades(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `assessments`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `vulnerabilities`").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	if err := st.Assessments.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssessmentDeleteMissing(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `assessments`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := st.Assessments.Delete(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE email = \\?").
		WithArgs("dup@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	err := st.Users.Create(context.Background(), &models.User{Email: "dup@example.com"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
