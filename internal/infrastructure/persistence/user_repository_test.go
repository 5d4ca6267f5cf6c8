package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ebookstore/backend/internal/domain/identity"
	"github.com/ebookstore/backend/internal/domain/shared"
)

// newMockUserRepository creates a GormUserRepository over a mocked
// postgres connection, for asserting the SQL the repository emits
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func userRows(id uuid.UUID, email string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"first_name", "last_name", "email", "password_hash",
		"role", "phone_number", "address", "is_active", "registration_date",
	}).AddRow(
		id, time.Now(), time.Now(), 1,
		"Ada", "Lovelace", email, "hash",
		"customer", "", "", true, time.Now(),
	)
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("normalizes the email before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ada@example.com", 1).
			WillReturnRows(userRows(id, "ada@example.com"))

		user, err := repo.FindByEmail(context.Background(), "  ADA@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty email is rejected without querying", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByEmail(context.Background(), "")
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_Deactivate(t *testing.T) {
	t.Run("missing user maps to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Deactivate(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlitedriver.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identity.User{}))
	return db
}

func seedIdentityUser(t *testing.T, db *gorm.DB, first, last, email string, registered time.Time) *identity.User {
	user, err := identity.NewUser(first, last, email, "hash")
	require.NoError(t, err)
	user.RegistrationDate = registered
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestGormUserRepository_CustomerQueries(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("recent customers are newest first and exclude admins", func(t *testing.T) {
		db := setupUserTestDB(t)
		repo := NewGormUserRepository(db)

		older := seedIdentityUser(t, db, "Old", "Timer", "old@example.com", now.Add(-48*time.Hour))
		newer := seedIdentityUser(t, db, "New", "Comer", "new@example.com", now)
		admin := seedIdentityUser(t, db, "Site", "Admin", "admin@example.com", now)
		require.NoError(t, db.Model(&identity.User{}).Where("id = ?", admin.ID).Update("role", identity.RoleAdmin).Error)

		users, err := repo.FindRecentActiveCustomers(ctx, 5)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, newer.ID, users[0].ID)
		assert.Equal(t, older.ID, users[1].ID)
	})

	t.Run("active customers are ordered by last then first name", func(t *testing.T) {
		db := setupUserTestDB(t)
		repo := NewGormUserRepository(db)

		seedIdentityUser(t, db, "Bob", "Young", "by@example.com", now)
		seedIdentityUser(t, db, "Zoe", "Abbott", "za@example.com", now)
		seedIdentityUser(t, db, "Amy", "Abbott", "aa@example.com", now)
		inactive := seedIdentityUser(t, db, "Gone", "Away", "ga@example.com", now)
		require.NoError(t, repo.Deactivate(ctx, inactive.ID))

		users, err := repo.FindActiveCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "Amy", users[0].FirstName)
		assert.Equal(t, "Zoe", users[1].FirstName)
		assert.Equal(t, "Bob", users[2].FirstName)
	})

	t.Run("count ignores inactive accounts", func(t *testing.T) {
		db := setupUserTestDB(t)
		repo := NewGormUserRepository(db)

		seedIdentityUser(t, db, "In", "Count", "in@example.com", now)
		out := seedIdentityUser(t, db, "Out", "Count", "out@example.com", now)
		require.NoError(t, repo.Deactivate(ctx, out.ID))

		count, err := repo.CountActiveCustomers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
