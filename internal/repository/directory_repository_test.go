package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mydrive-server/config"
	"mydrive-server/internal/model"
	"mydrive-server/internal/repository"
)

func newMockDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func directoryColumns() []string {
	return []string{"uuid", "owner_uuid", "parent_uuid", "name", "created_at", "updated_at"}
}

func TestDirectoryRepository_GetByUUID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewDirectoryRepository(database)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, owner_uuid, parent_uuid, name, created_at, updated_at")).
			WithArgs("dir-1").
			WillReturnRows(sqlmock.NewRows(directoryColumns()).
				AddRow("dir-1", "owner-1", nil, "Reports", now, now))

		directory, err := repo.GetByUUID(ctx, database, "dir-1")
		require.NoError(t, err)
		require.NotNil(t, directory)
		assert.Equal(t, "Reports", directory.Name)
		assert.Nil(t, directory.ParentUUID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row is nil, nil", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewDirectoryRepository(database)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, owner_uuid, parent_uuid, name, created_at, updated_at")).
			WithArgs("dir-404").
			WillReturnRows(sqlmock.NewRows(directoryColumns()))

		directory, err := repo.GetByUUID(ctx, database, "dir-404")
		require.NoError(t, err)
		assert.Nil(t, directory)
	})
}

func TestDirectoryRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	database, mock := newMockDatabase(t)
	repo := repository.NewDirectoryRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO directories")).
		WithArgs("dir-1", "owner-1", nil, "Reports").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	directory := &model.Directory{UUID: "dir-1", OwnerUUID: "owner-1", Name: "Reports"}
	err := repo.Create(ctx, database, directory)
	require.NoError(t, err)
	assert.Equal(t, now, directory.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectoryRepository_SiblingExists(t *testing.T) {
	ctx := context.Background()

	t.Run("exclude self on rename", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewDirectoryRepository(database)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs("owner-1", "Reports", nil, "dir-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.SiblingExists(ctx, database, "owner-1", "Reports", nil, "dir-1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate sibling", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewDirectoryRepository(database)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs("owner-1", "Reports", nil, "").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.SiblingExists(ctx, database, "owner-1", "Reports", nil, "")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestDirectoryRepository_CollectSubtree(t *testing.T) {
	ctx := context.Background()
	database, mock := newMockDatabase(t)
	repo := repository.NewDirectoryRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("WITH RECURSIVE subtree AS")).
		WithArgs("dir-root").
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}).
			AddRow("dir-root").
			AddRow("dir-child").
			AddRow("dir-grandchild"))

	uuids, err := repo.CollectSubtree(ctx, database, "dir-root")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir-root", "dir-child", "dir-grandchild"}, uuids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectoryRepository_DeleteByUUIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes in one statement", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewDirectoryRepository(database)

		uuids := []string{"dir-1", "dir-2"}
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM directories WHERE uuid = ANY($1)")).
			WithArgs(pq.Array(uuids)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.DeleteByUUIDs(ctx, database, uuids)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set is a no-op", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewDirectoryRepository(database)

		err := repo.DeleteByUUIDs(ctx, database, nil)
		require.NoError(t, err)
		// ни одного обращения к БД
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
