package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"stickyboard/models"
	"stickyboard/testutils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_SaveAndFindByName(t *testing.T) {
	db := testutils.SetupSQLiteDB(t)
	repo := NewBoardRepository(db.DB)
	ctx := context.Background()

	board := &models.Board{Name: "alpha"}
	require.NoError(t, repo.Save(ctx, board))
	assert.NotZero(t, board.ID)

	found, err := repo.FindByName(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, board.ID, found.ID)

	_, err = repo.FindByName(ctx, "beta")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardRepository_FindOrCreate(t *testing.T) {
	db := testutils.SetupSQLiteDB(t)
	repo := NewBoardRepository(db.DB)
	ctx := context.Background()

	first, created, err := repo.FindOrCreate(ctx, "alpha")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)

	second, created, err := repo.FindOrCreate(ctx, "alpha")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.DB.Model(&models.Board{}).Where("name = ?", "alpha").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBoardRepository_FindOrCreateConcurrent(t *testing.T) {
	db := testutils.SetupSQLiteDB(t)
	repo := NewBoardRepository(db.DB)
	ctx := context.Background()

	const callers = 8
	ids := make([]uint, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			board, _, err := repo.FindOrCreate(ctx, "shared")
			if assert.NoError(t, err) {
				ids[i] = board.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	var count int64
	require.NoError(t, db.DB.Model(&models.Board{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBoardRepository_FindOrCreateConflict(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	// first lookup misses, the insert loses the race, the second lookup hits
	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE name = \$1`).
		WithArgs("alpha", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery(`INSERT INTO "boards" (.+) ON CONFLICT \("name"\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE name = \$1`).
		WithArgs("alpha", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(42, "alpha"))

	board, created, err := NewBoardRepository(db.DB).FindOrCreate(context.Background(), "alpha")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint(42), board.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_FindByNameError(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE name = \$1`).
		WithArgs("alpha", 1).
		WillReturnError(errors.New("connection reset"))

	_, err := NewBoardRepository(db.DB).FindByName(context.Background(), "alpha")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
