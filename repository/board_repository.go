package repository

import (
	"context"
	"errors"

	"stickyboard/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *BoardRepository) WithTx(tx *gorm.DB) *BoardRepository {
	return &BoardRepository{db: tx}
}

// FindByName returns ErrNotFound when no board carries name.
func (r *BoardRepository) FindByName(ctx context.Context, name string) (*models.Board, error) {
	var board models.Board
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &board, nil
}

// Save inserts a new board and assigns its id.
func (r *BoardRepository) Save(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// FindOrCreate returns the board named name, inserting it first when absent.
// The insert relies on the unique name index, so concurrent first access
// yields one board. created reports whether this call inserted the row.
func (r *BoardRepository) FindOrCreate(ctx context.Context, name string) (board *models.Board, created bool, err error) {
	board, err = r.FindByName(ctx, name)
	if err == nil {
		return board, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	candidate := models.Board{Name: name}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&candidate)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected == 1 && candidate.ID != 0 {
		return &candidate, true, nil
	}

	// lost the race: another caller inserted the same name
	board, err = r.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return board, false, nil
}
