package repository

import (
	"context"
	"errors"

	"stickyboard/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *NoteRepository) WithTx(tx *gorm.DB) *NoteRepository {
	return &NoteRepository{db: tx}
}

// Save inserts the note when it has no id yet and rewrites every column
// otherwise.
func (r *NoteRepository) Save(ctx context.Context, note *models.Note) error {
	if note.ID == 0 {
		return r.db.WithContext(ctx).Create(note).Error
	}
	return r.Update(ctx, note, models.NoteColumns...)
}

// Update writes only the given columns of an existing note. It never inserts:
// a row that is gone yields ErrNotFound.
func (r *NoteRepository) Update(ctx context.Context, note *models.Note, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(note).Select(columns).Updates(note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id uint) (*models.Note, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads the note and holds a row lock until the enclosing
// transaction ends. sqlite has no row locks and serializes writers instead.
func (r *NoteRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Note, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *NoteRepository) findByID(db *gorm.DB, id uint) (*models.Note, error) {
	var note models.Note
	if err := db.First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindByBoardID lists a board's notes in insertion order.
func (r *NoteRepository) FindByBoardID(ctx context.Context, boardID uint) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("id").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteByID returns ErrNotFound when no row was removed.
func (r *NoteRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Note{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
