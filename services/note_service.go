package services

import (
	"context"
	"errors"
	"fmt"

	"stickyboard/broker"
	"stickyboard/database"
	"stickyboard/models"
	"stickyboard/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NoteServiceInterface interface {
	ListNotes(ctx context.Context, db *database.Database, boardName string) ([]models.Note, error)
	CreateNote(ctx context.Context, db *database.Database, boardName string, note models.Note) (models.Note, error)
	UpdateNote(ctx context.Context, db *database.Database, id uint, patch models.NotePatch) (models.Note, error)
	DeleteNote(ctx context.Context, db *database.Database, id uint) error
}

type NoteServiceConfig struct {
	// PatchZeroAsAbsent keeps the legacy rule that a numeric patch field
	// holding 0 was not provided.
	PatchZeroAsAbsent bool
	// RecordEvents writes an outbox row for every change.
	RecordEvents bool
}

type NoteService struct {
	cfg NoteServiceConfig
	log *zap.Logger
}

// NewNoteService creates a new instance of NoteService
func NewNoteService(cfg NoteServiceConfig, log *zap.Logger) NoteServiceInterface {
	if log == nil {
		log = zap.NewNop()
	}
	return &NoteService{cfg: cfg, log: log}
}

// ListNotes returns the notes of boardName in insertion order. A board that
// does not exist yet is created, so this read can write.
func (s *NoteService) ListNotes(ctx context.Context, db *database.Database, boardName string) ([]models.Note, error) {
	tx := db.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	board, created, err := repository.NewBoardRepository(tx).FindOrCreate(ctx, boardName)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("find or create board %q: %w", boardName, err)
	}

	if created {
		if err := s.recordEvent(tx, broker.BoardCreated, "board", "create", map[string]interface{}{
			"board_id": board.ID,
			"name":     board.Name,
		}); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	notes, err := repository.NewNoteRepository(tx).FindByBoardID(ctx, board.ID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("list notes of board %q: %w", boardName, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if created {
		s.log.Info("board created", zap.String("board", board.Name), zap.Uint("board_id", board.ID))
	}
	return notes, nil
}

// CreateNote attaches note to an existing board. Unlike ListNotes it never
// creates the board.
func (s *NoteService) CreateNote(ctx context.Context, db *database.Database, boardName string, note models.Note) (models.Note, error) {
	tx := db.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	board, err := repository.NewBoardRepository(tx).FindByName(ctx, boardName)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, repository.ErrNotFound) {
			return models.Note{}, ErrBoardNotFound
		}
		return models.Note{}, err
	}

	note.ID = 0
	note.BoardID = board.ID
	if err := repository.NewNoteRepository(tx).Save(ctx, &note); err != nil {
		tx.Rollback()
		return models.Note{}, fmt.Errorf("save note: %w", err)
	}

	if err := s.recordEvent(tx, broker.NoteCreated, "note", "create", noteEventData(board.Name, note)); err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// UpdateNote applies a sparse patch under a row lock and writes only the
// patched columns. A missing note is reported and nothing is written.
func (s *NoteService) UpdateNote(ctx context.Context, db *database.Database, id uint, patch models.NotePatch) (models.Note, error) {
	tx := db.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	notes := repository.NewNoteRepository(tx)
	note, err := notes.FindByIDForUpdate(ctx, id)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, repository.ErrNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	columns := patch.ApplyTo(note, s.cfg.PatchZeroAsAbsent)

	if err := notes.Update(ctx, note, columns...); err != nil {
		tx.Rollback()
		if errors.Is(err, repository.ErrNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, fmt.Errorf("update note %d: %w", id, err)
	}

	if err := s.recordEvent(tx, broker.NoteUpdated, "note", "update", noteEventData("", *note)); err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Note{}, err
	}

	return *note, nil
}

// DeleteNote removes the note with id, returning ErrNoteNotFound when there
// was nothing to delete.
func (s *NoteService) DeleteNote(ctx context.Context, db *database.Database, id uint) error {
	tx := db.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := repository.NewNoteRepository(tx).DeleteByID(ctx, id); err != nil {
		tx.Rollback()
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if err := s.recordEvent(tx, broker.NoteDeleted, "note", "delete", map[string]interface{}{
		"note_id": id,
	}); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *NoteService) recordEvent(tx *gorm.DB, eventType broker.EventType, entity, operation string, data map[string]interface{}) error {
	if !s.cfg.RecordEvents {
		return nil
	}

	event, err := models.NewEvent(string(eventType), entity, operation, data)
	if err != nil {
		return err
	}
	if err := tx.Create(event).Error; err != nil {
		return fmt.Errorf("record %s event: %w", eventType, err)
	}
	return nil
}

func noteEventData(boardName string, note models.Note) map[string]interface{} {
	data := map[string]interface{}{
		"note_id":  note.ID,
		"board_id": note.BoardID,
		"note":     note,
	}
	if boardName != "" {
		data["board"] = boardName
	}
	return data
}
