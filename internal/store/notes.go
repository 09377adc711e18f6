package store

import (
	"context"

	"gorm.io/gorm"
)

// CreateNote inserts a note together with its chunks in one transaction.
func (s *Store) CreateNote(ctx context.Context, note *Note, chunks []string) error {
	return s.withTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return err
		}
		return insertChunks(tx, note.ID, chunks)
	})
}

// NoteByID returns the owner's note or ErrNotFound.
func (s *Store) NoteByID(ctx context.Context, ownerID string, id uint) (*Note, error) {
	var note Note
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&note).Error
	if err != nil {
		return nil, asStoreError(err)
	}
	return &note, nil
}

// ListNotes returns the owner's notes under one topic.
func (s *Store) ListNotes(ctx context.Context, ownerID string, topicID uint) ([]Note, error) {
	var notes []Note
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND topic_id = ?", ownerID, topicID).
		Order("title").
		Find(&notes).Error
	return notes, err
}

// UpdateNoteContent replaces the note's content, regenerates its chunks
// and drops questions derived from the stale content. All or nothing.
func (s *Store) UpdateNoteContent(ctx context.Context, ownerID string, id uint, content string, chunks []string) error {
	return s.withTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&Note{}).
			Where("owner_id = ? AND id = ?", ownerID, id).
			Update("content", content)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("note_id = ?", id).Delete(&NoteChunk{}).Error; err != nil {
			return err
		}
		if err := tx.Where("source_note_id = ?", id).Delete(&Question{}).Error; err != nil {
			return err
		}
		return insertChunks(tx, id, chunks)
	})
}

// DeleteNote removes the owner's note; chunks and derived questions
// cascade away with it.
func (s *Store) DeleteNote(ctx context.Context, ownerID string, id uint) error {
	return s.withTx(ctx, func(tx *gorm.DB) error {
		res := tx.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("note_id = ?", id).Delete(&NoteChunk{}).Error; err != nil {
			return err
		}
		return tx.Where("source_note_id = ?", id).Delete(&Question{}).Error
	})
}

// ChunksByNote returns the note's chunks in document order.
func (s *Store) ChunksByNote(ctx context.Context, noteID uint) ([]NoteChunk, error) {
	var chunks []NoteChunk
	err := s.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("position").
		Find(&chunks).Error
	return chunks, err
}

func insertChunks(tx *gorm.DB, noteID uint, chunks []string) error {
	for i, content := range chunks {
		chunk := NoteChunk{Content: content, Position: i, NoteID: noteID}
		if err := tx.Create(&chunk).Error; err != nil {
			return err
		}
	}
	return nil
}
