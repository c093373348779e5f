package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/audit"
	"taskboard/internal/identity"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// DefaultMaxAttachmentBytes is 10 MiB.
const DefaultMaxAttachmentBytes = 10 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".bmp": true, ".txt": true, ".zip": true, ".rar": true,
}

// FileStore keeps attachment bytes outside the database.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Open(name string) (io.ReadCloser, error)
	Delete(name string) error
}

// Upload is a file submitted for attachment.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type AttachmentService struct {
	store    repository.Store
	access   *AccessService
	people   *identity.Directory
	recorder *audit.Recorder
	files    FileStore
	maxBytes int64
}

func NewAttachmentService(store repository.Store, access *AccessService, people *identity.Directory, recorder *audit.Recorder, files FileStore, maxBytes int64) *AttachmentService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAttachmentBytes
	}
	return &AttachmentService{
		store:    store,
		access:   access,
		people:   people,
		recorder: recorder,
		files:    files,
		maxBytes: maxBytes,
	}
}

func (s *AttachmentService) Add(ctx context.Context, taskID, userID uuid.UUID, up Upload) (*model.Attachment, error) {
	ext, err := s.validate(up)
	if err != nil {
		return nil, err
	}

	storedName := uuid.NewString() + ext
	attachment := &model.Attachment{
		TaskID:       taskID,
		FileName:     filepath.Base(up.FileName),
		StoredName:   storedName,
		ContentType:  up.ContentType,
		UploadedByID: userID,
	}

	saved := false
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := s.access.authorizeTask(ctx, tx, taskID, userID, model.RoleEditor); err != nil {
			return err
		}
		actor, err := s.people.Resolve(ctx, userID)
		if err != nil {
			return err
		}

		// Read one byte past the limit to detect oversized bodies.
		n, err := s.files.Save(ctx, storedName, io.LimitReader(up.Content, s.maxBytes+1))
		if err != nil {
			return fmt.Errorf("store attachment: %w", err)
		}
		saved = true
		if n == 0 {
			return fmt.Errorf("%w: file is required", ErrValidation)
		}
		if n > s.maxBytes {
			return fmt.Errorf("%w: file size cannot exceed %d bytes", ErrValidation, s.maxBytes)
		}
		attachment.FileSize = n

		if err := tx.Attachments().Create(ctx, attachment); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx.Comments(), taskID, actor.ID, audit.AddedAttachment(actor.Name, attachment.FileName))
	})
	if err != nil {
		if saved {
			s.discard(storedName)
		}
		return nil, err
	}
	return attachment, nil
}

// Remove deletes the attachment row and narrates it, then drops the file.
func (s *AttachmentService) Remove(ctx context.Context, taskID, attachmentID, userID uuid.UUID) error {
	var attachment *model.Attachment
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := s.access.authorizeTask(ctx, tx, taskID, userID, model.RoleEditor); err != nil {
			return err
		}
		var err error
		attachment, err = s.attachmentOf(ctx, tx, taskID, attachmentID)
		if err != nil {
			return err
		}
		actor, err := s.people.Resolve(ctx, userID)
		if err != nil {
			return err
		}

		if err := tx.Attachments().Delete(ctx, attachmentID); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx.Comments(), taskID, actor.ID, audit.RemovedAttachment(actor.Name, attachment.FileName))
	})
	if err != nil {
		return err
	}

	s.discard(attachment.StoredName)
	return nil
}

func (s *AttachmentService) List(ctx context.Context, taskID, userID uuid.UUID) ([]model.Attachment, error) {
	if _, err := s.access.authorizeTask(ctx, s.store, taskID, userID, model.RoleViewer); err != nil {
		return nil, err
	}
	return s.store.Attachments().ListByTask(ctx, taskID)
}

// Open returns the attachment metadata and its content. The caller closes
// the reader.
func (s *AttachmentService) Open(ctx context.Context, taskID, attachmentID, userID uuid.UUID) (*model.Attachment, io.ReadCloser, error) {
	if _, err := s.access.authorizeTask(ctx, s.store, taskID, userID, model.RoleViewer); err != nil {
		return nil, nil, err
	}
	attachment, err := s.attachmentOf(ctx, s.store, taskID, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	content, err := s.files.Open(attachment.StoredName)
	if err != nil {
		return nil, nil, fmt.Errorf("open attachment %s: %w", attachmentID, err)
	}
	return attachment, content, nil
}

func (s *AttachmentService) validate(up Upload) (string, error) {
	if up.Content == nil || up.Size == 0 || strings.TrimSpace(up.FileName) == "" {
		return "", fmt.Errorf("%w: file is required", ErrValidation)
	}
	if up.Size > s.maxBytes {
		return "", fmt.Errorf("%w: file size cannot exceed %d bytes", ErrValidation, s.maxBytes)
	}
	ext := strings.ToLower(filepath.Ext(up.FileName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: invalid file type", ErrValidation)
	}
	return ext, nil
}

func (s *AttachmentService) attachmentOf(ctx context.Context, store repository.Store, taskID, attachmentID uuid.UUID) (*model.Attachment, error) {
	attachment, err := store.Attachments().GetByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if attachment.TaskID != taskID {
		return nil, repository.ErrAttachmentNotFound
	}
	return attachment, nil
}

func (s *AttachmentService) discard(storedName string) {
	if err := s.files.Delete(storedName); err != nil {
		log.WithError(err).WithField("file", storedName).Warn("failed to delete attachment file")
	}
}
