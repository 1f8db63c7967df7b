package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/proclimb/minisystem/pkg/file"
	"github.com/proclimb/minisystem/pkg/logger"
	"github.com/proclimb/minisystem/pkg/validator"
	"github.com/proclimb/minisystem/svc/intake"
)

// Validator is the authoritative submission check, usually *intake.Engine.
type Validator interface {
	Validate(ctx context.Context, mode intake.Mode, sub intake.Submission, uploads intake.Uploads) intake.Result
}

// Service registers and updates users. Every write re-validates with the
// authoritative engine before storing anything.
type Service struct {
	engine  Validator
	store   Store
	storage file.Storage
	log     *slog.Logger
	clock   func() time.Time
	loc     *time.Location
	newID   func() uuid.UUID
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithLocation sets the zone used to interpret birth dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithIDGenerator replaces uuid.New, mainly for tests.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(engine Validator, store Store, storage file.Storage, opts ...Option) *Service {
	s := &Service{
		engine:  engine,
		store:   store,
		storage: storage,
		log:     logger.Discard(),
		clock:   time.Now,
		loc:     time.FixedZone("JST", 9*60*60),
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates in create mode, stores the uploaded documents and then
// inserts the user, address and documents in one transaction. Stored files
// are removed again when the transaction fails.
func (s *Service) Register(ctx context.Context, in Input) (*User, error) {
	uploads, err := describe(in.Files)
	if err != nil {
		return nil, err
	}

	res := s.engine.Validate(ctx, intake.ModeCreate, in.Fields, uploads)
	if !res.OK() {
		return nil, &ValidationFailedError{Result: res}
	}

	f := in.Fields
	birth, ok := validator.ParseDate(f.Get(intake.KeyBirthYear), f.Get(intake.KeyBirthMonth), f.Get(intake.KeyBirthDay), s.loc)
	if !ok {
		// The engine accepted it, so this is a mismatch between validator and parser.
		return nil, fmt.Errorf("%w: birth date", validator.ErrMalformed)
	}

	now := s.clock()
	u := &User{
		ID:        s.newID(),
		BirthDate: birth,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.applyTo(u)

	docs, err := s.saveDocuments(ctx, u.ID, in.Files, now)
	if err != nil {
		return nil, err
	}
	u.Documents = docs

	if err := s.store.Create(ctx, u); err != nil {
		s.log.ErrorContext(ctx, "failed to create user",
			logger.Component("registration"),
			logger.UserID(u.ID),
			logger.Error(err),
		)
		s.deleteDocuments(ctx, docs)
		return nil, errors.Join(ErrPersist, err)
	}

	s.fillURLs(u)
	return u, nil
}

// Update validates in edit mode and replaces the user's fields and address.
// Documents are replaced only for slots that received a new file. The birth
// date is never changed by an update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*User, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	uploads, err := describe(in.Files)
	if err != nil {
		return nil, err
	}

	res := s.engine.Validate(ctx, intake.ModeEdit, in.Fields, uploads)
	if !res.OK() {
		return nil, &ValidationFailedError{Result: res}
	}

	now := s.clock()
	updated := *current
	updated.UpdatedAt = now
	in.applyTo(&updated)

	fresh, err := s.saveDocuments(ctx, id, in.Files, now)
	if err != nil {
		return nil, err
	}

	var replaced []Document
	updated.Documents = nil
	for _, slot := range intake.Slots {
		old, hadOld := current.Document(slot)
		if d, ok := findDocument(fresh, slot); ok {
			updated.Documents = append(updated.Documents, d)
			if hadOld {
				replaced = append(replaced, old)
			}
			continue
		}
		if hadOld {
			updated.Documents = append(updated.Documents, old)
		}
	}

	if err := s.store.Update(ctx, &updated); err != nil {
		s.log.ErrorContext(ctx, "failed to update user",
			logger.Component("registration"),
			logger.UserID(id),
			logger.Error(err),
		)
		s.deleteDocuments(ctx, fresh)
		return nil, errors.Join(ErrPersist, err)
	}

	s.deleteDocuments(ctx, replaced)
	s.fillURLs(&updated)
	return &updated, nil
}

// Get returns a user with document URLs resolved.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.fillURLs(u)
	return u, nil
}

// describe sniffs every chosen upload. Read failures are infrastructure
// errors, not validation problems.
func describe(files map[string]*multipart.FileHeader) (intake.Uploads, error) {
	uploads := make(intake.Uploads, len(files))
	for _, slot := range intake.Slots {
		fh, ok := files[slot]
		if !ok || fh == nil {
			continue
		}
		d, err := file.Describe(fh)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadUpload, slot, err)
		}
		uploads[slot] = &d
	}
	return uploads, nil
}

// DocumentKey is the storage key of a document: users/{user}/{slot}-{version}{ext}.
// A fresh version per upload keeps the previous object intact until the
// database points at the new one.
func DocumentKey(userID uuid.UUID, slot string, version uuid.UUID, ext string) string {
	return fmt.Sprintf("users/%s/%s-%s%s", userID, slot, version, ext)
}

func (s *Service) saveDocuments(ctx context.Context, userID uuid.UUID, files map[string]*multipart.FileHeader, now time.Time) ([]Document, error) {
	var saved []Document
	for _, slot := range intake.Slots {
		fh, ok := files[slot]
		if !ok || fh == nil {
			continue
		}

		mediaType, err := file.DetectMIMEType(fh)
		if err != nil {
			s.deleteDocuments(ctx, saved)
			return nil, fmt.Errorf("%w: %s: %w", ErrReadUpload, slot, err)
		}

		key := DocumentKey(userID, slot, uuid.New(), file.ExtensionFor(mediaType, fh.Filename))
		stored, err := s.storage.Save(ctx, fh, key)
		if err != nil {
			s.log.ErrorContext(ctx, "failed to store document",
				logger.Component("registration"),
				logger.UserID(userID),
				logger.Field(slot),
				logger.Error(err),
			)
			s.deleteDocuments(ctx, saved)
			return nil, fmt.Errorf("%w: %s: %w", ErrStoreDocument, slot, err)
		}

		saved = append(saved, Document{
			Slot:      slot,
			Key:       stored.Key,
			Filename:  stored.Filename,
			MediaType: stored.MediaType,
			Size:      stored.Size,
			CreatedAt: now,
		})
	}
	return saved, nil
}

// deleteDocuments removes stored objects on a best-effort basis.
func (s *Service) deleteDocuments(ctx context.Context, docs []Document) {
	ctx = context.WithoutCancel(ctx)
	for _, d := range docs {
		if err := s.storage.Delete(ctx, d.Key); err != nil && !errors.Is(err, file.ErrFileNotFound) {
			s.log.WarnContext(ctx, "failed to delete document",
				logger.Component("registration"),
				slog.String("key", d.Key),
				logger.Error(err),
			)
		}
	}
}

func (s *Service) fillURLs(u *User) {
	for i := range u.Documents {
		u.Documents[i].URL = s.storage.URL(u.Documents[i].Key)
	}
}

func findDocument(docs []Document, slot string) (Document, bool) {
	for _, d := range docs {
		if d.Slot == slot {
			return d, true
		}
	}
	return Document{}, false
}
