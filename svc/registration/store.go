package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/proclimb/minisystem/pkg/pg"
)

// Store persists users. Create and Update are atomic across the user, its
// address and its documents.
type Store interface {
	Create(ctx context.Context, u *User) error
	// Update rewrites the user row, the address and every document in u.Documents.
	Update(ctx context.Context, u *User) error
	// Get returns ErrUserNotFound for unknown ids.
	Get(ctx context.Context, id uuid.UUID) (*User, error)
}

// DB is the subset of *pgxpool.Pool used by PgStore.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgStore is the PostgreSQL Store.
type PgStore struct {
	db DB
}

func NewPgStore(db DB) *PgStore {
	return &PgStore{db: db}
}

const (
	insertUserSQL = `INSERT INTO users (id, name, kana, birth_date, tel, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	insertAddressSQL = `INSERT INTO user_addresses (user_id, postal_code, prefecture, city_town, building, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	updateUserSQL = `UPDATE users SET name = $2, kana = $3, tel = $4, email = $5, updated_at = $6 WHERE id = $1`
	updateAddressSQL = `UPDATE user_addresses
		SET postal_code = $2, prefecture = $3, city_town = $4, building = $5, updated_at = $6
		WHERE user_id = $1`
	upsertDocumentSQL = `INSERT INTO user_documents (user_id, slot, storage_key, filename, media_type, size_bytes, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, slot) DO UPDATE
		SET storage_key = EXCLUDED.storage_key,
			filename = EXCLUDED.filename,
			media_type = EXCLUDED.media_type,
			size_bytes = EXCLUDED.size_bytes,
			uploaded_at = EXCLUDED.uploaded_at`
	selectUserSQL = `SELECT u.id, u.name, u.kana, u.birth_date, u.tel, u.email, u.created_at, u.updated_at,
			a.postal_code, a.prefecture, a.city_town, a.building
		FROM users u
		JOIN user_addresses a ON a.user_id = u.id
		WHERE u.id = $1`
	selectDocumentsSQL = `SELECT slot, storage_key, filename, media_type, size_bytes, uploaded_at
		FROM user_documents WHERE user_id = $1 ORDER BY slot`
)

func (s *PgStore) Create(ctx context.Context, u *User) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertUserSQL,
			u.ID, u.Name, u.Kana, u.BirthDate, u.Tel, u.Email, u.CreatedAt, u.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		if _, err := tx.Exec(ctx, insertAddressSQL,
			u.ID, u.Address.PostalCode, u.Address.Prefecture, u.Address.CityTown, u.Address.Building, u.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
		return upsertDocuments(ctx, tx, u)
	})
}

func (s *PgStore) Update(ctx context.Context, u *User) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateUserSQL, u.ID, u.Name, u.Kana, u.Tel, u.Email, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrUserNotFound
		}
		if _, err := tx.Exec(ctx, updateAddressSQL,
			u.ID, u.Address.PostalCode, u.Address.Prefecture, u.Address.CityTown, u.Address.Building, u.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update address: %w", err)
		}
		return upsertDocuments(ctx, tx, u)
	})
}

func upsertDocuments(ctx context.Context, tx pgx.Tx, u *User) error {
	if len(u.Documents) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, d := range u.Documents {
		batch.Queue(upsertDocumentSQL, u.ID, d.Slot, d.Key, d.Filename, d.MediaType, d.Size, d.CreatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert documents: %w", err)
	}
	return nil
}

func (s *PgStore) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u := &User{}
	err := s.db.QueryRow(ctx, selectUserSQL, id).Scan(
		&u.ID, &u.Name, &u.Kana, &u.BirthDate, &u.Tel, &u.Email, &u.CreatedAt, &u.UpdatedAt,
		&u.Address.PostalCode, &u.Address.Prefecture, &u.Address.CityTown, &u.Address.Building,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	rows, err := s.db.Query(ctx, selectDocumentsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Document, error) {
		var d Document
		err := row.Scan(&d.Slot, &d.Key, &d.Filename, &d.MediaType, &d.Size, &d.CreatedAt)
		return d, err
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	u.Documents = docs
	return u, nil
}
