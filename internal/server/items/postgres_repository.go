package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/dmitrijs2005/itemvault/internal/dbx"
	"github.com/google/uuid"
)

// PostgresRepository translates the repository contract into store
// round-trips. The store's native identifier is a uuid, distinct from the
// external string id: a string that does not parse is treated as "not found"
// and never reaches the store.
//
// The connection is acquired through the provider on every call, so the
// underlying handle may be established lazily.
type PostgresRepository struct {
	conn dbx.Provider
}

func NewPostgresRepository(conn dbx.Provider) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

func (r *PostgresRepository) Create(ctx context.Context, item *Item) (*Item, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO items (name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	var id uuid.UUID
	err = db.QueryRowContext(ctx, query,
		item.Name, item.Description, item.CreatedAt, item.UpdatedAt).Scan(&id)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	item.ID = id.String()
	return item, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Item, error) {
	nativeID, err := uuid.Parse(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	query :=
		`SELECT id, name, description, created_at, updated_at FROM items
		 WHERE id = $1
		 `

	item := &Item{}
	var dbID uuid.UUID
	var description sql.NullString
	err = db.QueryRowContext(ctx, query, nativeID).
		Scan(&dbID, &item.Name, &description, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	item.ID = dbID.String()
	if description.Valid {
		item.Description = &description.String
	}

	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Item, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	// ordering is enforced by the store, not client-side
	query :=
		`SELECT id, name, description, created_at, updated_at FROM items
		 ORDER BY created_at DESC
		 `

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*Item, 0)
	for rows.Next() {
		item := &Item{}
		var dbID uuid.UUID
		var description sql.NullString
		if err := rows.Scan(&dbID, &item.Name, &description, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.ID = dbID.String()
		if description.Valid {
			item.Description = &description.String
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *Item) (*Item, error) {
	nativeID, err := uuid.Parse(item.ID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE items SET name = $2, description = $3, updated_at = $4
		 WHERE id = $1
		 `

	res, err := db.ExecContext(ctx, query, nativeID, item.Name, item.Description, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	nativeID, err := uuid.Parse(id)
	if err != nil {
		return common.ErrorNotFound
	}

	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	query :=
		`DELETE FROM items
		 WHERE id = $1
		 `

	res, err := db.ExecContext(ctx, query, nativeID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
