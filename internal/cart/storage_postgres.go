package cart

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStorage persists one cart snapshot per session key. Save
// rewrites the snapshot inside a transaction, delete then insert, so a
// reader never observes a partial cart.
type PostgresStorage struct {
	db         *sql.DB
	sessionKey string
}

func NewPostgresStorage(db *sql.DB, sessionKey string) *PostgresStorage {
	return &PostgresStorage{db: db, sessionKey: sessionKey}
}

func (p *PostgresStorage) Load(ctx context.Context) ([]LineItem, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT product_id, name, price, quantity, image
         FROM cart_items WHERE session_key = $1 ORDER BY position`,
		p.sessionKey)
	if err != nil {
		return nil, fmt.Errorf("select cart_items: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &it.Image); err != nil {
			return nil, fmt.Errorf("scan cart_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func (p *PostgresStorage) Save(ctx context.Context, items []LineItem) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE session_key = $1`, p.sessionKey); err != nil {
		return fmt.Errorf("delete cart_items: %w", err)
	}

	if len(items) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO cart_items (session_key, position, product_id, name, price, quantity, image)
             VALUES ($1, $2, $3, $4, $5, $6, $7)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for pos, it := range items {
			if _, err := stmt.ExecContext(ctx, p.sessionKey, pos, it.ID, it.Name, it.Price, it.Quantity, it.Image); err != nil {
				return fmt.Errorf("insert cart_item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
