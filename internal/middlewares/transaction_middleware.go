package middlewares

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type txKeyType struct{}

var txKey = txKeyType{}

// GetTxFromContext retrieves a transaction previously placed in the context.
func GetTxFromContext(ctx context.Context) (*gorm.DB, error) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return nil, errors.New("transaction not found in context")
	}
	return tx, nil
}

// WithTransaction runs fn inside a transaction. If the context already
// carries one, it is reused so nested calls share a single unit of work;
// otherwise a new transaction is opened and committed or rolled back around
// fn.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return fn(tx)
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
