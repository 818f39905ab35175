package services

import (
	"context"

	"civic/internal/database"
	"civic/internal/logger"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TransactionService scopes a gorm transaction to a context so
// repositories can join it transparently.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("transactionService"),
	}
}

// WithTransaction runs fn inside a transaction carried on the context.
func (s *TransactionService) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	log := s.log.Function("WithTransaction")

	return s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txContextKey{}, tx)
		if err := fn(txCtx); err != nil {
			log.Er("transaction rolled back", err)
			return err
		}
		return nil
	})
}

// GetTransaction returns the context's transaction, if any.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}
