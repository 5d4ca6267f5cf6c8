package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/identity"
	"github.com/ebookstore/backend/internal/domain/order"
)

type txRepos struct {
	orders order.Repository
	books  catalog.BookRepository
	users  identity.UserRepository
}

func (r *txRepos) Orders() order.Repository       { return r.orders }
func (r *txRepos) Books() catalog.BookRepository  { return r.books }
func (r *txRepos) Users() identity.UserRepository { return r.users }

// GormTransactionManager implements order.TransactionManager on a GORM
// connection. Repositories handed to the callback share one transaction;
// a returned error rolls back every mutation made through them.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a transaction manager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTx runs fn inside a single database transaction
func (tm *GormTransactionManager) WithinTx(ctx context.Context, fn func(r order.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepos{
			orders: NewGormOrderRepository(tx),
			books:  NewGormBookRepository(tx),
			users:  NewGormUserRepository(tx),
		})
	})
}
