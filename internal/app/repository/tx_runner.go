package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repositories groups the repositories bound to a single transaction.
type Repositories struct {
	Empresas EmpresaRepository
	Sedes    SedeRepository
}

// TxRunner runs a unit of work inside one database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
	RunReadOnly(ctx context.Context, fn func(repos Repositories) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) Run(ctx context.Context, fn func(repos Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

func (r *gormTxRunner) RunReadOnly(ctx context.Context, fn func(repos Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	}, &sql.TxOptions{ReadOnly: true})
}

func bind(tx *gorm.DB) Repositories {
	return Repositories{
		Empresas: NewEmpresaRepository(tx),
		Sedes:    NewSedeRepository(tx),
	}
}
