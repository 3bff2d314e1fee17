package repository

import (
	"context"
	"errors"
	"fmt"

	"arto/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	UserProfile   UserProfileRepository
	ArtistProfile ArtistProfileRepository

	// Tx runs a unit of work atomically against the same backend.
	Tx Transactor
}

// Transactor runs fn inside a transaction. fn receives a Repository bound to
// that transaction; returning an error rolls every write back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgxTransactor{
		db:  db,
		log: log.With(zap.String("repository", "tx")),
	}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(q, log),
		Session:       NewSessionRepository(q, log),
		UserProfile:   NewUserProfileRepository(q, log),
		ArtistProfile: NewArtistProfileRepository(q, log),
	}
}

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(repo *Repository) error) (err error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			t.rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			t.rollback(ctx, tx)
		}
	}()

	txRepo := newRepository(tx, t.log)
	txRepo.Tx = joinedTx{repo: txRepo}

	if err = fn(txRepo); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (t *pgxTransactor) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		t.log.Error("Failed to rollback transaction", zap.Error(err))
	}
}

// joinedTx makes nested WithinTx calls reuse the outer transaction.
type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithinTx(_ context.Context, fn func(repo *Repository) error) error {
	return fn(j.repo)
}
