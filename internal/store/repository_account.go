package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/models"
	"github.com/jackc/pgerrcode"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It handles account creation and lookup against the
// "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new account and returns it with the server-assigned
// CreatedAt.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAccountAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *accountRepository) Create(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount,
		account.ID,
		account.Email,
		account.Profile.Username,
		account.Profile.Avatar,
		account.Profile.Newsletter,
		account.Token,
		account.Hash,
		account.Salt,
	)

	if err := row.Scan(&account.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "*accountRepository.Create").
			Bool("retryable", r.db.retryable(err)).
			Msg("error creating account")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, ErrAccountAlreadyExists
		default:
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return account, nil
}

// FindByEmail retrieves the account registered under email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findOne(ctx, "*accountRepository.FindByEmail", findAccountByEmail, email)
}

// FindByToken retrieves the account holding the bearer token.
func (r *accountRepository) FindByToken(ctx context.Context, token string) (models.Account, error) {
	return r.findOne(ctx, "*accountRepository.FindByToken", findAccountByToken, token)
}

func (r *accountRepository) findOne(ctx context.Context, funcName, query string, arg string) (models.Account, error) {
	log := logger.FromContext(ctx)

	var account models.Account
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.Profile.Username,
		&account.Profile.Avatar,
		&account.Profile.Newsletter,
		&account.Token,
		&account.Hash,
		&account.Salt,
		&account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Bool("retryable", r.db.retryable(err)).
			Msg("error finding account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}
