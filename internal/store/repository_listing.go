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

// listingRepository is the PostgreSQL-backed implementation of
// [ListingRepository]. Reads join the "accounts" table so that every listing
// comes back with its owner's public profile.
type listingRepository struct {
	*DB
	logger *logger.Logger
}

// NewListingRepository constructs a [ListingRepository] backed by the
// provided database connection and logger.
func NewListingRepository(db *DB, logger *logger.Logger) ListingRepository {
	logger.Debug().Msg("creating listing repository")
	return &listingRepository{
		DB:     db,
		logger: logger,
	}
}

// Create inserts listing and returns it with its timestamps set.
//
// A foreign key violation on owner_id yields [ErrOwnerNotFound].
func (l *listingRepository) Create(ctx context.Context, listing models.Listing) (models.Listing, error) {
	log := logger.FromContext(ctx)

	err := l.DB.QueryRowContext(ctx, createListing,
		listing.ID,
		listing.Name,
		listing.Description,
		listing.Price,
		listing.Details,
		listing.Image,
		listing.OwnerID,
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "listingRepository.Create").
			Str("listing_id", listing.ID).
			Bool("retryable", l.retryable(err)).
			Msg("failed to insert listing")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Listing{}, ErrOwnerNotFound
		default:
			return models.Listing{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return listing, nil
}

// Search runs the page query and the count query for filter.
func (l *listingRepository) Search(ctx context.Context, filter models.SearchFilter) ([]models.ListingSummary, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchListingsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "listingRepository.Search").Msg("failed to create search query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	countQuery, countArgs, err := buildCountListingsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "listingRepository.Search").Msg("failed to create count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "listingRepository.Search").
			Bool("retryable", l.retryable(err)).
			Msg("failed to execute search query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.ListingSummary, 0, models.SearchPageSize)

	for rows.Next() {
		item := models.ListingSummary{Owner: &models.Owner{}}

		scanErr := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Price,
			&item.Owner.ID,
			&item.Owner.Account.Username,
			&item.Owner.Account.Avatar,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "listingRepository.Search").
				Msg("failed to scan listing row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "listingRepository.Search").
			Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	var count int64
	if err := l.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "listingRepository.Search").
			Bool("retryable", l.retryable(err)).
			Msg("failed to count listings")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return results, count, nil
}

// FindByID retrieves a single listing together with its owner's public
// profile.
func (l *listingRepository) FindByID(ctx context.Context, id string) (models.Listing, error) {
	log := logger.FromContext(ctx)

	listing := models.Listing{Owner: &models.Owner{}}
	err := l.DB.QueryRowContext(ctx, findListingByID, id).Scan(
		&listing.ID,
		&listing.Name,
		&listing.Description,
		&listing.Price,
		&listing.Details,
		&listing.Image,
		&listing.OwnerID,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.Owner.Account.Username,
		&listing.Owner.Account.Avatar,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, ErrListingNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "listingRepository.FindByID").
			Str("listing_id", id).
			Bool("retryable", l.retryable(err)).
			Msg("failed to find listing")
		return models.Listing{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	listing.Owner.ID = listing.OwnerID

	return listing, nil
}

// Update writes the non-nil fields of update in a single transaction. When
// update.Details is set the stored sequence is replaced as a whole.
func (l *listingRepository) Update(ctx context.Context, update models.OfferUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateListingQuery(update)
	if err != nil {
		log.Err(err).
			Str("func", "listingRepository.Update").
			Str("listing_id", update.ID).
			Msg("failed to create update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "listingRepository.Update").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "listingRepository.Update").
			Str("listing_id", update.ID).
			Bool("retryable", l.retryable(err)).
			Msg("failed to update listing")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrListingNotFound
	}

	if update.Details != nil {
		if err := l.replaceDetails(ctx, tx, update.ID, update.Details); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "listingRepository.Update").
			Str("listing_id", update.ID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (l *listingRepository) replaceDetails(ctx context.Context, tx *sql.Tx, id string, details models.Details) error {
	log := logger.FromContext(ctx)

	result, err := tx.ExecContext(ctx, replaceListingDetails, details, id)
	if err != nil {
		log.Err(err).
			Str("func", "listingRepository.replaceDetails").
			Str("listing_id", id).
			Bool("retryable", l.retryable(err)).
			Msg("failed to replace listing details")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrListingNotFound
	}

	return nil
}
