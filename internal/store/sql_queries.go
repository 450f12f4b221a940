package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-marketplace/models"
)

const (
	createAccount = `INSERT INTO accounts (id, email, username, avatar, newsletter, token, hash, salt)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING created_at;`

	findAccountByEmail = `SELECT id, email, username, avatar, newsletter, token, hash, salt, created_at
    FROM accounts
    WHERE email = $1;`

	findAccountByToken = `SELECT id, email, username, avatar, newsletter, token, hash, salt, created_at
    FROM accounts
    WHERE token = $1;`

	createListing = `INSERT INTO listings (id, name, description, price, details, image, owner_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING created_at, updated_at;`

	findListingByID = `SELECT l.id, l.name, l.description, l.price::float8, l.details, l.image, l.owner_id,
        l.created_at, l.updated_at, a.username, a.avatar
    FROM listings l
    JOIN accounts a ON a.id = l.owner_id
    WHERE l.id = $1;`

	replaceListingDetails = `UPDATE listings
    SET details = $1, updated_at = NOW()
    WHERE id = $2;`
)

// psql renders squirrel builders with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE pattern matching any name that
// contains s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// searchConditions translates filter into WHERE predicates shared by the page
// query and the count query.
func searchConditions(filter models.SearchFilter) sq.And {
	conds := sq.And{}
	if filter.Title != "" {
		conds = append(conds, sq.ILike{"l.name": containsPattern(filter.Title)})
	}
	if filter.PriceMin != nil {
		conds = append(conds, sq.GtOrEq{"l.price": *filter.PriceMin})
	}
	if filter.PriceMax != nil {
		conds = append(conds, sq.LtOrEq{"l.price": *filter.PriceMax})
	}
	return conds
}

// searchOrder returns the ORDER BY terms for the sort key. Ties are broken by
// id so that pagination is stable.
func searchOrder(sort string) []string {
	switch sort {
	case models.SortPriceAsc:
		return []string{"l.price ASC", "l.id ASC"}
	case models.SortPriceDesc:
		return []string{"l.price DESC", "l.id ASC"}
	default:
		return []string{"l.created_at ASC", "l.id ASC"}
	}
}

func buildSearchListingsQuery(filter models.SearchFilter) (string, []any, error) {
	builder := psql.
		Select("l.id", "l.name", "l.price::float8", "l.owner_id", "a.username", "a.avatar").
		From("listings l").
		Join("accounts a ON a.id = l.owner_id")

	if conds := searchConditions(filter); len(conds) > 0 {
		builder = builder.Where(conds)
	}

	return builder.
		OrderBy(searchOrder(filter.Sort)...).
		Limit(models.SearchPageSize).
		Offset(filter.Offset()).
		ToSql()
}

func buildCountListingsQuery(filter models.SearchFilter) (string, []any, error) {
	builder := psql.Select("COUNT(*)").From("listings l")

	if conds := searchConditions(filter); len(conds) > 0 {
		builder = builder.Where(conds)
	}

	return builder.ToSql()
}

// buildUpdateListingQuery builds the UPDATE for the scalar and image fields
// of update. Details are written separately through replaceListingDetails.
func buildUpdateListingQuery(update models.OfferUpdate) (string, []any, error) {
	builder := psql.Update("listings").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": update.ID})

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Price != nil {
		builder = builder.Set("price", *update.Price)
	}
	if update.Image != nil {
		builder = builder.Set("image", update.Image)
	}

	return builder.ToSql()
}
