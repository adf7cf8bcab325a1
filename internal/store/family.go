package store

import (
	"context"
	"fmt"
	"time"

	"plumbfam/internal/utils"
	"plumbfam/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const familyTableName = "plumbfam.plumbing_families"

var familyColumns = utils.StructTagValues(types.Family{})

type FamilyRepository struct {
	pool *pgxpool.Pool
}

func NewFamilyRepository(pool *pgxpool.Pool) *FamilyRepository {
	return &FamilyRepository{pool: pool}
}

// AllFamilies returns every record ordered by creation time descending,
// which is the only ordering the catalog uses.
func (r *FamilyRepository) AllFamilies(ctx context.Context) ([]*types.Family, error) {

	query, args, err := psql().Select(familyColumns...).From(familyTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate families query: %w", err)
	}

	var families = make([]*types.Family, 0)
	err = pgxscan.Select(ctx, r.pool, &families, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch families: %w", err)
	}

	return families, nil
}

func (r *FamilyRepository) FamilyByID(ctx context.Context, familyID string) (*types.Family, error) {

	query, args, err := psql().Select(familyColumns...).From(familyTableName).
		Where(sq.Eq{"id": familyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate family query: %w", err)
	}

	var family = new(types.Family)
	err = pgxscan.Get(ctx, r.pool, family, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrFamilyNotFound
	}

	return family, nil
}

func (r *FamilyRepository) CreateFamily(ctx context.Context, family *types.Family) error {

	family.ID = utils.NanoID()
	family.CreatedAt = time.Now()

	query, args, err := psql().Insert(familyTableName).
		Columns(familyColumns...).
		Values(
			family.ID,
			family.FamilyName,
			family.Category,
			family.ImageURL,
			family.RvtFileURL,
			family.Rating,
			family.UserID,
			family.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert family query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create family")
}

func (r *FamilyRepository) DeleteFamily(ctx context.Context, familyID string) error {

	query, args, err := psql().Delete(familyTableName).Where(sq.Eq{"id": familyID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete family query for family %s: %w", familyID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete family")
}
