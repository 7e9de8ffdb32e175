package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"investmap/internal/models"

	"github.com/google/uuid"
)

type StartupsRepository interface {
	Create(ctx context.Context, startup *models.Startup) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Startup, error)
	Update(ctx context.Context, startup *models.Startup) error
	List(ctx context.Context, limit, offset int) ([]*models.Startup, error)
	Search(ctx context.Context, filters *models.StartupFilters) ([]*models.Startup, error)
	UpdateTier(ctx context.Context, id uuid.UUID, tier string, tierStartedAt *time.Time) error
	SetPitchDeckURL(ctx context.Context, id uuid.UUID, url string) error
	SetHeartCount(ctx context.Context, id uuid.UUID, count int) error
	CreatedSince(ctx context.Context, since time.Time) ([]*models.Startup, error)
}

type startupsRepo struct {
	db Database
}

func NewStartupsRepo(db Database) StartupsRepository {
	return &startupsRepo{db: db}
}

const startupColumns = `id, name, tagline, short_description, category, secondary_categories, city, country, lat, lng,
		founded_year, team_size, employee_count, funding_stage, pricing_tier, tier_started_at,
		pitch_deck_url, website_url, revenue_last_12m, revenue_cagr_3y, verified_financials,
		gdpr_compliant, profile_completeness_score, heart_count, created_at, updated_at`

func scanStartup(row interface{ Scan(dest ...interface{}) error }) (*models.Startup, error) {
	s := &models.Startup{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Tagline, &s.ShortDescription, &s.Category, &s.SecondaryCategories,
		&s.City, &s.Country, &s.Lat, &s.Lng,
		&s.FoundedYear, &s.TeamSize, &s.EmployeeCount, &s.FundingStage, &s.PricingTier, &s.TierStartedAt,
		&s.PitchDeckURL, &s.WebsiteURL, &s.RevenueLast12M, &s.RevenueCAGR3Y, &s.VerifiedFinancials,
		&s.GDPRCompliant, &s.ProfileCompletenessScore, &s.HeartCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *startupsRepo) Create(ctx context.Context, startup *models.Startup) error {
	if startup.ID == uuid.Nil {
		startup.ID = uuid.New()
	}
	query := `
		INSERT INTO startups (` + startupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		startup.ID, startup.Name, startup.Tagline, startup.ShortDescription, startup.Category,
		startup.SecondaryCategories, startup.City, startup.Country, startup.Lat, startup.Lng,
		startup.FoundedYear, startup.TeamSize, startup.EmployeeCount, startup.FundingStage,
		startup.PricingTier, startup.TierStartedAt, startup.PitchDeckURL, startup.WebsiteURL,
		startup.RevenueLast12M, startup.RevenueCAGR3Y, startup.VerifiedFinancials,
		startup.GDPRCompliant, startup.ProfileCompletenessScore, startup.HeartCount,
	)
	return err
}

func (r *startupsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startups WHERE id = $1`
	return scanStartup(r.db.QueryRow(ctx, query, id))
}

func (r *startupsRepo) Update(ctx context.Context, startup *models.Startup) error {
	query := `
		UPDATE startups
		SET name = $1, tagline = $2, short_description = $3, category = $4, secondary_categories = $5,
		    city = $6, country = $7, lat = $8, lng = $9, founded_year = $10, team_size = $11,
		    employee_count = $12, funding_stage = $13, website_url = $14, revenue_last_12m = $15,
		    revenue_cagr_3y = $16, gdpr_compliant = $17, profile_completeness_score = $18, updated_at = NOW()
		WHERE id = $19
	`
	_, err := r.db.Exec(ctx, query,
		startup.Name, startup.Tagline, startup.ShortDescription, startup.Category,
		startup.SecondaryCategories, startup.City, startup.Country, startup.Lat, startup.Lng,
		startup.FoundedYear, startup.TeamSize, startup.EmployeeCount, startup.FundingStage,
		startup.WebsiteURL, startup.RevenueLast12M, startup.RevenueCAGR3Y, startup.GDPRCompliant,
		startup.ProfileCompletenessScore, startup.ID,
	)
	return err
}

func (r *startupsRepo) List(ctx context.Context, limit, offset int) ([]*models.Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startups ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var startups []*models.Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, err
		}
		startups = append(startups, s)
	}
	return startups, rows.Err()
}

// Search builds a filtered query from the supplied filters. All values are
// bound parameters.
func (r *startupsRepo) Search(ctx context.Context, filters *models.StartupFilters) ([]*models.Startup, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filters.Categories) > 0 {
		conditions = append(conditions, "category = ANY("+arg(filters.Categories)+")")
	}
	if filters.City != nil {
		conditions = append(conditions, "city = "+arg(*filters.City))
	}
	if filters.Country != nil {
		conditions = append(conditions, "country = "+arg(*filters.Country))
	}
	if filters.FundingStage != nil {
		conditions = append(conditions, "funding_stage = "+arg(*filters.FundingStage))
	}
	if len(filters.PricingTiers) > 0 {
		conditions = append(conditions, "pricing_tier = ANY("+arg(filters.PricingTiers)+")")
	}
	if filters.MinTeamSize != nil {
		conditions = append(conditions, "team_size >= "+arg(*filters.MinTeamSize))
	}
	if filters.MaxTeamSize != nil {
		conditions = append(conditions, "team_size <= "+arg(*filters.MaxTeamSize))
	}
	if filters.MinRevenue != nil {
		conditions = append(conditions, "revenue_last_12m >= "+arg(*filters.MinRevenue))
	}
	if filters.MaxRevenue != nil {
		conditions = append(conditions, "revenue_last_12m <= "+arg(*filters.MaxRevenue))
	}
	if filters.MinCAGR != nil {
		conditions = append(conditions, "revenue_cagr_3y >= "+arg(*filters.MinCAGR))
	}
	if filters.MaxCAGR != nil {
		conditions = append(conditions, "revenue_cagr_3y <= "+arg(*filters.MaxCAGR))
	}

	query := `SELECT ` + startupColumns + ` FROM startups`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	limit := filters.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}
	query += " ORDER BY created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var startups []*models.Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, err
		}
		startups = append(startups, s)
	}
	return startups, rows.Err()
}

func (r *startupsRepo) UpdateTier(ctx context.Context, id uuid.UUID, tier string, tierStartedAt *time.Time) error {
	query := `UPDATE startups SET pricing_tier = $1, tier_started_at = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.Exec(ctx, query, tier, tierStartedAt, id)
	return err
}

func (r *startupsRepo) SetPitchDeckURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `UPDATE startups SET pitch_deck_url = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, url, id)
	return err
}

func (r *startupsRepo) SetHeartCount(ctx context.Context, id uuid.UUID, count int) error {
	query := `UPDATE startups SET heart_count = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, count, id)
	return err
}

func (r *startupsRepo) CreatedSince(ctx context.Context, since time.Time) ([]*models.Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startups WHERE created_at >= $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var startups []*models.Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, err
		}
		startups = append(startups, s)
	}
	return startups, rows.Err()
}
