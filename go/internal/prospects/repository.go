package prospects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/mockdraft/go/internal/models"
	"github.com/mcdev12/mockdraft/go/internal/sqlutil"
)

const playerColumns = `id, name, college, position, college_logo_url, headshot_url,
	ht, wt, cls, rank, hs_stars, slug, bio, pro_comp, status, extras`

// Repository reads prospects straight from Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new prospects repository
func NewRepository(database *sql.DB) *Repository {
	return &Repository{db: database}
}

// playerExtras are loosely attached fields kept in the extras jsonb column
type playerExtras struct {
	Hometown *string `json:"hometown"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (models.Player, error) {
	var (
		p                           models.Player
		logo, headshot, ht, wt, cls sql.NullString
		slug, bio, proComp          sql.NullString
		rank                        sql.NullInt32
		stars                       sql.NullInt16
		extras                      pqtype.NullRawMessage
	)
	err := row.Scan(&p.ID, &p.Name, &p.College, &p.Position, &logo, &headshot,
		&ht, &wt, &cls, &rank, &stars, &slug, &bio, &proComp, &p.Status, &extras)
	if err != nil {
		return models.Player{}, err
	}

	p.CollegeLogoURL = sqlutil.FromSqlString(logo, "")
	p.HeadshotURL = sqlutil.FromSqlString(headshot, "")
	p.Height = sqlutil.FromSqlString(ht, "")
	p.Weight = sqlutil.FromSqlString(wt, "")
	p.Class = sqlutil.FromSqlString(cls, "")
	p.Rank = sqlutil.FromSqlInt32(rank)
	if stars.Valid {
		n := sqlutil.FromSqlInt16(stars)
		p.Stars = &n
	}
	p.Slug = sqlutil.FromSqlString(slug, "")
	p.Bio = sqlutil.FromSqlString(bio, "")
	p.ProComparison = sqlutil.FromSqlString(proComp, "")

	var ex playerExtras
	if err := sqlutil.FromNullRawMessage(extras, &ex); err != nil {
		return models.Player{}, fmt.Errorf("failed to decode extras for player %d: %w", p.ID, err)
	}
	p.Hometown = ex.Hometown
	return p, nil
}

func (r *Repository) listPlayers(ctx context.Context, query string, args ...any) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ListActivePlayers returns the live draft pool
func (r *Repository) ListActivePlayers(ctx context.Context) ([]models.Player, error) {
	players, err := r.listPlayers(ctx,
		`SELECT `+playerColumns+` FROM players WHERE status = $1 ORDER BY rank ASC NULLS LAST, id ASC`,
		models.PlayerStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active players: %w", err)
	}
	return players, nil
}

// ListAllPlayers returns every player for the big board
func (r *Repository) ListAllPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := r.listPlayers(ctx,
		`SELECT `+playerColumns+` FROM players ORDER BY rank ASC NULLS LAST, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// GetPlayerBySlug retrieves one player for a profile page
func (r *Repository) GetPlayerBySlug(ctx context.Context, slug string) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE slug = $1`, slug)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", slug, ErrPlayerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

// ListDraftOrder returns the real draft order
func (r *Repository) ListDraftOrder(ctx context.Context) ([]models.DraftSlot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pick_number, slot_number, round, year, team_name, team_abbr,
		       team_logo_url, original_team_name, current_team_name, needs
		FROM draft_order
		ORDER BY slot_number ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft order: %w", err)
	}
	defer rows.Close()

	var order []models.DraftSlot
	for rows.Next() {
		var (
			s                 models.DraftSlot
			year              sql.NullInt32
			logo              sql.NullString
			original, current sql.NullString
		)
		err := rows.Scan(&s.ID, &s.PickNumber, &s.SlotNumber, &s.Round, &year, &s.TeamName,
			&s.TeamAbbr, &logo, &original, &current, pq.Array(&s.Needs))
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft slot: %w", err)
		}
		if y := sqlutil.FromSqlInt32(year); y != nil {
			s.Year = *y
		}
		s.TeamLogoURL = sqlutil.FromSqlString(logo, "")
		s.OriginalTeamName = sqlutil.FromSqlString(original, s.TeamName)
		s.CurrentTeamName = sqlutil.FromSqlString(current, s.TeamName)
		order = append(order, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list draft order: %w", err)
	}
	return order, nil
}
