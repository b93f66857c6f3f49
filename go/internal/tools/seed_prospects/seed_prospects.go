package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/mockdraft/go/internal/dbconfig"
	"github.com/mcdev12/mockdraft/go/internal/models"
	"github.com/mcdev12/mockdraft/go/internal/prospects"
)

type extras struct {
	Hometown *string `json:"hometown,omitempty"`
}

func main() {
	playersPath := flag.String("players", "go/internal/assets/prospects.json", "prospects JSON file")
	orderPath := flag.String("order", "go/internal/assets/draft_order.json", "draft order JSON file")
	flag.Parse()

	ctx := context.Background()

	// 1) Load JSON
	var players []models.Player
	if err := readJSON(*playersPath, &players); err != nil {
		fail("read prospects", err)
	}
	var order []models.DraftSlot
	if err := readJSON(*orderPath, &order); err != nil {
		fail("read draft order", err)
	}

	// 2) Connect to DB
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fail("config", err)
	}
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fail("connect", err)
	}
	defer pool.Close()

	// 3) Schema
	if _, err := pool.Exec(ctx, prospects.Schema); err != nil {
		fail("apply schema", err)
	}

	// 4) Seed players and order in one transaction
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		inserted, err := seedPlayers(ctx, tx, players)
		if err != nil {
			return err
		}
		fmt.Printf("Prospects seed: total=%d upserted=%d\n", len(players), inserted)

		inserted, err = seedOrder(ctx, tx, order)
		if err != nil {
			return err
		}
		fmt.Printf("Draft order seed: total=%d upserted=%d\n", len(order), inserted)
		return nil
	})
	if err != nil {
		fail("seed", err)
	}
}

func seedPlayers(ctx context.Context, tx pgx.Tx, players []models.Player) (int64, error) {
	batch := &pgx.Batch{}
	for _, p := range players {
		ex, err := json.Marshal(extras{Hometown: p.Hometown})
		if err != nil {
			return 0, fmt.Errorf("marshal extras for %s: %w", p.Name, err)
		}
		status := p.Status
		if status == "" {
			status = models.PlayerStatusActive
		}
		batch.Queue(`
            INSERT INTO players (
              id, name, college, position, college_logo_url, headshot_url,
              ht, wt, cls, rank, hs_stars, slug, bio, pro_comp, status, extras
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
            ON CONFLICT (id) DO UPDATE SET
              name = EXCLUDED.name, college = EXCLUDED.college, position = EXCLUDED.position,
              rank = EXCLUDED.rank, slug = EXCLUDED.slug, status = EXCLUDED.status,
              extras = EXCLUDED.extras
        `,
			p.ID, p.Name, p.College, p.Position, nullable(p.CollegeLogoURL), nullable(p.HeadshotURL),
			nullable(p.Height), nullable(p.Weight), nullable(p.Class), p.Rank, p.Stars,
			nullable(p.Slug), nullable(p.Bio), nullable(p.ProComparison), status, ex,
		)
	}
	return runBatch(ctx, tx, batch)
}

func seedOrder(ctx context.Context, tx pgx.Tx, order []models.DraftSlot) (int64, error) {
	batch := &pgx.Batch{}
	for _, s := range order {
		s := s // per-iteration copy: &s.Year is retained by the batch (pre-Go 1.22 loop semantics)
		var year *int
		if s.Year != 0 {
			year = &s.Year
		}
		needs := s.Needs
		if needs == nil {
			needs = []string{}
		}
		batch.Queue(`
            INSERT INTO draft_order (
              pick_number, slot_number, round, year, team_name, team_abbr,
              team_logo_url, original_team_name, current_team_name, needs
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
            ON CONFLICT (slot_number) DO UPDATE SET
              team_name = EXCLUDED.team_name, current_team_name = EXCLUDED.current_team_name,
              needs = EXCLUDED.needs
        `,
			s.PickNumber, s.SlotNumber, s.Round, year, s.TeamName, s.TeamAbbr,
			nullable(s.TeamLogoURL), nullable(s.OriginalTeamName), nullable(s.CurrentTeamName), needs,
		)
	}
	return runBatch(ctx, tx, batch)
}

func runBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) (int64, error) {
	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	var affected int64
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("row %d: %w", i, err)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
