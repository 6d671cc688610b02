package main

import (
	"context"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/crease/internal/database"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/roster"
	"github.com/mauv0809/crease/internal/scoring"
	"github.com/mauv0809/crease/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"TURSO_PRIMARY_URL": os.Getenv("TURSO_PRIMARY_URL"),
		"TURSO_AUTH_TOKEN":  os.Getenv("TURSO_AUTH_TOKEN"),
		"SEED_MATCHES":      "1",
		"SEED_OVERS":        "5",
		"SEED_TOURNAMENT":   "seed-cup",
	}
	for _, key := range []string{"DB_NAME", "ROSTER_FILE"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	for _, key := range []string{"SEED_MATCHES", "SEED_OVERS", "SEED_TOURNAMENT"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func atoi(cfg map[string]string, key string) int {
	n, err := strconv.Atoi(cfg[key])
	if err != nil || n <= 0 {
		log.Fatalf("Error: %s must be a positive number, got %q", key, cfg[key])
	}
	return n
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	teams, err := roster.LoadFile(cfg["ROSTER_FILE"])
	if err != nil {
		log.Fatalf("Failed to load roster: %s", err)
	}
	if len(teams) < 2 {
		log.Fatalf("Roster needs at least two teams, found %d", len(teams))
	}
	rosters := roster.New(db)
	if err := roster.Import(ctx, rosters, teams); err != nil {
		log.Fatalf("Failed to import roster: %s", err)
	}
	log.Info("Imported roster", "teams", len(teams))

	svc := match.NewService(store.New(db, store.NewBroker()), rosters, metrics.NewService(prometheus.NewRegistry()),
		match.WithCounters(metrics.New(db)))

	numMatches := atoi(cfg, "SEED_MATCHES")
	overs := atoi(cfg, "SEED_OVERS")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	startTime := time.Now()

	for i := range numMatches {
		a := teams[i%len(teams)]
		b := teams[(i+1)%len(teams)]
		m, err := svc.Create(ctx, match.CreateRequest{
			TournamentID: cfg["SEED_TOURNAMENT"],
			Stage:        "Group",
			ScheduledAt:  startTime.Add(time.Duration(i) * 24 * time.Hour),
			TeamA:        a.ID,
			TeamB:        b.ID,
			TotalOvers:   overs,
		})
		if err != nil {
			log.Fatalf("Failed to create match: %s", err)
		}
		sim := &simulator{svc: svc, rng: rng, id: m.ID}
		final, err := sim.run(ctx)
		if err != nil {
			log.Fatalf("Failed to simulate match %s: %s", m.ID, err)
		}
		log.Info("Seeded match", "match_id", final.ID, "result", final.Result, "mom", final.MOM, "version", final.Version)
	}

	log.Info("Seeding complete.", "matches", numMatches, "duration", time.Since(startTime))
}

// simulator plays a match ball by ball, taking every decision the engine asks for.
type simulator struct {
	svc *match.Service
	rng *rand.Rand
	id  string
}

var runsOffBat = []int{0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 4, 4, 6}

func (sim *simulator) apply(ctx context.Context, cmd scoring.Command) (*scoring.State, error) {
	s, _, err := sim.svc.Apply(ctx, sim.id, cmd, true)
	return s, err
}

func (sim *simulator) run(ctx context.Context) (*scoring.State, error) {
	s, err := sim.apply(ctx, scoring.StartMatch{})
	if err != nil {
		return nil, err
	}
	for s.Status != scoring.StatusCompleted {
		var cmd scoring.Command
		switch s.Phase() {
		case scoring.PhaseAwaitingInningsSetup:
			bat, bowl := s.BattingTeam().Names(), s.BowlingTeam().Names()
			cmd = scoring.StartInnings{Striker: bat[0], NonStriker: bat[1], Bowler: bowl[len(bowl)-1]}
		case scoring.PhaseAwaitingNewBatsman:
			cmd = scoring.SelectNewBatsman{Player: nextBatter(s)}
		case scoring.PhaseAwaitingNewBowler:
			cmd = scoring.SelectNewBowler{Player: sim.nextBowler(s)}
		case scoring.PhaseInningsBreak:
			cmd = scoring.StartSecondInnings{}
		case scoring.PhaseConcluding:
			cmd = scoring.FinalizeMatch{}
		default:
			cmd = sim.delivery(s)
		}
		next, err := sim.apply(ctx, cmd)
		if err != nil {
			return nil, err
		}
		s = next
	}
	return s, nil
}

func (sim *simulator) delivery(s *scoring.State) scoring.RecordDelivery {
	fielders := s.BowlingTeam().Names()
	switch r := sim.rng.Intn(100); {
	case r < 3:
		return scoring.RecordDelivery{Kind: scoring.KindLegal, IsWicket: true, Dismissal: &scoring.Dismissal{Type: scoring.Bowled}}
	case r < 6:
		return scoring.RecordDelivery{Kind: scoring.KindLegal, IsWicket: true, Dismissal: &scoring.Dismissal{Type: scoring.Caught, Fielder: fielders[sim.rng.Intn(len(fielders))]}}
	case r < 9:
		return scoring.RecordDelivery{Kind: scoring.KindWide}
	case r < 11:
		return scoring.RecordDelivery{Kind: scoring.KindNoBall, Runs: runsOffBat[sim.rng.Intn(len(runsOffBat))]}
	case r < 13:
		return scoring.RecordDelivery{Kind: scoring.KindLegBye, Runs: 1}
	default:
		return scoring.RecordDelivery{Kind: scoring.KindLegal, Runs: runsOffBat[sim.rng.Intn(len(runsOffBat))]}
	}
}

// nextBatter is the first player in the batting order who has not been in yet.
func nextBatter(s *scoring.State) string {
	for _, name := range s.BattingTeam().Names() {
		if _, ok := s.BattingStats[name]; !ok {
			return name
		}
	}
	return ""
}

// nextBowler picks one of the last five in the order who did not bowl the previous over.
func (sim *simulator) nextBowler(s *scoring.State) string {
	names := s.BowlingTeam().Names()
	attack := names[max(0, len(names)-5):]
	previous := s.Pending[0].Outgoing
	candidates := slices.DeleteFunc(slices.Clone(attack), func(n string) bool { return n == previous })
	if len(candidates) == 0 {
		return previous
	}
	return candidates[sim.rng.Intn(len(candidates))]
}
