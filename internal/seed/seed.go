// Package seed prepares a fresh installation: the admin account and,
// optionally, demo teams and matches read from a YAML file.
package seed

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/config"
	matchModel "github.com/clubdesk/matchday/internal/match/model"
	matchRepository "github.com/clubdesk/matchday/internal/match/repository"
	playerRepository "github.com/clubdesk/matchday/internal/player/repository"
	teamModel "github.com/clubdesk/matchday/internal/team/model"
	teamRepository "github.com/clubdesk/matchday/internal/team/repository"
)

// Thresholds below which seeded data is added.
const (
	MinRoster  = 5
	MinMatches = 3
)

// AdminEnsurer creates the admin account when missing.
type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// Seeder writes seed data.
type Seeder struct {
	db     *gorm.DB
	users  AdminEnsurer
	clock  clockwork.Clock
	logger *zap.SugaredLogger
}

// New creates a seeder. A nil clock means the real clock.
func New(db *gorm.DB, users AdminEnsurer, clock clockwork.Clock, logger *zap.SugaredLogger) *Seeder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Seeder{db: db, users: users, clock: clock, logger: logger}
}

// Run ensures the admin account and applies cfg.File when set.
func (s *Seeder) Run(ctx context.Context, cfg config.SeedConfig) error {
	if _, err := s.users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return errors.Wrap(err, "ensure admin")
	}

	if cfg.File == "" {
		return nil
	}
	file, err := LoadFile(cfg.File)
	if err != nil {
		return err
	}
	return s.Apply(ctx, file)
}

// Apply writes the teams and matches of file in one transaction.
func (s *Seeder) Apply(ctx context.Context, file *File) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teams := teamRepository.New(tx, s.logger)
		players := playerRepository.New(tx, s.logger)
		matches := matchRepository.New(tx, s.logger)

		ids := make(map[string]string, len(file.Teams))
		for _, t := range file.Teams {
			id, err := s.seedTeam(ctx, teams, players, t)
			if err != nil {
				return errors.Wrapf(err, "seed team %s", t.Name)
			}
			ids[t.Name] = id
		}

		return s.seedMatches(ctx, teams, matches, file.Matches, ids)
	})
}

func orDefault(v string) string {
	if strings.TrimSpace(v) == "" {
		return teamModel.DefaultText
	}
	return strings.TrimSpace(v)
}

func newTeam(t Team) *teamModel.Team {
	team := &teamModel.Team{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(t.Name),
		Country:     orDefault(t.Country),
		FoundedYear: teamModel.DefaultFoundedYear,
		Coach:       orDefault(t.Coach),
		Stadium:     orDefault(t.Stadium),
		League:      orDefault(t.League),
		Rating:      teamModel.DefaultRating,
		LogoURL:     strings.TrimSpace(t.LogoURL),
		Players:     make([]teamModel.Player, 0, len(t.Players)),
	}
	if t.FoundedYear != 0 {
		team.FoundedYear = t.FoundedYear
	}
	if t.Rating != nil {
		team.Rating = *t.Rating
	}
	for _, p := range t.Players {
		team.Players = append(team.Players, newPlayer(team.ID, p))
	}
	return team
}

func newPlayer(teamID string, p Player) teamModel.Player {
	position := strings.TrimSpace(p.Position)
	if position == "" {
		position = teamModel.DefaultText
	}
	return teamModel.Player{
		TeamID:   teamID,
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(p.Name),
		Position: position,
		Matches:  p.Matches,
		Goals:    p.Goals,
		Assists:  p.Assists,
		Rating:   p.Rating,
	}
}

// seedTeam creates a missing team. An existing team with a short roster
// gets the seeded players it lacks by name, and an empty logo is filled in.
func (s *Seeder) seedTeam(ctx context.Context, teams teamRepository.Repository, players playerRepository.Repository, t Team) (string, error) {
	existing, err := teams.GetByName(ctx, strings.TrimSpace(t.Name))
	if errors.Is(err, teamModel.ErrTeamNotFound) {
		team := newTeam(t)
		if err := teams.Create(ctx, team); err != nil {
			return "", err
		}
		s.logger.Infow("seeded team", "team_id", team.ID, "name", team.Name, "players", len(team.Players))
		return team.ID, nil
	}
	if err != nil {
		return "", err
	}

	logo := strings.TrimSpace(t.LogoURL)
	if strings.TrimSpace(existing.LogoURL) == "" && logo != "" {
		if err := teams.Update(ctx, existing.ID, map[string]interface{}{"logo_url": logo}); err != nil {
			return "", err
		}
		s.logger.Infow("seeded team logo", "team_id", existing.ID)
	}

	if len(existing.Players) < MinRoster {
		onRoster := make(map[string]struct{}, len(existing.Players))
		for _, p := range existing.Players {
			onRoster[p.Name] = struct{}{}
		}
		added := 0
		for _, p := range t.Players {
			if _, ok := onRoster[strings.TrimSpace(p.Name)]; ok {
				continue
			}
			player := newPlayer(existing.ID, p)
			if err := players.Append(ctx, &player); err != nil {
				return "", err
			}
			added++
		}
		if added > 0 {
			s.logger.Infow("seeded team players", "team_id", existing.ID, "added", added)
		}
	}
	return existing.ID, nil
}

func (s *Seeder) resolveTeam(ctx context.Context, teams teamRepository.Repository, ids map[string]string, name string) (string, bool, error) {
	if id, ok := ids[name]; ok {
		return id, true, nil
	}
	team, err := teams.GetByName(ctx, name)
	if errors.Is(err, teamModel.ErrTeamNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	ids[name] = team.ID
	return team.ID, true, nil
}

// seedMatches creates the seeded matches while fewer than MinMatches exist.
// Matches naming an unknown team are skipped.
func (s *Seeder) seedMatches(ctx context.Context, teams teamRepository.Repository, matches matchRepository.Repository, seeds []Match, ids map[string]string) error {
	if len(seeds) == 0 {
		return nil
	}
	count, err := matches.Count(ctx)
	if err != nil {
		return err
	}
	if count >= MinMatches {
		return nil
	}

	now := s.clock.Now().UTC()
	created := 0
	for _, m := range seeds {
		homeID, okHome, err := s.resolveTeam(ctx, teams, ids, m.Home)
		if err != nil {
			return err
		}
		awayID, okAway, err := s.resolveTeam(ctx, teams, ids, m.Away)
		if err != nil {
			return err
		}
		if !okHome || !okAway {
			s.logger.Warnw("skipping seeded match with unknown team", "home", m.Home, "away", m.Away)
			continue
		}

		match := newMatch(m, homeID, awayID, now)
		if err := matches.Create(ctx, match); err != nil {
			return errors.Wrapf(err, "seed match %s vs %s", m.Home, m.Away)
		}
		created++
	}

	s.logger.Infow("seeded matches", "count", created)
	return nil
}

func newMatch(m Match, homeID, awayID string, now time.Time) *matchModel.Match {
	status := m.Status
	if status == "" {
		status = matchModel.StatusFinished
	}

	match := &matchModel.Match{
		ID:         uuid.NewString(),
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Date:       now.AddDate(0, 0, -m.DaysAgo),
		Status:     status,
		Events:     make([]matchModel.Event, 0, len(m.Events)),
	}
	for _, e := range m.Events {
		teamID := homeID
		if e.Side == SideAway {
			teamID = awayID
		}
		match.Events = append(match.Events, matchModel.Event{
			ID:         uuid.NewString(),
			Type:       e.Type,
			Minute:     e.Minute,
			TeamID:     teamID,
			PlayerName: e.Player,
			AssistName: e.Assist,
			Note:       e.Note,
			CreatedAt:  now,
		})
	}
	DeriveScore(match)
	return match
}

// DeriveScore sets the score of match from its goal events.
func DeriveScore(match *matchModel.Match) {
	match.ScoreHome, match.ScoreAway = 0, 0
	for _, e := range match.Events {
		if e.Type != matchModel.EventGoal {
			continue
		}
		side, ok := match.SideOf(e.TeamID)
		if !ok {
			continue
		}
		if side == matchModel.Home {
			match.ScoreHome++
		} else {
			match.ScoreAway++
		}
	}
}
