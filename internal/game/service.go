package game

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"charter/internal/journal"
)

const (
	DefaultStartingCash = 30
	MaxPlayers          = 6
)

var ErrSessionNotFound = errors.New("session not found")

// Service is the registry of running game sessions. The surrounding
// transport layer resolves a session here and calls its operations; the
// session's own mutex serializes them.
type Service struct {
	mu       sync.Mutex
	log      *slog.Logger
	db       *pgxpool.Pool // optional; enables the persistent journal
	sessions map[string]*Session
}

// NewService creates a registry. db may be nil, in which case transcripts
// live only in memory.
func NewService(db *pgxpool.Pool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		log:      logger,
		db:       db,
		sessions: make(map[string]*Session),
	}
}

// CreateSession starts a game for the named players. startingCash <= 0
// falls back to the default.
func (s *Service) CreateSession(playerNames []string, startingCash int) (*Session, error) {
	cleaned := make([]string, 0, len(playerNames))
	seen := make(map[string]struct{}, len(playerNames))
	for _, name := range playerNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("player name is required")
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate player name: %s", name)
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, name)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("at least one player is required")
	}
	if len(cleaned) > MaxPlayers {
		return nil, fmt.Errorf("at most %d players", MaxPlayers)
	}
	if startingCash <= 0 {
		startingCash = DefaultStartingCash
	}

	id := uuid.NewString()
	var extra journal.Sink
	if s.db != nil {
		extra = journal.NewPostgres(s.db, s.log, id)
	}
	sess := newSession(id, cleaned, startingCash, seedDeck(), extra)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.Info("session created", "session_id", id, "players", len(cleaned), "starting_cash", startingCash)
	return sess, nil
}

// Session resolves a session by id.
func (s *Service) Session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// ListSessions summarizes every running session, newest first.
func (s *Service) ListSessions() []SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SessionSummary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sess.mu.Lock()
		summary := SessionSummary{
			ID:           sess.id,
			CreatedAt:    sess.createdAt,
			Corporations: len(sess.corps),
		}
		for _, p := range sess.players {
			summary.Players = append(summary.Players, p.Name())
		}
		sess.mu.Unlock()
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// seedDeck builds the standard company deck. Synergy partners reference
// company names and always pair both ways.
func seedDeck() []*Company {
	seed := []struct {
		Name      string
		Value     int
		Tier      Tier
		Synergies []string
	}{
		{"Tin Creek Mine", 5, TierRed, []string{"Copper Flats", "Dray & Sons Cartage"}},
		{"Copper Flats", 6, TierRed, []string{"Tin Creek Mine", "Harbor Lighters"}},
		{"Dray & Sons Cartage", 7, TierRed, []string{"Tin Creek Mine", "Ridgeline Rail"}},
		{"Harbor Lighters", 8, TierRed, []string{"Copper Flats", "Gull Point Ferry"}},
		{"Gull Point Ferry", 10, TierOrange, []string{"Harbor Lighters", "Saltworks"}},
		{"Ridgeline Rail", 12, TierOrange, []string{"Dray & Sons Cartage", "Summit Telegraph"}},
		{"Saltworks", 14, TierOrange, []string{"Gull Point Ferry", "Cannery Row"}},
		{"Summit Telegraph", 16, TierOrange, []string{"Ridgeline Rail", "Union Foundry"}},
		{"Cannery Row", 20, TierYellow, []string{"Saltworks", "Cold Storage & Ice"}},
		{"Union Foundry", 24, TierYellow, []string{"Summit Telegraph", "Rolling Mill"}},
		{"Cold Storage & Ice", 27, TierYellow, []string{"Cannery Row", "Meridian Packet Line"}},
		{"Rolling Mill", 33, TierYellow, []string{"Union Foundry", "Ironclad Works"}},
		{"Meridian Packet Line", 41, TierGreen, []string{"Cold Storage & Ice", "Grand Junction"}},
		{"Ironclad Works", 45, TierGreen, []string{"Rolling Mill", "Leviathan Docks"}},
		{"Grand Junction", 55, TierGreen, []string{"Meridian Packet Line", "Continental Express"}},
		{"Leviathan Docks", 67, TierBlue, []string{"Ironclad Works", "Transoceanic"}},
		{"Continental Express", 81, TierBlue, []string{"Grand Junction", "Aurora Power & Light"}},
		{"Transoceanic", 108, TierPurple, []string{"Leviathan Docks"}},
		{"Aurora Power & Light", 131, TierPurple, []string{"Continental Express"}},
	}

	deck := make([]*Company, 0, len(seed))
	for _, row := range seed {
		deck = append(deck, &Company{
			Name:      row.Name,
			Value:     row.Value,
			Tier:      row.Tier,
			Synergies: row.Synergies,
		})
	}
	return deck
}
