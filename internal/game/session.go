package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"charter/internal/journal"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrCorporationNotFound = errors.New("corporation not found")
	ErrInvalidCharterName  = errors.New("charter name not in the available set")
	ErrCharterTaken        = errors.New("charter name already in use")
	ErrCompanyNotOwned     = errors.New("company is not owned by that player")
	ErrBadCellIndex        = errors.New("price cell index out of range")
)

// Session is one game: a shared ladder, the seats, the company deck, and the
// corporations formed so far. A mutex serializes every operation; the
// surrounding engine calls one at a time and each runs to completion.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	ladder    *Ladder
	players   []*Player
	companies map[string]*Company
	corps     map[string]*Corporation
	order     []string // corporation names in formation order
	journal   *journal.Memory
	sink      journal.Sink
}

// newSession wires a session. extra, when non-nil, receives every journal
// line alongside the in-memory transcript.
func newSession(id string, playerNames []string, startingCash int, deck []*Company, extra journal.Sink) *Session {
	mem := journal.NewMemory()
	var sink journal.Sink = mem
	if extra != nil {
		sink = journal.NewTee(mem, extra)
	}

	s := &Session{
		id:        id,
		createdAt: time.Now().UTC(),
		ladder:    NewLadder(DefaultLadderPrices),
		companies: make(map[string]*Company, len(deck)),
		corps:     make(map[string]*Corporation),
		journal:   mem,
		sink:      sink,
	}
	for _, name := range playerNames {
		s.players = append(s.players, NewPlayer(name, startingCash))
	}
	for _, co := range deck {
		s.companies[co.Name] = co
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// AssignCompany hands a deck company to a player. Auctions are the
// surrounding engine's business; this records their outcome.
func (s *Session) AssignCompany(companyName, playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	co, ok := s.companies[companyName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCompanyNotFound, companyName)
	}
	p, err := s.player(playerName)
	if err != nil {
		return err
	}
	co.transferTo(p)
	s.sink.Append(fmt.Sprintf("%s takes %s", p.Name(), co.Name))
	return nil
}

// FormCorporation charters a corporation for the player from a company they
// own, at the requested ladder cell.
func (s *Session) FormCorporation(charter, playerName, companyName string, cellIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validCharter(charter) {
		return fmt.Errorf("%w: %s", ErrInvalidCharterName, charter)
	}
	if _, exists := s.corps[charter]; exists {
		return fmt.Errorf("%w: %s", ErrCharterTaken, charter)
	}
	p, err := s.player(playerName)
	if err != nil {
		return err
	}
	co, ok := s.companies[companyName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCompanyNotFound, companyName)
	}
	if co.Owner() != CompanyOwner(p) {
		return fmt.Errorf("%w: %s / %s", ErrCompanyNotOwned, companyName, playerName)
	}
	cell := s.ladder.Cell(cellIndex)
	if cell == nil {
		return fmt.Errorf("%w: %d", ErrBadCellIndex, cellIndex)
	}

	corp, err := Form(charter, p, co, cell, s.ladder, s.sink)
	if err != nil {
		return err
	}
	s.corps[charter] = corp
	s.order = append(s.order, charter)
	return nil
}

// BuyShare buys one bank share of the corporation for the player.
func (s *Session) BuyShare(charter, playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	corp, p, err := s.corpAndPlayer(charter, playerName)
	if err != nil {
		return err
	}
	return corp.BuyShare(p)
}

// SellShare sells the player's top share back to the corporation's bank.
func (s *Session) SellShare(charter, playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	corp, p, err := s.corpAndPlayer(charter, playerName)
	if err != nil {
		return err
	}
	return corp.SellShare(p)
}

// IssueShare issues one treasury share of the corporation to the bank.
func (s *Session) IssueShare(charter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	corp, ok := s.corps[charter]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCorporationNotFound, charter)
	}
	return corp.IssueShare()
}

// PayDividend pays the per-share amount to every holder and adjusts the
// share price.
func (s *Session) PayDividend(charter string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	corp, ok := s.corps[charter]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCorporationNotFound, charter)
	}
	return corp.PayDividend(amount, s.players)
}

// Income computes the corporation's income from the given base.
func (s *Session) Income(charter string, base int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	corp, ok := s.corps[charter]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrCorporationNotFound, charter)
	}
	return corp.Income(base), nil
}

// View renders the full session state.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := SessionView{
		ID:        s.id,
		CreatedAt: s.createdAt,
	}
	for _, p := range s.players {
		out.Players = append(out.Players, s.playerView(p))
	}
	for _, name := range s.order {
		out.Corporations = append(out.Corporations, s.corpView(s.corps[name]))
	}
	var deck []CompanyView
	for _, co := range s.companies {
		if co.Owner() == nil {
			deck = append(deck, companyView(co))
		}
	}
	sort.Slice(deck, func(i, j int) bool { return deck[i].Value < deck[j].Value })
	out.Deck = deck
	return out
}

// CorporationView renders one corporation.
func (s *Session) CorporationView(charter string) (CorporationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	corp, ok := s.corps[charter]
	if !ok {
		return CorporationView{}, fmt.Errorf("%w: %s", ErrCorporationNotFound, charter)
	}
	return s.corpView(corp), nil
}

// Market renders the ladder with occupants.
func (s *Session) Market() []MarketRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]MarketRow, 0, s.ladder.Len())
	for _, cell := range s.ladder.Cells() {
		row := MarketRow{Index: cell.Index, Price: cell.Price}
		if cell.Corporation != nil {
			row.Occupant = cell.Corporation.Name()
		}
		rows = append(rows, row)
	}
	return rows
}

// Log returns the session transcript.
func (s *Session) Log() []string {
	return s.journal.Lines()
}

func (s *Session) player(name string) (*Player, error) {
	for _, p := range s.players {
		if strings.EqualFold(p.Name(), name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
}

func (s *Session) corpAndPlayer(charter, playerName string) (*Corporation, *Player, error) {
	corp, ok := s.corps[charter]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrCorporationNotFound, charter)
	}
	p, err := s.player(playerName)
	if err != nil {
		return nil, nil, err
	}
	return corp, p, nil
}

func (s *Session) playerView(p *Player) PlayerView {
	v := PlayerView{Name: p.Name(), Cash: p.Cash()}
	for _, sh := range p.Shares() {
		v.Shares = append(v.Shares, ShareView{
			Corporation: sh.Corporation().Name(),
			President:   sh.President(),
		})
	}
	for _, co := range p.Companies() {
		v.Companies = append(v.Companies, companyView(co))
	}
	return v
}

func (s *Session) corpView(c *Corporation) CorporationView {
	v := CorporationView{
		Name:         c.Name(),
		Cash:         c.Cash(),
		Price:        c.Price(),
		PriceIndex:   c.Index(),
		SharesIssued: c.SharesIssued(),
		BankShares:   len(c.BankShares()),
		Unissued:     c.UnissuedShares(),
		BookValue:    c.BookValue(),
		MarketCap:    c.MarketCap(),
		Bankrupt:     c.IsBankrupt(),
	}
	if c.President() != nil {
		v.President = c.President().Name()
	}
	for _, co := range c.Companies() {
		v.Companies = append(v.Companies, companyView(co))
	}
	return v
}

func companyView(co *Company) CompanyView {
	v := CompanyView{
		Name:      co.Name,
		Value:     co.Value,
		Tier:      co.Tier.String(),
		Synergies: co.Synergies,
	}
	if co.Owner() != nil {
		v.Owner = co.Owner().OwnerName()
	}
	return v
}

func validCharter(name string) bool {
	for _, n := range CorporationNames {
		if n == name {
			return true
		}
	}
	return false
}
