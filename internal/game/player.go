package game

// Purchaser is the cash-and-shares state shared by players and
// corporations. Shares form an ordered stack: acquisitions append to the
// back, selling takes from the back.
type Purchaser struct {
	cash   int
	shares []*Share
}

// Cash returns the current balance.
func (p *Purchaser) Cash() int {
	return p.cash
}

func (p *Purchaser) credit(amount int) {
	p.cash += amount
}

func (p *Purchaser) debit(amount int) {
	p.cash -= amount
}

// Shares returns the held tokens in acquisition order.
func (p *Purchaser) Shares() []*Share {
	return p.shares
}

// SharesOf counts held shares of the given corporation.
func (p *Purchaser) SharesOf(c *Corporation) int {
	n := 0
	for _, s := range p.shares {
		if s.corporation == c {
			n++
		}
	}
	return n
}

func (p *Purchaser) pushShare(s *Share) {
	p.shares = append(p.shares, s)
}

// topShare returns the most recently acquired share, nil when empty.
func (p *Purchaser) topShare() *Share {
	if len(p.shares) == 0 {
		return nil
	}
	return p.shares[len(p.shares)-1]
}

func (p *Purchaser) popShare() *Share {
	s := p.topShare()
	if s != nil {
		p.shares = p.shares[:len(p.shares)-1]
	}
	return s
}

// Player is a seat at the table: a name, purchaser state, and any privately
// held companies.
type Player struct {
	Purchaser
	name      string
	companies []*Company
}

// NewPlayer creates a player with starting cash.
func NewPlayer(name string, cash int) *Player {
	p := &Player{name: name}
	p.cash = cash
	return p
}

// Name returns the player's display name.
func (p *Player) Name() string {
	return p.name
}

// OwnerName implements CompanyOwner.
func (p *Player) OwnerName() string {
	return p.name
}

// Companies returns the player's privately held companies.
func (p *Player) Companies() []*Company {
	return p.companies
}

func (p *Player) addCompany(c *Company) {
	p.companies = append(p.companies, c)
}

func (p *Player) removeCompany(c *Company) {
	for i, held := range p.companies {
		if held == c {
			p.companies = append(p.companies[:i], p.companies[i+1:]...)
			return
		}
	}
}

// Credit adds cash to the player. Exposed for the surrounding game engine
// (starting capital, auction refunds).
func (p *Player) Credit(amount int) {
	p.credit(amount)
}

// Debit removes cash from the player.
func (p *Player) Debit(amount int) {
	p.debit(amount)
}
