package game

import (
	"errors"
	"fmt"

	"charter/internal/journal"
)

// TotalShares is the number of ownership tokens every corporation is created
// with: one president share plus nine normal shares.
const TotalShares = 10

// CorporationNames is the fixed set of charters available in a session.
var CorporationNames = []string{
	"Android", "Bear", "Eagle", "Horse", "Jupiter",
	"Orion", "Saturn", "Ship", "Star",
}

var (
	ErrPriceTaken           = errors.New("price cell is already occupied")
	ErrInvalidFoundingPrice = errors.New("price outside the valid founding range")
	ErrNoShareAvailable     = errors.New("no bank share available")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrCannotSell           = errors.New("share cannot be sold")
	ErrCannotIssue          = errors.New("no unissued share to issue")
	ErrNegativeDividend     = errors.New("dividend must not be negative")
	ErrUnaffordableDividend = errors.New("dividend exceeds treasury")
)

// Corporation owns its share tokens, its treasury, and its position on the
// share-price ladder. All mutating operations validate before touching any
// state, so a failed call leaves the corporation untouched.
type Corporation struct {
	Purchaser

	name      string
	president *Player
	unissued  []*Share // front is issued first; the president share starts here
	bank      []*Share // issued, held by the bank, purchasable
	companies []*Company
	cell      *PriceCell
	ladder    *Ladder
	log       journal.Sink
}

// Form charters a corporation from a seed company at the requested cell.
// The founder surrenders the company, pays the seed cash adjustment, and
// receives the president-side share block; an equal block goes to the bank.
func Form(name string, founder *Player, seed *Company, cell *PriceCell, ladder *Ladder, log journal.Sink) (*Corporation, error) {
	if !cell.Vacant() {
		return nil, ErrPriceTaken
	}
	if !cell.ValidFoundingPrice(seed) {
		return nil, fmt.Errorf("%w: $%d for %s (value %d)", ErrInvalidFoundingPrice, cell.Price, seed.Name, seed.Value)
	}

	c := &Corporation{
		name:      name,
		president: founder,
		ladder:    ladder,
		log:       log,
	}
	c.unissued = make([]*Share, 0, TotalShares)
	c.unissued = append(c.unissued, &Share{corporation: c, kind: PresidentShare})
	for i := 1; i < TotalShares; i++ {
		c.unissued = append(c.unissued, &Share{corporation: c, kind: NormalShare})
	}

	seed.transferTo(c)

	price := cell.Price
	numShares := (seed.Value + price - 1) / price
	seedCash := numShares*price - seed.Value
	founder.debit(seedCash)
	c.credit(seedCash)
	c.credit(numShares * price)

	for i := 0; i < numShares; i++ {
		founder.pushShare(c.takeUnissued())
	}
	for i := 0; i < numShares; i++ {
		c.bank = append(c.bank, c.takeUnissued())
	}

	cell.Corporation = c
	c.cell = cell

	log.Append(fmt.Sprintf("%s forms %s with %s at $%d (%d shares each to founder and bank, treasury $%d)",
		founder.Name(), name, seed.Name, price, numShares, c.Cash()))
	return c, nil
}

// Name returns the corporation's charter name.
func (c *Corporation) Name() string {
	return c.name
}

// OwnerName implements CompanyOwner.
func (c *Corporation) OwnerName() string {
	return c.name
}

// President returns the holder of the president share. Presidency changes
// are decided by the surrounding game engine.
func (c *Corporation) President() *Player {
	return c.president
}

// SetPresident records an exogenous presidency change.
func (c *Corporation) SetPresident(p *Player) {
	c.president = p
}

// Companies returns the owned sub-companies.
func (c *Corporation) Companies() []*Company {
	return c.companies
}

func (c *Corporation) addCompany(co *Company) {
	c.companies = append(c.companies, co)
}

func (c *Corporation) removeCompany(co *Company) {
	for i, held := range c.companies {
		if held == co {
			c.companies = append(c.companies[:i], c.companies[i+1:]...)
			return
		}
	}
}

// AcquireCompany transfers a company into the corporation's holdings. The
// purchase negotiation itself belongs to the surrounding game engine.
func (c *Corporation) AcquireCompany(co *Company) {
	co.transferTo(c)
}

// Price returns the current share price.
func (c *Corporation) Price() int {
	return c.cell.Price
}

// Index returns the current ladder position.
func (c *Corporation) Index() int {
	return c.cell.Index
}

// SharesIssued counts tokens outside the unissued pool; bank-held shares
// count as issued.
func (c *Corporation) SharesIssued() int {
	return TotalShares - len(c.unissued)
}

// BankShares returns the issued shares currently held by the bank.
func (c *Corporation) BankShares() []*Share {
	return c.bank
}

// UnissuedShares returns the size of the unissued pool.
func (c *Corporation) UnissuedShares() int {
	return len(c.unissued)
}

// BookValue is treasury cash plus the aggregate value of owned companies.
func (c *Corporation) BookValue() int {
	total := c.Cash()
	for _, co := range c.companies {
		total += co.Value
	}
	return total
}

// MarketCap is shares issued times the current price.
func (c *Corporation) MarketCap() int {
	return c.SharesIssued() * c.Price()
}

// IsBankrupt reports the terminal condition: no companies left or a share
// price of zero. Destruction is the surrounding engine's call.
func (c *Corporation) IsBankrupt() bool {
	return len(c.companies) == 0 || c.Price() == 0
}

// CanBuyShare reports whether BuyShare would succeed for the player: a bank
// share exists and the player can pay the post-move price.
func (c *Corporation) CanBuyShare(p *Player) bool {
	if len(c.bank) == 0 {
		return false
	}
	return p.Cash() >= c.priceAfterUp()
}

// BuyShare sells one bank share to the player. The price steps up to the
// next vacant cell first; the player pays the new price.
func (c *Corporation) BuyShare(p *Player) error {
	if len(c.bank) == 0 {
		return ErrNoShareAvailable
	}
	price := c.priceAfterUp()
	if p.Cash() < price {
		return fmt.Errorf("%w: %s has $%d, share costs $%d", ErrInsufficientFunds, p.Name(), p.Cash(), price)
	}

	if next := c.ladder.NextVacant(c.cell); next != nil {
		c.moveTo(next)
	}
	share := c.bank[0]
	c.bank = c.bank[1:]
	p.pushShare(share)
	p.debit(price)

	c.log.Append(fmt.Sprintf("%s buys a share of %s for $%d", p.Name(), c.name, price))
	return nil
}

// CanSellShare reports whether the player's most recently acquired share is
// a sellable share of this corporation. Selling is always off the top of the
// player's holding stack, and the president share never sells through this
// path.
func (c *Corporation) CanSellShare(p *Player) bool {
	top := p.topShare()
	return top != nil && top.corporation == c && !top.President()
}

// SellShare returns the player's top share to the bank. The price steps down
// to the previous vacant cell first; the player is paid the new lower price.
func (c *Corporation) SellShare(p *Player) error {
	if !c.CanSellShare(p) {
		return fmt.Errorf("%w: %s", ErrCannotSell, p.Name())
	}

	if prev := c.ladder.PrevVacant(c.cell); prev != nil {
		c.moveTo(prev)
	}
	price := c.cell.Price
	p.credit(price)
	share := p.popShare()
	c.bank = append(c.bank, share)

	c.log.Append(fmt.Sprintf("%s sells a share of %s for $%d", p.Name(), c.name, price))
	return nil
}

// CanIssueShare reports whether an unissued token remains.
func (c *Corporation) CanIssueShare() bool {
	return len(c.unissued) > 0
}

// IssueShare moves one token from the unissued pool to the bank. The price
// steps down first and the treasury is credited at the new price.
func (c *Corporation) IssueShare() error {
	if len(c.unissued) == 0 {
		return ErrCannotIssue
	}

	if prev := c.ladder.PrevVacant(c.cell); prev != nil {
		c.moveTo(prev)
	}
	price := c.cell.Price
	c.credit(price)
	c.bank = append(c.bank, c.takeUnissued())

	c.log.Append(fmt.Sprintf("%s issues a share for $%d", c.name, price))
	return nil
}

// PayDividend pays amount per issued share. Bank-held shares count toward
// the affordability check but their dividends are withheld from circulation.
// The share price adjusts afterwards regardless of amount.
func (c *Corporation) PayDividend(amount int, players []*Player) error {
	if amount < 0 {
		return ErrNegativeDividend
	}
	if amount*c.SharesIssued() > c.Cash() {
		return fmt.Errorf("%w: $%d x %d shares with $%d in treasury",
			ErrUnaffordableDividend, amount, c.SharesIssued(), c.Cash())
	}

	c.debit(amount * len(c.bank))
	if amount > 0 {
		c.log.Append(fmt.Sprintf("%s pays a $%d dividend", c.name, amount))
	}
	for _, p := range players {
		pay := amount * p.SharesOf(c)
		if pay == 0 {
			continue
		}
		c.debit(pay)
		p.credit(pay)
		c.log.Append(fmt.Sprintf("%s receives $%d from %s", p.Name(), pay, c.name))
	}

	c.AdjustSharePrice()
	return nil
}

// AdjustSharePrice runs the two-step rule. Above valuation the price climbs
// to the next vacant cell; when that first step was the minimal one-cell
// move and the corporation is still at or above valuation, the step is
// superseded by a second move (its log entry removed). Below valuation the
// mirror rule runs downward.
func (c *Corporation) AdjustSharePrice() {
	if c.BookValue()-c.MarketCap() >= 0 {
		next := c.ladder.NextVacant(c.cell)
		if next == nil {
			return
		}
		steps := next.Index - c.cell.Index
		c.moveTo(next)
		c.log.Append(fmt.Sprintf("%s's share price moves up to $%d", c.name, c.cell.Price))
		if steps == 1 && c.BookValue()-c.MarketCap() >= 0 {
			if again := c.ladder.NextVacant(c.cell); again != nil {
				c.log.Undo()
				c.moveTo(again)
				c.log.Append(fmt.Sprintf("%s's share price runs up to $%d", c.name, c.cell.Price))
			}
		}
		return
	}

	prev := c.ladder.PrevVacant(c.cell)
	if prev == nil {
		return
	}
	steps := c.cell.Index - prev.Index
	c.moveTo(prev)
	c.log.Append(fmt.Sprintf("%s's share price moves down to $%d", c.name, c.cell.Price))
	if steps == 1 && c.BookValue()-c.MarketCap() <= 0 {
		if again := c.ladder.PrevVacant(c.cell); again != nil {
			c.log.Undo()
			c.moveTo(again)
			c.log.Append(fmt.Sprintf("%s's share price runs down to $%d", c.name, c.cell.Price))
		}
	}
}

// Income returns base plus the synergy bonuses between owned companies.
// Each company contributes for every synergy partner still unconsumed; a
// partner pairs with at most one company per calculation.
func (c *Corporation) Income(base int) int {
	total := base
	remaining := make(map[string]*Company, len(c.companies))
	for _, co := range c.companies {
		remaining[co.Name] = co
	}
	for _, co := range c.companies {
		for _, name := range co.Synergies {
			partner, ok := remaining[name]
			if !ok {
				continue
			}
			total += Synergy(co.Tier, partner.Tier)
			delete(remaining, name)
		}
	}
	return total
}

// priceAfterUp is the price a buyer pays: the next vacant cell's price, or
// the current one when the ladder offers no higher vacancy.
func (c *Corporation) priceAfterUp() int {
	if next := c.ladder.NextVacant(c.cell); next != nil {
		return next.Price
	}
	return c.cell.Price
}

// takeUnissued removes and returns the front of the unissued pool.
func (c *Corporation) takeUnissued() *Share {
	s := c.unissued[0]
	c.unissued = c.unissued[1:]
	return s
}

// moveTo swaps occupancy atomically: the old cell is vacated and the target
// cell claimed in one step.
func (c *Corporation) moveTo(target *PriceCell) {
	c.cell.Corporation = nil
	target.Corporation = c
	c.cell = target
}
