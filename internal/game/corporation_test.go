package game

import (
	"errors"
	"strings"
	"testing"

	"charter/internal/journal"
)

// formTestCorp charters Eagle at $67 (index 25) from a $100 company:
// two shares each to founder and bank, $34 seed cash, $168 treasury.
func formTestCorp(t *testing.T) (*Corporation, *Player, *Ladder, *journal.Memory) {
	t.Helper()
	ladder := NewLadder(DefaultLadderPrices)
	mem := journal.NewMemory()
	founder := NewPlayer("Ada", 100)
	seed := &Company{Name: "Grand Junction", Value: 100, Tier: TierGreen}
	seed.transferTo(founder)

	corp, err := Form("Eagle", founder, seed, ladder.Cell(25), ladder, mem)
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	return corp, founder, ladder, mem
}

func countShares(c *Corporation, players ...*Player) int {
	total := c.UnissuedShares() + len(c.BankShares())
	for _, p := range players {
		total += p.SharesOf(c)
	}
	return total
}

func TestFormMath(t *testing.T) {
	corp, founder, ladder, _ := formTestCorp(t)

	if got := founder.Cash(); got != 66 {
		t.Fatalf("founder cash = %d, want 66 (100 - 34 seed)", got)
	}
	if got := corp.Cash(); got != 168 {
		t.Fatalf("treasury = %d, want 168", got)
	}
	if got := founder.SharesOf(corp); got != 2 {
		t.Fatalf("founder shares = %d, want 2", got)
	}
	if got := len(corp.BankShares()); got != 2 {
		t.Fatalf("bank shares = %d, want 2", got)
	}
	if got := corp.UnissuedShares(); got != 6 {
		t.Fatalf("unissued = %d, want 6", got)
	}
	if got := corp.SharesIssued(); got != 4 {
		t.Fatalf("issued = %d, want 4", got)
	}
	if corp.President() != founder {
		t.Fatal("founder should be president")
	}
	if !founder.Shares()[0].President() {
		t.Fatal("founder's first share should be the president share")
	}
	if len(founder.Companies()) != 0 {
		t.Fatal("seed company should have left the founder")
	}
	if len(corp.Companies()) != 1 || corp.Companies()[0].Owner() != CompanyOwner(corp) {
		t.Fatal("corporation should own the seed company")
	}
	if ladder.Cell(25).Corporation != corp {
		t.Fatal("founding cell should be occupied by the corporation")
	}
	if got := countShares(corp, founder); got != TotalShares {
		t.Fatalf("share count = %d, want %d", got, TotalShares)
	}
}

func TestFormRejectsOccupiedCell(t *testing.T) {
	_, _, ladder, mem := formTestCorp(t)
	founder := NewPlayer("Bo", 100)
	seed := &Company{Name: "Ironclad Works", Value: 100, Tier: TierGreen}
	seed.transferTo(founder)

	_, err := Form("Bear", founder, seed, ladder.Cell(25), ladder, mem)
	if !errors.Is(err, ErrPriceTaken) {
		t.Fatalf("err = %v, want ErrPriceTaken", err)
	}
	if founder.Cash() != 100 || len(founder.Companies()) != 1 {
		t.Fatal("failed formation must leave the founder untouched")
	}
}

func TestFormRejectsBadPrice(t *testing.T) {
	ladder := NewLadder(DefaultLadderPrices)
	mem := journal.NewMemory()
	founder := NewPlayer("Ada", 100)
	seed := &Company{Name: "Grand Junction", Value: 100, Tier: TierGreen}
	seed.transferTo(founder)

	for _, index := range []int{21, 30} { // $45 too low, $108 too high
		if _, err := Form("Eagle", founder, seed, ladder.Cell(index), ladder, mem); !errors.Is(err, ErrInvalidFoundingPrice) {
			t.Fatalf("Form at index %d: err = %v, want ErrInvalidFoundingPrice", index, err)
		}
	}
}

func TestBuySharePaysPostMovePrice(t *testing.T) {
	corp, founder, ladder, _ := formTestCorp(t)
	buyer := NewPlayer("Bo", 74)

	if err := corp.BuyShare(buyer); err != nil {
		t.Fatalf("BuyShare: %v", err)
	}
	if got := buyer.Cash(); got != 0 {
		t.Fatalf("buyer cash = %d, want 0 (paid the stepped-up $74)", got)
	}
	if got := corp.Price(); got != 74 {
		t.Fatalf("price = %d, want 74", got)
	}
	if !ladder.Cell(25).Vacant() {
		t.Fatal("old cell should be vacated")
	}
	if ladder.Cell(26).Corporation != corp {
		t.Fatal("new cell should be occupied")
	}
	if got := len(corp.BankShares()); got != 1 {
		t.Fatalf("bank shares = %d, want 1", got)
	}
	if got := countShares(corp, founder, buyer); got != TotalShares {
		t.Fatalf("share count = %d, want %d", got, TotalShares)
	}
}

func TestBuyShareInsufficientAtNewPrice(t *testing.T) {
	corp, _, _, _ := formTestCorp(t)
	buyer := NewPlayer("Bo", 70) // covers the $67 sticker but not the $74 post-move price

	err := corp.BuyShare(buyer)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if corp.Price() != 67 || buyer.Cash() != 70 || len(corp.BankShares()) != 2 {
		t.Fatal("failed buy must not move the price or touch any holdings")
	}
}

func TestBuyShareEmptyBank(t *testing.T) {
	corp, _, _, _ := formTestCorp(t)
	buyer := NewPlayer("Bo", 10000)

	for i := 0; i < 2; i++ {
		if err := corp.BuyShare(buyer); err != nil {
			t.Fatalf("BuyShare %d: %v", i, err)
		}
	}
	if err := corp.BuyShare(buyer); !errors.Is(err, ErrNoShareAvailable) {
		t.Fatalf("err = %v, want ErrNoShareAvailable", err)
	}
}

func TestSellShareRoundTrip(t *testing.T) {
	corp, founder, ladder, _ := formTestCorp(t)
	buyer := NewPlayer("Bo", 74)

	if err := corp.BuyShare(buyer); err != nil {
		t.Fatalf("BuyShare: %v", err)
	}
	if err := corp.SellShare(buyer); err != nil {
		t.Fatalf("SellShare: %v", err)
	}

	// Bought at the stepped-up $74, sold at the stepped-down $67: the ladder
	// walk is symmetric, the $7 spread is the buyer's loss.
	if got := buyer.Cash(); got != 67 {
		t.Fatalf("buyer cash = %d, want 67", got)
	}
	if corp.Price() != 67 || ladder.Cell(25).Corporation != corp {
		t.Fatal("price should be back on the founding cell")
	}
	if got := len(corp.BankShares()); got != 2 {
		t.Fatalf("bank shares = %d, want 2", got)
	}
	if got := countShares(corp, founder, buyer); got != TotalShares {
		t.Fatalf("share count = %d, want %d", got, TotalShares)
	}
}

func TestSellShareNeverSellsPresident(t *testing.T) {
	corp, founder, _, _ := formTestCorp(t)

	// The founder holds president + one normal share; the normal one is on
	// top and sells fine.
	if err := corp.SellShare(founder); err != nil {
		t.Fatalf("SellShare: %v", err)
	}
	if corp.CanSellShare(founder) {
		t.Fatal("president share must not be sellable")
	}
	if err := corp.SellShare(founder); !errors.Is(err, ErrCannotSell) {
		t.Fatalf("err = %v, want ErrCannotSell", err)
	}
}

func TestSellShareRequiresHolding(t *testing.T) {
	corp, _, _, _ := formTestCorp(t)
	stranger := NewPlayer("Cy", 50)

	if err := corp.SellShare(stranger); !errors.Is(err, ErrCannotSell) {
		t.Fatalf("err = %v, want ErrCannotSell", err)
	}
}

func TestIssueShare(t *testing.T) {
	corp, _, _, _ := formTestCorp(t)

	if err := corp.IssueShare(); err != nil {
		t.Fatalf("IssueShare: %v", err)
	}
	// Price stepped down to $61 before the treasury was credited.
	if got := corp.Price(); got != 61 {
		t.Fatalf("price = %d, want 61", got)
	}
	if got := corp.Cash(); got != 229 {
		t.Fatalf("treasury = %d, want 229 (168 + 61)", got)
	}
	if len(corp.BankShares()) != 3 || corp.UnissuedShares() != 5 {
		t.Fatal("issued token should have moved from the pool to the bank")
	}

	for corp.CanIssueShare() {
		if err := corp.IssueShare(); err != nil {
			t.Fatalf("IssueShare: %v", err)
		}
	}
	if err := corp.IssueShare(); !errors.Is(err, ErrCannotIssue) {
		t.Fatalf("err = %v, want ErrCannotIssue", err)
	}
}

func TestPayDividend(t *testing.T) {
	corp, founder, _, mem := formTestCorp(t)
	other := NewPlayer("Bo", 50)
	players := []*Player{founder, other}

	if err := corp.PayDividend(10, players); err != nil {
		t.Fatalf("PayDividend: %v", err)
	}
	if got := founder.Cash(); got != 86 {
		t.Fatalf("founder cash = %d, want 86 (66 + 2 x 10)", got)
	}
	if got := other.Cash(); got != 50 {
		t.Fatal("holder of zero shares must not be paid")
	}
	// 4 issued shares at $10: $20 to the founder, $20 withheld for the two
	// bank shares.
	if got := corp.Cash(); got != 128 {
		t.Fatalf("treasury = %d, want 128", got)
	}

	lines := strings.Join(mem.Lines(), "\n")
	if !strings.Contains(lines, "Eagle pays a $10 dividend") {
		t.Fatalf("missing dividend headline in log:\n%s", lines)
	}
	if !strings.Contains(lines, "Ada receives $20 from Eagle") {
		t.Fatalf("missing payout line in log:\n%s", lines)
	}
	if strings.Contains(lines, "Bo receives") {
		t.Fatalf("unexpected payout line for a non-holder:\n%s", lines)
	}
}

func TestPayDividendZeroStillAdjusts(t *testing.T) {
	corp, founder, _, mem := formTestCorp(t)

	if err := corp.PayDividend(0, []*Player{founder}); err != nil {
		t.Fatalf("PayDividend: %v", err)
	}
	if founder.Cash() != 66 || corp.Cash() != 168 {
		t.Fatal("zero dividend must not move any cash")
	}
	// Book value 268 equals market cap 268, which still counts as "at or
	// above valuation": one step up to $74, where valuation no longer holds.
	if got := corp.Price(); got != 74 {
		t.Fatalf("price = %d, want 74", got)
	}
	lines := mem.Lines()
	if len(lines) != 2 || !strings.Contains(lines[1], "moves up to $74") {
		t.Fatalf("log = %q, want formation line plus a single move", lines)
	}
}

func TestPayDividendErrors(t *testing.T) {
	corp, founder, _, _ := formTestCorp(t)
	players := []*Player{founder}

	if err := corp.PayDividend(-1, players); !errors.Is(err, ErrNegativeDividend) {
		t.Fatalf("err = %v, want ErrNegativeDividend", err)
	}
	// $100 x 4 issued shares outruns the $168 treasury.
	if err := corp.PayDividend(100, players); !errors.Is(err, ErrUnaffordableDividend) {
		t.Fatalf("err = %v, want ErrUnaffordableDividend", err)
	}
	if corp.Cash() != 168 || corp.Price() != 67 || founder.Cash() != 66 {
		t.Fatal("failed dividend must leave all state untouched")
	}
}

func TestAdjustRunsUpAfterMinimalStep(t *testing.T) {
	corp, _, _, mem := formTestCorp(t)
	corp.credit(500)

	corp.AdjustSharePrice()

	// Still above valuation after the one-cell step to $74, so the move is
	// superseded by a run to $81.
	if got := corp.Price(); got != 81 {
		t.Fatalf("price = %d, want 81", got)
	}
	lines := mem.Lines()
	if len(lines) != 2 || !strings.Contains(lines[1], "runs up to $81") {
		t.Fatalf("log = %q, want the first move replaced by the run", lines)
	}
}

func TestAdjustSkipsRunAfterLongStep(t *testing.T) {
	corp, _, ladder, mem := formTestCorp(t)
	ladder.Cell(26).Corporation = &Corporation{} // blocks the one-cell step
	corp.credit(500)

	corp.AdjustSharePrice()

	// The first vacancy was two cells up; a non-minimal step never runs.
	if got := corp.Price(); got != 81 {
		t.Fatalf("price = %d, want 81", got)
	}
	lines := mem.Lines()
	if len(lines) != 2 || !strings.Contains(lines[1], "moves up to $81") {
		t.Fatalf("log = %q, want a plain move", lines)
	}
}

func TestAdjustRunsDown(t *testing.T) {
	corp, _, _, mem := formTestCorp(t)
	corp.debit(100) // book value 168, market cap 268

	corp.AdjustSharePrice()

	if got := corp.Price(); got != 55 {
		t.Fatalf("price = %d, want 55", got)
	}
	lines := mem.Lines()
	if len(lines) != 2 || !strings.Contains(lines[1], "runs down to $55") {
		t.Fatalf("log = %q, want the first move replaced by the run", lines)
	}
}

func TestAdjustNoVacancyAbove(t *testing.T) {
	ladder := NewLadder([]int{0, 5, 6})
	mem := journal.NewMemory()
	founder := NewPlayer("Ada", 20)
	seed := &Company{Name: "Tin Creek Mine", Value: 10, Tier: TierRed}
	seed.transferTo(founder)

	corp, err := Form("Star", founder, seed, ladder.Cell(2), ladder, mem)
	if err != nil {
		t.Fatalf("Form: %v", err)
	}

	corp.AdjustSharePrice()

	if got := corp.Price(); got != 6 {
		t.Fatalf("price = %d, want 6 (no vacancy above, no move)", got)
	}
	if got := len(mem.Lines()); got != 1 {
		t.Fatalf("log lines = %d, want just the formation entry", got)
	}
}

func TestIncomeSynergyConsumption(t *testing.T) {
	ladder := NewLadder(DefaultLadderPrices)
	mem := journal.NewMemory()
	founder := NewPlayer("Ada", 50)
	seed := &Company{Name: "Cannery Row", Value: 20, Tier: TierYellow, Synergies: []string{"Saltworks"}}
	seed.transferTo(founder)

	corp, err := Form("Orion", founder, seed, ladder.Cell(6), ladder, mem) // $10
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	corp.AcquireCompany(&Company{Name: "Saltworks", Value: 14, Tier: TierOrange, Synergies: []string{"Cannery Row"}})
	corp.AcquireCompany(&Company{Name: "Gull Point Ferry", Value: 10, Tier: TierOrange, Synergies: []string{"Saltworks"}})

	// Cannery Row pairs with Saltworks (2) and consumes it; Saltworks itself
	// still pairs back with Cannery Row (2); Gull Point Ferry finds Saltworks
	// already consumed and contributes nothing.
	if got := corp.Income(10); got != 14 {
		t.Fatalf("Income(10) = %d, want 14", got)
	}
}

func TestIncomeAbsentPartner(t *testing.T) {
	corp, _, _, _ := formTestCorp(t)
	corp.Companies()[0].Synergies = []string{"Continental Express"}

	if got := corp.Income(5); got != 5 {
		t.Fatalf("Income(5) = %d, want 5 (absent partner is worth nothing)", got)
	}
}

func TestBankruptcyCondition(t *testing.T) {
	corp, _, _, _ := formTestCorp(t)
	if corp.IsBankrupt() {
		t.Fatal("freshly formed corporation is not bankrupt")
	}

	keeper := NewPlayer("Bo", 0)
	corp.Companies()[0].transferTo(keeper)
	if !corp.IsBankrupt() {
		t.Fatal("corporation with no companies is bankrupt")
	}
}
