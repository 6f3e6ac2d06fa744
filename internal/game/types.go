package game

import "time"

type SessionView struct {
	ID           string            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	Players      []PlayerView      `json:"players"`
	Corporations []CorporationView `json:"corporations"`
	Deck         []CompanyView     `json:"deck"`
}

type PlayerView struct {
	Name      string        `json:"name"`
	Cash      int           `json:"cash"`
	Shares    []ShareView   `json:"shares,omitempty"`
	Companies []CompanyView `json:"companies,omitempty"`
}

type ShareView struct {
	Corporation string `json:"corporation"`
	President   bool   `json:"president,omitempty"`
}

type CompanyView struct {
	Name      string   `json:"name"`
	Value     int      `json:"value"`
	Tier      string   `json:"tier"`
	Synergies []string `json:"synergies,omitempty"`
	Owner     string   `json:"owner,omitempty"`
}

type CorporationView struct {
	Name         string        `json:"name"`
	President    string        `json:"president,omitempty"`
	Cash         int           `json:"cash"`
	Price        int           `json:"price"`
	PriceIndex   int           `json:"price_index"`
	SharesIssued int           `json:"shares_issued"`
	BankShares   int           `json:"bank_shares"`
	Unissued     int           `json:"unissued"`
	BookValue    int           `json:"book_value"`
	MarketCap    int           `json:"market_cap"`
	Bankrupt     bool          `json:"bankrupt"`
	Companies    []CompanyView `json:"companies,omitempty"`
}

type MarketRow struct {
	Index    int    `json:"index"`
	Price    int    `json:"price"`
	Occupant string `json:"occupant,omitempty"`
}

type SessionSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Players      []string  `json:"players"`
	Corporations int       `json:"corporations"`
}
