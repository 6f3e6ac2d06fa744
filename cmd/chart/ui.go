package main

import (
	"fmt"
	"strings"

	"charter/internal/game"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func renderSessions(sessions []game.SessionSummary) {
	accent.Println("\n== GAMES ==")
	if len(sessions) == 0 {
		printInfo("No games running. Start one with 'chart new'.")
		return
	}
	fmt.Printf("%-38s %-20s %6s %-40s\n", "ID", "CREATED", "CORPS", "PLAYERS")
	for _, s := range sessions {
		fmt.Printf("%-38s %-20s %6d %-40s\n",
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Corporations,
			truncate(strings.Join(s.Players, ", "), 40),
		)
	}
	fmt.Println()
}

func renderPlayers(players []game.PlayerView) {
	accent.Println("\nPlayers")
	fmt.Printf("%-14s %8s %-30s %-30s\n", "NAME", "CASH", "SHARES", "COMPANIES")
	for _, p := range players {
		fmt.Printf("%-14s %8s %-30s %-30s\n",
			truncate(p.Name, 14),
			money(p.Cash),
			truncate(shareSummary(p.Shares), 30),
			truncate(companySummary(p.Companies), 30),
		)
	}
}

func renderSessionView(v game.SessionView) {
	accent.Printf("\n== GAME %s ==\n", v.ID)
	renderPlayers(v.Players)

	if len(v.Corporations) > 0 {
		accent.Println("\nCorporations")
		fmt.Printf("%-10s %-14s %8s %8s %8s %6s %6s\n", "CHARTER", "PRESIDENT", "PRICE", "CASH", "BOOK", "ISSUED", "BANK")
		for _, c := range v.Corporations {
			fmt.Printf("%-10s %-14s %8s %8s %8s %6d %6d\n",
				c.Name,
				truncate(c.President, 14),
				money(c.Price),
				money(c.Cash),
				money(c.BookValue),
				c.SharesIssued,
				c.BankShares,
			)
		}
	}

	if len(v.Deck) > 0 {
		accent.Println("\nDeck")
		fmt.Printf("%-24s %8s %-8s %-40s\n", "COMPANY", "VALUE", "TIER", "SYNERGIES")
		for _, co := range v.Deck {
			fmt.Printf("%-24s %8s %-8s %-40s\n",
				truncate(co.Name, 24),
				money(co.Value),
				tierLabel(co.Tier),
				truncate(strings.Join(co.Synergies, ", "), 40),
			)
		}
	}
	fmt.Println()
}

func renderCorporation(c game.CorporationView) {
	accent.Printf("\n== %s ==\n", strings.ToUpper(c.Name))
	fmt.Printf("President:   %s\n", c.President)
	fmt.Printf("Share price: %s (cell %d)\n", money(c.Price), c.PriceIndex)
	fmt.Printf("Treasury:    %s\n", money(c.Cash))
	fmt.Printf("Shares:      %d issued, %d in bank, %d unissued\n", c.SharesIssued, c.BankShares, c.Unissued)
	fmt.Printf("Book value:  %s\n", money(c.BookValue))
	fmt.Printf("Market cap:  %s\n", money(c.MarketCap))
	if c.Bankrupt {
		danger.Println("BANKRUPT")
	}
	if len(c.Companies) > 0 {
		accent.Println("\nCompanies")
		fmt.Printf("%-24s %8s %-8s %-40s\n", "COMPANY", "VALUE", "TIER", "SYNERGIES")
		for _, co := range c.Companies {
			fmt.Printf("%-24s %8s %-8s %-40s\n",
				truncate(co.Name, 24),
				money(co.Value),
				tierLabel(co.Tier),
				truncate(strings.Join(co.Synergies, ", "), 40),
			)
		}
	}
	fmt.Println()
}

func renderMarket(rows []game.MarketRow) {
	accent.Println("\n== SHARE PRICE LADDER ==")
	for _, row := range rows {
		if row.Occupant == "" {
			continue
		}
		fmt.Printf("%4d %8s  %s\n", row.Index, money(row.Price), warn.Sprint(row.Occupant))
	}
	fmt.Println()
	printInfo("Vacant cells omitted; run with 'status' for the full picture.")
}

func renderLog(lines []string) {
	accent.Println("\n== TRANSCRIPT ==")
	if len(lines) == 0 {
		printInfo("Nothing has happened yet.")
		return
	}
	for i, line := range lines {
		fmt.Printf("%4d  %s\n", i+1, line)
	}
	fmt.Println()
}

func shareSummary(shares []game.ShareView) string {
	counts := make(map[string]int)
	order := make([]string, 0, len(shares))
	for _, s := range shares {
		if _, seen := counts[s.Corporation]; !seen {
			order = append(order, s.Corporation)
		}
		counts[s.Corporation]++
	}
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, fmt.Sprintf("%s x%d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}

func companySummary(companies []game.CompanyView) string {
	names := make([]string, 0, len(companies))
	for _, co := range companies {
		names = append(names, co.Name)
	}
	return strings.Join(names, ", ")
}

func tierLabel(tier string) string {
	switch tier {
	case "red":
		return danger.Sprint(tier)
	case "yellow", "orange":
		return warn.Sprint(tier)
	case "green":
		return success.Sprint(tier)
	default:
		return accent.Sprint(tier)
	}
}

func money(v int) string {
	return fmt.Sprintf("$%d", v)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
