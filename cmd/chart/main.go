package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "charter/internal/cli"
	"charter/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "chart",
		Short:        "Charter CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newNewCmd(&apiBase),
		newUseCmd(&apiBase),
		newSessionsCmd(&apiBase),
		newStatusCmd(&apiBase),
		newTakeCmd(&apiBase),
		newFormCmd(&apiBase),
		newBuyCmd(&apiBase),
		newSellCmd(&apiBase),
		newIssueCmd(&apiBase),
		newDividendCmd(&apiBase),
		newCorpCmd(&apiBase),
		newIncomeCmd(&apiBase),
		newMarketCmd(&apiBase),
		newLogCmd(&apiBase),
		newPlayersCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func callCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func activeSession() (string, error) {
	sess, err := cl.LoadSession()
	if err != nil {
		return "", err
	}
	return sess.SessionID, nil
}

func newNewCmd(apiBase *string) *cobra.Command {
	var cash int
	cmd := &cobra.Command{
		Use:   "new <player>...",
		Short: "Start a new game and make it the active session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			view, err := newClient(apiBase).CreateSession(ctx, args, cash)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(view.Players))
			for _, p := range view.Players {
				names = append(names, p.Name)
			}
			if err := cl.SaveSession(cl.Session{SessionID: view.ID, Players: names}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Game %s started with %s.", view.ID, strings.Join(names, ", ")))
			return nil
		},
	}
	cmd.Flags().IntVar(&cash, "cash", 0, "starting cash per player (0 uses the server default)")
	return cmd
}

func newUseCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "use <session-id>",
		Short: "Switch the active session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			ctx, cancel := callCtx(cmd)
			defer cancel()
			view, err := newClient(apiBase).SessionView(ctx, id)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(view.Players))
			for _, p := range view.Players {
				names = append(names, p.Name)
			}
			if err := cl.SaveSession(cl.Session{SessionID: view.ID, Players: names}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Now playing game %s.", view.ID))
			return nil
		},
	}
}

func newSessionsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List running games",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).ListSessions(ctx)
			if err != nil {
				return err
			}
			renderSessions(out)
			return nil
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			view, err := newClient(apiBase).SessionView(ctx, id)
			if err != nil {
				return err
			}
			renderSessionView(view)
			return nil
		},
	}
}

func newTakeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "take <company> <player>",
		Short: "Record a player taking a company from the deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			if _, err := newClient(apiBase).AssignCompany(ctx, id, args[0], args[1]); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("%s takes %s.", args[1], args[0]))
			return nil
		},
	}
}

func newFormCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "form <charter> <player> <company> <cell-index>",
		Short: "Charter a corporation from an owned company",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			cell, err := strconv.Atoi(strings.TrimSpace(args[3]))
			if err != nil {
				return fmt.Errorf("invalid cell index %q", args[3])
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			corp, err := newClient(apiBase).FormCorporation(ctx, id, args[0], args[1], args[2], cell)
			if err != nil {
				return err
			}
			renderCorporation(corp)
			return nil
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <charter> <player>",
		Short: "Buy one bank share",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			corp, err := newClient(apiBase).BuyShare(ctx, id, args[0], args[1])
			if err != nil {
				return err
			}
			renderCorporation(corp)
			return nil
		},
	}
}

func newSellCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <charter> <player>",
		Short: "Sell the player's newest share back to the bank",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			corp, err := newClient(apiBase).SellShare(ctx, id, args[0], args[1])
			if err != nil {
				return err
			}
			renderCorporation(corp)
			return nil
		},
	}
}

func newIssueCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "issue <charter>",
		Short: "Issue one treasury share to the bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			corp, err := newClient(apiBase).IssueShare(ctx, id, args[0])
			if err != nil {
				return err
			}
			renderCorporation(corp)
			return nil
		},
	}
}

func newDividendCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dividend <charter> <amount>",
		Short: "Pay a per-share dividend and adjust the price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			amount, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			corp, err := newClient(apiBase).PayDividend(ctx, id, args[0], amount)
			if err != nil {
				return err
			}
			renderCorporation(corp)
			return nil
		},
	}
}

func newCorpCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "corp <charter>",
		Short: "Show one corporation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			corp, err := newClient(apiBase).Corporation(ctx, id, args[0])
			if err != nil {
				return err
			}
			renderCorporation(corp)
			return nil
		},
	}
}

func newIncomeCmd(apiBase *string) *cobra.Command {
	var base int
	cmd := &cobra.Command{
		Use:   "income <charter>",
		Short: "Compute a corporation's income with synergies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			income, err := newClient(apiBase).Income(ctx, id, args[0], base)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("%s income: $%d", args[0], income))
			return nil
		},
	}
	cmd.Flags().IntVar(&base, "base", 0, "base income before synergies")
	return cmd
}

func newPlayersCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "Show player standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			view, err := newClient(apiBase).SessionView(ctx, id)
			if err != nil {
				return err
			}
			renderPlayers(view.Players)
			return nil
		},
	}
}

func newMarketCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show the share-price ladder",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			rows, err := newClient(apiBase).Market(ctx, id)
			if err != nil {
				return err
			}
			renderMarket(rows)
			return nil
		},
	}
}

func newLogCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the game transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			lines, err := newClient(apiBase).Log(ctx, id)
			if err != nil {
				return err
			}
			renderLog(lines)
			return nil
		},
	}
}
