package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amirasaad/finledger/infra/initializer"
	"github.com/amirasaad/finledger/pkg/app"
	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  token <caller>                                      issue a bearer token
  add <caller> <income|expense> <amount> <asset> [category]
  balance <caller>                                    balances per asset
  summary <caller>                                    entity counts and USD total
  rates                                               current rate table
  refresh-rates <caller>                              fetch rates from upstream
  sync <caller>                                       import new UTXOs of the BTC address`

var errUsage = errors.New("invalid arguments")

type cli struct {
	app *app.App
	out io.Writer

	ok    func(format string, a ...any) string
	fail  func(format string, a ...any) string
	label func(format string, a ...any) string
}

func newCLI(a *app.App, out io.Writer) *cli {
	return &cli{
		app:   a,
		out:   out,
		ok:    color.New(color.FgGreen).SprintfFunc(),
		fail:  color.New(color.FgRed, color.Bold).SprintfFunc(),
		label: color.New(color.FgCyan).SprintfFunc(),
	}
}

func main() {
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close() //nolint: errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return newCLI(app.New(deps, cfg), os.Stdout).exec(ctx, args)
}

func (c *cli) exec(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	need := func(n int) error {
		if len(rest) < n {
			return fmt.Errorf("%w for %s\n%s", errUsage, cmd, usage)
		}
		return nil
	}
	switch cmd {
	case "token":
		if err := need(1); err != nil {
			return err
		}
		return c.token(domain.Caller(rest[0]))
	case "add":
		if err := need(4); err != nil {
			return err
		}
		return c.add(ctx, domain.Caller(rest[0]), rest[1:])
	case "balance":
		if err := need(1); err != nil {
			return err
		}
		return c.balance(ctx, domain.Caller(rest[0]))
	case "summary":
		if err := need(1); err != nil {
			return err
		}
		return c.summary(ctx, domain.Caller(rest[0]))
	case "rates":
		return c.rates()
	case "refresh-rates":
		if err := need(1); err != nil {
			return err
		}
		return c.refresh(ctx, domain.Caller(rest[0]))
	case "sync":
		if err := need(1); err != nil {
			return err
		}
		return c.sync(ctx, domain.Caller(rest[0]))
	default:
		return fmt.Errorf("%w: unknown command %q\n%s", errUsage, cmd, usage)
	}
}

func (c *cli) token(caller domain.Caller) error {
	token, err := c.app.AuthService.GenerateToken(caller)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, token)
	return nil
}

func (c *cli) add(ctx context.Context, caller domain.Caller, args []string) error {
	kind := strings.ToLower(args[0])
	if kind != "income" && kind != "expense" {
		return fmt.Errorf("%w: type must be income or expense", errUsage)
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("%w: invalid amount %q", errUsage, args[1])
	}
	code, err := money.ParseCode(args[2])
	if err != nil {
		return err
	}
	tx := ledger.Transaction{Amount: amount, Currency: code, IsIncome: kind == "income"}
	if len(args) > 3 {
		tx.Category = args[3]
	}
	added, err := c.app.LedgerService.AddTransaction(ctx, caller, tx, "")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.ok("Recorded %s #%d: %s", added.Type, added.ID, money.Format(added.Amount, added.Currency)))
	return nil
}

func (c *cli) balance(ctx context.Context, caller domain.Caller) error {
	balances, err := c.app.LedgerService.BalanceSummary(ctx, caller)
	if err != nil {
		return err
	}
	for _, b := range balances {
		line := money.Format(b.Balance, b.Currency)
		if b.Balance.IsNegative() {
			line = c.fail("%s", line)
		}
		fmt.Fprintf(c.out, "%s %s\n", c.label("%-4s", b.Currency), line)
	}
	return nil
}

func (c *cli) summary(ctx context.Context, caller domain.Caller) error {
	svc := c.app.LedgerService
	s, err := svc.UserSummary(ctx, caller)
	if err != nil {
		return err
	}
	total, err := svc.TotalBalanceUSD(ctx, caller)
	if err != nil {
		return err
	}
	rows := []struct {
		name  string
		value any
	}{
		{"transactions", s.Transactions},
		{"budgets", s.Budgets},
		{"goals", s.Goals},
		{"unread", s.UnreadNotifications},
		{"wallets", s.WalletAddresses},
		{"total USD", money.Format(total, money.USD)},
	}
	for _, r := range rows {
		fmt.Fprintf(c.out, "%s %v\n", c.label("%-13s", r.name), r.value)
	}
	return nil
}

func (c *cli) rates() error {
	list := c.app.LedgerService.ListRates()
	if len(list) == 0 {
		fmt.Fprintln(c.out, c.fail("No rates loaded"))
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(c.out, "%s %s\n", c.label("%s/%s", r.From, r.To), r.Rate.String())
	}
	return nil
}

func (c *cli) refresh(ctx context.Context, caller domain.Caller) error {
	list, err := c.app.LedgerService.FetchRealTimeRates(ctx, caller)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.ok("Refreshed %d rates", len(list)))
	return nil
}

func (c *cli) sync(ctx context.Context, caller domain.Caller) error {
	res, err := c.app.LedgerService.SyncBitcoin(ctx, caller)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.ok("Fetched %d UTXOs: %d recorded, %d already known", res.Fetched, res.Recorded, res.Skipped))
	return nil
}
