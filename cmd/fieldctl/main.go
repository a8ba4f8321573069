// fieldctl is the field agent's terminal for the collections directory:
// authenticate, browse pending deliveries, and record collected payments.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/adapter/directory"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/usecase"
)

const defaultServer = "http://localhost:8080"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fieldctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return usageError()
	}

	server := os.Getenv("FIELDCTL_SERVER")
	if server == "" {
		server = defaultServer
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if os.Getenv("FIELDCTL_DEBUG") != "" {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	client, err := directory.NewHTTPClient(server, logger)
	if err != nil {
		return err
	}
	client.SetToken(os.Getenv("FIELDCTL_TOKEN"))

	switch cmd, rest := args[0], args[1:]; cmd {
	case "register":
		return runAuth(ctx, rest, out, cmd, client.Register)
	case "login":
		return runAuth(ctx, rest, out, cmd, client.Login)
	case "pending":
		return runPending(ctx, rest, out, client)
	case "find":
		return runFind(ctx, rest, out, client)
	case "record":
		return runRecord(ctx, rest, out, client)
	case "summary":
		return runSummary(ctx, out, client)
	default:
		return usageError()
	}
}

func usageError() error {
	return errors.New("usage: fieldctl <register|login|pending|find|record|summary> [flags]\n" +
		"set FIELDCTL_SERVER for the directory address and FIELDCTL_TOKEN for authenticated commands")
}

func runAuth(ctx context.Context, args []string, out io.Writer, name string, call func(context.Context, string, string) (string, error)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	login := fs.String("login", "", "agent login")
	password := fs.String("password", "", "agent password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *login == "" || *password == "" {
		return errors.New(name + " requires -login and -password")
	}

	token, err := call(ctx, *login, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "export FIELDCTL_TOKEN=%s\n", token)
	return nil
}

func runPending(ctx context.Context, args []string, out io.Writer, client *directory.HTTPClient) error {
	fs := flag.NewFlagSet("pending", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "rows per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page < 1 {
		*page = 1
	}

	offset := (*page - 1) * *limit
	rows, err := client.ListPendingPayment(ctx, *limit, offset)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "no pending orders")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s\t%s\t%s\tKES %s\t%d item(s)\n",
			row.OrderNumber, row.CustomerName, row.Zone, row.Total.StringFixed(2), row.ItemCount)
	}
	return nil
}

func runFind(ctx context.Context, args []string, out io.Writer, client *directory.HTTPClient) error {
	if len(args) != 1 {
		return errors.New("usage: fieldctl find <order-number>")
	}

	order, err := client.Search(ctx, args[0])
	if err != nil {
		return err
	}
	printOrder(out, order)
	return nil
}

func runRecord(ctx context.Context, args []string, out io.Writer, client *directory.HTTPClient) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	method := fs.String("method", "", "payment method: cash, mpesa_manual or bank_transfer")
	reference := fs.String("ref", "", "external reference (payer account or name)")
	transaction := fs.String("txn", "", "external transaction identifier")
	phone := fs.String("phone", "", "customer phone")
	notes := fs.String("notes", "", "free-form collection notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: fieldctl record <order-number> -method <m> [flags]")
	}
	number := fs.Arg(0)

	record := model.PaymentRecord{
		Method:                model.PaymentMethod(*method),
		ExternalReference:     *reference,
		ExternalTransactionID: *transaction,
		CustomerPhone:         *phone,
		Notes:                 *notes,
	}

	reconcile := usecase.NewReconcileUseCase(client)
	outcome := reconcile.RecordPayment(ctx, number, record)
	switch outcome.Kind {
	case usecase.OutcomeCommitted:
		receipt := outcome.Receipt
		fmt.Fprintf(out, "committed: %s for %s, KES %s collected via %s\n",
			receipt.TransactionReference, receipt.OrderNumber, receipt.AmountReceived.StringFixed(2), receipt.Method)
		return nil
	case usecase.OutcomeRejected:
		for _, f := range outcome.Validation.Fields {
			fmt.Fprintf(out, "rejected: %s: %s\n", f.Field, f.Reason)
		}
		return errors.New("payment evidence rejected")
	case usecase.OutcomeConflict:
		if outcome.Order != nil && outcome.Order.PaidAt != nil {
			fmt.Fprintf(out, "already paid at %s\n", outcome.Order.PaidAt.Format("2006-01-02 15:04:05"))
		}
		return errors.New("order already settled")
	case usecase.OutcomeNotFound:
		return fmt.Errorf("order %q not found", number)
	default:
		// The commit may have landed before the connection dropped. Ask
		// the directory before the agent retries and trips a conflict.
		return confirmAfterFailure(ctx, out, reconcile, number, outcome.Err)
	}
}

func confirmAfterFailure(ctx context.Context, out io.Writer, reconcile *usecase.ReconcileUseCase, number string, cause error) error {
	order, err := reconcile.ConfirmPayment(ctx, number)
	if err != nil {
		return fmt.Errorf("commit state unknown (%v); confirmation also failed: %w", cause, err)
	}
	if order.PaymentStatus == model.PaymentStatusPaid {
		fmt.Fprintf(out, "confirmed: %s is already marked paid; do not retry\n", order.OrderNumber)
		return nil
	}
	return fmt.Errorf("commit did not land (%v); order still pending, safe to retry", cause)
}

func runSummary(ctx context.Context, out io.Writer, client *directory.HTTPClient) error {
	summary, err := client.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "pending orders: %d\noutstanding: KES %s\n",
		summary.Count, summary.TotalOutstanding.StringFixed(2))
	return nil
}

func printOrder(out io.Writer, order *model.Order) {
	fmt.Fprintf(out, "order %s\t%s\n", order.OrderNumber, order.PaymentStatus)
	fmt.Fprintf(out, "customer: %s (%s)\n", order.CustomerName, order.CustomerPhone)
	fmt.Fprintf(out, "deliver to: %s, %s, %s\n", order.DeliveryAddress, order.Zone, order.County)
	for _, item := range order.Items {
		fmt.Fprintf(out, "  %dx %s @ KES %s\n", item.Quantity, item.Name, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(out, "total: KES %s (%s)\n", order.Total.StringFixed(2), order.PaymentMethod)
	if order.PaidAt != nil {
		fmt.Fprintf(out, "paid at: %s\n", order.PaidAt.Format("2006-01-02 15:04:05"))
	}
}
