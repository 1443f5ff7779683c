package commands

import (
	"Fridgella/internal/cli/service"
	"Fridgella/internal/config"
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

type billsCmd struct{}

func (billsCmd) Name() string        { return "bills" }
func (billsCmd) Description() string { return "List recorded bills" }
func (billsCmd) Usage() string       { return "bills" }

func (billsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	list, src, err := d.bills().List(ctx)
	if err != nil {
		return err
	}
	if src == service.SourceCache {
		fmt.Fprintln(Out, "! Server unreachable, showing cached bills")
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No bills")
		return nil
	}
	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAMOUNT\tDATE")
	var total float64
	for _, b := range list {
		total += b.Amount
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Title, formatAmount(b.Amount), formatDate(&b.CreatedAt))
	}
	_ = tw.Flush()
	fmt.Fprintf(Out, "Total: %d bills, %s\n", len(list), formatAmount(total))
	return nil
}

type billAddCmd struct{}

func (billAddCmd) Name() string        { return "bill-add" }
func (billAddCmd) Description() string { return "Record a bill" }
func (billAddCmd) Usage() string       { return `bill-add "<title>" <amount>` }

func (billAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(args[1], ",", "."), 64)
	if err != nil {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	b, err := d.bills().Add(ctx, args[0], amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created bill %s: %s %s\n", b.ID, b.Title, formatAmount(b.Amount))
	return nil
}

type billRmCmd struct{}

func (billRmCmd) Name() string        { return "bill-rm" }
func (billRmCmd) Description() string { return "Delete a bill" }
func (billRmCmd) Usage() string       { return "bill-rm <id>" }

func (billRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	if err := d.bills().Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %s\n", args[0])
	return nil
}

func init() {
	RegisterCmd(billsCmd{})
	RegisterCmd(billAddCmd{})
	RegisterCmd(billRmCmd{})
}
