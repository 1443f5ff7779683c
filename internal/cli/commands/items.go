package commands

import (
	"Fridgella/internal/cli/model"
	"Fridgella/internal/cli/service"
	"Fridgella/internal/config"
	"context"
	"fmt"
	"text/tabwriter"
)

type itemsCmd struct{}

func (itemsCmd) Name() string { return "items" }
func (itemsCmd) Description() string {
	return "List items; works offline from the local cache"
}
func (itemsCmd) Usage() string { return "items [-category C] [-status fresh|expiring|expired] [-source manual|bill]" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("items")
	var f service.ItemFilter
	fs.StringVar(&f.Category, "category", "", "category")
	fs.StringVar(&f.Status, "status", "", "status")
	fs.StringVar(&f.Source, "source", "", "source")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	d := openDeps(cfg)
	defer d.close()
	list, src, err := d.items().List(ctx, f)
	if err != nil {
		return err
	}
	if src == service.SourceCache {
		fmt.Fprintln(Out, "! Server unreachable, showing cached items")
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No items")
		return nil
	}
	printItems(list)
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

func printItems(list []model.Item) {
	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tQTY\tEXPIRES\tSTATUS\tSOURCE\tNOTIFIED")
	for _, it := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%t\n",
			it.ID, it.Name, it.Category, it.Quantity, formatDate(it.ExpiryDate), it.Status, it.Source, it.Notified)
	}
	_ = tw.Flush()
}

func printItem(it *model.Item) {
	fmt.Fprintf(Out, "  id:        %s\n", it.ID)
	fmt.Fprintf(Out, "  name:      %s\n", it.Name)
	fmt.Fprintf(Out, "  category:  %s\n", it.Category)
	fmt.Fprintf(Out, "  quantity:  %d\n", it.Quantity)
	fmt.Fprintf(Out, "  purchased: %s\n", formatDate(&it.PurchaseDate))
	fmt.Fprintf(Out, "  expires:   %s\n", formatDate(it.ExpiryDate))
	fmt.Fprintf(Out, "  status:    %s\n", it.Status)
	fmt.Fprintf(Out, "  source:    %s\n", it.Source)
	fmt.Fprintf(Out, "  notified:  %t\n", it.Notified)
}

type itemGetCmd struct{}

func (itemGetCmd) Name() string        { return "item" }
func (itemGetCmd) Description() string { return "Show one item" }
func (itemGetCmd) Usage() string       { return "item <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	it, err := d.items().Get(ctx, args[0])
	if err != nil {
		return err
	}
	printItem(it)
	return nil
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemGetCmd{})
}
