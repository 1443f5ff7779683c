package commands

import (
	"Fridgella/internal/config"
	"Fridgella/internal/forms"
	"context"
	"fmt"
	"strings"
)

type itemAddCmd struct{}

func (itemAddCmd) Name() string { return "item-add" }
func (itemAddCmd) Description() string {
	return "Add an item manually (dates as YYYY-MM-DD)"
}
func (itemAddCmd) Usage() string {
	return "item-add [-category C] [-qty N] [-bought DATE] [-expires DATE] [-status S] <name>"
}

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("item-add")
	var in forms.ItemInput
	fs.StringVar(&in.Category, "category", "", "category")
	qty := fs.Int("qty", 1, "quantity")
	fs.StringVar(&in.PurchaseDate, "bought", "", "purchase date")
	fs.StringVar(&in.ExpiryDate, "expires", "", "expiry date")
	fs.StringVar(&in.Status, "status", "", "fresh|expiring|expired")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return ErrUsage
	}
	in.Name = strings.Join(fs.Args(), " ")
	in.Quantity = qty

	d := openDeps(cfg)
	defer d.close()
	it, err := d.items().Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	printItem(it)
	if it.ExpiryDate != nil {
		fmt.Fprintln(Out, "→ SMS reminder scheduled before expiry (if a phone is set)")
	}
	return nil
}

func init() { RegisterCmd(itemAddCmd{}) }
