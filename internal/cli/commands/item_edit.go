package commands

import (
	"Fridgella/internal/config"
	"Fridgella/internal/forms"
	"context"
	"fmt"
	"strconv"
)

type itemEditCmd struct{}

func (itemEditCmd) Name() string { return "item-edit" }
func (itemEditCmd) Description() string {
	return "Change item fields; only given flags are sent, -expires \"\" clears the date"
}
func (itemEditCmd) Usage() string {
	return "item-edit [-name N] [-category C] [-qty N] [-bought D] [-expires D] [-status S] [-notified true|false] <id>"
}

func (itemEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	// Парсим флагами: разрешаем только префиксные флаги перед позиционными аргументами
	fs := newFlagSet("item-edit")
	name := fs.String("name", "", "")
	category := fs.String("category", "", "")
	qty := fs.Int("qty", 0, "")
	bought := fs.String("bought", "", "")
	expires := fs.String("expires", "", "")
	status := fs.String("status", "", "")
	notified := fs.String("notified", "", "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	set := setFlags(fs)
	if len(set) == 0 {
		return ErrUsage
	}

	var upd forms.ItemUpdate
	if set["name"] {
		upd.Name = name
	}
	if set["category"] {
		upd.Category = category
	}
	if set["qty"] {
		upd.Quantity = qty
	}
	if set["bought"] {
		upd.PurchaseDate = bought
	}
	if set["expires"] {
		upd.ExpiryDate = expires
	}
	if set["status"] {
		upd.Status = status
	}
	if set["notified"] {
		v, err := strconv.ParseBool(*notified)
		if err != nil {
			return ErrUsage
		}
		upd.Notified = &v
	}

	d := openDeps(cfg)
	defer d.close()
	it, err := d.items().Edit(ctx, fs.Arg(0), upd)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated:")
	printItem(it)
	return nil
}

type itemRmCmd struct{}

func (itemRmCmd) Name() string        { return "item-rm" }
func (itemRmCmd) Description() string { return "Delete an item" }
func (itemRmCmd) Usage() string       { return "item-rm <id>" }

func (itemRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	if err := d.items().Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %s\n", args[0])
	return nil
}

func init() {
	RegisterCmd(itemEditCmd{})
	RegisterCmd(itemRmCmd{})
}
