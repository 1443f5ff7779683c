package commands

import (
	"Fridgella/internal/config"
	"Fridgella/internal/forms"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type importCmd struct{}

func (importCmd) Name() string { return "import" }
func (importCmd) Description() string {
	return "Import bill lines from a JSON file; all lines are stored or none"
}
func (importCmd) Usage() string { return "import <file.json>" }

func (importCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	rows, err := parseBillFile(data)
	if err != nil {
		return err
	}

	d := openDeps(cfg)
	defer d.close()
	items, err := d.items().Import(ctx, rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Imported %d items\n", len(items))
	printItems(items)
	return nil
}

// parseBillFile массив строк чека или {"items":[...]}; нечитаемые строки
// перечисляются все сразу с номерами
func parseBillFile(data []byte) ([]forms.ItemInput, error) {
	data = bytes.TrimSpace(data)
	var raw []json.RawMessage
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("invalid bill file: %w", err)
		}
		raw = wrapped.Items
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid bill file: %w", err)
	}

	rows := make([]forms.ItemInput, len(raw))
	var bad []string
	for i, r := range raw {
		if err := json.Unmarshal(r, &rows[i]); err != nil {
			bad = append(bad, fmt.Sprintf("#%d: malformed entry", i))
		}
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("invalid bill file: %s", strings.Join(bad, "; "))
	}
	return rows, nil
}

func init() { RegisterCmd(importCmd{}) }
