package commands

import (
	"Fridgella/internal/cli/service"
	"Fridgella/internal/config"
	"context"
	"fmt"
	"sort"
	"time"
)

type analyticsCmd struct{}

func (analyticsCmd) Name() string        { return "analytics" }
func (analyticsCmd) Description() string { return "Summary of your fridge (sample data when nothing is available)" }
func (analyticsCmd) Usage() string       { return "analytics" }

func (analyticsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	r, src, err := d.analytics().Summary(ctx, time.Now())
	if err != nil {
		return err
	}

	switch src {
	case service.SourceCache:
		fmt.Fprintln(Out, "! Server unreachable, summary built from cached data")
	case service.SourceSample:
		fmt.Fprintln(Out, "! No data available, showing a sample dataset")
	}
	fmt.Fprintf(Out, "Items:          %d (total quantity %d)\n", r.TotalItems, r.TotalQuantity)
	fmt.Fprintf(Out, "Expiring soon:  %d\n", r.ExpiringSoon)
	fmt.Fprintf(Out, "Expired:        %d\n", r.Expired)
	fmt.Fprintf(Out, "Bills:          %d (total %s)\n", r.BillsCount, formatAmount(r.BillsTotal))
	if src == service.SourceLive {
		fmt.Fprintf(Out, "SMS sent:       %d\n", r.NotificationsSent)
	}
	printCounts("By category", r.ByCategory)
	printCounts("By status", r.ByStatus)
	printCounts("By source", r.BySource)
	if len(r.Upcoming) > 0 {
		fmt.Fprintln(Out, "Next to expire:")
		for _, u := range r.Upcoming {
			exp := u.ExpiryDate
			fmt.Fprintf(Out, "  %s (%s) %s, in %d days\n", u.Name, u.Category, formatDate(&exp), u.DaysLeft)
		}
	}
	return nil
}

func printCounts(title string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(Out, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(Out, "  %-14s %d\n", k, m[k])
	}
}

func init() { RegisterCmd(analyticsCmd{}) }
