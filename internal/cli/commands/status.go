package commands

import (
	"Fridgella/internal/cli/api"
	"Fridgella/internal/config"
	"context"
	"fmt"
	"net/http"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Check the server and the stored session" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var health struct {
		Status string `json:"status"`
	}
	if err := api.NewClient(cfg.ServerURL, "").Do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return fmt.Errorf("server %s: %w", cfg.ServerURL, err)
	}
	fmt.Fprintf(Out, "Server:  %s (%s)\n", cfg.ServerURL, health.Status)

	d := openDeps(cfg)
	defer d.close()
	if sess, err := d.auth.Current(); err == nil {
		fmt.Fprintf(Out, "Session: %s, expires %s\n", sess.Email, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintln(Out, "Session: not logged in")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
