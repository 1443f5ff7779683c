package commands

import (
	"Fridgella/internal/config"
	"context"
	"fmt"
)

type forgotPasswordCmd struct{}

func (forgotPasswordCmd) Name() string        { return "forgot-password" }
func (forgotPasswordCmd) Description() string { return "Email a password reset link" }
func (forgotPasswordCmd) Usage() string       { return "forgot-password <email>" }

func (forgotPasswordCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	msg, err := d.auth.ForgotPassword(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, msg)
	return nil
}

type resetPasswordCmd struct{}

func (resetPasswordCmd) Name() string        { return "reset-password" }
func (resetPasswordCmd) Description() string { return "Set a new password using the emailed token" }
func (resetPasswordCmd) Usage() string       { return "reset-password <token> <new-password>" }

func (resetPasswordCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	if err := d.auth.ResetPassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Password updated. You can now login with the new password")
	return nil
}

func init() {
	RegisterCmd(forgotPasswordCmd{})
	RegisterCmd(resetPasswordCmd{})
}
