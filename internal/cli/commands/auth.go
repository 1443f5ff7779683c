package commands

import (
	"Fridgella/internal/cli/service"
	"Fridgella/internal/config"
	"context"
	"fmt"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account" }
func (registerCmd) Usage() string       { return `register "<name>" <email> <password> [<phone>]` }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return ErrUsage
	}
	var phone *string
	if len(args) == 4 {
		phone = &args[3]
	}
	d := openDeps(cfg)
	defer d.close()

	user, err := d.auth.Register(ctx, args[0], args[1], args[2], phone)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered %s <%s>. Now run: login %s <password>\n", user.Name, user.Email, user.Email)
	return nil
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the session token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()

	sess, err := d.auth.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s\n", sess.Email)

	// сразу готовим локальный кэш, чтобы список был доступен офлайн
	warm := openDeps(cfg)
	defer warm.close()
	if _, _, err := warm.items().List(ctx, service.ItemFilter{}); err != nil {
		fmt.Fprintf(Out, "! Could not fetch items: %v\n", err)
	}
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored session" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()
	if err := d.auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type meCmd struct{}

func (meCmd) Name() string        { return "me" }
func (meCmd) Description() string { return "Show the current profile" }
func (meCmd) Usage() string       { return "me" }

func (meCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	d := openDeps(cfg)
	defer d.close()

	u, err := d.auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "id:     %s\n", u.ID)
	fmt.Fprintf(Out, "name:   %s\n", u.Name)
	fmt.Fprintf(Out, "email:  %s\n", u.Email)
	if u.Phone != nil {
		fmt.Fprintf(Out, "phone:  %s\n", *u.Phone)
	} else {
		fmt.Fprintln(Out, "phone:  <not set> (no SMS reminders)")
	}
	if u.Avatar != nil {
		fmt.Fprintln(Out, "avatar: <set>")
	}
	return nil
}

func init() {
	RegisterCmd(registerCmd{})
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(meCmd{})
}
