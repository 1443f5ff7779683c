package commands

import (
	"Fridgella/internal/cli/service"
	"Fridgella/internal/config"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type profileCmd struct{}

func (profileCmd) Name() string { return "profile" }
func (profileCmd) Description() string {
	return "Update profile fields; empty -phone or -avatar clears the value"
}
func (profileCmd) Usage() string {
	return "profile [-name N] [-phone P] [-avatar FILE|URL] [-password NEW -current OLD]"
}

func (profileCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("profile")
	name := fs.String("name", "", "display name")
	phone := fs.String("phone", "", "phone number for SMS reminders")
	avatar := fs.String("avatar", "", "image file or URL")
	newPass := fs.String("password", "", "new password")
	current := fs.String("current", "", "current password")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	set := setFlags(fs)
	if len(set) == 0 {
		return ErrUsage
	}

	var upd service.ProfileUpdate
	if set["name"] {
		upd.Name = name
	}
	if set["phone"] {
		upd.Phone = phone
	}
	if set["avatar"] {
		v, err := avatarValue(*avatar)
		if err != nil {
			return err
		}
		upd.Avatar = &v
	}
	if set["password"] {
		upd.NewPassword = newPass
		upd.CurrentPassword = current
	}

	d := openDeps(cfg)
	defer d.close()
	u, err := d.auth.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Profile updated: %s <%s>\n", u.Name, u.Email)
	return nil
}

// avatarValue URL передаётся как есть, локальный файл превращается в data URI
func avatarValue(v string) (string, error) {
	if v == "" || strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "data:") {
		return v, nil
	}
	b, err := os.ReadFile(v)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	ct := http.DetectContentType(b)
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("avatar must be an image, got %s", ct)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

func init() { RegisterCmd(profileCmd{}) }
