package commands

import (
	"Fridgella/internal/cli/bootstrap"
	"Fridgella/internal/cli/repo"
	"Fridgella/internal/cli/service"
	"Fridgella/internal/config"
	"flag"
	"io"
	"strconv"
	"time"
)

// deps сервисы CLI поверх сессии и кэша текущего пользователя
type deps struct {
	auth  *service.AuthService
	cache repo.CacheRepository
	done  func() error
}

// openDeps кэш открывается только при активной сессии и не обязателен
func openDeps(cfg *config.Config) *deps {
	d := &deps{auth: service.NewAuthService(cfg.ServerURL, bootstrap.SessionStore(cfg))}
	if sess, err := d.auth.Current(); err == nil {
		if cache, done, err := bootstrap.OpenCache(cfg, sess.Email); err == nil {
			d.cache, d.done = cache, done
		}
	}
	return d
}

func (d *deps) close() {
	if d.done != nil {
		_ = d.done()
	}
}

func (d *deps) items() *service.ItemService { return service.NewItemService(d.auth, d.cache) }
func (d *deps) bills() *service.BillService { return service.NewBillService(d.auth, d.cache) }

func (d *deps) analytics() *service.AnalyticsService {
	return service.NewAnalyticsService(d.auth, d.cache)
}

// newFlagSet флаги подкоманды; только префиксные флаги перед позиционными аргументами
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// setFlags имена флагов, явно заданных пользователем
func setFlags(fs *flag.FlagSet) map[string]bool {
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	return seen
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
