package commands

import (
	"Fridgella/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage команда вызвана с неверными аргументами, диспетчер печатает Usage
var ErrUsage = errors.New("usage")

// Command подкоманда CLI
type Command interface {
	// Name имя, которое набирает пользователь, например "item-add"
	Name() string
	Description() string
	// Usage строка вида "item-add [flags] <name...>"
	Usage() string
	// Run получает аргументы уже без имени команды
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out куда пишут команды, в тестах подменяется буфером
var Out io.Writer = os.Stdout

// RegisterCmd вызывается из init() каждой команды
func RegisterCmd(cmd Command) {
	registry[strings.ToLower(cmd.Name())] = cmd
}

func Get(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

// List команды по алфавиту
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage общий help со списком команд и переменных окружения
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("Fridgella CLI\n\n")
	b.WriteString("Usage:\n  fridgella [-base-url <host:port>] [-https] <command> [args]\n\n")
	b.WriteString("Commands:\n")
	for _, c := range List() {
		fmt.Fprintf(&b, "  %-58s %s\n", c.Usage(), c.Description())
	}
	b.WriteString("\nEnvironment:\n")
	b.WriteString("  BASE_URL, ENABLE_HTTPS, CLIENT_DB_PATH, TOKEN_FILE\n")
	return b.String()
}
