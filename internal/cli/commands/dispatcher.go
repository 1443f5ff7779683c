package commands

import (
	"Fridgella/internal/cli/api"
	"Fridgella/internal/cli/service"
	"Fridgella/internal/config"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// Коды выхода CLI
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
	// ExitAuth нет сессии или сервер отверг токен
	ExitAuth = 3
)

// Dispatch запускает команду и возвращает код выхода процесса
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if helpRequested(os.Args[1:]) {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" {
		return printHelp(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	return report(c, c.Run(ctx, cfg, args[1:]))
}

func helpRequested(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// printHelp fridgella help [command]
func printHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	if c, ok := Get(args[0]); ok {
		fmt.Fprintf(Out, "Usage: %s\n  %s\n", c.Usage(), c.Description())
		return ExitOK
	}
	fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
	fmt.Fprint(Out, FormatGlobalUsage())
	return ExitUsage
}

// report печатает ошибку команды и выбирает код выхода
func report(c Command, err error) int {
	if err == nil {
		return ExitOK
	}

	var invalid *service.InvalidInputError
	switch {
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	case errors.Is(err, service.ErrNotLoggedIn):
		fmt.Fprintf(Out, "%s: %v\n", c.Name(), err)
		return ExitAuth
	case api.IsUnauthorized(err):
		fmt.Fprintf(Out, "%s: session rejected by server, please login again\n", c.Name())
		return ExitAuth
	case errors.As(err, &invalid):
		fmt.Fprintf(Out, "%s: invalid input\n", c.Name())
		for _, p := range invalid.Problems {
			fmt.Fprintf(Out, "  - %s\n", p)
		}
		return ExitUsage
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(Out, "%s: interrupted\n", c.Name())
		return ExitError
	default:
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		return ExitError
	}
}
