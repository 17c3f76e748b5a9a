// Package cmd implements the langium command line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ruediste/langium/config"
	"github.com/ruediste/langium/grammar"
	"github.com/ruediste/langium/types"
	"github.com/ruediste/langium/validation"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the langium CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:    "langium",
		Usage:   "Grammar tooling: type checking for grammar files",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validate a grammar file and report type inconsistencies",
				ArgsUsage: "<file.langium>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a YAML config file",
					},
					&cli.BoolFlag{
						Name:    "no-color",
						Aliases: []string{"C"},
						Usage:   "Disable ANSI color output",
					},
				},
				Action: checkAction,
			},
			{
				Name:      "types",
				Usage:     "Print all known types of a grammar, declared or inferred",
				ArgsUsage: "<file.langium>",
				Action:    typesAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: langium check <file.langium>")
	}

	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}

	file := cmd.Args().First()
	g, err := grammar.ParseFile(file)
	if err != nil {
		return err
	}

	validator := validation.NewDefaultValidator(slog.Default())
	diags, err := validator.Validate(ctx, g)
	if err != nil {
		return err
	}

	color := useColor(cfg, cmd.Bool("no-color"))
	minSeverity := severityFromName(cfg.MinSeverity)
	printed, problems := 0, 0
	for _, d := range diags {
		if d.Severity > minSeverity {
			continue
		}
		if d.Severity == validation.SeverityError {
			problems++
		}
		if cfg.MaxProblems > 0 && printed >= cfg.MaxProblems {
			continue
		}
		printed++
		pos := d.Info.At().Start
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n",
			file, pos.Line, pos.Column, colorize(d.Severity, color), d.Message)
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Fprintf(os.Stderr, "%s: no problems found\n", file)
	return nil
}

func typesAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: langium types <file.langium>")
	}
	g, err := grammar.ParseFile(cmd.Args().First())
	if err != nil {
		return err
	}

	res := validation.CollectResources(g)
	for _, name := range res.Names() {
		r := res.Get(name)
		// The declared description wins; inferred-only types are still listed.
		t := r.Declared
		if t == nil {
			t = r.Inferred
		}
		fmt.Println(formatType(t))
	}
	return nil
}

// formatType renders a type description in declaration syntax.
func formatType(t types.TypeOrInterface) string {
	switch typ := t.(type) {
	case *types.UnionType:
		parts := make([]string, len(typ.Union))
		for i, alt := range typ.Union {
			parts[i] = alt.Display()
		}
		return fmt.Sprintf("type %s = %s;", typ.Name, strings.Join(parts, " | "))
	case *types.InterfaceType:
		var sb strings.Builder
		sb.WriteString("interface " + typ.Name)
		if len(typ.SuperTypes) > 0 {
			sb.WriteString(" extends " + strings.Join(typ.SuperTypes, ", "))
		}
		sb.WriteString(" {\n")
		for _, p := range typ.Properties {
			opt := ""
			if p.Optional {
				opt = "?"
			}
			fmt.Fprintf(&sb, "    %s%s: %s\n", p.Name, opt, p.TypeString())
		}
		sb.WriteString("}")
		return sb.String()
	default:
		return ""
	}
}

// useColor decides whether to emit ANSI colors, honoring the config, the
// --no-color flag, NO_COLOR, and whether stderr is a terminal.
func useColor(cfg *config.Config, noColorFlag bool) bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" || cfg.Color == "never" {
		return false
	}
	if cfg.Color == "always" {
		return true
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func severityFromName(name string) validation.Severity {
	switch name {
	case "error":
		return validation.SeverityError
	case "warning":
		return validation.SeverityWarning
	case "info":
		return validation.SeverityInfo
	default:
		return validation.SeverityHint
	}
}

func colorize(s validation.Severity, color bool) string {
	if !color {
		return s.String()
	}
	switch s {
	case validation.SeverityError:
		return "\033[31m" + s.String() + "\033[0m"
	case validation.SeverityWarning:
		return "\033[33m" + s.String() + "\033[0m"
	default:
		return "\033[36m" + s.String() + "\033[0m"
	}
}
