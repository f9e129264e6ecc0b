package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/geange/automaton/v2/internal/telemetry"
	"github.com/geange/automaton/v2/lexer"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel  string
	telemetry string
	shutdown  func(context.Context) error
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "lexfa",
		Short: "Compile lexer specs into minimal automata",
		Long: `lexfa reads a YAML list of token rules, compiles it into one
minimal DFA over runes and either prints its transition table or
tokenizes input with it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.shutdown == nil {
				return nil
			}
			return opts.shutdown(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.telemetry, "telemetry", telemetry.DefaultConfig().Exporter, "telemetry exporter (none, stdout)")

	root.AddCommand(newTableCmd(), newMatchCmd(), newVersionCmd())
	return root
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cfg := telemetry.DefaultConfig()
	cfg.ServiceVersion = version
	cfg.Exporter = o.telemetry
	cfg.Writer = cmd.ErrOrStderr()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Init(ctx, cfg)
	if err != nil {
		return err
	}
	o.shutdown = shutdown
	return nil
}

func compileSpec(ctx context.Context, path string) (*lexer.Table, error) {
	spec, err := lexer.LoadSpecFile(path)
	if err != nil {
		return nil, err
	}
	rules, err := spec.CompileRules()
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return lexer.Compile(ctx, rules)
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table SPEC",
		Short: "Print the transition table of a lexer spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := compileSpec(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			dfa := table.DFA()
			initial, _ := dfa.InitialState()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "STATE\tTOKEN\tON\tTO\n")
			for state := range dfa.StateCount() {
				name := "-"
				if tok, ok := table.Token(state); ok {
					name = tok
				}
				label := strconv.Itoa(state)
				if state == initial {
					label += "*"
				}
				ranges := table.Ranges(state)
				if len(ranges) == 0 {
					fmt.Fprintf(w, "%s\t%s\t\t\n", label, name)
					continue
				}
				for i, r := range ranges {
					if i > 0 {
						label, name = "", ""
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", label, name, formatRange(r.Lo, r.Hi), r.To)
				}
			}
			return w.Flush()
		},
	}
}

func formatRange(lo, hi rune) string {
	if lo == hi {
		return strconv.QuoteRune(lo)
	}
	return strconv.QuoteRune(lo) + "-" + strconv.QuoteRune(hi)
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match SPEC [INPUT]",
		Short: "Tokenize INPUT, or standard input, with a lexer spec",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := compileSpec(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var input string
			if len(args) == 2 {
				input = args[1]
			} else {
				var sb strings.Builder
				if _, err := sb.ReadFrom(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				input = sb.String()
			}

			tokens, err := table.Tokenize(input)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(w, "%d\t%s\t%s\n", tok.Offset, tok.Kind, strconv.Quote(tok.Text))
			}
			if ferr := w.Flush(); err == nil {
				err = ferr
			}
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lexfa version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lexfa %s\n", version)
		},
	}
}
