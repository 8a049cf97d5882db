package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/inverted-index/internal/metrics"
	"github.com/gcbaptista/inverted-index/internal/query"
)

type searchOptions struct {
	sources   []string
	named     string
	jsonTerms bool
	verbose   bool
}

func newSearchCmd() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [terms...]",
		Short: "Index one or more sources and search them",
		Long: `Index every --source in order, then look up each word of the given terms.

Without --named the most recently indexed source is searched and a word that
is not found yields "". With --named only that source is searched and missing
words are left out.`,
		Example: `  inverted_index search --source books.json alice ring
  inverted_index search --source a.json --source b.json --named a.json "hello world"
  inverted_index search --source books.json --json '["alice", {"k": "hobbit"}]'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, args)
		},
	}

	cmd.Flags().StringArrayVar(&opts.sources, "source", nil, "Location to index: a file path or an http(s) URL (repeatable)")
	cmd.Flags().StringVar(&opts.named, "named", "", "Search only the index built from this location")
	cmd.Flags().BoolVar(&opts.jsonTerms, "json", false, "Parse each argument as a JSON value of nested terms")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Print per-word hits alongside the results")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *searchOptions, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cmd.ErrOrStderr(), cfg)
	eng, err := newEngine(cfg, metrics.New())
	if err != nil {
		return err
	}
	defer eng.Close()

	terms := make([]query.Node, 0, len(args))
	for _, arg := range args {
		if !opts.jsonTerms {
			terms = append(terms, query.Term(arg))
			continue
		}
		n, err := query.ParseJSON([]byte(arg))
		if err != nil {
			return fmt.Errorf("invalid JSON terms %q: %w", arg, err)
		}
		terms = append(terms, n)
	}

	// sequential so the last source is the most recent index
	for _, location := range opts.sources {
		if _, err := eng.CreateIndex(cmd.Context(), location); err != nil {
			return err
		}
	}

	result, err := eng.Search(query.List(terms...), opts.named)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if opts.verbose {
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return enc.Encode(result.Results)
}
