package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/gigdex/internal/domain/profile"
	"github.com/kailas-cloud/gigdex/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/gigdex/internal/logger"
	chiTransport "github.com/kailas-cloud/gigdex/internal/transport/chi"
)

type searchOptions struct {
	kind     string
	level    string
	page     int
	pageSize int
	json     bool
	logLevel string
}

func newSearchCmd(env *string) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query words...]",
		Short: "Run one search against the configured store and print the page",
		Example: `  gigdex search guitarrista folk cordoba
  gigdex search --kind band --page 2 rock`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd.OutOrStdout(), *env, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", "", "Filter by profile kind (musician, band)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Filter by experience level")
	cmd.Flags().IntVar(&opts.page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Results per page (default from config)")
	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Output as JSON")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level on stderr (default warn)")
	return cmd
}

func runSearch(ctx context.Context, out io.Writer, env, query string, opts searchOptions) error {
	cfg, err := loadConfig(env)
	if err != nil {
		return err
	}
	logger, err := logpkg.NewCLILogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	kind, ok := profile.ParseKind(opts.kind)
	if !ok {
		return fmt.Errorf("--kind must be %s or %s", profile.Musician, profile.Band)
	}
	pageSize := cfg.Search.DefaultPageSize
	if opts.pageSize > 0 {
		pageSize = request.ClampPageSize(opts.pageSize, cfg.Search.MaxPageSize)
	}
	req, err := request.New(query, kind, opts.level, opts.page, pageSize)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logpkg.ContextWithLogger(ctx, logger)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	page, err := a.search.Search(ctx, &req)
	if err != nil {
		return err
	}

	resp := chiTransport.NewSearchResponse(page)
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return printTable(out, resp)
}

func printTable(out io.Writer, resp chiTransport.SearchResponse) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tCITY\tINSTRUMENTS\tGENRES")
	for _, r := range resp.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.DisplayName, r.Kind, r.City,
			strings.Join(r.Instruments, ", "), strings.Join(r.Genres, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\npage %d of %d (%d matches)\n", resp.Page, resp.TotalPages, resp.TotalCount)
	return err
}
