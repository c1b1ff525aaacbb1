package builder

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/urfave/cli/v2"
	"wayfinder.transit.dev/internal/logging"
	"wayfinder.transit.dev/internal/patterns"
	"wayfinder.transit.dev/transitdb"
)

// RegisterCLI returns the builder subcommands. Reports are written to out.
func RegisterCLI(logger *slog.Logger, out io.Writer) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "build",
			Usage: "build a dataset file from a GTFS feed",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "feed", Usage: "GTFS zip archive or extracted directory", Required: true},
				&cli.StringFlag{Name: "out", Usage: "dataset file to publish", Value: "wayfinder.db"},
				&cli.StringFlag{Name: "policy", Usage: "representative trip policy (first|most-common)", Value: "first"},
				&cli.BoolFlag{Name: "strict", Usage: "parse with the full GTFS parser and fail on invalid files"},
			},
			Action: func(c *cli.Context) error {
				policy, err := patterns.PolicyByName(c.String("policy"))
				if err != nil {
					return err
				}

				result, err := Build(c.Context, Options{
					FeedPath: c.String("feed"),
					OutPath:  c.String("out"),
					Policy:   policy,
					Strict:   c.Bool("strict"),
					Logger:   logger,
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "published %s (build %s) in %s\n", c.String("out"), result.Metadata.BuildID, result.Duration.Round(time.Millisecond))
				fmt.Fprintf(out, "trips=%d groups=%d patterns=%d pattern_stops=%d index_rows=%d skipped_empty=%d warnings=%d\n",
					result.Stats.Trips, result.Stats.Groups, result.Stats.Patterns,
					result.Stats.PatternStops, result.Stats.IndexRows, result.Stats.SkippedEmpty,
					len(result.Warnings))
				return nil
			},
		},
		{
			Name:  "inspect",
			Usage: "print build metadata and table counts of a dataset file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "dataset", Usage: "dataset file", Value: "wayfinder.db"},
			},
			Action: func(c *cli.Context) error {
				client, err := transitdb.Open(transitdb.NewConfig(c.String("dataset"), false))
				if err != nil {
					return err
				}
				defer logging.SafeCloseWithLogging(client, logger, "dataset")

				meta, err := client.Queries.GetMetadata(c.Context)
				if err != nil {
					return fmt.Errorf("read metadata: %w", err)
				}
				counts, err := client.TableCounts(c.Context)
				if err != nil {
					return fmt.Errorf("count tables: %w", err)
				}

				fmt.Fprintf(out, "build_id:    %s\n", meta.BuildID)
				fmt.Fprintf(out, "built_at:    %s\n", meta.BuiltAt.UTC().Format("2006-01-02T15:04:05Z"))
				fmt.Fprintf(out, "feed_source: %s\n", meta.FeedSource)
				fmt.Fprintf(out, "feed_sha256: %s\n", meta.FeedSHA256)
				fmt.Fprintf(out, "policy:      %s\n", meta.Policy)

				tables := make([]string, 0, len(counts))
				for table := range counts {
					tables = append(tables, table)
				}
				sort.Strings(tables)
				for _, table := range tables {
					fmt.Fprintf(out, "%-20s %d\n", table, counts[table])
				}
				return nil
			},
		},
	}
}
