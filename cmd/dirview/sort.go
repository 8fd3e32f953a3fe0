package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dirview/dirview/internal/browse"
	"github.com/dirview/dirview/internal/config"
	"github.com/dirview/dirview/internal/listing"
	"github.com/dirview/dirview/internal/logging"
	"github.com/dirview/dirview/internal/report"
	"github.com/spf13/cobra"
)

type sortOptions struct {
	configPath string
	inputPath  string
	format     string
	criteria   string
	order      string
	dirsFirst  bool
	output     string
	outPath    string
}

func newSortCmd() *cobra.Command {
	var opts sortOptions

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort a browse response and infer its current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			sortCfg, err := opts.sortConfig(cmd, cfg)
			if err != nil {
				return err
			}
			format, err := browse.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			in, closeIn, err := openInput(cmd.InOrStdin(), opts.inputPath)
			if err != nil {
				return err
			}
			defer func() { _ = closeIn() }()

			start := time.Now()
			entries, err := browse.Decode(in, format)
			if err != nil {
				return err
			}
			res := browse.Process(entries, sortCfg, cfg.Normalizer())

			if err := writeSortEvent(cfg, opts, format, res, start); err != nil {
				return err
			}

			switch opts.output {
			case "", "text":
				return report.WriteOutput(cmd.OutOrStdout(), opts.outPath, []byte(browse.RenderText(res)))
			case "json":
				data, err := browse.RenderJSON(res)
				if err != nil {
					return err
				}
				return report.WriteOutput(cmd.OutOrStdout(), opts.outPath, append(data, '\n'))
			default:
				return fmt.Errorf("unknown output %q", opts.output)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&opts.inputPath, "in", "-", "Browse response file (- for stdin)")
	cmd.Flags().StringVar(&opts.format, "format", "auto", "Input format: auto|xml|json")
	cmd.Flags().StringVar(&opts.criteria, "sort", "", "Override sort criteria: none|name|size|date")
	cmd.Flags().StringVar(&opts.order, "order", "", "Override sort order: asc|desc")
	cmd.Flags().BoolVar(&opts.dirsFirst, "dirs-first", true, "List directories before files")
	cmd.Flags().StringVar(&opts.output, "output", "text", "Output format: text|json")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "Output file path (default stdout)")

	return cmd
}

// sortConfig applies flags that were set explicitly on top of the config.
func (o sortOptions) sortConfig(cmd *cobra.Command, cfg *config.Config) (listing.SortConfig, error) {
	sortCfg := cfg.SortConfig()
	if cmd.Flags().Changed("sort") {
		criteria, err := listing.ParseCriteria(o.criteria)
		if err != nil {
			return sortCfg, err
		}
		sortCfg.Criteria = criteria
	}
	if cmd.Flags().Changed("order") {
		order, err := listing.ParseOrder(o.order)
		if err != nil {
			return sortCfg, err
		}
		sortCfg.Order = order
	}
	if cmd.Flags().Changed("dirs-first") {
		sortCfg.DirectoriesFirst = o.dirsFirst
	}
	return sortCfg, nil
}

func openInput(stdin io.Reader, path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return stdin, func() error { return nil }, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return file, file.Close, nil
}

func writeSortEvent(cfg *config.Config, opts sortOptions, format browse.Format, res browse.Result, start time.Time) error {
	if cfg.Logging.EventLog == "" {
		return nil
	}
	logger, closer, err := logging.OpenEventLog(cfg.ResolvePath(cfg.Logging.EventLog))
	if err != nil {
		return err
	}
	defer func() { _ = closer() }()

	event := logging.Event{
		Timestamp: start.UTC(),
		Source:    "cli:" + opts.inputPath,
		Format:    string(format),
	}
	res.Annotate(&event)
	event.DurationUS = time.Since(start).Microseconds()
	return logger.Write(event)
}
