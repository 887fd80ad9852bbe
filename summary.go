package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/sirlanci/FuncSelector/internal/analyze"
	"github.com/sirlanci/FuncSelector/internal/category"
	"github.com/sirlanci/FuncSelector/internal/complexity"
	"github.com/sirlanci/FuncSelector/internal/discover"
	"github.com/sirlanci/FuncSelector/internal/lang"
	"github.com/sirlanci/FuncSelector/internal/model"
	"github.com/sirlanci/FuncSelector/internal/ranking"
	"github.com/sirlanci/FuncSelector/internal/summary"
	"github.com/sirlanci/FuncSelector/internal/toon"
)

const (
	formatTOON = "toon"
	formatYAML = "yaml"
)

type summaryFlags struct {
	format    string
	top       int
	cachePath string
	noTests   bool
}

func newSummaryCmd(a *app) *cobra.Command {
	var f summaryFlags
	cmd := &cobra.Command{
		Use:   "summary <file.rs|dir>",
		Short: "Rank functions by unsafe complexity across a file or crate",
		Long: `Analyze one Rust file or every Rust file under a directory and print a
per-function summary: unsafe region count, total and average region score,
the number of variables with a known type and the type categories they fall
into. Functions are ranked by total score.

Examples:
  funcselector summary src/lib.rs
  funcselector summary --top 20 .
  funcselector summary --format yaml --no-tests crates/core`,
		Args: exactlyOne,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSummary(cmd.Context(), args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", formatTOON, "output format (toon, yaml)")
	cmd.Flags().IntVarP(&f.top, "top", "n", 0, "keep only the N highest-ranked functions (0 for all)")
	cmd.Flags().StringVar(&f.cachePath, "cache", "", "cache file path; reused while no input is newer")
	cmd.Flags().BoolVar(&f.noTests, "no-tests", false, "skip tests/, benches/ and *_test.rs files")
	return cmd
}

func (a *app) runSummary(ctx context.Context, target string, f summaryFlags) error {
	if f.format != formatTOON && f.format != formatYAML {
		return fmt.Errorf("unsupported format %q (want %s or %s)", f.format, formatTOON, formatYAML)
	}

	root, files, single, err := a.collect(target, f.noTests)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Rust files found under %s", target)
	}

	var key string
	if f.cachePath != "" {
		key, err = cacheKey(a.cfg, f, root, files)
		if err != nil {
			return err
		}
		if cached, ok := readCache(f.cachePath, key, root, files); ok {
			a.logger.Info("using cached summary", "path", f.cachePath)
			_, _ = fmt.Fprint(a.stdout, cached)
			return nil
		}
	}

	files = filterBySize(root, files, a.cfg.Scan.MaxFileSize, a.logger)
	if len(files) == 0 {
		return fmt.Errorf("no Rust files found (all exceeded size limit)")
	}

	var reports []*model.FileReport
	if single {
		// a lone file reports its parse error like unsafe and types do
		report, err := a.analyzeFile(ctx, filepath.Join(root, files[0].Path))
		if err != nil {
			return err
		}
		report.Path = files[0].Path
		reports = append(reports, report)
	} else {
		workers := a.cfg.Scan.Workers
		if workers == 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		reports = analyzeConcurrent(ctx, root, files, workers, a.complexityOptions(), a.logger)
		if len(reports) == 0 {
			return fmt.Errorf("no files could be parsed")
		}
	}

	s := summary.Build(filepath.Base(root), reports, category.New(a.cfg.Categories))
	s = ranking.TopFunctions(s, f.top)

	var output string
	switch f.format {
	case formatYAML:
		output, err = summary.EncodeYAML(s)
		if err != nil {
			return err
		}
	default:
		output = toon.Encode(s) + "\n"
	}

	if f.cachePath != "" {
		if err := writeCache(f.cachePath, key, output); err != nil {
			a.logger.Warn("failed to write cache", "path", f.cachePath, "err", err)
		}
	}

	_, _ = fmt.Fprint(a.stdout, output)
	return nil
}

// collect resolves target to an absolute root directory and the Rust files to
// analyze beneath it. A file target yields just that file and single is set.
func (a *app) collect(target string, noTests bool) (root string, files []discover.FileEntry, single bool, err error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", nil, false, fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, false, fmt.Errorf("unable to read file: %w", err)
	}
	if !info.IsDir() {
		return filepath.Dir(abs), []discover.FileEntry{
			{Path: filepath.Base(abs), Language: lang.Rust},
		}, true, nil
	}

	files, err = discover.Files(abs, discover.Options{
		SkipDirs:  a.cfg.Scan.SkipDirs,
		SkipTests: noTests,
	})
	if err != nil {
		return "", nil, false, fmt.Errorf("discovering files: %w", err)
	}
	a.logger.Info("discovered files", "root", abs, "count", len(files))
	return abs, files, false, nil
}

func filterBySize(root string, files []discover.FileEntry, maxSize int64, logger *slog.Logger) []discover.FileEntry {
	var kept []discover.FileEntry
	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			kept = append(kept, f) // keep if can't stat
			continue
		}
		if fi.Size() > maxSize {
			logger.Warn("skipping large file", "path", f.Path, "size", fi.Size(), "limit", maxSize)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// analyzeConcurrent analyzes files on a pool of workers, each with its own
// parser, and returns the reports of the files that parsed in input order.
func analyzeConcurrent(
	ctx context.Context,
	root string,
	files []discover.FileEntry,
	workers int,
	opts complexity.Options,
	logger *slog.Logger,
) []*model.FileReport {
	type result struct {
		index  int
		report *model.FileReport
	}

	if workers > len(files) {
		workers = len(files)
	}

	work := make(chan int, len(files))
	results := make(chan result, len(files))

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// tree-sitter parsers are not safe for concurrent use
			parser := lang.Languages[lang.Rust].NewParser()
			defer parser.Close()

			for idx := range work {
				f := files[idx]
				source, err := os.ReadFile(filepath.Join(root, f.Path))
				if err != nil {
					logger.Warn("skipping unreadable file", "path", f.Path, "err", err)
					continue
				}

				report, err := analyze.Source(ctx, parser, source, f.Path, opts)
				if err != nil {
					logger.Warn("skipping unparsable file", "path", f.Path, "err", err)
					continue
				}
				logger.Debug("analyzed file", "path", f.Path, "functions", len(report.Functions))
				results <- result{index: idx, report: report}
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results in original order
	indexed := make([]*model.FileReport, len(files))
	for r := range results {
		indexed[r.index] = r.report
	}

	var reports []*model.FileReport
	for _, r := range indexed {
		if r != nil {
			reports = append(reports, r)
		}
	}
	return reports
}
