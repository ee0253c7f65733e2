package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	warmFile        string
	warmConcurrency int
	warmRefresh     bool
)

var warmCmd = &cobra.Command{
	Use:   "warm [url...]",
	Short: "Pre-fill the cache for a list of listing URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		urls := append([]string(nil), args...)
		if warmFile != "" {
			f, err := os.Open(warmFile)
			if err != nil {
				return eris.Wrap(err, "open url file")
			}
			fromFile, err := readURLs(f)
			_ = f.Close()
			if err != nil {
				return err
			}
			urls = append(urls, fromFile...)
		}
		if len(urls) == 0 {
			return eris.New("no URLs given; pass them as arguments or with --file")
		}

		env, err := initPipeline(ctx, "warm")
		if err != nil {
			return err
		}
		defer env.Close()

		concurrency := warmConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}

		succeeded, failed, err := warmAll(ctx, urls, concurrency, func(ctx context.Context, u string) error {
			_, err := env.Pipeline.FetchByURL(ctx, u, warmRefresh)
			return err
		})
		if err != nil {
			return err
		}
		zap.L().Info("warm complete",
			zap.Int64("succeeded", succeeded),
			zap.Int64("failed", failed),
		)
		return nil
	},
}

// readURLs reads one URL per line, skipping blanks and # comments.
func readURLs(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "read url list")
	}
	return urls, nil
}

// warmAll runs fetch for every URL with bounded concurrency. A failed URL is
// logged and counted; it does not stop the others.
func warmAll(ctx context.Context, urls []string, concurrency int, fetch func(context.Context, string) error) (int64, int64, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, u := range urls {
		g.Go(func() error {
			if err := fetch(gctx, u); err != nil {
				failed.Add(1)
				zap.L().Warn("warm failed", zap.String("url", u), zap.Error(err))
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return succeeded.Load(), failed.Load(), eris.Wrap(err, "warm")
	}
	return succeeded.Load(), failed.Load(), nil
}

func init() {
	warmCmd.Flags().StringVar(&warmFile, "file", "", "file with one listing URL per line")
	warmCmd.Flags().IntVar(&warmConcurrency, "concurrency", 0, "parallel fetches (default from config)")
	warmCmd.Flags().BoolVar(&warmRefresh, "refresh", false, "ignore and replace cached data")
	rootCmd.AddCommand(warmCmd)
}
