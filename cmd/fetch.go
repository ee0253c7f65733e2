package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	fetchURL     string
	fetchRefresh bool
	morePage     int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch company data, photos and the first reviews page for a listing URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx, "fetch")
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Pipeline.FetchByURL(ctx, fetchURL, fetchRefresh)
		if err != nil {
			return eris.Wrap(err, "fetch")
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

var moreCmd = &cobra.Command{
	Use:   "more",
	Short: "Fetch an additional reviews page for a listing URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx, "more")
		if err != nil {
			return err
		}
		defer env.Close()

		page, err := env.Pipeline.FetchMoreReviews(ctx, fetchURL, morePage)
		if err != nil {
			return eris.Wrap(err, "fetch more reviews")
		}
		return printJSON(cmd.OutOrStdout(), page)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the cached record and reviews pages of a listing URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx, "clear")
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Pipeline.ClearCache(ctx, fetchURL); err != nil {
			return eris.Wrap(err, "clear cache")
		}
		_, err = cmd.OutOrStdout().Write([]byte("cache cleared\n"))
		return err
	},
}

func init() {
	for _, c := range []*cobra.Command{fetchCmd, moreCmd, clearCmd} {
		c.Flags().StringVar(&fetchURL, "url", "", "listing URL (required)")
		_ = c.MarkFlagRequired("url")
		rootCmd.AddCommand(c)
	}
	fetchCmd.Flags().BoolVar(&fetchRefresh, "refresh", false, "ignore and replace cached data")
	moreCmd.Flags().IntVar(&morePage, "page", 2, "reviews page number (2 or greater)")
}
