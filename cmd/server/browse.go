package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hridaya423/newster/internal/adapter/dashboardclient"
	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/dashboard"
	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/infra/httpclient"
)

func runBrowse(cmd *cobra.Command, _ []string) error {
	sortOption, err := domain.ParseSortOption(browseSort)
	if err != nil {
		return err
	}
	if browsePages < 1 {
		return errors.New("--pages must be at least 1")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), browseTimeout)
	defer cancel()

	client := dashboardclient.New(browseServer, httpclient.NewPooledClient(browseTimeout))
	controller := dashboard.New(client, dashboard.Options{
		Category:   browseCategory,
		SortOption: sortOption,
	})
	defer controller.Close()

	stderr := cmd.ErrOrStderr()
	if strings.TrimSpace(browseQuery) != "" {
		err = retryOnce(ctx, stderr, controller, controller.Search(ctx, browseQuery))
	} else {
		err = retryOnce(ctx, stderr, controller, controller.Load(ctx))
	}
	for page := 1; err == nil && page < browsePages && controller.Snapshot().HasMore; page++ {
		err = retryOnce(ctx, stderr, controller, controller.ScrollNearBottom(ctx))
	}
	if err != nil {
		if msg := controller.Snapshot().Error; msg != "" {
			return errors.New(msg)
		}
		return err
	}

	return printArticles(ctx, cmd.OutOrStdout(), client, controller, browseAnalyze)
}

// retryOnce re-issues the failed page a single time when the failure looks
// transient.
func retryOnce(ctx context.Context, w io.Writer, controller *dashboard.Controller, err error) error {
	if err == nil || !apperrors.IsRetryableError(err) || ctx.Err() != nil {
		return err
	}
	fmt.Fprintf(w, "%s, retrying\n", controller.Snapshot().Error)
	return controller.Retry(ctx)
}

func printArticles(ctx context.Context, w io.Writer, client *dashboardclient.Client, controller *dashboard.Controller, analyze bool) error {
	state := controller.Snapshot()
	heading := "Headlines: " + state.Category
	if state.IsSearchMode {
		heading = fmt.Sprintf("Search: %q", state.SearchQuery)
	}
	fmt.Fprintf(w, "%s (pages %d, sort %s)\n\n", heading, state.Page, state.SortOption)

	for i, a := range controller.Visible() {
		published := "undated"
		if a.PublishedAt != nil {
			published = a.PublishedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%3d. %s\n     %s | %s | %d min read\n     %s\n",
			i+1, a.Title, a.Source.Name, published, a.ReadingMinutes(), a.URL)

		if analyze {
			analysis, err := client.Analyze(ctx, a)
			if err != nil {
				fmt.Fprintf(w, "     analysis unavailable: %v\n", err)
			} else {
				fmt.Fprintf(w, "     sentiment %s (%.2f), credibility %s (%.2f), bias %s (%.2f)\n",
					analysis.Sentiment, analysis.SentimentScore,
					analysis.Credibility, analysis.CredibilityScore,
					analysis.Bias, analysis.BiasScore)
			}
		}
		fmt.Fprintln(w)
	}

	if !state.HasMore && len(state.Articles) > 0 {
		fmt.Fprintln(w, "No more articles to load")
	}
	return nil
}
