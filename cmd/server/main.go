package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "newster",
	Short:        "News dashboard proxy for headlines, search and LLM article analysis",
	Version:      version,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP proxy server (default)",
	RunE:  runServe,
}

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check the local server's /health endpoint (for container health checks)",
	RunE:  runHealthcheck,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Page through the dashboard from a terminal",
	Long: `Drive the dashboard state machine against a running newster server and
print the visible articles.

Examples:
  # First two pages of technology headlines, oldest first
  newster browse --category technology --pages 2 --sort oldest

  # Search, then analyze every result
  newster browse --query election --analyze`,
	RunE: runBrowse,
}

var (
	healthcheckTimeout time.Duration

	browseServer   string
	browseCategory string
	browseQuery    string
	browseSort     string
	browsePages    int
	browseAnalyze  bool
	browseTimeout  time.Duration
)

func init() {
	healthcheckCmd.Flags().DurationVar(&healthcheckTimeout, "timeout", 2*time.Second, "request timeout")

	browseCmd.Flags().StringVar(&browseServer, "server", "http://127.0.0.1:8080", "newster server base URL")
	browseCmd.Flags().StringVar(&browseCategory, "category", "general", "headline category")
	browseCmd.Flags().StringVarP(&browseQuery, "query", "q", "", "search query; enables search mode")
	browseCmd.Flags().StringVar(&browseSort, "sort", "latest", "sort order: latest, oldest or relevance")
	browseCmd.Flags().IntVar(&browsePages, "pages", 1, "number of pages to load")
	browseCmd.Flags().BoolVar(&browseAnalyze, "analyze", false, "request an analysis for every visible article")
	browseCmd.Flags().DurationVar(&browseTimeout, "timeout", 60*time.Second, "overall timeout")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthcheckCmd)
	rootCmd.AddCommand(browseCmd)
}
