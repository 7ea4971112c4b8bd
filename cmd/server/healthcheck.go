package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

// runHealthcheck checks the local server, for distroless container health checks.
func runHealthcheck(cmd *cobra.Command, _ []string) error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: healthcheckTimeout}
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet,
		fmt.Sprintf("http://127.0.0.1:%s/health", port), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
