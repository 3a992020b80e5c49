package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(guestCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(raceCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var guestCmd = &cobra.Command{
	Use:   "guest [guest-id]",
	Short: "Bootstrap an anonymous guest user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"guestId":%q}`, args[0])
		return performRequest(http.MethodPost, "/api/users/guest", body)
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme [guest-id] [theme]",
	Short: "Set a guest's UI theme",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"theme":%q}`, args[1])
		return performRequest(http.MethodPut, "/api/users/"+args[0]+"/theme", body)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches [guest-id]",
	Short: "List a guest's match history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/users/" + args[0] + "/matches")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [guest-id]",
	Short: "Show a guest's career aggregates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/users/" + args[0] + "/stats")
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, "")
}

func performRequest(method, endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, bytes.NewReader([]byte(body)))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
