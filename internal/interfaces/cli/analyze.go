package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// analyzeAck mirrors the API's 202 body.
type analyzeAck struct {
	SessionID  string `json:"session_id"`
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
}

// analyzeStatus mirrors the API's status-poll body.
type analyzeStatus struct {
	Status          string `json:"status"`
	ProgressMessage string `json:"progress_message"`
}

func newAnalyzeCmd() *cobra.Command {
	var (
		apiURL    string
		sessionID string
		poll      time.Duration
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Trigger an analysis run and wait for it to finish",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := strings.TrimRight(apiURL, "/")
			client := &http.Client{Timeout: 30 * time.Second}

			ack, err := triggerAnalysis(client, base, sessionID)
			if err != nil {
				return err
			}
			cmd.Printf("analysis %s queued (status %s)\n", ack.AnalysisID, ack.Status)

			deadline := time.Now().Add(timeout)
			lastMessage := ""
			for {
				status, err := pollStatus(client, base, sessionID)
				if err != nil {
					return err
				}
				if status.ProgressMessage != lastMessage {
					cmd.Println(status.ProgressMessage)
					lastMessage = status.ProgressMessage
				}
				if status.Status == "complete" {
					return nil
				}
				if status.Status == "failed" {
					return fmt.Errorf("analysis failed: %s", status.ProgressMessage)
				}
				if time.Now().After(deadline) {
					return fmt.Errorf("timed out after %s waiting for analysis", timeout)
				}
				time.Sleep(poll)
			}
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "http://localhost:8080", "base URL of the API server")
	cmd.Flags().StringVar(&sessionID, "session", "", "session ID to analyze (required)")
	cmd.Flags().DurationVar(&poll, "poll", 2*time.Second, "status poll interval")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "how long to wait for completion")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func triggerAnalysis(client *http.Client, base, sessionID string) (*analyzeAck, error) {
	resp, err := client.Post(base+"/api/v1/sessions/"+sessionID+"/analyze", "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("trigger analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, apiError("trigger analysis", resp)
	}
	var ack analyzeAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("decode trigger response: %w", err)
	}
	return &ack, nil
}

func pollStatus(client *http.Client, base, sessionID string) (*analyzeStatus, error) {
	resp, err := client.Get(base + "/api/v1/sessions/" + sessionID + "/analysis/status")
	if err != nil {
		return nil, fmt.Errorf("poll status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("poll status", resp)
	}
	var status analyzeStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &status, nil
}

func apiError(op string, resp *http.Response) error {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("%s: %s (%s)", op, body.Message, body.Code)
	}
	return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
}
