package issues

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/fleetops/fleet-asset/cmd/cli/cliconfig"
	"github.com/fleetops/fleet-asset/cmd/cli/output"
)

// InitIssues registers the issues command group on the root command.
func InitIssues(rootCmd *cobra.Command) {
	issuesCmd := &cobra.Command{
		Use:   "issues",
		Short: "Manage asset issues",
	}

	issuesCmd.AddCommand(
		listIssuesCmd(),
		addIssueCmd(),
		completeIssueCmd(),
	)

	rootCmd.AddCommand(issuesCmd)
}

func post(path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, cliconfig.APIURL()+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := cliconfig.APIToken(); token != "" {
		req.Header.Set("X-API-Token", token)
	}
	return http.DefaultClient.Do(req)
}

func printJSON(resp *http.Response) {
	var out any
	json.NewDecoder(resp.Body).Decode(&out)
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func listIssuesCmd() *cobra.Command {
	var assetID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues for an asset",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := post("/v1/assets/fetch-issues", map[string]any{"assetId": assetID})
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				printJSON(resp)
				return
			}

			var issues []struct {
				ID            int     `json:"id"`
				Description   string  `json:"description"`
				Severity      string  `json:"severity"`
				TimeCreated   string  `json:"time_created"`
				TimeCompleted *string `json:"time_completed"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&issues); err != nil {
				fmt.Println(err)
				return
			}

			rows := make([][]interface{}, 0, len(issues))
			for _, i := range issues {
				state := "open"
				if i.TimeCompleted != nil {
					state = "completed"
				}
				rows = append(rows, []interface{}{i.ID, i.Severity, state, i.TimeCreated, i.Description})
			}
			output.RenderTable(
				[]string{"ID", "Severity", "State", "Created", "Description"},
				rows,
			)
		},
	}

	cmd.Flags().IntVar(&assetID, "asset", 0, "asset id")
	cmd.MarkFlagRequired("asset")

	return cmd
}

func addIssueCmd() *cobra.Command {
	var assetID int
	var description string
	var severity string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Report an issue against an asset",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := post("/v1/assets/add-issue", map[string]any{
				"assetId":     assetID,
				"description": description,
				"severity":    severity,
			})
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()
			printJSON(resp)
		},
	}

	cmd.Flags().IntVar(&assetID, "asset", 0, "asset id")
	cmd.Flags().StringVar(&description, "description", "", "issue description")
	cmd.Flags().StringVar(&severity, "severity", "Medium", "Low, Medium, or High")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("description")

	return cmd
}

func completeIssueCmd() *cobra.Command {
	var issueID int

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark an issue completed",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := post("/v1/assets/complete-issue", map[string]any{"issueId": issueID})
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()
			printJSON(resp)
		},
	}

	cmd.Flags().IntVar(&issueID, "id", 0, "issue id")
	cmd.MarkFlagRequired("id")

	return cmd
}
