package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/fleetops/fleet-asset/cmd/cli/cliconfig"
	"github.com/fleetops/fleet-asset/cmd/cli/output"
)

// InitAssets registers the assets command group on the root command.
func InitAssets(rootCmd *cobra.Command) {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage fleet assets",
	}

	assetsCmd.AddCommand(
		listAssetsCmd(),
		getAssetCmd(),
		updateAssetCmd(),
		deleteAssetCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(historyCmd())
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

func listAssetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List assets with aggregates",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := post("/v1/assets/fetch-all", map[string]any{})
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				printJSON(resp)
				return
			}

			var summaries []struct {
				ID               int     `json:"id"`
				Code             string  `json:"code"`
				Plant            string  `json:"plant"`
				AssignedOperator *string `json:"assigned_operator"`
				Status           string  `json:"status"`
				LatestHistory    *string `json:"latestHistoryDate"`
				OpenIssuesCount  int     `json:"openIssuesCount"`
				CommentsCount    int     `json:"commentsCount"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
				fmt.Println(err)
				return
			}

			rows := make([][]interface{}, 0, len(summaries))
			for _, s := range summaries {
				operator := ""
				if s.AssignedOperator != nil {
					operator = *s.AssignedOperator
				}
				latest := ""
				if s.LatestHistory != nil {
					latest = *s.LatestHistory
				}
				rows = append(rows, []interface{}{
					s.ID, s.Code, s.Plant, operator, s.Status, latest, s.OpenIssuesCount, s.CommentsCount,
				})
			}
			output.RenderTable(
				[]string{"ID", "Code", "Plant", "Operator", "Status", "Last Change", "Open Issues", "Comments"},
				rows,
			)
		},
	}
}

func getAssetCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch one asset by id",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := post("/v1/assets/fetch-by-id", map[string]any{"id": id})
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()
			printJSON(resp)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "asset id")
	cmd.MarkFlagRequired("id")

	return cmd
}

func updateAssetCmd() *cobra.Command {
	var id int
	var userID string
	var status string
	var operator string
	var clearOperator bool
	var plant string
	var notes string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply a partial update to an asset",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"id":     id,
				"userId": userID,
			}
			if cmd.Flags().Changed("status") {
				payload["status"] = status
			}
			if clearOperator {
				payload["assignedOperator"] = nil
			} else if cmd.Flags().Changed("operator") {
				payload["assignedOperator"] = operator
			}
			if cmd.Flags().Changed("plant") {
				payload["plant"] = plant
			}
			if cmd.Flags().Changed("notes") {
				payload["notes"] = notes
			}

			resp, err := post("/v1/assets/update", payload)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()
			printJSON(resp)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "asset id")
	cmd.Flags().StringVar(&userID, "user", "", "acting user id")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&operator, "operator", "", "assigned operator")
	cmd.Flags().BoolVar(&clearOperator, "clear-operator", false, "clear the assigned operator")
	cmd.Flags().StringVar(&plant, "plant", "", "plant")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("user")

	return cmd
}

func deleteAssetCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an asset and its audit trail",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := post("/v1/assets/delete", map[string]any{"id": id})
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()
			printJSON(resp)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "asset id")
	cmd.MarkFlagRequired("id")

	return cmd
}
