package assets

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fleetops/fleet-asset/cmd/cli/output"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <asset-id>",
		Short: "Show an asset's audit trail, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("asset id must be a number")
				return
			}

			resp, err := post("/v1/assets/fetch-history", map[string]any{"assetId": id})
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				printJSON(resp)
				return
			}

			var entries []struct {
				ID        int     `json:"id"`
				BatchID   string  `json:"batch_id"`
				FieldName string  `json:"field_name"`
				OldValue  *string `json:"old_value"`
				NewValue  *string `json:"new_value"`
				ChangedBy string  `json:"changed_by"`
				ChangedAt string  `json:"changed_at"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
				fmt.Println(err)
				return
			}

			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				oldV, newV := "(null)", "(null)"
				if e.OldValue != nil {
					oldV = *e.OldValue
				}
				if e.NewValue != nil {
					newV = *e.NewValue
				}
				rows = append(rows, []interface{}{
					e.ID, e.ChangedAt, e.FieldName, oldV, newV, e.ChangedBy,
				})
			}
			output.RenderTable(
				[]string{"ID", "Changed At", "Field", "Old", "New", "By"},
				rows,
			)
		},
	}
}
