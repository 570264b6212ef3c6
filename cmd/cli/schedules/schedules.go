package schedules

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dogoods/donation-scheduler/cmd/cli/config"
	"github.com/dogoods/donation-scheduler/cmd/cli/output"
	"github.com/dogoods/donation-scheduler/internal/models"
	"github.com/spf13/cobra"
)

// InitSchedules registers the schedules command group.
func InitSchedules(rootCmd *cobra.Command) {
	schedulesCmd := &cobra.Command{
		Use:   "schedules",
		Short: "Inspect active donation schedules",
	}

	schedulesCmd.AddCommand(listSchedulesCmd())

	rootCmd.AddCommand(schedulesCmd)
}

func listSchedulesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active schedules",
		Run: func(cmd *cobra.Command, args []string) {
			req, _ := http.NewRequest("GET", config.APIURL()+"/schedules", nil)
			if key := config.ServiceKey(); key != "" {
				req.Header.Set("api-key", key)
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var out struct {
				Items []models.Schedule `json:"items"`
				Total int               `json:"total"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				fmt.Println("decode response:", err)
				return
			}

			if asJSON {
				b, _ := json.MarshalIndent(out, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(out.Items))
			for _, s := range out.Items {
				rows = append(rows, []interface{}{
					s.ID,
					s.Amount.StringFixed(2),
					s.Frequency,
					s.NextDonationDate.Format("2006-01-02"),
					s.ReminderEnabled,
					s.DonationCount,
				})
			}
			output.RenderTable(
				[]string{"ID", "AMOUNT", "FREQUENCY", "NEXT DATE", "REMINDER", "COUNT"},
				rows,
			)
			fmt.Printf("%d active schedule(s)\n", out.Total)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")

	return cmd
}
