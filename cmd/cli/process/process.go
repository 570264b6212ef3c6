package process

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dogoods/donation-scheduler/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitProcess registers the process command group.
func InitProcess(rootCmd *cobra.Command) {
	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Trigger schedule processing",
	}

	processCmd.AddCommand(runCmd())

	rootCmd.AddCommand(processCmd)
}

func runCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one processing pass now",
		Run: func(cmd *cobra.Command, args []string) {
			req, _ := http.NewRequest("POST", config.APIURL()+"/process", nil)
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
				Success   bool   `json:"success"`
				Processed int    `json:"processed"`
				Error     string `json:"error"`
				Results   struct {
					RemindersCreated   int      `json:"remindersCreated"`
					DonationsProcessed int      `json:"donationsProcessed"`
					Errors             []string `json:"errors"`
				} `json:"results"`
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

			if !out.Success {
				fmt.Println("run failed:", out.Error)
				return
			}
			fmt.Printf("processed %d schedule(s): %d reminder(s), %d donation(s)\n",
				out.Processed, out.Results.RemindersCreated, out.Results.DonationsProcessed)
			for _, e := range out.Results.Errors {
				fmt.Println("  error:", e)
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a summary line")

	return cmd
}
