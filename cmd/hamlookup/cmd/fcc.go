package cmd

import (
	"fmt"
	"os"

	"hamlookup/lib/fcc"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fccCmd)
}

var fccCmd = &cobra.Command{
	Use:   "fcc <search value>",
	Short: "Looks up a single license in the FCC database and prints the general record plus the scraped ULS detail page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		client := fcc.NewClient(fcc.ClientOptions{SearchURL: config.Fcc.SearchURL})

		fmt.Println("Retrieving general record from the FCC database...")
		lic, err := client.Search(ctx, args[0])
		if err != nil {
			fail(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"Name", lic.Name},
			{"FRN", lic.FRN},
			{"Callsign", lic.Callsign},
			{"Category", lic.Category},
			{"Service", lic.Service},
			{"Status", lic.Status},
			{"Expiration Date", lic.Expires},
			{"License ID", lic.LicenseID},
		})

		if lic.DetailURL == "" {
			t.Render()
			fmt.Println("Detailed license page not available.")
			return
		}

		fmt.Println("Retrieving detail page from the ULS database...")
		detail, err := client.Detail(ctx, lic.DetailURL)
		if err != nil {
			fail(err)
		}

		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"Address", detail.Address},
			{"City", detail.City},
			{"State", detail.State},
			{"ZIP", detail.Zip},
			{"Attention", detail.Attn},
			{"Type", detail.Type},
			{"Class", detail.Class},
			{"Phone", detail.Phone},
			{"Fax", detail.Fax},
			{"Email", detail.Email},
		})
		t.Render()
	},
}
