package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chartlight/chartlight/pkg/client"
	"github.com/chartlight/chartlight/pkg/config"
	"github.com/chartlight/chartlight/pkg/results"
)

var resultsCmd = &cobra.Command{
	Use:   "results <workflow-id>",
	Short: "Fetch and display a workflow's flag results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Get()
		c := client.NewClientWithTimeout(settings.Backend.URL, settings.Backend.Timeout)

		rows, err := c.FetchResults(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch results: %w", err)
		}

		printResults(cmd, rows)
		return nil
	},
}

func printResults(cmd *cobra.Command, rows []results.Row) {
	if len(rows) == 0 {
		cmd.Println("no results")
		return
	}

	names := results.FlagNames(rows)
	cmd.Println("mrn\tcsn\t" + strings.Join(names, "\t"))
	for _, row := range rows {
		cells := []string{row.MRN, row.CSN}
		for _, name := range names {
			flag := row.Flags[name]
			if flag.State {
				cells = append(cells, fmt.Sprintf("yes (%d)", len(flag.Sources)))
			} else {
				cells = append(cells, "no")
			}
		}
		cmd.Println(strings.Join(cells, "\t"))
	}
}
