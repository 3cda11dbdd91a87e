package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chartlight/chartlight/pkg/highlight"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <span>",
	Short: "Locate an evidence span in note text read from stdin",
	Long: `Reads note text from stdin and prints it with the given evidence
span marked, using the same matching the review transcript uses: whitespace
runs are collapsed and the search is case-insensitive, but the original
spacing and case are preserved in the output. A span that cannot be located
is appended in a clearly labeled block instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read note text: %w", err)
		}

		marked := highlight.Apply(string(text), args[0])
		cmd.Println(highlight.Render(marked))
		return nil
	},
}
