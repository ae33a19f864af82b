package cmd

import (
	"fmt"

	"github.com/KaramelBytes/datavision-cli/internal/samples"
	"github.com/spf13/cobra"
)

var samplesCmd = &cobra.Command{
	Use:   "samples [name]",
	Short: "List the bundled sample datasets or print one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			b, _, err := samples.Open(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(b))
			return nil
		}
		for _, s := range samples.List() {
			fmt.Fprintf(out, "- %s: %s (%s)\n", s.Name, s.Title, s.MIME)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}
