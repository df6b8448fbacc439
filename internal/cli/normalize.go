// internal/cli/normalize.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/phonecrawl/internal/phone"
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize <raw>...",
	Short: "Normalize phone-like text to digits",
	Long: `Strips everything but digits. Eight-digit numbers get the 495 area code inserted
after the leading digit. Inputs without digits print "-".`,
	Example: `  phonecrawl normalize "8 (495) 123-45-67" "8 123-45-67"`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, raw := range args {
			digits, ok := phone.Normalize(raw)
			if !ok {
				digits = "-"
			}
			fmt.Fprintln(cmd.OutOrStdout(), digits)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
