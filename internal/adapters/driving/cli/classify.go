package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify MESSAGE...",
	Short: "Classify compiler error messages",
	Long: `Matches each message against the javac catalog and prints how it matched,
its category and the signature it is stored under.

Messages may contain "\n" escapes for multi-line diagnostics.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	d, err := dependencies()
	if err != nil {
		return err
	}

	for i, message := range args {
		if i > 0 {
			cmd.Println()
		}
		c := d.Classifier.Classify(strings.ReplaceAll(message, `\n`, "\n"))

		id := c.CanonicalID
		if id == "" {
			id = "-"
		}
		cmd.Printf("Message:   %s\n", firstLine(message))
		cmd.Printf("Match:     %s\n", c.Kind)
		cmd.Printf("Category:  %s\n", id)
		cmd.Printf("Signature: %s\n", firstLine(c.SanitizedText))
	}
	return nil
}

func firstLine(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
