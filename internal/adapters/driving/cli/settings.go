package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the corpus location, collection and classifier options.

Every setting can be overridden by an environment variable named after its
key, e.g. ERRCORPUS_COLLECT_JOBS for collect.jobs.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Prompt for every setting in turn. An empty answer keeps the current value.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	_, settings, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Root: %s\n", settings.Corpus.Root)
	cmd.Println()

	cmd.Println("[Collect]")
	if settings.Collect.Jobs == 0 {
		cmd.Printf("  Jobs: one per CPU\n")
	} else {
		cmd.Printf("  Jobs: %d\n", settings.Collect.Jobs)
	}
	cmd.Printf("  Output directory: %s\n", settings.Collect.OutputDir)
	cmd.Println()

	cmd.Println("[Combine]")
	cmd.Printf("  Output: %s\n", settings.Combine.Output)
	cmd.Println()

	cmd.Println("[Classify]")
	cmd.Printf("  Cache size: %d\n", settings.Classify.CacheSize)
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Settle delay: %s\n", settings.Watch.Settle)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	d, err := dependencies()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := d.Settings.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	d, settings, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Println("errcorpus Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	current := currentValues(settings)

	for _, key := range d.Settings.Keys() {
		cmd.Printf("%s (%s) [%s]: ", key, services.EnvVar(key), current[key])
		input := readLine(reader)
		if input == "" || input == current[key] {
			continue
		}
		if err := d.Settings.Set(key, input); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	cmd.Println()
	cmd.Println("Configuration Complete!")
	return nil
}

// currentValues renders settings keyed by setting name.
func currentValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"corpus.root":         s.Corpus.Root,
		"collect.jobs":        fmt.Sprint(s.Collect.Jobs),
		"collect.output_dir":  s.Collect.OutputDir,
		"combine.output":      s.Combine.Output,
		"classify.cache_size": fmt.Sprint(s.Classify.CacheSize),
		"watch.settle_ms":     fmt.Sprint(s.Watch.Settle.Milliseconds()),
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
