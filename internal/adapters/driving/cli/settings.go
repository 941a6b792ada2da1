package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// secretKeys are never echoed and are prompted for without echo.
var secretKeys = map[string]bool{
	"minio.secret_key": true,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the OCR workflow settings.

Settings are stored in ~/.sercha-ocr/config.toml. Use 'settings keys' to list
every recognised key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by key, for example:

  sercha-ocr settings set ocr.batch_size 500
  sercha-ocr settings set ocr.tag_mode remove
  sercha-ocr settings set classify.images_over_500kb false

Secret values are read from the terminal without echo when omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised setting keys",
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[OCR]")
	cmd.Printf("  Batch Size: %d\n", settings.OCR.BatchSize)
	cmd.Printf("  Rollover Size: %d\n", settings.OCR.RolloverSize)
	cmd.Printf("  Tag Mode: %s\n", settings.OCR.TagMode)
	cmd.Printf("  Append OCR Text: %s\n", yesNo(settings.OCR.AppendOCRText))
	cmd.Printf("  Handle Excluded Items: %s\n", yesNo(settings.OCR.HandleExcludedItems))
	cmd.Printf("  Text Encoding: %s\n", settings.OCR.TextEncoding)
	cmd.Println()

	cmd.Println("[Classification Rules]")
	for _, kind := range domain.AllRuleKinds() {
		cmd.Printf("  %s: %s\n", kind, yesNo(settings.OCR.Rules.Enabled(kind)))
	}
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Target: %s\n", settings.Export.Target.Description())
	if settings.Export.Target == domain.ExportTargetMinio {
		m := settings.Export.Minio
		cmd.Printf("  Endpoint: %s\n", valueOrNone(m.Endpoint))
		cmd.Printf("  Bucket: %s\n", valueOrNone(m.Bucket))
		cmd.Printf("  Prefix: %s\n", valueOrNone(m.Prefix))
		cmd.Printf("  Access Key: %s\n", valueOrNone(m.AccessKey))
		if m.SecretKey != "" {
			cmd.Printf("  Secret Key: %s\n", maskAPIKey(m.SecretKey))
		} else {
			cmd.Printf("  Secret Key: (not set)\n")
		}
		cmd.Printf("  Use SSL: %s\n", yesNo(m.UseSSL))
	}
	cmd.Println()

	cmd.Println("[Tagging]")
	if settings.Tagging.MaxFlushesPerSecond > 0 {
		cmd.Printf("  Max Flushes Per Second: %g\n", settings.Tagging.MaxFlushesPerSecond)
	} else {
		cmd.Printf("  Max Flushes Per Second: unlimited\n")
	}
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Format: %s\n", settings.Log.Format)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'sercha-ocr settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := strings.ToLower(strings.TrimSpace(args[0]))
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case secretKeys[key]:
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword()
		cmd.Println()
	default:
		return fmt.Errorf("%w: missing value for %s", domain.ErrInvalidInput, key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if secretKeys[key] {
		cmd.Printf("Set %s to %s\n", key, maskAPIKey(value))
	} else {
		cmd.Printf("Set %s to %s\n", key, value)
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
