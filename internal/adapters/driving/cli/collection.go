package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage the document collection",
	Long: `Add files to the collection and inspect the items the OCR workflow
operates on.`,
}

var collectionAddCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Add files to the collection",
	Long: `Walks each path and stores one item per regular file with its MD5,
size and MIME type. A sidecar file named <file>.txt is read as the item's
extracted text. Items are marked encrypted with --encrypted or
--property Encrypted=true.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollectionAdd,
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items in the collection",
	RunE:  runCollectionList,
}

var collectionShowCmd = &cobra.Command{
	Use:   "show <guid>",
	Short: "Show a single item",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionShow,
}

var collectionExcludeCmd = &cobra.Command{
	Use:   "exclude <guid>...",
	Short: "Exclude items from the workflow",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCollectionExclude,
}

var collectionIncludeCmd = &cobra.Command{
	Use:   "include <guid>...",
	Short: "Include previously excluded items",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCollectionInclude,
}

func init() {
	collectionAddCmd.Flags().StringArray("property", nil, "metadata property key=value attached to every added item")
	collectionAddCmd.Flags().Int("workers", 0, "parallel hashing workers (0 = number of CPUs)")
	collectionAddCmd.Flags().Bool("encrypted", false, "mark every added item as encrypted")

	collectionListCmd.Flags().String("tag", "", "only items carrying this tag")
	collectionListCmd.Flags().StringSlice("mime", nil, "only items of these MIME types")
	collectionListCmd.Flags().Bool("include-excluded", false, "include excluded items")

	collectionCmd.AddCommand(collectionAddCmd)
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionShowCmd)
	collectionCmd.AddCommand(collectionExcludeCmd)
	collectionCmd.AddCommand(collectionIncludeCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runCollectionAdd(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	rawProps, err := cmd.Flags().GetStringArray("property")
	if err != nil {
		return fmt.Errorf("getting property flag: %w", err)
	}
	props, err := parseProperties(rawProps)
	if err != nil {
		return err
	}
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return fmt.Errorf("getting workers flag: %w", err)
	}

	encrypted, err := cmd.Flags().GetBool("encrypted")
	if err != nil {
		return fmt.Errorf("getting encrypted flag: %w", err)
	}

	result, err := collectionService.Add(cmd.Context(), args, driving.AddOptions{
		Properties: props,
		Workers:    workers,
		Encrypted:  encrypted,
	})
	if err != nil {
		return fmt.Errorf("adding files: %w", err)
	}

	cmd.Printf("Added %d items.\n", len(result.Items))
	if len(result.Failed) > 0 {
		paths := make([]string, 0, len(result.Failed))
		for path := range result.Failed {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		cmd.Printf("Failed to add %d files:\n", len(paths))
		for _, path := range paths {
			cmd.Printf("  %s: %s\n", path, result.Failed[path])
		}
	}
	return nil
}

// parseProperties parses key=value pairs.
func parseProperties(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	props := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: property must be key=value, got %q", domain.ErrInvalidInput, kv)
		}
		props[key] = value
	}
	return props, nil
}

func runCollectionList(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	tag, _ := cmd.Flags().GetString("tag")
	mimes, _ := cmd.Flags().GetStringSlice("mime")
	includeExcluded, _ := cmd.Flags().GetBool("include-excluded")

	query := domain.ItemQuery{Tag: tag, MimeTypes: mimes}
	if !includeExcluded {
		query = query.ExcludingExcluded()
	}

	items, err := collectionService.List(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}
	if len(items) == 0 {
		cmd.Println("No items found.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.GUID,
			item.Name,
			item.MimeType,
			strconv.FormatInt(item.Size, 10),
			strconv.Itoa(item.PageCount()),
			yesNo(item.HasText()),
			strings.Join(item.Tags, ", "),
		})
	}
	cmd.Println(renderTable(
		[]string{"GUID", "Name", "MIME Type", "Size", "Pages", "Text", "Tags"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
	cmd.Printf("%d items\n", len(items))
	return nil
}

func runCollectionShow(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	item, err := collectionService.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("item %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("getting item: %w", err)
	}

	cmd.Printf("GUID:      %s\n", item.GUID)
	cmd.Printf("Name:      %s\n", item.Name)
	cmd.Printf("MIME Type: %s\n", item.MimeType)
	cmd.Printf("MD5:       %s\n", valueOrNone(item.Digest))
	cmd.Printf("Size:      %d\n", item.Size)
	cmd.Printf("Pages:     %d\n", item.PageCount())
	cmd.Printf("Encrypted: %s\n", yesNo(item.Encrypted))
	cmd.Printf("Excluded:  %s\n", yesNo(item.Excluded))
	cmd.Printf("Position:  %s\n", formatPosition(item.Position))
	cmd.Printf("Native:    %s\n", valueOrNone(item.NativePath))
	if item.PrintedPath != "" {
		cmd.Printf("Printed:   %s\n", item.PrintedPath)
	}
	if len(item.Tags) > 0 {
		cmd.Println("Tags:")
		for _, tag := range item.Tags {
			cmd.Printf("  %s\n", tag)
		}
	}
	if len(item.Properties) > 0 {
		keys := make([]string, 0, len(item.Properties))
		for k := range item.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		cmd.Println("Properties:")
		for _, k := range keys {
			cmd.Printf("  %s: %s\n", k, item.Properties[k])
		}
	}
	if item.HasText() {
		cmd.Printf("Text:      %d characters\n", len([]rune(item.Text)))
	}
	return nil
}

func runCollectionExclude(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}
	n, err := collectionService.Exclude(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("excluding items: %w", err)
	}
	cmd.Printf("Excluded %d items.\n", n)
	return nil
}

func runCollectionInclude(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}
	n, err := collectionService.Include(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("including items: %w", err)
	}
	cmd.Printf("Included %d items.\n", n)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func formatPosition(pos []int) string {
	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "-")
}
