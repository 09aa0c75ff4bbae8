package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/cli/internal/config"
	"github.com/satishbabariya/forte-go/cli/internal/ui"
	"github.com/satishbabariya/forte-go/cli/internal/watch"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog-path]",
	Short: "Validate a catalog file",
	Long: `Validate a catalog file (JSON or YAML).

This command will:
- Decode every record and check the number, prime form and vector syntax
- Check that z, complement and inversion references name existing records
- Check that z and complement relations are symmetric
- Summarise the records per cardinality

Without a path the configured catalog (or the embedded one) is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var (
	validateWatch bool
)

func init() {
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "Revalidate whenever the file changes")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := appConfig.Catalog.Path
	if len(args) > 0 {
		path = args[0]
	}

	ui.PrintHeader("forte", "Validate Catalog")

	if !validateWatch {
		return validateFile(path)
	}
	if path == "" {
		return fmt.Errorf("--watch needs a catalog file")
	}

	// report the first result but keep watching even if it failed
	if err := validateFile(path); err != nil {
		reportError(err)
	}

	w, err := watch.NewWatcher([]string{path}, watch.DefaultDebounce, func(string) error {
		ui.PrintSection(fmt.Sprintf("%s changed", path))
		if err := validateFile(path); err != nil {
			reportError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ui.PrintInfo("Watching %s (Ctrl+C to stop)", path)
	return w.Run(ctx)
}

func validateFile(path string) error {
	table, err := catalog.Load(config.AppFs, path)
	if err != nil {
		return err
	}

	name := path
	if name == "" {
		name = "embedded catalog"
	}
	ui.PrintSuccess("%s is valid", name)
	return ui.PrintTable([]string{"cardinality", "records"}, cardinalitySummary(table))
}

// cardinalitySummary counts records per cardinality in ascending order.
func cardinalitySummary(table *catalog.Table) [][]string {
	counts := map[int]int{}
	for i := 0; i < table.Len(); i++ {
		n, err := catalog.ParseNumber(table.At(i).Number)
		if err != nil {
			continue
		}
		counts[n.Cardinality]++
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	rows := make([][]string, 0, len(keys)+1)
	for _, k := range keys {
		rows = append(rows, []string{strconv.Itoa(k), strconv.Itoa(counts[k])})
	}
	rows = append(rows, []string{"total", strconv.Itoa(table.Len())})
	return rows
}
