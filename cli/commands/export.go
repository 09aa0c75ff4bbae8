package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/catalog/sqlstore"
	"github.com/satishbabariya/forte-go/cli/internal/config"
	"github.com/satishbabariya/forte-go/cli/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog into a SQL database",
	Long: `Write the catalog into a SQL database so "serve" can read it with
catalog.driver and catalog.dsn.

Supported drivers: postgres, mysql, sqlite3. Existing rows are replaced.

  forte export --driver sqlite3 --dsn ./catalog.db
  forte export --from data.yaml --driver postgres --dsn "$DATABASE_URL"`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFrom   string
	exportDriver string
	exportDSN    string
)

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Catalog file to export (default: configured or embedded catalog)")
	exportCmd.Flags().StringVar(&exportDriver, "driver", "sqlite3", "Target database driver")
	exportCmd.Flags().StringVar(&exportDSN, "dsn", "", "Target data source name")
	_ = exportCmd.MarkFlagRequired("dsn")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	from := exportFrom
	if from == "" {
		from = appConfig.Catalog.Path
	}
	table, err := catalog.Load(config.AppFs, from)
	if err != nil {
		return err
	}

	store, err := sqlstore.Open(exportDriver, exportDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	spinner, err := ui.PrintSpinner(fmt.Sprintf("Writing %d records", table.Len()))
	if err != nil {
		return err
	}
	if err := store.Save(cmd.Context(), table); err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("Exported %d records to %s", table.Len(), exportDriver))
	return nil
}
