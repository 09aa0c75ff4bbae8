package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/cli/internal/ui"
	"github.com/satishbabariya/forte-go/query"
	"github.com/satishbabariya/forte-go/query/columns"
	"github.com/satishbabariya/forte-go/query/validation"
)

var queryCmd = &cobra.Command{
	Use:   "query [field|all] [query]",
	Short: "Search the catalog",
	Long: `Search the catalog from the command line.

  forte query number "^3-,!3-1"        search one field
  forte query all "6-z50,[0,1,4]"       try every field
  forte query -w number=^6 -w vec=@3   intersect several fields
  forte query                          list the whole catalog
  forte query -i                       interactive prompt`,
	Args: cobra.MaximumNArgs(2),
	RunE: runQuery,
}

var (
	queryProps       string
	queryWhere       []string
	queryJSON        bool
	queryInteractive bool
)

func init() {
	queryCmd.Flags().StringVarP(&queryProps, "props", "p", "", "Comma-separated fields to output")
	queryCmd.Flags().StringArrayVarP(&queryWhere, "where", "w", nil, "field=query pair; repeat to intersect fields")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print JSON instead of a table")
	queryCmd.Flags().BoolVarP(&queryInteractive, "interactive", "i", false, "Prompt for queries until an empty one is entered")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	engine, err := newEngine(ctx, appConfig)
	if err != nil {
		return err
	}

	if queryInteractive {
		return interactiveQuery(ctx, engine)
	}

	var rows []columns.Row
	switch {
	case len(queryWhere) > 0:
		if len(args) > 0 {
			return errors.New("--where cannot be combined with positional arguments")
		}
		pairs, perr := parseWhere(queryWhere)
		if perr != nil {
			return perr
		}
		rows, err = engine.SearchMulti(ctx, pairs, queryProps)
	case len(args) == 0:
		rows, err = engine.Dataset(ctx, queryProps)
	case len(args) == 1:
		return fmt.Errorf("missing query for field %q", args[0])
	default:
		rows, err = search(ctx, engine, args[0], args[1], queryProps)
	}
	if err != nil {
		return err
	}
	return printRows(rows)
}

func search(ctx context.Context, engine *query.Engine, field, q, props string) ([]columns.Row, error) {
	if field == validation.EndpointAll {
		return engine.SearchAll(ctx, q, props)
	}
	return engine.Search(ctx, query.Request{Field: field, Query: q, Props: props})
}

// parseWhere splits field=query pairs. The query may itself contain '='.
func parseWhere(pairs []string) ([]query.FieldQuery, error) {
	out := make([]query.FieldQuery, 0, len(pairs))
	for _, p := range pairs {
		field, q, ok := strings.Cut(p, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --where %q: expected field=query", p)
		}
		out = append(out, query.FieldQuery{Field: field, Query: q})
	}
	return out, nil
}

func printRows(rows []columns.Row) error {
	if queryJSON {
		enc := json.NewEncoder(ui.Out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	sel := columns.All()
	if len(rows) > 0 {
		sel = columns.NewSelection(rows[0].Fields...)
	} else if queryProps != "" {
		parsed, err := columns.ParseSelection(queryProps)
		if err != nil {
			return err
		}
		sel = parsed
	}
	records := make([]*catalog.Record, len(rows))
	for i, r := range rows {
		records[i] = r.Record
	}
	return ui.PrintRecords(records, sel)
}

func interactiveQuery(ctx context.Context, engine *query.Engine) error {
	ui.PrintHeader("forte", "Interactive query")

	options := append(catalog.FieldNames(), validation.EndpointAll)
	for {
		var field string
		if err := survey.AskOne(&survey.Select{
			Message: "Field:",
			Options: options,
			Default: catalog.FieldNumber.String(),
		}, &field); err != nil {
			return promptError(err)
		}

		var q string
		if err := survey.AskOne(&survey.Input{
			Message: "Query (empty to quit):",
		}, &q); err != nil {
			return promptError(err)
		}
		if strings.TrimSpace(q) == "" {
			return nil
		}

		rows, err := search(ctx, engine, field, q, queryProps)
		if err != nil {
			reportError(err)
			continue
		}
		if err := printRows(rows); err != nil {
			return err
		}
	}
}

func promptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return nil
	}
	return err
}
