package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/cli/internal/ui"
	"github.com/satishbabariya/forte-go/query/ast"
	"github.com/satishbabariya/forte-go/query/compiler"
	"github.com/satishbabariya/forte-go/query/validation"
)

var explainCmd = &cobra.Command{
	Use:   "explain <field|all> <query>",
	Short: "Show how a query is compiled",
	Long: `Compile a query without running it and list its clauses: how each
term combines with the working set and which match kind it lowered to.`,
	Args: cobra.ExactArgs(2),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	plan, err := compilePlan(args[0], args[1])
	if err != nil {
		return err
	}

	target := plan.Field.String()
	if plan.AnyField {
		target = "any field"
	}
	ui.PrintSection(fmt.Sprintf("%s on %s", plan.Query, target))

	rows := make([][]string, len(plan.Clauses))
	for i, c := range plan.Clauses {
		operand := c.Source
		if c.Kind == ast.KindRange {
			operand = c.Lower + " .. " + c.Upper
		}
		mode := c.Mode.String()
		if c.Explicit {
			mode += " (explicit)"
		}
		rows[i] = []string{strconv.Itoa(i + 1), mode, c.Kind.String(), operand, fmt.Sprintf("%d-%d", c.Span.Start, c.Span.End)}
	}
	if err := ui.PrintTable([]string{"#", "mode", "kind", "term", "span"}, rows); err != nil {
		return err
	}
	if plan.StartsWithExclusion() {
		ui.PrintInfo("starts from the whole catalog")
	}
	return nil
}

func compilePlan(fieldName, q string) (*compiler.Plan, error) {
	if fieldName == validation.EndpointAll {
		return compiler.CompileAny(q)
	}
	field, ok := catalog.ParseField(fieldName)
	if !ok {
		return nil, fmt.Errorf("unknown field %q", fieldName)
	}
	return compiler.Compile(q, field)
}
