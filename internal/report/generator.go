// Package report renders income categories and notifications for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/income-categories/internal/incomecategory"
	"fjacquet/income-categories/internal/logging"
	"fjacquet/income-categories/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Generator writes categories in the configured output format.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{
		logger: logger.WithField("component", "report"),
	}
}

// WriteCategories renders cats as table, json, yaml or csv.
func (g *Generator) WriteCategories(w io.Writer, cats []models.IncomeCategory, format string) error {
	if cats == nil {
		cats = []models.IncomeCategory{}
	}

	switch format {
	case "table":
		return g.writeTable(w, cats)
	case "json":
		return g.writeJSON(w, cats)
	case "yaml":
		return g.writeYAML(w, cats)
	case "csv":
		if err := gocsv.Marshal(cats, w); err != nil {
			g.logger.WithError(err).Error("Failed to marshal CSV output")
			return fmt.Errorf("failed to marshal CSV output: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteCategory renders a single category.
func (g *Generator) WriteCategory(w io.Writer, cat models.IncomeCategory, format string) error {
	switch format {
	case "json":
		return g.writeJSON(w, cat)
	case "yaml":
		return g.writeYAML(w, cat)
	default:
		return g.WriteCategories(w, []models.IncomeCategory{cat}, format)
	}
}

// WritePageFooter prints the paging position for table output.
func (g *Generator) WritePageFooter(w io.Writer, st incomecategory.State) error {
	footer := fmt.Sprintf("Page %d of %d (%d per page)", st.CurrentPage, st.TotalPages, st.Limit)
	if st.QName != "" {
		footer += fmt.Sprintf(", filtered by %q", st.QName)
	}
	_, err := fmt.Fprintln(w, SubtleStyle.Render(footer))
	return err
}

func (g *Generator) writeTable(w io.Writer, cats []models.IncomeCategory) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range cats {
		fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

func (g *Generator) writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON output")
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	return nil
}

func (g *Generator) writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML output")
		return fmt.Errorf("failed to marshal YAML output: %w", err)
	}
	return enc.Close()
}
