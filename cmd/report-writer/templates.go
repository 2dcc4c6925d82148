// cmd/report-writer/templates.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"report-writer/internal/models"
	"report-writer/internal/report/form"
	"report-writer/internal/report/prompt"
	"report-writer/internal/report/schema"
)

func newTemplatesCmd() *cobra.Command {
	var showFields string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List certificate templates, or the fields of one with --fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showFields == "" {
				return printTemplates(out)
			}
			id, err := models.ParseTemplateID(showFields)
			if err != nil {
				return err
			}
			return printFields(out, schema.MustFor(id))
		},
	}
	cmd.Flags().StringVar(&showFields, "fields", "", "Template id whose fields to list")
	return cmd
}

func printTemplates(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, t := range models.Templates() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.DisplayName, t.Description)
	}
	return w.Flush()
}

func printFields(out io.Writer, sch *schema.Schema) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tKIND\tREQUIRED\tOPTIONS")
	for _, f := range form.New(sch, nil).Fields() {
		values := make([]string, 0, len(f.Options))
		for _, o := range f.Options {
			values = append(values, o.Value)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", f.Name, f.Label, f.Kind, f.Required, strings.Join(values, ", "))
	}
	return w.Flush()
}

// fieldInput is the form data a shell command works on.
type fieldInput struct {
	template string
	file     string
	set      map[string]string
	notes    string
}

func (in *fieldInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.template, "template", "t", "", "Template id (eicr, minor-works, periodic-inspection, ev-charger, consumer-unit, rcd-test)")
	cmd.Flags().StringVarP(&in.file, "fields", "f", "", `JSON file of field values, "-" for stdin`)
	cmd.Flags().StringToStringVar(&in.set, "set", nil, "Field value as name=value, repeatable; overrides --fields")
	cmd.Flags().StringVarP(&in.notes, "notes", "n", "", "Additional notes")
	_ = cmd.MarkFlagRequired("template")
}

// values merges the --fields file with --set overrides.
func (in *fieldInput) values(stdin io.Reader) (map[string]string, error) {
	values := map[string]string{}
	if in.file != "" {
		var r io.Reader = stdin
		if in.file != "-" {
			f, err := os.Open(in.file)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&values); err != nil {
			return nil, fmt.Errorf("decode fields %s: %w", in.file, err)
		}
	}
	for k, v := range in.set {
		values[k] = v
	}
	return values, nil
}

func newPromptCmd() *cobra.Command {
	in := &fieldInput{}
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the generation prompt for a template and its field values",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseTemplateID(in.template)
			if err != nil {
				return err
			}
			values, err := in.values(cmd.InOrStdin())
			if err != nil {
				return err
			}
			f := form.New(schema.MustFor(id), nil)
			if err := f.SetMany(values); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt.Assemble(f.FieldSet(), in.notes))
			return err
		},
	}
	in.register(cmd)
	return cmd
}
