package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classdraw/pkg/model"
	"classdraw/pkg/uml"
)

// newValidateCmd creates the validate command: parse a document and
// print its validation report. Structural errors make the command fail.
func newValidateCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.uml>",
		Short: "Validate a class diagram document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				return err
			}
			d = cfg.applyStyle(d)

			report := model.Validate(d)
			for _, issue := range report.Errors {
				printError("%s", formatIssue(issue))
			}
			for _, issue := range report.Warnings {
				printWarning("%s", formatIssue(issue))
			}

			if !report.Exportable() {
				return fmt.Errorf("%d errors, %d warnings", len(report.Errors), len(report.Warnings))
			}
			printSuccess("%s is valid", args[0])
			printStats(len(d.Classes), connectionCount(d), false)
			return nil
		},
	}
}

// loadDiagram reads and parses a UML document from disk.
func loadDiagram(path string) (model.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Diagram{}, err
	}
	return uml.Parse(string(data))
}

func formatIssue(issue model.Issue) string {
	if issue.Field != "" {
		return fmt.Sprintf("%s: %s", issue.Field, issue.Message)
	}
	return issue.Message
}

func connectionCount(d model.Diagram) int {
	n := 0
	for _, c := range d.Classes {
		n += len(c.Connections)
	}
	return n
}
