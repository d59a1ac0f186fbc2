package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classdraw/pkg/uml"
)

// newFmtCmd creates the fmt command: parse a document and re-serialize
// it in canonical form, to stdout or in place with -w.
func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file.uml>",
		Short: "Rewrite a document in canonical notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				return err
			}
			canonical := uml.Encode(d)

			if !write {
				fmt.Print(canonical)
				return nil
			}
			if err := os.WriteFile(args[0], []byte(canonical), 0o644); err != nil {
				return err
			}
			printSuccess("Formatted %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}
