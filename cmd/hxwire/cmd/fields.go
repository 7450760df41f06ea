package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/solatis/hxwire/internal/headers"
	"github.com/solatis/hxwire/internal/types"
	"github.com/spf13/cobra"
)

type fieldTable struct {
	label  string
	descs  []headers.Descriptor
	lookup func(string) (headers.Descriptor, bool)
}

func newFieldsCmd(a *app) *cobra.Command {
	var direction string

	fieldsCmd := &cobra.Command{
		Use:   "fields [header...]",
		Short: "List the htmx headers known to the registry",
		Long: `Lists the registry tables. With header names as arguments only those
headers are shown; an unknown name is an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tables []fieldTable
			if direction == "" || direction == "request" {
				tables = append(tables, fieldTable{"request", headers.RequestFields(), headers.LookupRequestField})
			}
			if direction == "" || direction == "response" {
				tables = append(tables, fieldTable{"response", headers.ResponseFields(), headers.LookupResponseField})
			}
			if len(tables) == 0 {
				return fmt.Errorf("--direction must be request or response, got %q", direction)
			}

			if len(args) > 0 {
				for i, t := range tables {
					tables[i].descs = nil
					for _, name := range args {
						if d, ok := t.lookup(name); ok {
							tables[i].descs = append(tables[i].descs, d)
						}
					}
				}
				for _, name := range args {
					if !known(tables, name) {
						return fmt.Errorf("unknown header %q", name)
					}
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TABLE\tHEADER\tDIRECTION\tSHAPE\tVALUES")
			for _, t := range tables {
				for _, d := range t.descs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.label, displayName(d.Name), d.Direction, d.Shape, values(d))
				}
			}
			a.logger.Trace().Int("tables", len(tables)).Strs("headers", args).Msg("registry listed")
			return tw.Flush()
		},
	}

	fieldsCmd.Flags().StringVar(&direction, "direction", "", "only list one table (request, response)")
	return fieldsCmd
}

func known(tables []fieldTable, name string) bool {
	for _, t := range tables {
		for _, d := range t.descs {
			if strings.EqualFold(d.Name, name) {
				return true
			}
		}
	}
	return false
}

// values describes the accepted wire values of d.
func values(d headers.Descriptor) string {
	switch d.Shape {
	case types.ShapeFlag:
		return "true"
	case types.ShapeToken:
		// hx-reswap is the only token header.
		swaps := headers.SwapVariants()
		names := make([]string, len(swaps))
		for i, s := range swaps {
			names[i] = s.String()
		}
		return strings.Join(names, "|")
	}
	return "-"
}
