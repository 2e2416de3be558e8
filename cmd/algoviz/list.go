package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/awmpietro/algoviz/internal/transport/gendto"
)

func newListCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := c.svc.Algorithms()
			if format != "text" {
				return encode(cmd.OutOrStdout(), format, gendto.FromAlgorithms(list))
			}

			tbl := tablewriter.NewWriter(cmd.OutOrStdout())
			tbl.SetHeader([]string{"ID", "Family"})
			tbl.SetBorder(false)
			tbl.SetAutoWrapText(false)
			for _, a := range list {
				tbl.Append([]string{a.ID.String(), string(a.Family)})
			}
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}
