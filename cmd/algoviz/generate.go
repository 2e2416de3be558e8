package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/awmpietro/algoviz/internal/app"
	"github.com/awmpietro/algoviz/internal/transport/gendto"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		sets   []string
		random int
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate <algorithm>",
		Short: "Print the step sequence of an algorithm",
		Example: `  algoviz generate bubble-sort --set array=5|3|8|1
  algoviz generate dijkstra --set start=A,end=H -f yaml
  algoviz generate quick-sort --random 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := params(sets)
			if err != nil {
				return err
			}

			res, err := c.svc.Generate(cmd.Context(), app.GenerateRequest{
				Algorithm: args[0],
				Input:     in,
				Random:    random,
			})
			if err != nil {
				return err
			}

			if format == "text" {
				for i, s := range res.Sequence.Steps {
					fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", i+1, s)
				}
				return nil
			}
			return encode(cmd.OutOrStdout(), format, gendto.FromResult(*res))
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "input parameters as key=value[,key=value]; lists use |")
	cmd.Flags().IntVar(&random, "random", 0, "use this many random values when no array is set")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or text")
	return cmd
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
