package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/runtime/export"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/store/controls"
	"github.com/spf13/cobra"
)

func NewFrameworkCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "framework",
		Short: "List domains, dimensions and maturity levels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			refs := benchmark.NewSource(benchmark.Config{}, nil).References(cmd.Context())
			fw := adapters.MapFrameworkDomainToApi(refs)
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				return export.WriteJSON(out, fw)
			case "yaml":
				return export.WriteYAML(out, fw)
			case "table":
			default:
				return fmt.Errorf("unsupported format %q", format)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DOMAIN\tNAME")
			for _, d := range fw.Domains {
				fmt.Fprintf(tw, "%s\t%s\n", d.ID, d.Name)
			}
			fmt.Fprintln(tw, "\nDIMENSION\tNAME")
			for _, d := range fw.Dimensions {
				fmt.Fprintf(tw, "%s\t%s\n", d.ID, d.Name)
			}
			fmt.Fprintln(tw, "\nLEVEL\tFROM")
			for _, b := range fw.Bands {
				fmt.Fprintf(tw, "%s\t%.1f\n", b.Name, b.Min)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return cmd
}

func NewControlsCmd() *cobra.Command {
	var (
		path   string
		filter string
		format string
	)
	cmd := &cobra.Command{
		Use:   "controls",
		Short: "Validate and list a control matrix CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			matrix, err := controls.Load(path)
			if err != nil {
				return err
			}

			list := matrix.All()
			if filter != "" {
				d, err := domain.ParseDomain(filter)
				if err != nil {
					return err
				}
				list = matrix.ForDomain(d)
			}
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				return export.WriteJSON(out, adapters.MapControlsDomainToApi(list))
			case "yaml":
				return export.WriteYAML(out, adapters.MapControlsDomainToApi(list))
			case "table":
			default:
				return fmt.Errorf("unsupported format %q", format)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDOMAIN\tDIMENSION\tLEVEL\tTITLE")
			for _, c := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Domain, c.Dimension, c.Level, c.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "Path to the control matrix CSV")
	cmd.Flags().StringVar(&filter, "domain", "", "Only list controls of this domain")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
