package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/petricontrols/bootstrap/application/config"
	"github.com/petricontrols/bootstrap/application/validation"
	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/petricontrols/bootstrap/infrastructure/htmldoc"
	"github.com/spf13/cobra"
)

func newScanCmd(g *globalFlags) *cobra.Command {
	var (
		pagePath    string
		markerClass string
		dataKey     string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the mount points of a page without loading a module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load([]entities.ConfigOption{
				entities.WithMarkerClass(markerClass),
				func(c *entities.Config) {
					if dataKey != "" {
						c.Marker.DataKey = dataKey
					}
				},
			}, config.WithValidator(func(c *entities.Config) error {
				return validation.ValidateMarker(c.Marker)
			}))
			if err != nil {
				return err
			}

			doc, err := htmldoc.ParseFile(pagePath)
			if err != nil {
				return err
			}
			mounts, err := doc.Query(commandContext(cmd), cfg.Marker)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(mounts)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "INDEX\tID\tCONFIG")
			for _, m := range mounts {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", m.Index, m.ID, m.Config)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&pagePath, "page", "", "HTML page to scan.")
	cmd.Flags().StringVar(&markerClass, "marker-class", "", "Class marking mount points (overrides marker.class).")
	cmd.Flags().StringVar(&dataKey, "data-key", "", "Dataset key holding the configuration (overrides marker.data_key).")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print mount points as JSON.")
	_ = cmd.MarkFlagRequired("page")

	return cmd
}
