package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/petricontrols/bootstrap"
	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/petricontrols/bootstrap/infrastructure/htmldoc"
	"github.com/spf13/cobra"
)

func newRunCmd(g *globalFlags) *cobra.Command {
	var (
		pagePath    string
		modulePath  string
		markerClass string
		entryPoint  string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load the module and initialize every mount point of a page",
		Long: "Scans the page for mount points, loads the WebAssembly module once and calls its entry point " +
			"for each mount point in document order. Instance failures are reported but do not change the " +
			"exit status; a module that cannot be loaded does.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load([]entities.ConfigOption{
				entities.WithModulePath(modulePath),
				entities.WithMarkerClass(markerClass),
				func(c *entities.Config) {
					if entryPoint != "" {
						c.Module.EntryPoint = entryPoint
					}
				},
			})
			if err != nil {
				return err
			}

			doc, err := htmldoc.ParseFile(pagePath)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			app, err := bootstrap.New(ctx, cfg, doc, bootstrap.WithLogOutput(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer func() { _ = app.Close(ctx) }()

			report, runErr := app.Run(ctx)
			if report != nil {
				if err := printReport(cmd.OutOrStdout(), report, asJSON); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&pagePath, "page", "", "HTML page to scan.")
	cmd.Flags().StringVar(&modulePath, "module", "", "WebAssembly module (overrides module.path).")
	cmd.Flags().StringVar(&markerClass, "marker-class", "", "Class marking mount points (overrides marker.class).")
	cmd.Flags().StringVar(&entryPoint, "entry-point", "", "Module export called per mount point (overrides module.entry_point).")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run report as JSON.")
	_ = cmd.MarkFlagRequired("page")

	return cmd
}

func printReport(w io.Writer, report *entities.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	_, _ = fmt.Fprintf(w, "state: %s\n", report.State)
	_, _ = fmt.Fprintf(w, "mounted %d of %d mount points (%d failed) in %s\n",
		report.Succeeded(), report.Attempted(), report.Failed(), report.Duration())
	for _, o := range report.Faults() {
		_, _ = fmt.Fprintf(w, "  #%d %q: %s\n", o.Mount.Index, o.Mount.ID, o.Error.Error())
	}
	return nil
}
