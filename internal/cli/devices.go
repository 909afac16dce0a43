package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/yearpaper/internal/device"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the named device profiles",
		Long: `List the devices that can be passed to --device, with their screen size
and the text and widget sizes used for them. The default is marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := NewTable("", "MODEL", "RESOLUTION", "HEADER", "WIDGET", "DOT")
			for _, p := range device.Models() {
				marker := ""
				if p.Name == device.DefaultModel {
					marker = "*"
				}
				table.AddRow(
					marker,
					p.Name,
					p.Resolution.String(),
					fmt.Sprintf("%gpx", p.Style.HeaderSize),
					fmt.Sprintf("%gpx", p.Style.WidgetSize),
					fmt.Sprintf("%gpx", p.Style.DotSize),
				)
			}
			_, err := table.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
