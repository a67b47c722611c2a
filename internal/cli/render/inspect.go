package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// InspectRenderer prints the on-chain state of each module
type InspectRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewInspectRenderer creates a new inspect renderer
func NewInspectRenderer(out io.Writer, format config.OutputFormat) *InspectRenderer {
	return &InspectRenderer{out: out, format: format}
}

// Render prints the beacons in the configured output format
func (r *InspectRenderer) Render(infos []*domain.BeaconInfo) error {
	if infos == nil {
		infos = []*domain.BeaconInfo{}
	}
	if done, err := writeStructured(r.out, r.format, infos); done {
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintln(r.out, "No modules with a proxy configured")
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"MODULE", "PROXY", "BEACON", "IMPLEMENTATION", "VERSION", "OWNER", "STATUS"})
	for _, info := range infos {
		t.AppendRow(table.Row{
			info.Module.String(),
			info.Proxy.Hex(),
			addressOrDash(info.Beacon),
			addressOrDash(info.Implementation),
			versionOrDash(info.Version),
			addressOrDash(info.Owner),
			beaconStatus(info),
		})
	}
	t.Render()

	for _, info := range infos {
		for _, msg := range info.Errors {
			fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s: %s", info.Module, msg)))
		}
	}
	return nil
}

func versionOrDash(version string) string {
	if version == "" {
		return "-"
	}
	return version
}

func beaconStatus(info *domain.BeaconInfo) string {
	switch {
	case len(info.Errors) > 0:
		return color.New(color.FgRed).Sprint("read errors")
	case !info.Enabled:
		return color.New(color.Faint).Sprint("disabled")
	case info.UpToDate():
		return color.New(color.FgGreen).Sprint("up to date")
	case info.PendingTarget != (common.Address{}):
		return color.New(color.FgYellow).Sprintf("pending %s", info.PendingTarget.Hex())
	default:
		return "enabled"
	}
}

var _ Renderer[[]*domain.BeaconInfo] = (*InspectRenderer)(nil)
