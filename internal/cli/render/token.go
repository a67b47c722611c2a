package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// TokenRenderer prints an AgentNFT token
type TokenRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewTokenRenderer creates a new token renderer
func NewTokenRenderer(out io.Writer, format config.OutputFormat) *TokenRenderer {
	return &TokenRenderer{out: out, format: format}
}

// Render prints the token in the configured output format
func (r *TokenRenderer) Render(info *domain.TokenInfo) error {
	if done, err := writeStructured(r.out, r.format, info); done {
		return err
	}

	bold := color.New(color.Bold)
	bold.Fprintf(r.out, "Token #%s\n", info.TokenID.String())
	fmt.Fprintf(r.out, "  Contract: %s\n", info.Contract.Hex())
	fmt.Fprintf(r.out, "  Owner:    %s\n", info.Owner.Hex())
	if info.URI != "" {
		fmt.Fprintf(r.out, "  URI:      %s\n", info.URI)
	}

	if len(info.DataHashes) > 0 {
		fmt.Fprintln(r.out)
		bold.Fprintln(r.out, "  Data:")
		for i, hash := range info.DataHashes {
			description := ""
			if i < len(info.DataDescriptions) {
				description = info.DataDescriptions[i]
			}
			fmt.Fprintf(r.out, "    %d. %s  %s\n", i+1, hash.Hex(), description)
		}
	}

	if len(info.Warnings) > 0 {
		fmt.Fprintln(r.out)
		for _, w := range info.Warnings {
			fmt.Fprintln(r.out, FormatWarning(w))
		}
	}
	return nil
}

var _ Renderer[*domain.TokenInfo] = (*TokenRenderer)(nil)
