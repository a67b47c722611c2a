package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// NonceRenderer prints nonce status and the result of clearing stuck nonces
type NonceRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewNonceRenderer creates a new nonce renderer
func NewNonceRenderer(out io.Writer, format config.OutputFormat) *NonceRenderer {
	return &NonceRenderer{out: out, format: format}
}

type nonceStatusView struct {
	domain.NonceStatus `yaml:",inline"`
	Stuck              uint64 `json:"stuck" yaml:"stuck"`
}

// RenderStatus prints the confirmed and pending nonce of the signer
func (r *NonceRenderer) RenderStatus(status *domain.NonceStatus) error {
	if done, err := writeStructured(r.out, r.format, nonceStatusView{NonceStatus: *status, Stuck: status.Stuck()}); done {
		return err
	}

	fmt.Fprintf(r.out, "Account:        %s\n", status.Account.Hex())
	fmt.Fprintf(r.out, "Latest nonce:   %d\n", status.Latest)
	fmt.Fprintf(r.out, "Pending nonce:  %d\n", status.Pending)
	if stuck := status.Stuck(); stuck > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d transaction(s) pending (nonces %d to %d)",
			stuck, status.Latest, status.Pending-1)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess("No stuck transactions"))
	}
	return nil
}

// RenderClear prints every replacement sent and the nonce state afterwards
func (r *NonceRenderer) RenderClear(result *domain.NonceClearResult) error {
	if result.Replacements == nil {
		result.Replacements = []domain.NonceReplacement{}
	}
	if done, err := writeStructured(r.out, r.format, result); done {
		return err
	}

	if len(result.Replacements) > 0 {
		t := newTable(r.out)
		t.AppendHeader(table.Row{"NONCE", "RESULT", "TX", "ESCALATED"})
		for _, rep := range result.Replacements {
			res := color.New(color.FgGreen).Sprint("sent")
			if !rep.Sent() {
				res = color.New(color.FgRed).Sprint(rep.Error)
			}
			escalated := ""
			if rep.Escalated {
				escalated = "yes"
			}
			t.AppendRow(table.Row{rep.Nonce, res, shortHash(rep.TxHash), escalated})
		}
		t.Render()
		fmt.Fprintln(r.out)
	}

	if result.After != nil {
		fmt.Fprintf(r.out, "Latest nonce:   %d -> %d\n", result.Before.Latest, result.After.Latest)
		fmt.Fprintf(r.out, "Pending nonce:  %d -> %d\n", result.Before.Pending, result.After.Pending)
	}

	if result.Cleared() {
		fmt.Fprintln(r.out, FormatSuccess("No stuck transactions remain"))
	} else if result.After != nil {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%d transaction(s) still pending", result.After.Stuck())))
	} else {
		fmt.Fprintln(r.out, FormatError("some replacements were rejected"))
	}
	return nil
}
