package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// UpgradeRenderer prints the per-module outcome of an upgrade run and the aggregate
type UpgradeRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewUpgradeRenderer creates a new upgrade renderer
func NewUpgradeRenderer(out io.Writer, format config.OutputFormat) *UpgradeRenderer {
	return &UpgradeRenderer{out: out, format: format}
}

type upgradeResultView struct {
	Module                 string   `json:"module" yaml:"module"`
	Outcome                string   `json:"outcome" yaml:"outcome"`
	State                  string   `json:"state" yaml:"state"`
	FailedAt               string   `json:"failedAt,omitempty" yaml:"failedAt,omitempty"`
	Proxy                  string   `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	Beacon                 string   `json:"beacon,omitempty" yaml:"beacon,omitempty"`
	PreviousImplementation string   `json:"previousImplementation,omitempty" yaml:"previousImplementation,omitempty"`
	Implementation         string   `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	Version                string   `json:"version,omitempty" yaml:"version,omitempty"`
	TxHash                 string   `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	BlockNumber            uint64   `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	GasUsed                uint64   `json:"gasUsed,omitempty" yaml:"gasUsed,omitempty"`
	ErrorKind              string   `json:"errorKind,omitempty" yaml:"errorKind,omitempty"`
	Error                  string   `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings               []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	DurationMs             int64    `json:"durationMs" yaml:"durationMs"`
}

type upgradeSummaryView struct {
	Success               bool                `json:"success" yaml:"success"`
	ExitCode              int                 `json:"exitCode" yaml:"exitCode"`
	ChainID               uint64              `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Signer                string              `json:"signer,omitempty" yaml:"signer,omitempty"`
	Upgraded              int                 `json:"upgraded" yaml:"upgraded"`
	Skipped               int                 `json:"skipped" yaml:"skipped"`
	Failed                int                 `json:"failed" yaml:"failed"`
	TransactionsSubmitted int                 `json:"transactionsSubmitted" yaml:"transactionsSubmitted"`
	DurationMs            int64               `json:"durationMs" yaml:"durationMs"`
	Results               []upgradeResultView `json:"results" yaml:"results"`
}

func newUpgradeSummaryView(summary *domain.UpgradeSummary) upgradeSummaryView {
	view := upgradeSummaryView{
		Success:               summary.Success(),
		ExitCode:              summary.ExitCode(),
		ChainID:               summary.ChainID,
		Upgraded:              summary.Count(domain.OutcomeSuccess),
		Skipped:               summary.Count(domain.OutcomeSkipped),
		Failed:                summary.Count(domain.OutcomeFailed),
		TransactionsSubmitted: summary.TransactionsSubmitted,
		DurationMs:            summary.Duration.Milliseconds(),
	}
	if summary.Signer != (common.Address{}) {
		view.Signer = summary.Signer.Hex()
	}

	view.Results = lo.Map(summary.Results, func(r *domain.UpgradeResult, _ int) upgradeResultView {
		v := upgradeResultView{
			Module:     r.Module.String(),
			Outcome:    string(r.Outcome),
			State:      string(r.State),
			FailedAt:   string(r.FailedAt),
			Version:    r.Version,
			ErrorKind:  r.ErrorKind(),
			Warnings:   r.Warnings,
			DurationMs: r.Duration.Milliseconds(),
		}
		if r.Outcome == domain.OutcomeSkipped {
			return v
		}
		v.Proxy = r.Proxy.Hex()
		v.Beacon = r.Beacon.Hex()
		v.PreviousImplementation = r.PreviousImplementation.Hex()
		v.Implementation = r.Implementation.Hex()
		if r.TxHash != (common.Hash{}) {
			v.TxHash = r.TxHash.Hex()
			v.BlockNumber = r.BlockNumber
			v.GasUsed = r.GasUsed
		}
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		return v
	})

	return view
}

// Render prints the summary in the configured output format
func (r *UpgradeRenderer) Render(summary *domain.UpgradeSummary) error {
	if done, err := writeStructured(r.out, r.format, newUpgradeSummaryView(summary)); done {
		return err
	}

	fmt.Fprintln(r.out)
	if summary.Signer != (common.Address{}) {
		fmt.Fprintf(r.out, "Signer: %s", summary.Signer.Hex())
		if summary.ChainID != 0 {
			fmt.Fprintf(r.out, "  Chain ID: %d", summary.ChainID)
		}
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out)
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"MODULE", "OUTCOME", "IMPLEMENTATION", "TX", "DETAILS"})
	for _, result := range summary.Results {
		t.AppendRow(table.Row{
			result.Module.String(),
			outcomeLabel(result.Outcome),
			implementationCell(result),
			shortHash(result.TxHash),
			detailsCell(result),
		})
	}
	t.Render()

	fmt.Fprintln(r.out)
	for _, result := range summary.Results {
		if result.Outcome != domain.OutcomeFailed || result.Err == nil {
			continue
		}
		fmt.Fprintf(r.out, "%s\n", color.New(color.FgRed).Sprintf("%s (%s, after %s): %v",
			result.Module, result.ErrorKind(), result.FailedAt, result.Err))
	}

	aggregate := fmt.Sprintf("%d upgraded, %d skipped, %d failed; %d transaction(s) in %s",
		summary.Count(domain.OutcomeSuccess),
		summary.Count(domain.OutcomeSkipped),
		summary.Count(domain.OutcomeFailed),
		summary.TransactionsSubmitted,
		summary.Duration.Round(time.Millisecond),
	)
	if summary.Success() {
		fmt.Fprintln(r.out, FormatSuccess("Upgrade run succeeded: "+aggregate))
	} else {
		fmt.Fprintln(r.out, FormatError("upgrade run failed: "+aggregate))
	}
	return nil
}

func outcomeLabel(outcome domain.Outcome) string {
	label := titleCaser.String(string(outcome))
	switch outcome {
	case domain.OutcomeSuccess:
		return color.New(color.FgGreen).Sprint(label)
	case domain.OutcomeFailed:
		return color.New(color.FgRed).Sprint(label)
	default:
		return color.New(color.Faint).Sprint(label)
	}
}

func implementationCell(result *domain.UpgradeResult) string {
	if result.Outcome == domain.OutcomeSkipped {
		return "-"
	}
	return addressOrDash(result.Implementation)
}

func detailsCell(result *domain.UpgradeResult) string {
	var parts []string
	if result.Outcome == domain.OutcomeFailed {
		parts = append(parts, result.ErrorKind())
	}
	if result.Version != "" {
		parts = append(parts, "version "+result.Version)
	}
	for _, w := range result.Warnings {
		parts = append(parts, color.New(color.FgYellow).Sprint(w))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ")
}

var _ Renderer[*domain.UpgradeSummary] = (*UpgradeRenderer)(nil)
