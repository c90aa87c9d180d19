package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/HamzaOussama/plantX/internal/config"
	"github.com/HamzaOussama/plantX/internal/doctor"
	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/logger"
	"github.com/HamzaOussama/plantX/internal/ui"
)

var doctorJSON bool

// doctorCmd diagnoses config and connectivity problems
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config and API connectivity",
	Long: `Check the config file, the telemetry and command endpoints, and the
health of the latest reading.

The command endpoint is only probed with a TCP connection; no command is
sent to the device.

Examples:
  plantx doctor
  plantx doctor --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), cmd.OutOrStdout(), doctorJSON)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand runs every check and reports. It fails when any check fails.
func doctorCommand(ctx context.Context, w io.Writer, jsonOut bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	checks := collectChecks(logger.Noop())
	results := doctor.RunAll(ctx, checks)

	var err error
	if jsonOut {
		err = writeDoctorJSON(w, checks, results)
	} else {
		_, err = io.WriteString(w, renderDoctor(checks, results))
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrConfig, doctor.Summary(results), "")
	}
	return nil
}

// collectChecks gathers the CONFIG checks, plus API and DEVICE checks when
// the config is usable.
func collectChecks(log logger.Logger) []doctor.Check {
	checks := doctor.NewConfigChecks(Config())

	cfg, _, err := config.LoadOrDefault(Config())
	if err != nil || config.Validate(cfg) != nil {
		return checks
	}
	return append(checks, doctor.NewAPIChecks(newClient(cfg, log), cfg.API.TelemetryURL, cfg.API.CommandURL)...)
}

// groupResults pairs results with their categories in report order.
func groupResults(checks []doctor.Check, results []doctor.CheckResult) []CategoryOutput {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}

	out := make([]CategoryOutput, 0, len(grouped))
	for _, cat := range doctor.Categories {
		if rs, ok := grouped[cat]; ok {
			out = append(out, CategoryOutput{Name: cat, Results: rs})
		}
	}
	return out
}

func writeDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	counts := doctor.CountByStatus(results)
	output := DoctorOutput{
		Categories: groupResults(checks, results),
		Summary: SummaryOutput{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			AllClear: !doctor.HasIssues(results),
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// renderDoctor formats the report for humans.
func renderDoctor(checks []doctor.Check, results []doctor.CheckResult) string {
	headerStyle := lipgloss.NewStyle().Bold(true)
	var b strings.Builder

	b.WriteString("\n" + headerStyle.Render("PlantX Diagnostic Report") + "\n\n")

	for _, cat := range groupResults(checks, results) {
		b.WriteString(headerStyle.Render(cat.Name) + "\n")
		for _, r := range cat.Results {
			b.WriteString(renderCheckResult(r))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("━", 60) + "\n\n")
	if doctor.HasIssues(results) {
		fmt.Fprintf(&b, "%s %s\n", ui.Styled(ui.ColorError, ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(&b, "%s %s\n", ui.Styled(ui.ColorSuccess, ui.SymbolSuccess), doctor.Summary(results))
	}
	return b.String()
}

// renderCheckResult renders a single check result with its suggestion.
func renderCheckResult(r doctor.CheckResult) string {
	symbol, color := ui.SymbolComplete, ui.ColorSuccess
	switch r.Status {
	case doctor.StatusWarn:
		color = ui.ColorWarning
	case doctor.StatusFail:
		symbol, color = ui.SymbolFail, ui.ColorError
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", ui.Styled(color, symbol), r.Message)
	if r.Suggestion != "" && r.Status != doctor.StatusPass {
		for _, line := range strings.Split(r.Suggestion, "\n") {
			fmt.Fprintf(&b, "    %s\n", ui.Styled(ui.ColorMuted, line))
		}
	}
	return b.String()
}
