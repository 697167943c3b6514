package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/runtime/export"
	"github.com/de-tools/maturity-atlas/pkg/services/assessment"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/store/controls"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/spf13/cobra"
)

type ScoreCmd struct {
	inputPath    string
	outputPath   string
	format       string
	controlsPath string
	reference    float64
	reporter     *export.Reporter
}

func NewScoreCmd(reporter *export.Reporter) *cobra.Command {
	sc := &ScoreCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an assessment answers file",
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.inputPath, "input", "i", "", "Path to the answers JSON file (- for stdin)")
	cmd.Flags().StringVarP(&sc.outputPath, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVarP(&sc.format, "format", "f", "table", "Output format: table, json, yaml, csv or pdf")
	cmd.Flags().StringVar(&sc.controlsPath, "controls", "", "Path to the control matrix CSV")
	cmd.Flags().Float64Var(&sc.reference, "benchmark", 0, "Benchmark reference score (default 3.2)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (sc *ScoreCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req, err := readSubmission(cmd.InOrStdin(), sc.inputPath)
	if err != nil {
		return err
	}

	var matrix *controls.Matrix
	if sc.controlsPath != "" {
		matrix, err = controls.Load(sc.controlsPath)
		if err != nil {
			return err
		}
	}

	store := kv.NewMemoryStore()
	defer store.Close()

	svc, err := assessment.NewService(assessment.Dependencies{
		Store:      store,
		Benchmarks: benchmark.NewSource(benchmark.Config{Reference: sc.reference}, nil),
		Controls:   matrix,
	})
	if err != nil {
		return err
	}

	summary, err := svc.Submit(ctx, assessment.Submission{
		SessionID:    req.SessionID,
		Organization: req.Organization,
		Scores:       req.Scores,
	})
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	out := cmd.OutOrStdout()
	if sc.outputPath != "" {
		f, err := os.Create(sc.outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch sc.format {
	case "table":
		if sc.outputPath == "" {
			return sc.reporter.Handle(summary)
		}
		return export.NewReporter(out).Handle(summary)
	case "json":
		return export.WriteJSON(out, adapters.MapSummaryDomainToApi(summary))
	case "yaml":
		return export.WriteYAML(out, adapters.MapSummaryDomainToApi(summary))
	case "csv":
		return export.WriteCSV(out, summary)
	case "pdf":
		return export.WritePDF(out, summary)
	default:
		return fmt.Errorf("unsupported format %q", sc.format)
	}
}

func readSubmission(stdin io.Reader, path string) (api.SubmitAssessmentRequest, error) {
	var req api.SubmitAssessmentRequest

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("failed to open answers file: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to parse answers file: %w", err)
	}
	return req, nil
}
