package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/ingest"
	"github.com/sells-group/leadscore/internal/model"
)

var (
	scoreOfferPath string
	scoreLeadsPath string
	scoreOutput    string
	scoreFormat    string
	scoreLimit     int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a CSV of leads against an offer",
	Long: `Reads leads from a CSV and an offer from a YAML or JSON file,
scores each lead (rule engine + AI intent classification), and writes the
results.

Examples:
  # Score to stdout as a table
  leadscore score --offer offer.yaml --leads leads.csv

  # First 25 leads, JSON to a file
  leadscore score --offer offer.yaml --leads leads.csv --limit 25 --format json --output results.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		offer, err := ingest.LoadOffer(scoreOfferPath)
		if err != nil {
			return err
		}

		leads, err := ingest.ParseLeadsCSVFile(scoreLeadsPath)
		if err != nil {
			return err
		}
		if scoreLimit > 0 && scoreLimit < len(leads) {
			leads = leads[:scoreLimit]
		}
		zap.L().Info("scoring leads",
			zap.Int("leads", len(leads)),
			zap.String("offer", offer.Name),
		)

		env, err := initScoring(ctx)
		if err != nil {
			return err
		}

		results := env.Engine.ScoreLeads(ctx, leads, *offer)
		logUsage(env.Tracker)

		return writeResults(results, scoreOutput, scoreFormat)
	},
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreOfferPath, "offer", "", "path to offer YAML/JSON file (required)")
	f.StringVar(&scoreLeadsPath, "leads", "", "path to leads CSV file (required)")
	f.StringVar(&scoreOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&scoreFormat, "format", "table", "output format: table, json, or csv")
	f.IntVar(&scoreLimit, "limit", 0, "score at most N leads (0 = all)")
	_ = scoreCmd.MarkFlagRequired("offer")
	_ = scoreCmd.MarkFlagRequired("leads")

	rootCmd.AddCommand(scoreCmd)
}

func writeResults(results []model.ScoringResult, outputPath, format string) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrap(err, "score: create output file")
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(results), "score: encode json")

	case "csv":
		w := csv.NewWriter(out)
		if err := w.Write([]string{"name", "role", "company", "intent", "score", "reasoning"}); err != nil {
			return eris.Wrap(err, "score: write csv header")
		}
		for _, r := range results {
			row := []string{r.Name, r.Role, r.Company, string(r.Intent), strconv.Itoa(r.Score), r.Reasoning}
			if err := w.Write(row); err != nil {
				return eris.Wrap(err, "score: write csv row")
			}
		}
		w.Flush()
		return eris.Wrap(w.Error(), "score: flush csv")

	case "table":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tROLE\tCOMPANY\tINTENT\tSCORE")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", r.Name, r.Role, r.Company, r.Intent, r.Score)
		}
		return eris.Wrap(tw.Flush(), "score: flush table")

	default:
		return eris.Errorf("score: unknown format %q", format)
	}
}
