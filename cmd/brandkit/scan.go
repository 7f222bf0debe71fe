package brandkit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

var (
	flagJSON            bool
	flagMaxSize         int64
	flagAllowedTypes    []string
	flagNoSignature     bool
	flagNoMalwareScan   bool
	flagAllowExecutable bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Run the upload validation pipeline over local files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit reports as JSON")
	cmd.Flags().Int64Var(&flagMaxSize, "max-size", filescan.DefaultMaxSize, "global size ceiling in bytes")
	cmd.Flags().StringSliceVar(&flagAllowedTypes, "allow", nil, "allowlisted MIME types or globs (default: built-in document/media set)")
	cmd.Flags().BoolVar(&flagNoSignature, "no-signature", false, "skip magic-byte signature verification")
	cmd.Flags().BoolVar(&flagNoMalwareScan, "no-malware-scan", false, "skip heuristic malware scanning")
	cmd.Flags().BoolVar(&flagAllowExecutable, "allow-executables", false, "skip the dangerous-file stage")
}

func runScan(cmd *cobra.Command, args []string) error {
	opts := []filescan.Option{filescan.WithMaxSize(flagMaxSize)}
	if len(flagAllowedTypes) > 0 {
		opts = append(opts, filescan.WithAllowedTypes(flagAllowedTypes...))
	}
	if flagNoSignature {
		opts = append(opts, filescan.WithoutSignatureCheck())
	}
	if flagNoMalwareScan {
		opts = append(opts, filescan.WithoutMalwareScan())
	}
	if flagAllowExecutable {
		opts = append(opts, filescan.WithAllowExecutables())
	}
	scanner := filescan.New(opts...)

	ctx := cmd.Context()
	rejected := 0

	for _, path := range args {
		f, err := filescan.OpenLocalFile(path)
		if err != nil {
			return err
		}

		report := scanner.Validate(ctx, f)
		_ = f.Close()

		if !report.Valid {
			rejected++
		}
		printReport(path, report)
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d files rejected", rejected, len(args))
	}
	return nil
}

func printReport(path string, report filescan.Report) {
	if flagJSON {
		out := struct {
			Path string `json:"path"`
			filescan.Report
		}{Path: path, Report: report}
		_ = json.NewEncoder(os.Stdout).Encode(out)
		return
	}

	status := "ok"
	if !report.Valid {
		status = "REJECTED"
		if report.Quarantined {
			status = "QUARANTINE"
		}
	}
	fmt.Printf("%-10s %s\n", status, path)

	for _, e := range report.Errors {
		fmt.Printf("           error [%s]: %s\n", e.Kind, e.Message)
	}
	for _, w := range report.Warnings {
		fmt.Printf("           warning: %s\n", w)
	}
}
