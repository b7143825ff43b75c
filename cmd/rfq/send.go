package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rfq-flow/internal/catalog"
	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/model"
)

// errInvalidArgs is returned when send arguments fail validation.
var errInvalidArgs = errors.New("invalid arguments")

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Draft an RFQ for a single part",
		Long: `Draft requests for one part without a queue file. Every vendor offering
the process receives a draft with the part's drawings from --file-location.

Example:
  rfq send --part-no 0250-20000 --process "Nickel Plating" \
    --file-location /srv/drawings/0250 --quantities 10,25,100`,
		RunE: runSend,
	}

	cmd.Flags().String("part-no", "", "part number (required)")
	cmd.Flags().String("process", "", "process name (required)")
	cmd.Flags().String("file-location", "", "file or directory holding the part's drawings (required)")
	cmd.Flags().String("quantities", "", "comma-separated positive quantities (required)")
	cmd.Flags().String("spec", "", "specification to match before falling back to the process")
	cmd.Flags().String("quote-id", "", "internal quote number")
	cmd.Flags().String("callout", "", "drawing callout")
	cmd.Flags().Bool("dry-run", false, "log the drafts that would be created without creating them")
	cmd.Flags().Bool("familiar-only", false, "only match specs the vendor is familiar with")
	cmd.Flags().Bool("exact-match", false, "require exact process and spec names")

	return cmd
}

func runSend(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	partNo, _ := flags.GetString("part-no")
	process, _ := flags.GetString("process")
	location, _ := flags.GetString("file-location")
	quantities, _ := flags.GetString("quantities")
	spec, _ := flags.GetString("spec")
	quoteID, _ := flags.GetString("quote-id")
	callout, _ := flags.GetString("callout")
	dryRun, _ := flags.GetBool("dry-run")
	familiarOnly, _ := flags.GetBool("familiar-only")
	exactMatch, _ := flags.GetBool("exact-match")

	item, err := buildSendItem(partNo, process, location, quantities)
	if err != nil {
		return common.NewUserError("cannot send RFQ", err)
	}
	item.Spec = strings.TrimSpace(spec)
	item.QuoteID = strings.TrimSpace(quoteID)
	item.Callout = strings.TrimSpace(callout)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, appOptions{
		dryRun: dryRun,
		match:  catalog.MatchOptions{FamiliarOnly: familiarOnly, ExactMatch: exactMatch},
	})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return a.process(ctx, cmd.OutOrStdout(), []model.QueueItem{item})
}

// buildSendItem validates the ad-hoc arguments and builds a one-off queue item.
func buildSendItem(partNo, process, location, quantities string) (model.QueueItem, error) {
	partNo = strings.TrimSpace(partNo)
	process = strings.TrimSpace(process)
	location = strings.TrimSpace(location)

	if partNo == "" {
		return model.QueueItem{}, fmt.Errorf("%w: part number is required", errInvalidArgs)
	}
	if process == "" {
		return model.QueueItem{}, fmt.Errorf("%w: process is required", errInvalidArgs)
	}
	if location == "" {
		return model.QueueItem{}, fmt.Errorf("%w: file location is required", errInvalidArgs)
	}
	if _, err := os.Stat(location); err != nil {
		return model.QueueItem{}, fmt.Errorf("%w: file location %s: %w", errInvalidArgs, location, err)
	}

	qtys, err := parseQuantities(quantities)
	if err != nil {
		return model.QueueItem{}, err
	}

	return model.QueueItem{
		PartNumber: partNo,
		Process:    process,
		FilePath:   location,
		Qty:        strings.Join(qtys, ", "),
	}, nil
}

// parseQuantities accepts comma-separated positive integers.
func parseQuantities(s string) ([]string, error) {
	var out []string
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: quantity %q must be a positive integer", errInvalidArgs, field)
		}
		out = append(out, strconv.Itoa(n))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one quantity is required", errInvalidArgs)
	}
	return out, nil
}
