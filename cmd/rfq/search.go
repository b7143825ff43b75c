package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rfq-flow/internal/catalog"
	"github.com/Veraticus/rfq-flow/internal/cli"
	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/model"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the vendor catalog",
		Long:  `Look up which vendors offer a process or list a specification.`,
	}

	cmd.PersistentFlags().String("catalog", "", "vendor catalog YAML (default from data.catalog)")
	cmd.PersistentFlags().Bool("exact-match", false, "require an exact, case-insensitive name")

	cmd.AddCommand(searchProcessCmd())
	cmd.AddCommand(searchSpecCmd())

	return cmd
}

func searchProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <name>",
		Short: "Find vendors offering a process",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadSearchCatalog(cmd)
			if err != nil {
				return err
			}
			exact, _ := cmd.Flags().GetBool("exact-match")
			query := strings.Join(args, " ")

			groups := catalog.GroupProcessMatches(catalog.SearchByProcess(cat, query, exact))
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderProcessMatches(query, groups))
			return nil
		},
	}
}

func searchSpecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec <number>",
		Short: "Find vendors listing a specification",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadSearchCatalog(cmd)
			if err != nil {
				return err
			}
			exact, _ := cmd.Flags().GetBool("exact-match")
			familiarOnly, _ := cmd.Flags().GetBool("familiar-only")
			query := strings.Join(args, " ")

			groups := catalog.GroupSpecMatches(catalog.SearchBySpec(cat, query, exact, familiarOnly))
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSpecMatches(query, groups))
			return nil
		},
	}

	cmd.Flags().Bool("familiar-only", false, "only list specs the vendor is familiar with")

	return cmd
}

func loadSearchCatalog(cmd *cobra.Command) (*model.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Data.Catalog
	}

	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, common.NewUserError("could not load the vendor catalog "+path, err)
	}
	return cat, nil
}
