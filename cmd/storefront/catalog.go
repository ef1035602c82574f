package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dejobratic/tomoca/internal/catalog/adapters/memory"
	"github.com/dejobratic/tomoca/internal/catalog/adapters/seed"
	"github.com/dejobratic/tomoca/internal/catalog/app/queries"
	"github.com/dejobratic/tomoca/internal/catalog/domain"
)

type catalogOptions struct {
	path     string
	category string
	roast    string
	sort     string
}

func newCatalogCmd() *cobra.Command {
	opts := catalogOptions{}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the shop listing for a filter and sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalog(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.path, "file", "", "YAML catalog to read instead of the embedded seed")
	cmd.Flags().StringVar(&opts.category, "category", "all", "coffee, equipment, accessories, gifts or all")
	cmd.Flags().StringVar(&opts.roast, "roast", "all", "light, medium, dark or all")
	cmd.Flags().StringVar(&opts.sort, "sort", "featured", "featured, newest, price-asc, price-desc or rating")
	return cmd
}

func runCatalog(cmd *cobra.Command, opts catalogOptions) error {
	cat, err := seed.Load(opts.path)
	if err != nil {
		return err
	}
	repo, err := memory.NewRepository(cat)
	if err != nil {
		return err
	}

	products, err := queries.NewListProductsQueryHandler(repo).Handle(cmd.Context(), queries.ListProductsQuery{
		Category: opts.category,
		Roast:    opts.roast,
		Sort:     opts.sort,
	})
	if err != nil {
		return err
	}

	return writeProductTable(cmd.OutOrStdout(), products)
}

func writeProductTable(w io.Writer, products []domain.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tROAST\tPRICE\tRATING\tFLAGS")
	for _, p := range products {
		roast := string(p.RoastLevel)
		if roast == "" {
			roast = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
			p.ID, p.Name, p.Category, roast, p.Price.StringFixed(2), p.Rating, flags(p))
	}
	return tw.Flush()
}

func flags(p domain.Product) string {
	var out []string
	if p.IsBestSeller {
		out = append(out, "best-seller")
	}
	if p.IsNew {
		out = append(out, "new")
	}
	if !p.InStock {
		out = append(out, "sold-out")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}
