package main

import (
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/storefront"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := opts.client().Health(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "health check")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.Status, res.Message)
			return nil
		},
	}
}

func newTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List product types with their product counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := opts.client().ListProductTypes(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list product types")
			}
			return renderTypes(cmd.OutOrStdout(), types)
		},
	}
}

func newProductsCmd(opts *options) *cobra.Command {
	var typeName string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Show the catalog, grouped by product type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := storefront.NewCatalog(opts.client(), opts.logger())
			if err := catalog.Load(cmd.Context()); err != nil {
				return err
			}
			if typeName != storefront.AllTypes {
				if err := catalog.Filter(cmd.Context(), typeName); err != nil {
					return err
				}
			}
			return renderCatalog(cmd.OutOrStdout(), catalog.State())
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", storefront.AllTypes, "only show products of this type")
	return cmd
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search products by name and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := opts.client().SearchProducts(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "search products")
			}
			return renderProducts(cmd.OutOrStdout(), products)
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	var (
		variantID string
		size      string
		color     string
		addOnIDs  []string
	)
	cmd := &cobra.Command{
		Use:   "show PRODUCT_ID",
		Short: "Show a product with a variant and add-on selection priced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := storefront.LoadProduct(cmd.Context(), opts.client(), args[0])
			if err != nil {
				opts.logger().Error("load product", zap.String("id", args[0]), zap.Error(errors.Unwrap(err)))
				return err
			}

			out := cmd.OutOrStdout()
			var notes []string
			if variantID != "" {
				if err := sel.SelectVariant(variantID); err != nil {
					notes = append(notes, fmt.Sprintf("variant %s: %v", variantID, err))
				}
			}
			if size != "" && !sel.SelectSize(size) {
				notes = append(notes, fmt.Sprintf("no variant with size %q for the current selection", size))
			}
			if color != "" && !sel.SelectColor(color) {
				notes = append(notes, fmt.Sprintf("no variant with %s %q for the current selection",
					storefront.ColorLabel(storefront.TypeName(sel.Product())), color))
			}
			for _, id := range addOnIDs {
				if !sel.ShowAddOns() {
					notes = append(notes, "add-ons are only offered for food items")
					break
				}
				if _, err := sel.ToggleAddOn(id); err != nil {
					notes = append(notes, fmt.Sprintf("add-on %s: %v", id, err))
				}
			}

			if err := renderSelection(out, sel); err != nil {
				return err
			}
			for _, n := range notes {
				fmt.Fprintln(out, "note:", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variantID, "variant", "", "select a variant by id")
	cmd.Flags().StringVar(&size, "size", "", "select a size, keeping the current color")
	cmd.Flags().StringVar(&color, "color", "", "select a color, keeping the current size")
	cmd.Flags().StringSliceVar(&addOnIDs, "addon", nil, "add-on ids to include")
	cmd.MarkFlagsMutuallyExclusive("variant", "size")
	cmd.MarkFlagsMutuallyExclusive("variant", "color")
	return cmd
}
