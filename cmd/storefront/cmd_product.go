package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/products"
)

func newProductCmd(a *app) *cobra.Command {
	productCmd := &cobra.Command{
		Use:   "product",
		Short: "Manage catalog products",
	}

	var (
		file string
		form products.Form
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Submit the new-product form",
		Example: `  storefront product create --name Widget --price 9.99 --stock 4 --category tools
  storefront product create --file widget.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := middleware.EnsureCorrelationID(cmd.Context())

			f := &form
			if file != "" {
				loaded, err := products.LoadForm(file)
				if err != nil {
					return err
				}
				f = loaded
			}

			name := f.Name
			if err := a.submitter().Submit(ctx, f); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created %s\n", name)
			return nil
		},
	}
	createCmd.Flags().StringVar(&file, "file", "", "YAML or JSON file with the form fields")
	createCmd.Flags().StringVar(&form.Name, "name", "", "product name")
	createCmd.Flags().StringVar(&form.Description, "description", "", "product description")
	createCmd.Flags().StringVar(&form.Price, "price", "", "price")
	createCmd.Flags().StringVar(&form.Stock, "stock", "", "units in stock")
	createCmd.Flags().StringVar(&form.Category, "category", "", "category")

	productCmd.AddCommand(createCmd)
	return productCmd
}
