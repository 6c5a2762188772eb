package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/render"
)

func newCartCmd(a *app) *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the cart",
	}

	var (
		name  string
		price float64
		qty   int
	)
	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := middleware.EnsureCorrelationID(cmd.Context())
			return a.cartStore(ctx).AddItem(ctx, args[0], name, price, qty)
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "product name")
	addCmd.Flags().Float64Var(&price, "price", 0, "unit price")
	addCmd.Flags().IntVar(&qty, "qty", 1, "quantity to add")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("price")

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := middleware.EnsureCorrelationID(cmd.Context())
			view, err := a.cartStore(ctx).RemoveItem(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, render.CartTerminal(view))
			return nil
		},
	}

	var asHTML bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := middleware.EnsureCorrelationID(cmd.Context())
			view := a.cartStore(ctx).Render()
			if !asHTML {
				fmt.Fprint(a.out, render.CartTerminal(view))
				return nil
			}
			out, err := render.CartHTML(view)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, out)
			return nil
		},
	}
	showCmd.Flags().BoolVar(&asHTML, "html", false, "print the HTML fragment instead")

	cartCmd.AddCommand(addCmd, removeCmd, showCmd)
	return cartCmd
}

func newCheckoutCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := middleware.EnsureCorrelationID(cmd.Context())
			return a.cartStore(ctx).Checkout(ctx, email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "customer email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
