package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bodega/app/cart"
)

var flagQty int

// bodega cart:add <product-id>
var cartAddCmd = &cobra.Command{
	Use:   "cart:add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		// The cart snapshots name and price at add time, like the mobile
		// client does; the backend re-prices at checkout.
		p, err := a.Catalog.Product(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !p.InStock {
			return fmt.Errorf("%s", a.Locale.T("catalog.outOfStock"))
		}

		a.Cart.AddItem(cart.Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  flagQty,
			Image:     p.Image,
		})
		fmt.Printf("%s x%d in cart\n", p.Name, a.Cart.ItemQuantity(p.ID))
		return nil
	},
}

// bodega cart:remove <product-id>
var cartRemoveCmd = &cobra.Command{
	Use:   "cart:remove <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		a.Cart.RemoveItem(args[0])
		fmt.Println(a.Locale.T("common.success"))
		return nil
	},
}

// bodega cart:set <product-id> <quantity>
var cartSetCmd = &cobra.Command{
	Use:   "cart:set <product-id> <quantity>",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		var qty int
		if _, err := fmt.Sscanf(args[1], "%d", &qty); err != nil {
			return fmt.Errorf("quantity must be a number: %q", args[1])
		}
		a.Cart.UpdateQuantity(args[0], qty)
		fmt.Println(a.Locale.T("common.success"))
		return nil
	},
}

// bodega cart:list
var cartListCmd = &cobra.Command{
	Use:   "cart:list",
	Short: "Show the cart contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		if a.Cart.IsEmpty() {
			fmt.Println(a.Locale.T("cart.empty"))
			return nil
		}
		for _, line := range a.Cart.Items() {
			fmt.Printf("%-28s %3d x $%8.2f = $%8.2f\n",
				line.Name, line.Quantity, line.UnitPrice, line.Total())
		}
		fmt.Printf("%s: $%.2f (%d %s)\n",
			a.Locale.T("cart.subtotal"), a.Cart.Subtotal(),
			a.Cart.ItemCount(), a.Locale.T("cart.items"))
		return nil
	},
}

// bodega cart:clear
var cartClearCmd = &cobra.Command{
	Use:   "cart:clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		a.Cart.Clear()
		fmt.Println(a.Locale.T("cart.empty"))
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVar(&flagQty, "qty", 1, "quantity to add")
}
