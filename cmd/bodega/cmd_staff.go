package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bodega/app/models"
	"github.com/shashiranjanraj/bodega/pkg/validate"
)

var (
	flagProductName  string
	flagDescription  string
	flagPrice        float64
	flagImage        string
	flagProductCat   string
	flagProductStore string
	flagInStock      bool
	flagQuantity     int
	flagPeriod       string
)

// productForm is what `bodega product:create` validates locally.
type productForm struct {
	Name       string  `json:"name" validate:"required,min=2"`
	Price      float64 `json:"price" validate:"required"`
	CategoryID string  `json:"category_id" validate:"required"`
	StoreID    string  `json:"store_id" validate:"required"`
}

// bodega product:create
var productCreateCmd = &cobra.Command{
	Use:   "product:create",
	Short: "Add a catalog product (staff)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		form := productForm{
			Name:       flagProductName,
			Price:      flagPrice,
			CategoryID: flagProductCat,
			StoreID:    flagProductStore,
		}
		if errs := validate.Struct(form); validate.HasErrors(errs) {
			for field, msg := range errs {
				fmt.Printf("  %s: %s\n", field, msg)
			}
			return fmt.Errorf("invalid product input")
		}

		p, err := a.Gateway.CreateProduct(cmd.Context(), models.ProductCreate{
			Name:              flagProductName,
			Description:       flagDescription,
			Price:             flagPrice,
			Image:             flagImage,
			CategoryID:        flagProductCat,
			StoreID:           flagProductStore,
			InStock:           flagInStock,
			QuantityAvailable: flagQuantity,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

// bodega product:update <id>
var productUpdateCmd = &cobra.Command{
	Use:   "product:update <id>",
	Short: "Change product fields (staff)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		// Only flags the caller actually passed become part of the payload;
		// everything else stays untouched server-side.
		var in models.ProductUpdate
		if cmd.Flags().Changed("name") {
			in.Name = &flagProductName
		}
		if cmd.Flags().Changed("description") {
			in.Description = &flagDescription
		}
		if cmd.Flags().Changed("price") {
			in.Price = &flagPrice
		}
		if cmd.Flags().Changed("image") {
			in.Image = &flagImage
		}
		if cmd.Flags().Changed("category") {
			in.CategoryID = &flagProductCat
		}
		if cmd.Flags().Changed("store") {
			in.StoreID = &flagProductStore
		}
		if cmd.Flags().Changed("in-stock") {
			in.InStock = &flagInStock
		}
		if cmd.Flags().Changed("quantity") {
			in.QuantityAvailable = &flagQuantity
		}

		p, err := a.Gateway.UpdateProduct(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

// bodega product:delete <id>
var productDeleteCmd = &cobra.Command{
	Use:   "product:delete <id>",
	Short: "Remove a product (staff)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if err := a.Gateway.DeleteProduct(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println(a.Locale.T("common.success"))
		return nil
	},
}

// bodega analytics
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show the sales summary (staff)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		stats, err := a.Gateway.GetAnalytics(cmd.Context(), flagPeriod)
		if err != nil {
			return err
		}

		fmt.Printf("revenue: $%.2f over %d orders (%s)\n",
			stats.TotalRevenue, stats.TotalOrders, flagPeriod)
		if len(stats.TopProducts) > 0 {
			fmt.Println("top products:")
			for _, p := range stats.TopProducts {
				fmt.Printf("  %-28s %4d sold  $%8.2f\n", p.ProductName, p.QuantitySold, p.Revenue)
			}
		}
		if len(stats.OrdersByStatus) > 0 {
			fmt.Println("by status:")
			label := orderStatusLabel(a)
			for _, s := range models.OrderStatuses {
				if n, ok := stats.OrdersByStatus[s]; ok {
					fmt.Printf("  %-14s %d\n", label(s), n)
				}
			}
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{productCreateCmd, productUpdateCmd} {
		c.Flags().StringVar(&flagProductName, "name", "", "product name")
		c.Flags().StringVar(&flagDescription, "description", "", "product description")
		c.Flags().Float64Var(&flagPrice, "price", 0, "unit price")
		c.Flags().StringVar(&flagImage, "image", "", "image URL")
		c.Flags().StringVar(&flagProductCat, "category", "", "category id")
		c.Flags().StringVar(&flagProductStore, "store", "", "store id")
		c.Flags().BoolVar(&flagInStock, "in-stock", true, "whether the product is in stock")
		c.Flags().IntVar(&flagQuantity, "quantity", 0, "quantity available")
	}
	analyticsCmd.Flags().StringVar(&flagPeriod, "period", "week", "day, week or month")
}
