package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/app/models"
)

var (
	flagOffline  bool
	flagSearch   string
	flagCategory string
	flagStore    string
)

// bodega products
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		filters := api.ProductFilters{
			CategoryID: flagCategory,
			StoreID:    flagStore,
			Search:     flagSearch,
		}

		var products []models.Product
		if flagOffline {
			products, err = a.Catalog.OfflineProducts(filters)
		} else {
			products, err = a.Catalog.Products(cmd.Context(), filters)
		}
		if err != nil {
			return err
		}

		if len(products) == 0 {
			fmt.Println(a.Locale.T("catalog.noResults"))
			return nil
		}
		for _, p := range products {
			stock := ""
			if !p.InStock {
				stock = "  [" + a.Locale.T("catalog.outOfStock") + "]"
			}
			fmt.Printf("%-26s %-28s $%8.2f%s\n", p.ID, p.Name, p.Price, stock)
		}
		return nil
	},
}

// bodega product <id>
var productShowCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		var p *models.Product
		if flagOffline {
			p, err = a.Catalog.OfflineProduct(args[0])
		} else {
			p, err = a.Catalog.Product(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}

		fmt.Printf("%-14s %s\n", "name:", p.Name)
		fmt.Printf("%-14s $%.2f\n", "price:", p.Price)
		fmt.Printf("%-14s %s\n", "description:", p.Description)
		fmt.Printf("%-14s %s\n", "category:", p.CategoryID)
		fmt.Printf("%-14s %s\n", "store:", p.StoreID)
		fmt.Printf("%-14s %t\n", "in stock:", p.InStock)
		return nil
	},
}

// bodega categories
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		var categories []models.Category
		if flagOffline {
			categories, err = a.Catalog.OfflineCategories()
		} else {
			categories, err = a.Catalog.Categories(cmd.Context())
		}
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%-26s %s\n", c.ID, c.Name)
		}
		return nil
	},
}

// bodega stores
var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		var stores []models.Store
		if flagOffline {
			stores, err = a.Catalog.OfflineStores()
		} else {
			stores, err = a.Catalog.Stores(cmd.Context())
		}
		if err != nil {
			return err
		}
		for _, s := range stores {
			rating := ""
			if s.Rating > 0 {
				rating = fmt.Sprintf("  (%.1f)", s.Rating)
			}
			fmt.Printf("%-26s %-28s %s%s\n", s.ID, s.Name, s.Address, rating)
		}
		return nil
	},
}

// bodega sync
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the offline catalog snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if err := a.Catalog.Sync(cmd.Context()); err != nil {
			return err
		}
		if at, ok := a.Catalog.LastSync(); ok {
			fmt.Printf("snapshot refreshed at %s\n", at.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

// bodega health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe backend liveness",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		h, err := a.Gateway.HealthCheck(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("status: %s\n", h.Status)
		if h.Message != "" {
			fmt.Printf("message: %s\n", h.Message)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{productsCmd, productShowCmd, categoriesCmd, storesCmd} {
		c.Flags().BoolVar(&flagOffline, "offline", false, "read from the local snapshot instead of the backend")
	}
	productsCmd.Flags().StringVar(&flagSearch, "search", "", "match name or description")
	productsCmd.Flags().StringVar(&flagCategory, "category", "", "filter by category id")
	productsCmd.Flags().StringVar(&flagStore, "store", "", "filter by store id")
}
