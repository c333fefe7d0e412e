package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bodega/config"
	"github.com/shashiranjanraj/bodega/internal/app"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bodega",
	Short: "Bodega — storefront and delivery CLI",
	Long:  "Bodega is the command-line client for the MegaBodega delivery backend: browse the catalog, manage a cart, place orders and run courier or staff workflows.",
}

var flagAPIURL string

// boot wires the application once per invocation and restores any persisted
// session before the command body runs.
var booted *app.App

func boot(cmd *cobra.Command) (*app.App, error) {
	if booted != nil {
		return booted, nil
	}
	if flagAPIURL != "" {
		config.Set("API_BASE_URL", flagAPIURL)
	}

	a, err := app.Boot()
	if err != nil {
		return nil, err
	}
	a.Session.Hydrate(cmd.Context())
	booted = a
	return a, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "override the backend base URL")

	// Auth
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(loginGoogleCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileUpdateCmd)

	// Catalog
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(productShowCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(healthCmd)

	// Cart
	rootCmd.AddCommand(cartAddCmd)
	rootCmd.AddCommand(cartRemoveCmd)
	rootCmd.AddCommand(cartSetCmd)
	rootCmd.AddCommand(cartListCmd)
	rootCmd.AddCommand(cartClearCmd)

	// Orders
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(orderShowCmd)
	rootCmd.AddCommand(ordersAllCmd)
	rootCmd.AddCommand(orderStatusCmd)

	// Courier
	rootCmd.AddCommand(courierAvailableCmd)
	rootCmd.AddCommand(courierAcceptCmd)
	rootCmd.AddCommand(courierWatchCmd)

	// Staff
	rootCmd.AddCommand(productCreateCmd)
	rootCmd.AddCommand(productUpdateCmd)
	rootCmd.AddCommand(productDeleteCmd)
	rootCmd.AddCommand(analyticsCmd)

	// Preferences
	rootCmd.AddCommand(langCmd)
	rootCmd.AddCommand(langSetCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(themeSetCmd)
	rootCmd.AddCommand(themeToggleCmd)
}
