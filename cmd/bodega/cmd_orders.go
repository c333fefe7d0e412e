package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/app/models"
	"github.com/shashiranjanraj/bodega/internal/app"
	"github.com/shashiranjanraj/bodega/pkg/collection"
)

// orderStatusLabel localizes backend status codes for display. Unknown
// statuses fall through to the raw code.
func orderStatusLabel(a *app.App) func(string) string {
	return func(status string) string {
		if label := a.Locale.T("orders.status." + status); label != "orders.status."+status {
			return label
		}
		return status
	}
}

var (
	flagAddress  string
	flagNotes    string
	flagStatus   string
	flagDateFrom string
	flagDateTo   string
)

func printOrder(o *models.Order, statusLabel func(string) string) {
	fmt.Printf("order %s  %s  $%.2f\n", o.ID, statusLabel(o.Status), o.Total)
	for _, item := range o.Items {
		fmt.Printf("  %-28s %3d x $%8.2f = $%8.2f\n",
			item.ProductName, item.Quantity, item.Price, item.Total)
	}
	if o.DeliveryAddress != "" {
		fmt.Printf("  address: %s\n", o.DeliveryAddress)
	}
	if o.Notes != "" {
		fmt.Printf("  notes:   %s\n", o.Notes)
	}
}

func printOrderRows(orders []models.Order, statusLabel func(string) string) {
	for _, o := range orders {
		fmt.Printf("%-26s %-14s %3d items  $%8.2f  %s\n",
			o.ID, statusLabel(o.Status), len(o.Items), o.Total,
			o.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

// bodega checkout
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if !a.Session.IsAuthenticated() {
			return fmt.Errorf("sign in first")
		}
		if a.Cart.IsEmpty() {
			return fmt.Errorf("%s", a.Locale.T("cart.empty"))
		}
		if flagAddress == "" {
			return fmt.Errorf("--address is required")
		}

		user, _ := a.Session.User()
		in := models.OrderCreate{
			Items:           a.Cart.OrderItems(),
			DeliveryAddress: flagAddress,
			Phone:           user.Phone,
			Notes:           flagNotes,
		}
		if cmd.Flags().Changed("phone") {
			in.Phone = flagPhone
		}

		order, err := a.Gateway.CreateOrder(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("%s: %w", a.Locale.T("checkout.orderFailed"), err)
		}

		// The cart only empties once the backend confirmed the order.
		a.Cart.Clear()

		fmt.Println(a.Locale.T("checkout.orderPlaced"))
		printOrder(order, orderStatusLabel(a))
		return nil
	},
}

// bodega orders
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		orders, err := a.Gateway.GetUserOrders(cmd.Context())
		if err != nil {
			return err
		}
		printOrderRows(orders, orderStatusLabel(a))
		return nil
	},
}

// bodega orders:show <id>
var orderShowCmd = &cobra.Command{
	Use:   "orders:show <id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		order, err := a.Gateway.GetOrder(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printOrder(order, orderStatusLabel(a))
		return nil
	},
}

// bodega orders:all
var ordersAllCmd = &cobra.Command{
	Use:   "orders:all",
	Short: "List all orders (staff)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		orders, err := a.Gateway.GetAllOrders(cmd.Context(), api.OrderFilters{
			Status:   flagStatus,
			DateFrom: flagDateFrom,
			DateTo:   flagDateTo,
		})
		if err != nil {
			return err
		}
		label := orderStatusLabel(a)
		printOrderRows(orders, label)

		if len(orders) > 0 {
			byStatus := collection.GroupBy(orders, func(o models.Order) string { return o.Status })
			fmt.Println("by status:")
			for _, s := range models.OrderStatuses {
				if group, ok := byStatus[s]; ok {
					fmt.Printf("  %-14s %d\n", label(s), len(group))
				}
			}
		}
		return nil
	},
}

// bodega orders:status <id> <status>
var orderStatusCmd = &cobra.Command{
	Use:   "orders:status <id> <status>",
	Short: "Move an order to a new status (staff)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		if !collection.Contains(models.OrderStatuses, func(s string) bool { return s == args[1] }) {
			return fmt.Errorf("unknown status %q; one of %v", args[1], models.OrderStatuses)
		}

		order, err := a.Gateway.UpdateOrderStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		printOrder(order, orderStatusLabel(a))
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&flagAddress, "address", "", "delivery address")
	checkoutCmd.Flags().StringVar(&flagPhone, "phone", "", "contact phone (defaults to profile phone)")
	checkoutCmd.Flags().StringVar(&flagNotes, "notes", "", "delivery notes")

	ordersAllCmd.Flags().StringVar(&flagStatus, "status", "", "filter by status")
	ordersAllCmd.Flags().StringVar(&flagDateFrom, "from", "", "filter from date (YYYY-MM-DD)")
	ordersAllCmd.Flags().StringVar(&flagDateTo, "to", "", "filter to date (YYYY-MM-DD)")
}
