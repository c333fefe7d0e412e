package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bodega/config"
	"github.com/shashiranjanraj/bodega/pkg/logger"
	"github.com/shashiranjanraj/bodega/pkg/metrics"
)

var flagInterval time.Duration

// bodega courier:available
var courierAvailableCmd = &cobra.Command{
	Use:   "courier:available",
	Short: "List orders available for pickup",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		orders, err := a.Gateway.GetAvailableOrders(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("no orders available")
			return nil
		}
		printOrderRows(orders, orderStatusLabel(a))
		return nil
	},
}

// bodega courier:accept <id>
var courierAcceptCmd = &cobra.Command{
	Use:   "courier:accept <id>",
	Short: "Claim an available order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		order, err := a.Gateway.AcceptOrder(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(a.Locale.T("orders.accepted"))
		printOrder(order, orderStatusLabel(a))
		return nil
	},
}

// bodega courier:watch
var courierWatchCmd = &cobra.Command{
	Use:   "courier:watch",
	Short: "Poll for available orders and announce new ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if !a.Session.IsAuthenticated() {
			return fmt.Errorf("sign in first")
		}

		stop := metrics.Serve(config.MetricsAddr())
		defer stop()
		fmt.Printf("watching every %s, metrics on %s (ctrl-c to stop)\n",
			flagInterval, config.MetricsAddr())

		seen := map[string]bool{}
		ticker := time.NewTicker(flagInterval)
		defer ticker.Stop()

		for {
			metrics.WatchPolls.Inc()
			orders, err := a.Gateway.GetAvailableOrders(cmd.Context())
			if err != nil {
				// Transient backend trouble should not kill the loop, but a
				// torn-down session means every further poll would 401 too.
				if !a.Session.IsAuthenticated() {
					return fmt.Errorf("session expired, sign in again")
				}
				logger.Warn("courier: poll failed", "error", err)
			}
			for _, o := range orders {
				if seen[o.ID] {
					continue
				}
				seen[o.ID] = true
				fmt.Printf("[%s] %s  %d items  $%.2f\n",
					time.Now().Format("15:04:05"), o.ID, len(o.Items), o.Total)
			}

			select {
			case <-cmd.Context().Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	courierWatchCmd.Flags().DurationVar(&flagInterval, "interval", 15*time.Second, "poll interval")
}
