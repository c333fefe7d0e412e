package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bodega/app/locale"
)

// bodega lang
var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show the active language",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		current := a.Locale.Current()
		for _, l := range locale.Supported {
			marker := " "
			if l.Code == current {
				marker = "*"
			}
			fmt.Printf("%s %s %s  %s\n", marker, l.Flag, l.Code, l.Name)
		}
		return nil
	},
}

// bodega lang:set <code>
var langSetCmd = &cobra.Command{
	Use:   "lang:set <code>",
	Short: "Switch language (es, en, ru)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if err := a.Locale.SetLanguage(args[0]); err != nil {
			return err
		}
		fmt.Println(a.Locale.T("common.success"))
		return nil
	},
}

// bodega theme
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show the active theme and its palette",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		colors := a.Theme.Colors()
		fmt.Printf("theme: %s\n", a.Theme.Current())
		fmt.Printf("  background %s  surface %s  primary %s\n",
			colors.Background, colors.Surface, colors.Primary)
		fmt.Printf("  text %s  border %s  error %s\n",
			colors.Text, colors.Border, colors.Error)
		return nil
	},
}

// bodega theme:set <light|dark>
var themeSetCmd = &cobra.Command{
	Use:   "theme:set <light|dark>",
	Short: "Switch theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if err := a.Theme.Set(args[0]); err != nil {
			return err
		}
		fmt.Printf("theme: %s\n", a.Theme.Current())
		return nil
	},
}

// bodega theme:toggle
var themeToggleCmd = &cobra.Command{
	Use:   "theme:toggle",
	Short: "Flip between light and dark",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if err := a.Theme.Toggle(); err != nil {
			return err
		}
		fmt.Printf("theme: %s\n", a.Theme.Current())
		return nil
	},
}
