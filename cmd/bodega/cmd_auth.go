package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/config"
	"github.com/shashiranjanraj/bodega/pkg/token"
	"github.com/shashiranjanraj/bodega/pkg/validate"
)

var (
	flagEmail           string
	flagPassword        string
	flagPasswordConfirm string
	flagFullName        string
	flagPhone           string
	flagRole            string
)

// registerForm is what `bodega register` validates before touching the
// network. Mirrors the backend's signup constraints.
type registerForm struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	FullName             string `json:"full_name" validate:"required,min=2"`
	Phone                string `json:"phone" validate:"nullable"`
	Role                 string `json:"role" validate:"required,in=customer,courier,staff"`
}

// bodega login
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if flagEmail == "" || flagPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}

		if !a.Session.Login(cmd.Context(), flagEmail, flagPassword) {
			return fmt.Errorf("%s", a.Locale.T("auth.loginFailed"))
		}
		user, _ := a.Session.User()
		fmt.Printf("signed in as %s (%s)\n", user.FullName, user.Role)
		return nil
	},
}

// bodega login:google
var loginGoogleCmd = &cobra.Command{
	Use:   "login:google",
	Short: "Sign in with Google via the browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if !a.Session.LoginWithGoogle(cmd.Context(), config.OAuthListenAddr()) {
			return fmt.Errorf("%s", a.Locale.T("auth.loginFailed"))
		}
		user, _ := a.Session.User()
		fmt.Printf("signed in as %s (%s)\n", user.FullName, user.Role)
		return nil
	},
}

// bodega register
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}

		form := registerForm{
			Email:                flagEmail,
			Password:             flagPassword,
			PasswordConfirmation: flagPasswordConfirm,
			FullName:             flagFullName,
			Phone:                flagPhone,
			Role:                 flagRole,
		}
		if errs := validate.Struct(form); validate.HasErrors(errs) {
			for field, msg := range errs {
				fmt.Printf("  %s: %s\n", field, msg)
			}
			return fmt.Errorf("invalid registration input")
		}

		in := api.RegisterInput{
			Email:    form.Email,
			Password: form.Password,
			FullName: form.FullName,
			Phone:    form.Phone,
			Role:     form.Role,
		}
		if !a.Session.Register(cmd.Context(), in) {
			return fmt.Errorf("%s", a.Locale.T("auth.registerFailed"))
		}
		user, _ := a.Session.User()
		fmt.Printf("account created, signed in as %s (%s)\n", user.FullName, user.Role)
		return nil
	},
}

// bodega logout
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		a.Session.Logout()
		fmt.Println(a.Locale.T("auth.loggedOut"))
		return nil
	},
}

// bodega whoami
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		user, ok := a.Session.User()
		if !ok {
			fmt.Println("not signed in")
			return nil
		}

		fmt.Printf("%-10s %s\n", "name:", user.FullName)
		fmt.Printf("%-10s %s\n", "email:", user.Email)
		fmt.Printf("%-10s %s\n", "role:", user.Role)
		if user.Phone != "" {
			fmt.Printf("%-10s %s\n", "phone:", user.Phone)
		}
		if claims, err := token.Peek(a.Session.Token()); err == nil && !claims.ExpiresAt.IsZero() {
			fmt.Printf("%-10s %s\n", "expires:", claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

// bodega profile:update
var profileUpdateCmd = &cobra.Command{
	Use:   "profile:update",
	Short: "Update profile fields on the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd)
		if err != nil {
			return err
		}
		if !a.Session.IsAuthenticated() {
			return fmt.Errorf("sign in first")
		}

		fields := map[string]interface{}{}
		if cmd.Flags().Changed("name") {
			fields["full_name"] = flagFullName
		}
		if cmd.Flags().Changed("phone") {
			fields["phone"] = flagPhone
		}
		if len(fields) == 0 {
			return fmt.Errorf("nothing to update; pass --name or --phone")
		}

		if !a.Session.UpdateProfile(cmd.Context(), fields) {
			return fmt.Errorf("profile update failed")
		}
		fmt.Println(a.Locale.T("common.success"))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&flagEmail, "email", "", "account email")
		c.Flags().StringVar(&flagPassword, "password", "", "account password")
	}
	registerCmd.Flags().StringVar(&flagPasswordConfirm, "password-confirm", "", "repeat the password")
	registerCmd.Flags().StringVar(&flagFullName, "name", "", "full name")
	registerCmd.Flags().StringVar(&flagPhone, "phone", "", "phone number")
	registerCmd.Flags().StringVar(&flagRole, "role", "customer", "account role (customer, courier, staff)")

	profileUpdateCmd.Flags().StringVar(&flagFullName, "name", "", "new full name")
	profileUpdateCmd.Flags().StringVar(&flagPhone, "phone", "", "new phone number")
}
