package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wardenhq/wardenctl/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the login session",
	Long: `Manage the local login session for the Warden platform.

The session (access token and user profile) is persisted under ~/.warden so
it survives between invocations. A persisted session whose token has expired
is discarded on the next command.

Subcommands:
  login   Login with username/email and password
  logout  Logout and remove the persisted session
  status  Show the current session

Examples:
  wardenctl auth login --user admin@acme.example.com
  wardenctl auth status
  wardenctl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the platform",
	Long: `Login to the Warden platform with your username or email and password.

Missing credentials are prompted for interactively. After logging in, the
session is saved locally.

Examples:
  wardenctl auth login --user admin@acme.example.com --password secret
  wardenctl auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if user == "" {
			user, err = tui.PromptForString(tui.Prompt{
				Message:     "Username or email",
				Placeholder: "admin@acme.example.com",
				Required:    true,
			})
			if err != nil {
				return err
			}
		}
		if password == "" {
			password, err = tui.PromptForPassword("Password")
			if err != nil {
				return err
			}
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.authority.Login(cmd.Context(), user, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		u := rt.authority.User()
		fmt.Printf("Logged in as %s (%s)\n", u.Username, u.Tenant.Name)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and remove the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if !rt.authority.IsAuthenticated() {
			fmt.Println("Not logged in.")
			// Clear anyway; an expired or partial session may remain.
			rt.authority.Logout()
			return nil
		}

		username := rt.authority.User().Username
		rt.authority.Logout()
		fmt.Printf("Logged out: %s\n", username)
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if !rt.authority.IsAuthenticated() {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'wardenctl auth login' to authenticate.")
			return nil
		}

		u := rt.authority.User()

		titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Width(10)

		fmt.Println(titleStyle.Render("Logged in"))
		fmt.Printf("%s %s\n", labelStyle.Render("User:"), u.Username)
		fmt.Printf("%s %s\n", labelStyle.Render("Name:"), u.FullName)
		fmt.Printf("%s %s\n", labelStyle.Render("Email:"), u.Email)
		fmt.Printf("%s %s (%s)\n", labelStyle.Render("Tenant:"), u.Tenant.Name, u.Tenant.Slug)
		if len(u.Roles) > 0 {
			fmt.Printf("%s %s\n", labelStyle.Render("Roles:"), strings.Join(u.Roles, ", "))
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("user", "", "Username or email")
	authLoginCmd.Flags().String("password", "", "Password (prompted when omitted)")

	rootCmd.AddCommand(authCmd)
}
