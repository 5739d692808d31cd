package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

var (
	loginEmail string

	registerFirstName string
	registerLastName  string
	registerEmail     string
	registerPhone     string
	registerRole      string
	registerAccount   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your BizPilot account",
	Long: `Log in with your email and password. The password is read without echo
when running in a terminal. The access token is stored locally until logout.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a BizPilot account",
	Long: `Create a new account. Missing details are asked for interactively.
Log in afterwards with "bizpilot login".`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade your account to Pro",
	Long:  `Upgrade to Pro to unlock automation insights in generated plans.`,
	Args:  cobra.NoArgs,
	RunE:  runUpgrade,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")

	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&registerRole, "role", "User", "Role")
	registerCmd.Flags().StringVar(&registerAccount, "account", string(domain.TierFree), "Account tier: Free or Pro")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd, upgradeCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return fmt.Errorf("auth %w", errNotConfigured)
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	email := loginEmail
	if email == "" {
		email = p.line("Email", "")
	}
	password := p.password("Password")

	creds, err := authService.Login(cmd.Context(), email, password)
	if err != nil {
		return friendly(err)
	}

	cmd.Printf("Logged in as %s (%s account).\n", creds.Account.DisplayName(), creds.Tier())
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return fmt.Errorf("auth %w", errNotConfigured)
	}

	if err := authService.Logout(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return fmt.Errorf("auth %w", errNotConfigured)
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	reg := domain.Registration{
		FirstName: registerFirstName,
		LastName:  registerLastName,
		Email:     registerEmail,
		Phone:     registerPhone,
		Role:      registerRole,
		Tier:      domain.ParseAccountTier(registerAccount),
	}
	if reg.FirstName == "" {
		reg.FirstName = p.line("First name", "")
	}
	if reg.LastName == "" {
		reg.LastName = p.line("Last name", "")
	}
	if reg.Email == "" {
		reg.Email = p.line("Email", "")
	}
	if reg.Phone == "" {
		reg.Phone = p.line("Phone", "")
	}
	reg.Password = p.password("Password")

	if err := authService.Register(cmd.Context(), reg); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	cmd.Println("User registered successfully. Log in with: bizpilot login")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return fmt.Errorf("auth %w", errNotConfigured)
	}

	creds, err := authService.Current(cmd.Context())
	if err != nil {
		cmd.Println("Not logged in.")
		return nil
	}

	acct := creds.Account
	cmd.Printf("%s (%s)\n", acct.DisplayName(), acct.Initials())
	if acct.Email != "" {
		cmd.Printf("  Email:   %s\n", acct.Email)
	}
	cmd.Printf("  Account: %s\n", creds.Tier())
	if acct.Role != "" {
		cmd.Printf("  Role:    %s\n", acct.Role)
	}
	return nil
}

func runUpgrade(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return fmt.Errorf("auth %w", errNotConfigured)
	}

	tier, err := authService.Upgrade(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return friendly(err)
		}
		return fmt.Errorf("upgrade failed: %w", err)
	}

	cmd.Printf("Your account is now %s. Automation insights are unlocked.\n", tier)
	return nil
}
