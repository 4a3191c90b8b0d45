package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"credflow-console/internal/api"
	"credflow-console/internal/config"

	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string

	registerUsername string
	registerEmail    string
	registerPassword string
	registerFullName string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and cache a session token",
	Long: `Authenticate against the backend and cache the session token for
subsequent commands.

The password can be passed with --password, the CREDFLOW_PASSWORD environment
variable, or typed at the prompt.

Examples:
  credflow-console login --username admin
  CREDFLOW_PASSWORD=secret credflow-console login --username admin`,
	Run: func(cmd *cobra.Command, args []string) {
		runLogin()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the cached session token",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.ClearCredentials(); err != nil {
			log.Fatalf("Error removing cached session: %v", err)
		}
		fmt.Println("Logged out")
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a customer account and log in",
	Run: func(cmd *cobra.Command, args []string) {
		runRegister()
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile of the current session",
	Run: func(cmd *cobra.Command, args []string) {
		runWhoami()
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (or CREDFLOW_PASSWORD env var)")
	loginCmd.MarkFlagRequired("username")

	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address (required)")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (or CREDFLOW_PASSWORD env var)")
	registerCmd.Flags().StringVar(&registerFullName, "full-name", "", "Full name")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
}

func resolvePassword(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CREDFLOW_PASSWORD"); env != "" {
		return env
	}
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Error reading password: %v", err)
	}
	return strings.TrimRight(line, "\r\n")
}

func buildLoginRequest() api.LoginRequest {
	return api.LoginRequest{
		Username: loginUsername,
		Password: resolvePassword(loginPassword),
	}
}

func buildRegisterRequest() api.RegisterRequest {
	return api.RegisterRequest{
		Username: registerUsername,
		Email:    registerEmail,
		Password: resolvePassword(registerPassword),
		FullName: registerFullName,
	}
}

func runLogin() {
	client, _, err := anonymousClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := client.Login(ctx, buildLoginRequest())
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	if err := config.SaveCredentials(&config.Credentials{
		Token:    resp.JwtToken,
		Username: resp.User.Username,
		Role:     string(resp.User.Role),
	}); err != nil {
		log.Fatalf("Error caching session: %v", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.User.Username, resp.User.Role)
}

func runRegister() {
	client, _, err := anonymousClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := client.Register(ctx, buildRegisterRequest())
	if err != nil {
		log.Fatalf("Registration failed: %v", err)
	}

	if err := config.SaveCredentials(&config.Credentials{
		Token:    resp.JwtToken,
		Username: resp.User.Username,
		Role:     string(resp.User.Role),
	}); err != nil {
		log.Fatalf("Error caching session: %v", err)
	}

	fmt.Printf("Account created, logged in as %s (%s)\n", resp.User.Username, resp.User.Role)
}

func runWhoami() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	user, err := client.Profile(ctx)
	if err != nil {
		log.Fatalf("Error fetching profile: %v", err)
	}

	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email:    %s\n", user.Email)
	if user.FullName != "" {
		fmt.Printf("Name:     %s\n", user.FullName)
	}
	fmt.Printf("Role:     %s\n", user.Role)
}
