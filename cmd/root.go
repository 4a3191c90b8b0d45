package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"credflow-console/internal/api"
	"credflow-console/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "credflow-console",
	Short: "Operator console for the CredFlow credit management platform",
	Long: `CredFlow Console - command-line access to the CredFlow dunning and
collections backend.

Command groups:
  configure   - Set the backend URL and output preferences
  login       - Authenticate and cache a session token
  rules       - Manage dunning rules and render the collections timeline
  templates   - Manage notification templates, including AI drafting
  dashboard   - Live collection stats and on-demand engine runs
  analytics   - Aging, action and performance reports with paginated logs
  bpo         - BPO agent task queue and call logging
  customer    - Customer self-service billing surfaces
  export      - Inspect past timeline exports in S3
  completion  - Generate shell completion scripts

Workflow:
  1. Configure: credflow-console configure --url https://credflow.example.com
  2. Login:     credflow-console login --username admin
  3. Work:      credflow-console rules timeline --output html --html-file timeline.html`,
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for credflow-console.

To load completions:

Bash:
  $ source <(credflow-console completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ credflow-console completion bash > /etc/bash_completion.d/credflow-console
  # macOS:
  $ credflow-console completion bash > $(brew --prefix)/etc/bash_completion.d/credflow-console

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ credflow-console completion zsh > "${fpath[1]}/_credflow-console"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ credflow-console completion fish | source

  # To load completions for each session, execute once:
  $ credflow-console completion fish > ~/.config/fish/completions/credflow-console.fish

PowerShell:
  PS> credflow-console completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> credflow-console completion powershell > credflow-console.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			err = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			err = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			err = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completion: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// commandContext returns a context canceled on SIGINT/SIGTERM so in-flight
// API calls abort cleanly.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// anonymousClient builds a client without a session token, for login and
// register.
func anonymousClient() (*api.Client, *config.Profile, error) {
	profile, err := config.LoadProfile()
	if err != nil {
		return nil, nil, err
	}
	client := api.NewClient(api.Session{BaseURL: profile.BaseURL})
	if profile.RequestRetries > 0 {
		client.SetRetryCount(profile.RequestRetries)
	}
	return client, profile, nil
}

// sessionClient builds a client from the cached session. A 401 from the
// backend evicts the cache so the next command prompts a fresh login.
func sessionClient() (*api.Client, *config.Profile, error) {
	profile, err := config.LoadProfile()
	if err != nil {
		return nil, nil, err
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, nil, err
	}
	if creds == nil {
		return nil, nil, fmt.Errorf("not logged in: run 'credflow-console login' first")
	}

	client := api.NewClient(api.Session{BaseURL: profile.BaseURL, Token: creds.Token})
	if profile.RequestRetries > 0 {
		client.SetRetryCount(profile.RequestRetries)
	}
	client.OnUnauthorized(func() {
		if err := config.ClearCredentials(); err == nil {
			fmt.Fprintln(os.Stderr, "Session expired, cached credentials removed. Run 'credflow-console login' again.")
		}
	})
	return client, profile, nil
}

func init() {
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(bpoCmd)
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(completionCmd)
}
