package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/meysamhadeli/renamai/config"
	"github.com/meysamhadeli/renamai/constants/lipgloss"
	"github.com/meysamhadeli/renamai/eligibility"
	"github.com/meysamhadeli/renamai/logging"
	"github.com/meysamhadeli/renamai/providers"
	"github.com/meysamhadeli/renamai/providers/contracts"
	"github.com/meysamhadeli/renamai/renamer"
	"github.com/meysamhadeli/renamai/suggestion"
	"github.com/meysamhadeli/renamai/token_management"
	contracts_token "github.com/meysamhadeli/renamai/token_management/contracts"
	"github.com/meysamhadeli/renamai/utils"
	"github.com/spf13/cobra"
)

// RootDependencies holds everything a run needs, built once from the configuration.
type RootDependencies struct {
	Config              *config.Config
	Cwd                 string
	CurrentChatProvider contracts.IChatAIProvider
	TokenManagement     contracts_token.ITokenManagement
	Filter              *eligibility.Filter
	Suggester           *suggestion.Suggester
	Logger              *logging.Logger
}

var rootCmd = NewRootCmd()

// NewRootCmd builds the renamai command with its flags.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renamai <directory>",
		Short: "Rename the files of a directory with names suggested by an AI model.",
		Long: `renamai lists the files directly inside <directory>, keeps the ones allowed by the
configured eligibility rules and asks an AI model for a cleaner name for each of them.
Files are renamed one at a time; a name that is already taken gets a " (N)" suffix.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "renamai version %s\n", config.DefaultConfig.Version)
				return nil
			}
			cmd.SilenceUsage = true

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			rootDependencies, err := handleRootCommand(ctx, cmd)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), lipgloss.Red.Render(err.Error()))
				return err
			}
			defer rootDependencies.Logger.Close()

			return handleRenameCommand(ctx, cmd, rootDependencies, args[0])
		},
	}
	cmd.SilenceErrors = true
	config.InitFlags(cmd)
	return cmd
}

// Execute loads .env and runs the root command.
func Execute() error {
	_ = godotenv.Load()
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !rootCmd.SilenceUsage {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
	}
	return err
}

// handleRootCommand builds the dependencies of a run. The provider, and with it
// the API key, comes first so that a missing credential stops the run before
// anything touches the filesystem or the network.
func handleRootCommand(ctx context.Context, cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd, cwd)
	if err != nil {
		return nil, err
	}

	tokenManagement := token_management.NewTokenManager(cmd.OutOrStdout())

	provider, err := providers.NewProvider(ctx, cfg.AIProviderConfig, tokenManagement)
	if err != nil {
		return nil, err
	}

	filter, err := eligibility.NewFilter(cfg.EligibilityRules, cfg.RequireAllRules)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &RootDependencies{
		Config:              cfg,
		Cwd:                 cwd,
		CurrentChatProvider: provider,
		TokenManagement:     tokenManagement,
		Filter:              filter,
		Suggester:           suggestion.NewSuggester(provider, cfg, logger),
		Logger:              logger,
	}, nil
}

func handleRenameCommand(ctx context.Context, cmd *cobra.Command, rootDependencies *RootDependencies, dir string) error {
	out := cmd.OutOrStdout()
	cfg := rootDependencies.Config

	var confirm renamer.ConfirmFunc
	if cfg.Interactive && !cfg.DryRun {
		reader := bufio.NewReader(cmd.InOrStdin())
		confirm = func(plan renamer.RenamePlan) (bool, error) {
			return utils.ConfirmPrompt(fmt.Sprintf("  Rename '%s' to '%s'?", plan.Original, plan.Final), reader, out)
		}
	}

	r := renamer.New(renamer.Options{
		Filter:             rootDependencies.Filter,
		Suggester:          rootDependencies.Suggester,
		MaxDuplicateSuffix: cfg.MaxDuplicateSuffix,
		DryRun:             cfg.DryRun,
		Confirm:            confirm,
		Reporter:           renamer.NewConsoleReporter(out, confirm == nil && isTerminal(out)),
		Logger:             rootDependencies.Logger,
	})

	stats, err := r.Run(ctx, dir)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, lipgloss.Yellow.Render("\n🔄 Exiting..."))
		return nil
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), lipgloss.Red.Render(err.Error()))
		return err
	}
	if stats.DirMissing || stats.Eligible == 0 {
		return nil
	}

	fmt.Fprintln(out)
	if cfg.DryRun {
		renames := make([]utils.Rename, 0, len(stats.Plans))
		for _, plan := range stats.Plans {
			renames = append(renames, utils.Rename{From: plan.Original, To: plan.Final})
		}
		if err := utils.RenderPlan(out, dir, renames, cfg.Theme); err != nil {
			fmt.Fprintln(out, lipgloss.Red.Render(fmt.Sprintf("Error rendering plan: %v", err)))
		}
	}

	if summary, err := renamer.RenderSummary(stats); err == nil {
		fmt.Fprintln(out, summary)
	}
	total, input, output := rootDependencies.TokenManagement.GetCurrentTokenUsage()
	rootDependencies.Logger.Info("token usage",
		"provider", rootDependencies.CurrentChatProvider.Name(),
		"requests", rootDependencies.Suggester.Requests(),
		"total_tokens", total, "input_tokens", input, "output_tokens", output)
	rootDependencies.TokenManagement.DisplayTokens(
		rootDependencies.CurrentChatProvider.Name(),
		rootDependencies.Suggester.Fingerprint(),
		rootDependencies.Suggester.Requests(),
	)
	fmt.Fprintln(out, lipgloss.Green.Render("\nDirectory processing complete!"))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
