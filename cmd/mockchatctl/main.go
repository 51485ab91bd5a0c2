package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/matheus3301/mockchat/internal/logging"
	"github.com/matheus3301/mockchat/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sessionFlag  string
	jsonFlag     bool
	logLevelFlag string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "mockchatctl",
	Short:         "Inspect mockchat sessions and seed data",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(logLevelFlag)
		if err != nil {
			return err
		}
		logger = logging.NewConsole(level)
		return session.ValidateName(sessionName())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "session name (overrides config default)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(statusCmd, chatsCmd, contactsCmd, messagesCmd, storageCmd, searchCmd)
}

func sessionName() string {
	return session.Resolve(sessionFlag)
}

func main() {
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
