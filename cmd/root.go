package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/krishimart/krishimart/cart/cmd"
	"github.com/krishimart/krishimart/internal/common/constants"
	"github.com/krishimart/krishimart/internal/log"
	notificationCmd "github.com/krishimart/krishimart/notification/cmd"
	orderCmd "github.com/krishimart/krishimart/order/cmd"
)

func Start() {
	logger := log.InitLogger("/var/log/krishimart.log").
		With().
		Str(log.KeyAppName, constants.APP_MAIN_KRISHIMART).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "krishimart"}
	commands := []*cobra.Command{
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "order",
			Short: "Run order service",
			Run: func(cmd *cobra.Command, args []string) {
				orderCmd.RunOrderService(cmd.Context())
			},
		},
		{
			Use:   "notification",
			Short: "Run notification service",
			Run: func(cmd *cobra.Command, args []string) {
				notificationCmd.RunNotificationService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
