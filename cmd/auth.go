package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/lyrics-grabber/internal/app"
	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/logger"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Spotify credentials management commands",
		Long: `Manage the Spotify application credentials.

Create an application at https://developer.spotify.com/dashboard to obtain
a client ID and a client secret.

Use 'auth set' to store them in the configuration file and 'auth check' to verify them.`,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	authSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Store the Spotify client credentials in the configuration file",
		Long: `Stores the Spotify client ID and client secret in the configuration file.

Values that are not passed as flags are prompted for. Other settings
in the file are kept as they are.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			clientID, _ := cmd.Flags().GetString("client-id")
			clientSecret, _ := cmd.Flags().GetString("client-secret")

			app.ExecuteAuthSetCommand(cmd.Context(), appConfig, clientID, clientSecret)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	authCheckCmd = &cobra.Command{
		Use:   "check",
		Short: "Verify the Spotify client credentials",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := config.ValidateConfig(appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
			}

			app.ExecuteAuthCheckCommand(cmd.Context(), appConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	authSetCmd.Flags().String("client-id", "", "Spotify client ID.")
	authSetCmd.Flags().String("client-secret", "", "Spotify client secret.")

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authCheckCmd)

	rootCmd.AddCommand(authCmd)
}
