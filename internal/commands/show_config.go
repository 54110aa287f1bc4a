package toolstream

import (
	"github.com/fileshot/toolstream/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showCmd groups the 'show' subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration details",
}

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			Debug:    viper.GetBool("debug"),
			JSONMode: viper.GetBool("jsonMode"),
			LogFile:  viper.GetString("logFile"),
		}
		file := ""
		if configLoaded {
			file = viper.ConfigFileUsed()
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, GetConfig(), fallback)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}
