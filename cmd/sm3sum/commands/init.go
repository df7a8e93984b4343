package commands

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/bytom/sm3/config"
)

var initFilesCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file under --home",
	Args:  cobra.NoArgs,
	RunE:  initFiles,
}

func init() {
	RootCmd.AddCommand(initFilesCmd)
}

func initFiles(cmd *cobra.Command, args []string) error {
	if err := cfg.EnsureRoot(config.RootDir); err != nil {
		return err
	}
	log.WithFields(log.Fields{"module": logModule, "config": config.ConfigFile()}).Info("Initialized sm3sum")
	return nil
}
