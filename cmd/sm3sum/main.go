package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/bytom/sm3/cmd/sm3sum/commands"
)

func main() {
	configureLogging(log.StandardLogger(), os.Getenv(commands.DebugEnv) != "")
	os.Exit(commands.Execute())
}
