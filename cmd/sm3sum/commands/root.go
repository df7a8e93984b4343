package commands

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/bytom/sm3/config"
	"github.com/bytom/sm3/errors"
	sumlog "github.com/bytom/sm3/log"
	"github.com/bytom/sm3/util"
	"github.com/bytom/sm3/version"
)

const logModule = "sm3sum"

// DebugEnv, when set to a non-empty value, pins the log level to debug and
// adds call sites to console entries.
const DebugEnv = "SM3_DEBUG"

var (
	config = cfg.DefaultConfig()

	// fileLog is set when --log_to_file is on and closed by Execute.
	fileLog *sumlog.SumHook
)

// commandError is an error used to signal different error situations in command handling.
type commandError struct {
	s         string
	userError bool
	code      int
}

func (c commandError) Error() string {
	return c.s
}

func (c commandError) isUserError() bool {
	return c.userError
}

func newUserError(a ...interface{}) commandError {
	return commandError{s: fmt.Sprint(a...), userError: true, code: util.ErrLocalExe}
}

func newSystemError(code int, a ...interface{}) commandError {
	return commandError{s: fmt.Sprint(a...), userError: false, code: code}
}

func newSystemErrorF(code int, format string, a ...interface{}) commandError {
	return commandError{s: fmt.Sprintf(format, a...), userError: false, code: code}
}

// Catch some of the obvious user errors from Cobra.
// We don't want to show the usage message for every error.
var userErrorRegexp = regexp.MustCompile("argument|flag|shorthand")

func isUserError(err error) bool {
	if cErr, ok := err.(commandError); ok {
		return cErr.isUserError()
	}

	return userErrorRegexp.MatchString(err.Error())
}

// RootCmd hashes its arguments, like the sum subcommand.
var RootCmd = &cobra.Command{
	Use:               "sm3sum [file...]",
	Short:             "Print or check SM3 (GB/T 32905-2016) checksums",
	Long:              "With no file, or when file is -, read standard input.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              runSum,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("home", cfg.DefaultDataDir(), "root directory for config file and logs")
	flags.String("log_level", config.LogLevel, "log level (debug, info, warn, error)")
	flags.Bool("log_to_file", false, "write logs to rotating files under the log directory")
	flags.Bool("tag", config.Hash.Tag, "create a BSD-style checksum")
	flags.Int("read_buffer", config.Hash.ReadBuffer, "bytes read from an input per call")
	flags.StringP("text", "s", "", "hash the given string instead of files")

	viper.BindPFlag("home", flags.Lookup("home"))
	viper.BindPFlag("log_level", flags.Lookup("log_level"))
	viper.BindPFlag("log_to_file", flags.Lookup("log_to_file"))
	viper.BindPFlag("hash.tag", flags.Lookup("tag"))
	viper.BindPFlag("hash.read_buffer", flags.Lookup("read_buffer"))
}

// loadConfig merges the config file under --home with the flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	config = cfg.DefaultConfig()
	config.SetRoot(viper.GetString("home"))
	if err := config.ExpandRoot(); err != nil {
		return err
	}

	viper.SetConfigType("toml")
	viper.SetConfigFile(config.ConfigFile())
	if _, err := os.Stat(config.ConfigFile()); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrap(err, "read config file")
		}
	} else if err := viper.ReadConfig(strings.NewReader("")); err != nil {
		return errors.Wrap(err, "reset config")
	}

	if err := viper.Unmarshal(config); err != nil {
		return errors.Wrap(err, "unmarshal config")
	}
	if err := config.ExpandRoot(); err != nil {
		return err
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return newUserError("invalid log_level ", config.LogLevel)
	}
	if os.Getenv(DebugEnv) == "" {
		log.SetLevel(level)
	}
	if viper.GetBool("log_to_file") {
		hook, err := sumlog.InitLogFile(config)
		if err != nil {
			return errors.Wrap(err, "init log file")
		}
		fileLog = hook
	}

	if ok, err := version.CompatibleWith(config.Version); err != nil || !ok {
		log.WithFields(log.Fields{"module": logModule, "config_version": config.Version, "version": version.Version}).Warn("config file was written by an incompatible version")
	}
	if config.Hash.ReadBuffer <= 0 {
		return newUserError("read_buffer must be positive")
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd, err := RootCmd.ExecuteC()
	if fileLog != nil {
		if cerr := fileLog.Close(); cerr != nil {
			cmd.PrintErrln("sm3sum: close log files:", cerr)
		}
		fileLog = nil
	}
	if err == nil {
		return util.Success
	}

	cmd.PrintErrln("Error:", strings.TrimRight(err.Error(), "\n"))
	if isUserError(err) {
		cmd.PrintErrln(cmd.UsageString())
	}
	if cErr, ok := errors.Root(err).(commandError); ok {
		return cErr.code
	}
	return util.ErrLocalExe
}
