package commands

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bytom/sm3/common"
	"github.com/bytom/sm3/crypto"
	"github.com/bytom/sm3/crypto/sm3"
	"github.com/bytom/sm3/errors"
	"github.com/bytom/sm3/util"
)

const stdinName = "-"

var sumCmd = &cobra.Command{
	Use:   "sum [file...]",
	Short: "Print SM3 checksums",
	RunE:  runSum,
}

func init() {
	RootCmd.AddCommand(sumCmd)
}

func runSum(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if cmd.Flags().Changed("text") {
		text, err := cmd.Flags().GetString("text")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, sm3.SumHex(text))
		if len(args) == 0 {
			return nil
		}
	}

	if len(args) == 0 {
		args = []string{stdinName}
	}

	failed := 0
	for _, name := range args {
		h, err := hashFile(cmd.InOrStdin(), name, config.Hash.ReadBuffer)
		if err != nil {
			log.WithFields(log.Fields{"module": logModule, "file": name, "err": err}).Debug("hash failed")
			cmd.PrintErrf("sm3sum: %s: %v\n", name, err)
			failed++
			continue
		}

		log.WithFields(log.Fields{"module": logModule, "file": name, "digest": h}).Debug("hashed")
		fmt.Fprintln(out, formatLine(h, name, config.Hash.Tag))
	}

	if failed > 0 {
		return newSystemErrorF(util.ErrIO, "%d of %d inputs could not be read", failed, len(args))
	}
	return nil
}

// hashFile digests the named file, or stdin when name is "-".
func hashFile(stdin io.Reader, name string, bufSize int) (common.Hash, error) {
	if name == stdinName {
		return crypto.Sm3Reader(stdin, bufSize)
	}

	f, err := os.Open(name)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "open input")
	}
	defer f.Close()

	return crypto.Sm3Reader(f, bufSize)
}

// formatLine renders one checksum line in GNU ("digest  name") or BSD
// ("SM3 (name) = digest") layout.
func formatLine(h common.Hash, name string, tag bool) string {
	if tag {
		return fmt.Sprintf("SM3 (%s) = %s", name, h)
	}
	return fmt.Sprintf("%s  %s", h, name)
}
