package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bytom/sm3/common"
	"github.com/bytom/sm3/errors"
	"github.com/bytom/sm3/util"
)

var (
	// ErrBadDigest is returned for checksum list lines in neither GNU nor BSD form.
	ErrBadDigest = errors.New("improperly formatted SM3 checksum line")
	// ErrStdinIsList is reported for a "-" entry when the checksum list
	// itself is read from standard input.
	ErrStdinIsList = errors.New("standard input is already the checksum list")
)

var (
	bsdLine = regexp.MustCompile(`^SM3 \((.*)\) = ([0-9a-fA-F]{64})$`)
	gnuLine = regexp.MustCompile(`^([0-9a-fA-F]{64}) [ *](.+)$`)
)

var checkCmd = &cobra.Command{
	Use:   "check <checksum-file>",
	Short: "Read SM3 checksums from a file and verify them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("quiet", false, "don't print OK for each successfully verified file")
	RootCmd.AddCommand(checkCmd)
}

type checkEntry struct {
	name string
	want common.Hash
}

type checkResult struct {
	verified  int
	mismatch  int
	unread    int
	malformed int
}

// exitCode reports the most severe failure seen.
func (r checkResult) exitCode() int {
	switch {
	case r.mismatch > 0:
		return util.ErrMismatch
	case r.unread > 0:
		return util.ErrIO
	case r.malformed > 0:
		return util.ErrLocalParse
	}
	return util.Success
}

func parseChecksumLine(line string) (checkEntry, error) {
	var digest, name string
	if m := bsdLine.FindStringSubmatch(line); m != nil {
		name, digest = m[1], m[2]
	} else if m := gnuLine.FindStringSubmatch(line); m != nil {
		digest, name = m[1], m[2]
	} else {
		return checkEntry{}, errors.WithDetailf(ErrBadDigest, "%q", line)
	}

	h, err := common.HexToHash(digest)
	if err != nil {
		return checkEntry{}, errors.Sub(ErrBadDigest, err)
	}
	return checkEntry{name: name, want: h}, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	// stdin serves "-" entries only when the list comes from a file.
	var list, stdin io.Reader = cmd.InOrStdin(), nil
	if len(args) == 1 && args[0] != stdinName {
		f, err := os.Open(args[0])
		if err != nil {
			return newSystemError(util.ErrIO, err.Error())
		}
		defer f.Close()
		list, stdin = f, cmd.InOrStdin()
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	result, err := verifyChecksums(list, stdin, cmd.OutOrStdout(), cmd.ErrOrStderr(), config.Hash.ReadBuffer, quiet)
	if err != nil {
		return newSystemError(util.ErrIO, err.Error())
	}

	log.WithFields(log.Fields{
		"module":    logModule,
		"verified":  result.verified,
		"mismatch":  result.mismatch,
		"unread":    result.unread,
		"malformed": result.malformed,
	}).Debug("check finished")

	if code := result.exitCode(); code != util.Success {
		return newSystemErrorF(code, "%d mismatched, %d unreadable, %d malformed", result.mismatch, result.unread, result.malformed)
	}
	return nil
}

// verifyChecksums checks every entry of list, printing one status line per
// entry to out and warnings to errOut. stdin serves entries named "-"; a nil
// stdin makes such entries fail with ErrStdinIsList.
func verifyChecksums(list, stdin io.Reader, out, errOut io.Writer, bufSize int, quiet bool) (checkResult, error) {
	var result checkResult

	scanner := bufio.NewScanner(list)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseChecksumLine(line)
		if err != nil {
			result.malformed++
			fmt.Fprintf(errOut, "sm3sum: line %d: %v\n", lineNo, errors.Root(err))
			continue
		}

		var got common.Hash
		if entry.name == stdinName && stdin == nil {
			err = ErrStdinIsList
			fmt.Fprintf(errOut, "sm3sum: line %d: %v\n", lineNo, err)
		} else {
			got, err = hashFile(stdin, entry.name, bufSize)
		}
		switch {
		case err != nil:
			result.unread++
			fmt.Fprintf(out, "%s: FAILED open or read\n", entry.name)
		case !got.Equal(entry.want):
			result.mismatch++
			fmt.Fprintf(out, "%s: FAILED\n", entry.name)
		default:
			result.verified++
			if !quiet {
				fmt.Fprintf(out, "%s: OK\n", entry.name)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return result, errors.Wrap(err, "read checksum list")
	}

	if result.malformed > 0 {
		fmt.Fprintf(errOut, "sm3sum: WARNING: %d line(s) improperly formatted\n", result.malformed)
	}
	if result.unread > 0 {
		fmt.Fprintf(errOut, "sm3sum: WARNING: %d listed file(s) could not be read\n", result.unread)
	}
	if result.mismatch > 0 {
		fmt.Fprintf(errOut, "sm3sum: WARNING: %d computed checksum(s) did NOT match\n", result.mismatch)
	}
	return result, nil
}
