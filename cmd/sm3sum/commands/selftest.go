package commands

import (
	"encoding/hex"
	"strings"

	"github.com/markkurossi/tabulate"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bytom/sm3/crypto/sm3"
	"github.com/bytom/sm3/util"
)

type knownAnswer struct {
	label string
	input string
	want  string
}

var knownAnswers = []knownAnswer{
	{"empty", "", "1ab21d8355cfa17f8e61194831e81a8f22bec8c728fefb747ed035eb5082aa2b"},
	{`"abc"`, "abc", "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0"},
	{`"abcd" x16`, strings.Repeat("abcd", 16), "debe9ff92275b8a138604889c18e5a4d6fdb70e5387e5765293dcba39c0c5732"},
}

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Verify the built-in SM3 test vectors",
	Args:  cobra.NoArgs,
	RunE:  runSelftest,
}

func init() {
	RootCmd.AddCommand(selftestCmd)
}

func runSelftest(cmd *cobra.Command, args []string) error {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Input").SetAlign(tabulate.ML)
	tab.Header("Digest").SetAlign(tabulate.ML)
	tab.Header("One-shot").SetAlign(tabulate.MC)
	tab.Header("Streamed").SetAlign(tabulate.MC)

	failed := 0
	for _, ka := range knownAnswers {
		oneShot := sm3.SumHex(ka.input) == ka.want
		streamed := streamedHex(ka.input) == ka.want
		if !oneShot || !streamed {
			failed++
			log.WithFields(log.Fields{"module": logModule, "input": ka.label}).Error("known answer test failed")
		}

		row := tab.Row()
		row.Column(ka.label)
		row.Column(ka.want)
		row.Column(status(oneShot))
		row.Column(status(streamed))
	}
	tab.Print(cmd.OutOrStdout())

	if failed > 0 {
		return newSystemErrorF(util.ErrMismatch, "%d of %d known answer tests failed", failed, len(knownAnswers))
	}
	return nil
}

// streamedHex feeds s one byte at a time.
func streamedHex(s string) string {
	d := sm3.NewDigest()
	for i := 0; i < len(s); i++ {
		d.Write([]byte{s[i]})
	}
	sum := d.Finalize()
	return hex.EncodeToString(sum[:])
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}
