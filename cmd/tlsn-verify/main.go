package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tlsn-verify",
	Short: "Offline verifier for TLS-notarization proofs",
	Long: `tlsn-verify checks a notary-produced proof artifact offline: it
validates the notary's signature, recomputes every transcript commitment
over the disclosed bytes, reconciles disclosed and redacted ranges, and
prints the resulting transcript with redacted spans marked.

The proof file is read locally and never leaves the machine.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tlsn-verify v0.1.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Optional .env for notary key paths and log mode.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// parseKeySpec splits a repeatable "--key id=value" flag. A bare value
// without an id registers under "default", matching artifacts produced
// with a single notary.
func parseKeySpec(spec string) (id, value string) {
	if i := strings.IndexByte(spec, '='); i >= 0 {
		return spec[:i], spec[i+1:]
	}
	return "default", spec
}
