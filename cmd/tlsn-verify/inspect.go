package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tlsn-verify/proofverifier"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <proof.json>",
	Short: "Decode a proof artifact and print its structure without verifying it",
	Long: `inspect runs only the decoding stage. It prints the artifact's
version, schemes, session header, commitment layout, and disclosed
ranges. It makes no claim about authenticity; use verify for that.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read proof file: %v", err)
	}

	artifact, err := proofverifier.Decode(raw)
	if err != nil {
		return err
	}

	h := &artifact.Header
	fmt.Printf("Version:          %s\n", artifact.Version)
	fmt.Printf("Notary key id:    %s\n", artifact.NotaryKeyID)
	fmt.Printf("Signature scheme: %s (%d bytes)\n", artifact.Signature.Scheme, len(artifact.Signature.Sig))
	fmt.Printf("Session:          %s\n", h.SessionID)
	fmt.Printf("Time:             %s\n", time.Unix(int64(h.Time), 0).UTC().Format(time.RFC3339))
	fmt.Printf("Sent length:      %d\n", h.SentLen)
	fmt.Printf("Recv length:      %d\n", h.RecvLen)
	fmt.Printf("Root digest:      %s\n", hex.EncodeToString(h.RootDigest))

	fmt.Printf("\nCommitments (%d):\n", len(artifact.Commitments))
	for i, c := range artifact.Commitments {
		fmt.Printf("  %3d  %-4s [%10d, %10d)  digest=%s…\n",
			i, c.Direction, c.Start, c.End(), hex.EncodeToString(c.Digest[:8]))
	}

	fmt.Printf("\nDisclosed ranges (%d):\n", len(artifact.Disclosed))
	for i, d := range artifact.Disclosed {
		fmt.Printf("  %3d  %-4s [%10d, %10d)  %d bytes\n",
			i, d.Direction, d.Start, d.End(), len(d.Data))
	}

	fmt.Println("\nNote: inspect does not verify this artifact.")
	return nil
}
