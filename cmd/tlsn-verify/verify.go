package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tlsn-verify/proofverifier"
	"tlsn-verify/shared"
)

var (
	pemKeySpecs []string
	ethKeySpecs []string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <proof.json>",
	Short: "Verify a proof artifact and print the transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().StringArrayVar(&pemKeySpecs, "key", nil,
		"notary P-256 public key as [id=]path-to-pem (repeatable)")
	verifyCmd.Flags().StringArrayVar(&ethKeySpecs, "eth-key", nil,
		"notary Ethereum address as [id=]0x-address (repeatable)")
	rootCmd.AddCommand(verifyCmd)
}

func buildKeyStore() (*shared.KeyStore, error) {
	keys := shared.NewKeyStore()

	specs := pemKeySpecs
	if env := shared.GetEnvOrDefault("TLSN_NOTARY_KEY", ""); env != "" {
		specs = append(specs, env)
	}
	for _, spec := range specs {
		id, path := parseKeySpec(spec)
		pemBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("notary key %q: %v", id, err)
		}
		if err := keys.AddECDSAPublicKeyPEM(id, pemBytes); err != nil {
			return nil, err
		}
	}
	for _, spec := range ethKeySpecs {
		id, addr := parseKeySpec(spec)
		if err := keys.AddEthAddress(id, addr); err != nil {
			return nil, err
		}
	}

	if keys.Len() == 0 {
		return nil, fmt.Errorf("no notary key material: pass --key/--eth-key or set TLSN_NOTARY_KEY")
	}
	return keys, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	keys, err := buildKeyStore()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read proof file: %v", err)
	}

	logger, err := shared.NewLoggerFromEnv("tlsn-verify")
	if err != nil {
		return err
	}
	defer logger.Sync()

	verifier := proofverifier.NewVerifier(keys, proofverifier.WithLogger(logger))
	transcript, err := verifier.DecodeAndVerify(raw)
	if err != nil {
		return err
	}

	fmt.Printf("Proof verified\n")
	fmt.Printf("  Session:           %s\n", transcript.SessionID)
	fmt.Printf("  Notarization time: %s\n",
		time.Unix(int64(transcript.Time), 0).UTC().Format(time.RFC3339))
	fmt.Println()

	fmt.Println("--- Sent ---")
	fmt.Println(renderSegments(transcript.Sent))
	fmt.Println("--- Received ---")
	fmt.Println(renderSegments(transcript.Recv))
	return nil
}
