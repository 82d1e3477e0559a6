// Command credcheck resolves the default credential provider chain and
// prints the resulting credential (with the secret and session token
// redacted) as a smoke test that exercises the whole provider stack
// end-to-end.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/soto-project/aws-credential-core/factory"
	"github.com/soto-project/aws-credential-core/logging"
	"github.com/soto-project/aws-credential-core/provider"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool
	var profile string
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "credcheck",
		Short: "Resolve the default AWS credential chain and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), verbose, profile, time.Duration(timeoutSeconds)*time.Second)
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log provider selection at debug level")
	cmd.Flags().StringVar(&profile, "profile", "", "shared credentials file profile (defaults to AWS_PROFILE or \"default\")")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 5, "seconds to wait for the chain to resolve")
	return cmd
}

func run(w io.Writer, verbose bool, profile string, timeout time.Duration) error {
	providerCtx := provider.NewContext()
	if verbose {
		l := logrus.New()
		l.SetLevel(logrus.DebugLevel)
		providerCtx = providerCtx.WithLogger(logging.NewWithLogger(l))
	}
	if profile != "" {
		if err := os.Setenv("AWS_PROFILE", profile); err != nil {
			return fmt.Errorf("setting AWS_PROFILE: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	chain := factory.DefaultChain(ctx, providerCtx)
	cred, err := chain.GetCredential(ctx)
	if err != nil {
		return fmt.Errorf("resolving credential chain: %w", err)
	}

	if cred.IsEmpty() {
		fmt.Fprintln(w, "no credential found; signing would be skipped")
		return nil
	}

	expiration := "never"
	if cred.Expiration != nil {
		expiration = cred.Expiration.Format(time.RFC3339)
	}

	fmt.Fprintf(w, "source=%s access_key_id=%s secret_access_key=%s session_token=%s expiration=%s\n",
		cred.Source, cred.AccessKeyID, redact(cred.SecretAccessKey), redact(cred.SessionToken), expiration)
	return nil
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return strings.Repeat("*", len(s))
}
