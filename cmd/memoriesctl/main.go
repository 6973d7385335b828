// Command memoriesctl manages a running memories server from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/memories-api/pkg/util"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "memoriesctl",
		Short:         "Manage the memories server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newHashCmd(), newGalleryCmd())
	return root
}

func newHashCmd() *cobra.Command {
	var useBcrypt bool
	cmd := &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print a SITE_PASSWORD_HASH value for PASSWORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := util.HashPasswordArgon2
			if useBcrypt {
				hash = util.HashPasswordBcrypt
			}
			encoded, err := hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useBcrypt, "bcrypt", false, "use bcrypt instead of argon2id")
	return cmd
}
