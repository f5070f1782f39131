package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/crackats/internal/config"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Hash a password for AUTH_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(_ *cobra.Command, args []string) error {
	pw, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	hash, err := pw.HashPassword(args[0])
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
