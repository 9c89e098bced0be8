package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ivhu/farmstand"
)

var passwdCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash an admin password for the config file",
	Long: `Prompt for a password and print its bcrypt hash. Put the hash in
the admin.password config field instead of the plaintext password.`,
	RunE: runHashPassword,
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if input == "" {
				return errors.New("password cannot be empty")
			}
			return nil
		},
	}

	password, err := prompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	hash, err := farmstand.HashPassword(password)
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
