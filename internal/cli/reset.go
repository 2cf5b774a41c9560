package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/security"
	"github.com/terraincognita07/wellnest/internal/services"
)

const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// passwordReader reads one line without echo; swapped in tests.
var passwordReader = readPasswordNoEcho

func newResetPasswordCommand() *cobra.Command {
	var (
		email  string
		prompt bool
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password",
		Long: `Reset a user's password. Without --prompt a temporary password is
generated and printed once.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rt, err := openRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			return runResetPassword(cmd.OutOrStdout(), rt.deps.Auth, email, prompt)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "Read the new password from the terminal")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runResetPassword(out io.Writer, auth *services.AuthService, email string, prompt bool) error {
	var (
		password string
		err      error
	)
	if prompt {
		password, err = promptNewPassword(out)
	} else {
		password, err = generateTemporaryPassword(12)
	}
	if err != nil {
		return err
	}

	if err := auth.ResetPassword(email, password); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
		case errors.Is(err, services.ErrWeakPassword):
			return errors.New("password must be at least 8 characters with upper, lower case letters and a digit")
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return errors.New("email is required")
		}
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	if !prompt {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return nil
}

func promptNewPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "New password: ")
	first, err := passwordReader(os.Stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := passwordReader(os.Stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if !bytes.Equal(first, second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

// generateTemporaryPassword draws until the result passes the password policy.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for {
		password, err := security.RandomString(length, temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
}
