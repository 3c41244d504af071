package core

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/illarion/pinguard/internal/crypto"
)

// ReadPIN reads a PIN from the terminal without echoing
func ReadPIN(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	pin, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after input

	if err != nil {
		return nil, fmt.Errorf("failed to read PIN: %w", err)
	}

	return pin, nil
}

// ReadPINConfirm reads a PIN twice and ensures both entries match
func ReadPINConfirm() ([]byte, error) {
	pin1, err := ReadPIN("Enter PIN: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(pin1)

	pin2, err := ReadPIN("Confirm PIN: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(pin2)

	if !crypto.ConstantTimeCompare(pin1, pin2) {
		return nil, fmt.Errorf("PINs do not match")
	}

	// Return a copy of the PIN
	result := make([]byte, len(pin1))
	copy(result, pin1)
	return result, nil
}

// GetPINFromEnv reads the PIN from the PINGUARD_PIN environment variable
func GetPINFromEnv() []byte {
	pin := os.Getenv("PINGUARD_PIN")
	if pin == "" {
		return nil
	}
	// Return a copy to avoid issues when clearing the bytes
	result := make([]byte, len(pin))
	copy(result, []byte(pin))
	return result
}
