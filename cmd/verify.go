package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/pinguard/internal/crypto"
)

// Verify validates a candidate PIN through the lockout policy
func Verify(dbPath string) {
	app := OpenApp(dbPath)
	defer app.Close()

	if !app.Creds.HasStored() {
		fmt.Fprintln(os.Stderr, "Error: no PIN has been set")
		os.Exit(1)
	}

	pin, err := GetPIN("Enter PIN: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(pin)

	if app.Policy.Validate(string(pin)) {
		fmt.Println("PIN verified")
		return
	}

	if msg := app.Policy.ErrorMessage(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	} else {
		fmt.Fprintln(os.Stderr, "Verification failed")
	}
	os.Exit(1)
}
