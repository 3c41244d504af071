package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/pinguard/internal/crypto"
)

// Set stores a new PIN, replacing any existing one
func Set(dbPath string) {
	app := OpenApp(dbPath)
	defer app.Close()

	pin, err := GetPINForSet()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(pin)

	if !app.Creds.Save(string(pin)) {
		fmt.Fprintln(os.Stderr, "Error: failed to save PIN (empty PIN or storage failure)")
		os.Exit(1)
	}

	// A fresh PIN starts with a clean attempt slate
	app.Policy.ResetFailedAttempts()

	fmt.Println("PIN saved")
}
