package cmd

import (
	"fmt"

	"github.com/illarion/pinguard/internal/keys"
)

// Status prints the credential and lockout state. Does not require a PIN.
func Status(dbPath string) {
	app := OpenApp(dbPath)
	defer app.Close()

	if app.Creds.HasStored() {
		fmt.Println("PIN: set")
	} else {
		fmt.Println("PIN: not set")
	}

	if _, err := app.KeyStore.Get(keys.KeyRecordName); err == nil {
		fmt.Printf("Key record: present (%s)\n", app.Backend)
	} else {
		fmt.Println("Key record: not created yet")
	}

	app.Policy.CheckStatus()
	fmt.Printf("Failed attempts: %d\n", app.Policy.FailedAttempts())
	if msg := app.Policy.ErrorMessage(); msg != "" {
		fmt.Println(msg)
	}
}
