package cmd

import (
	"fmt"
)

// Reset deletes the stored PIN and clears the attempt state
func Reset(dbPath string) {
	app := OpenApp(dbPath)
	defer app.Close()

	app.Creds.Delete()
	app.Policy.ResetFailedAttempts()

	fmt.Println("PIN removed and attempt state cleared")
}

// RotateKey deletes the device key record. Anything encrypted under the
// old key is permanently unrecoverable, so the stored PIN is deleted too.
func RotateKey(dbPath string) {
	app := OpenApp(dbPath)
	defer app.Close()

	if err := app.Keys.ResetKey(); err != nil {
		HandleError(err)
	}
	app.Creds.Delete()
	app.Policy.ResetFailedAttempts()

	fmt.Println("Device key rotated; the previous PIN is gone and must be set again")
}
