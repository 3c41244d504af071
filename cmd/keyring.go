package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/pinguard/internal/keyring"
	"github.com/illarion/pinguard/internal/keys"
	"github.com/illarion/pinguard/internal/storage"
)

// KeyringEnable moves the key record into the OS keyring
func KeyringEnable(dbPath string) {
	app := OpenApp(dbPath)
	defer app.Close()

	if app.Backend == "OS keyring" {
		fmt.Println("Key record already stored in OS keyring")
		return
	}

	ring := keyring.New()

	// Migrate an existing key record; a missing record just means the key
	// has not been created yet and will be generated in the keyring later.
	record, err := app.Store.Get(keys.KeyRecordName)
	switch {
	case err == nil:
		if err := ring.Put(keys.KeyRecordName, record); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to store key in keyring: %s\n", err)
			os.Exit(1)
		}
		if err := app.Store.Delete(keys.KeyRecordName); err != nil {
			HandleError(err)
		}
	case !errors.Is(err, storage.ErrNotFound):
		HandleError(err)
	}

	if err := app.Store.Put(backendRecord, []byte(backendKeyring)); err != nil {
		HandleError(err)
	}

	fmt.Println("Key record stored in OS keyring")
}

// KeyringDisable moves the key record back into the database
func KeyringDisable(dbPath string) {
	app := OpenApp(dbPath)
	defer app.Close()

	if app.Backend != "OS keyring" {
		fmt.Println("Key record already stored in database")
		return
	}

	ring := keyring.New()

	record, err := ring.Get(keys.KeyRecordName)
	switch {
	case err == nil:
		if err := app.Store.Put(keys.KeyRecordName, record); err != nil {
			HandleError(err)
		}
		if err := ring.Delete(keys.KeyRecordName); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove key from keyring: %s\n", err)
		}
	case !errors.Is(err, storage.ErrNotFound):
		HandleError(err)
	}

	if err := app.Store.Delete(backendRecord); err != nil {
		HandleError(err)
	}

	fmt.Println("Key record stored in database")
}

// KeyringStatus reports where the key record lives
func KeyringStatus(dbPath string) {
	app := OpenApp(dbPath)
	defer app.Close()

	fmt.Printf("Key backend: %s\n", app.Backend)
	if _, err := app.KeyStore.Get(keys.KeyRecordName); err == nil {
		fmt.Println("Key record: present")
	} else {
		fmt.Println("Key record: not created yet")
	}
}
