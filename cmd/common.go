package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/illarion/pinguard/internal/core"
	"github.com/illarion/pinguard/internal/keyring"
	"github.com/illarion/pinguard/internal/keys"
	"github.com/illarion/pinguard/internal/storage"
)

const (
	// DBFileName is the default database file in the user's home directory.
	DBFileName = ".pinguard.db"

	// backendRecord selects where the key record lives: "db" or "keyring".
	backendRecord  = "key_backend"
	backendKeyring = "keyring"
)

// App bundles the opened store and the core components for one command.
type App struct {
	Path     string
	Store    *storage.Bolt
	KeyStore storage.ScalarStore
	Backend  string
	Keys     *keys.Service
	Creds    *core.CredentialStore
	Policy   *core.LockoutPolicy
}

// OpenApp opens the database at dbPath (or the default location) and wires
// the core components. The key record store follows the configured backend:
// the database itself, or the OS keyring when enabled. Exits on failure.
func OpenApp(dbPath string) *App {
	path := resolveDBPath(dbPath)

	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	backend := "database"
	var keyStore storage.ScalarStore = store
	if v, err := store.Get(backendRecord); err == nil && string(v) == backendKeyring {
		backend = "OS keyring"
		keyStore = keyring.New()
	}

	keySvc := keys.NewService(keyStore, path)
	creds := core.NewCredentialStore(keySvc, store)
	policy, err := core.NewLockoutPolicy(creds, store, core.DefaultMaxAttempts, core.DefaultLockoutDuration)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	return &App{
		Path:     path,
		Store:    store,
		KeyStore: keyStore,
		Backend:  backend,
		Keys:     keySvc,
		Creds:    creds,
		Policy:   policy,
	}
}

// Close releases the underlying database
func (a *App) Close() {
	a.Store.Close()
}

func resolveDBPath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DBFileName
	}
	return filepath.Join(home, DBFileName)
}

// GetPIN retrieves the PIN from the environment or prompts the user.
// The caller is responsible for calling crypto.ClearBytes on the result.
func GetPIN(prompt string) ([]byte, error) {
	// Try environment variable first
	pin := core.GetPINFromEnv()
	if pin != nil {
		return pin, nil
	}

	// Prompt user
	pin, err := core.ReadPIN(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read PIN: %w", err)
	}

	return pin, nil
}

// GetPINForSet retrieves the PIN for the set command: environment variable
// first, then an interactive prompt with confirmation.
func GetPINForSet() ([]byte, error) {
	pin := core.GetPINFromEnv()
	if pin != nil {
		return pin, nil
	}
	return core.ReadPINConfirm()
}

// HandleError prints an error and exits
func HandleError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
