package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/illarion/pinguard/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "set":
		runSet(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "reset":
		runReset(os.Args[2:])
	case "rotate-key":
		runRotateKey(os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func dbFlag(fs *flag.FlagSet) *string {
	return fs.String("db", "", "Path to the pinguard database (default ~/"+cmd.DBFileName+")")
}

func runSet(args []string) {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	db := dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Set(*db)
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	db := dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Verify(*db)
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	db := dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status(*db)
}

func runReset(args []string) {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	db := dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Reset(*db)
}

func runRotateKey(args []string) {
	fs := flag.NewFlagSet("rotate-key", flag.ExitOnError)
	db := dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.RotateKey(*db)
}

func runKeyring(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pinguard keyring <enable|disable|status>")
		os.Exit(1)
	}

	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	db := dbFlag(fs)
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	switch args[0] {
	case "enable":
		cmd.KeyringEnable(*db)
	case "disable":
		cmd.KeyringDisable(*db)
	case "status":
		cmd.KeyringStatus(*db)
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring command: %s\n", args[0])
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("pinguard - Device-bound PIN protection")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pinguard <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  set         Store a new PIN (replaces any existing one)")
	fmt.Println("  verify      Validate a PIN, honoring the lockout policy")
	fmt.Println("  status      Show credential and lockout state")
	fmt.Println("  reset       Remove the PIN and clear attempt counters")
	fmt.Println("  rotate-key  Replace the device key (destroys the stored PIN)")
	fmt.Println("  keyring     Manage OS keyring storage for the device key")
	fmt.Println("  help        Show this help")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -db <path>  Use a specific database file instead of ~/" + cmd.DBFileName)
	fmt.Println()
	fmt.Println("The PIN can be supplied non-interactively via PINGUARD_PIN.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  pinguard set                    # Prompt for a new PIN")
	fmt.Println("  pinguard verify                 # Check a PIN attempt")
	fmt.Println("  pinguard keyring enable         # Move the key into the OS keyring")
}
