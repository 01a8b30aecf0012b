package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/rkhiriev/go-pass-keeper/internal/config"
	"github.com/rkhiriev/go-pass-keeper/internal/crypto"
	"github.com/rkhiriev/go-pass-keeper/internal/logger"
	"github.com/rkhiriev/go-pass-keeper/internal/vaultapp"
	"github.com/rkhiriev/go-pass-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// Exit codes, per the CLI's (redesigned, distinct) contract: clean exit,
// I/O failure, authentication failure.
const (
	exitOK       = 0
	exitIOError  = 1
	exitAuthFail = 2
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(exitIOError)
	}

	crypto.SetMasterKDFParams(cfg.Crypto.MasterKDFMemoryKiB, cfg.Crypto.MasterKDFIterations, cfg.Crypto.MasterKDFParallelism)

	vaultDir := cfg.Storage.VaultDir
	if vaultDir == "" {
		vaultDir = "."
	}

	log := logger.NewLogger("vault")

	app, warn, err := vaultapp.Open(vaultDir, log, cfg.Lock.AcquireTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open vault: %v\n", err)
		os.Exit(exitIOError)
	}
	if warn != nil {
		fmt.Println(warn)
	}

	if err := authenticate(app); err != nil {
		fmt.Fprintf(os.Stderr, "authentication failed: %v\n", err)
		os.Exit(exitAuthFail)
	}

	os.Exit(runShell(app))
}

func printBuildInfo(info models.AppBuildInfo) {
	version, date, commit := info.BuildVersion(), info.BuildDate(), info.BuildCommit()
	if version == "" {
		version = "N/A"
	}
	if date == "" {
		date = "N/A"
	}
	if commit == "" {
		commit = "N/A"
	}

	fmt.Printf("Build version: %s\n", version)
	fmt.Printf("Build date: %s\n", date)
	fmt.Printf("Build commit: %s\n", commit)
}

// authenticate prompts for the master passphrase and, depending on whether
// a store already existed on disk, calls Login or FirstLogin. For a new
// vault it prompts a second time and requires the two entries to match.
func authenticate(app *vaultapp.App) error {
	passphrase, err := readPassphrase("Master password: ")
	if err != nil {
		return err
	}

	if app.HasExistingVault() {
		return app.Login(passphrase)
	}

	confirm, err := readPassphrase("Confirm master password: ")
	if err != nil {
		return err
	}
	if passphrase != confirm {
		return errors.New("confirmation does not match new password")
	}
	return app.FirstLogin(passphrase)
}

func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	bytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// runShell drives the line-oriented command loop and returns the process
// exit code.
func runShell(app *vaultapp.App) int {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		verb := fields[0]
		args := fields[1:]

		switch verb {
		case "add-user-p-w":
			runCredentialsVerb(app.AddUserPW, args)
		case "change-user-p-w":
			runCredentialsVerb(app.ChangeUserPW, args)
		case "remove-user-p-w":
			if len(args) != 2 {
				fmt.Println("usage: remove-user-p-w <site> <id>")
				continue
			}
			if err := app.RemoveUserPW(args[0], args[1]); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("ok")
		case "get-user-p-w", "get-user-p-w-to-clipboard":
			if len(args) != 2 {
				fmt.Println("usage:", verb, "<site> <id>")
				continue
			}
			pw, err := app.GetUserPW(args[0], args[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			// Clipboard integration is an external driver concern; this
			// command prints the password the same as get-user-p-w.
			fmt.Println(string(pw))
		case "prefix-search":
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}
			for _, entry := range app.PrefixSearch(prefix) {
				for id := range entry.Users {
					fmt.Printf("%s\t%s\n", entry.Site.Full, id)
				}
			}
		case "change-master-p-w":
			if err := changeMasterPassword(app); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("ok")
			}
		case "save-d-b":
			if err := app.SaveDB(); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("ok")
		case "exit-app-with-save":
			if err := app.ExitWithSave(); err != nil {
				fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
				return exitIOError
			}
			return exitOK
		case "exit-app-without-save":
			app.ExitWithoutSave()
			return exitOK
		default:
			fmt.Printf("unknown command: %s\n", verb)
		}
	}

	app.ExitWithoutSave()
	return exitOK
}

func runCredentialsVerb(fn func(site, id, pw string) error, args []string) {
	if len(args) != 3 {
		fmt.Println("usage: <verb> <site> <id> <pw>")
		return
	}
	if err := fn(args[0], args[1], args[2]); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("ok")
}

func changeMasterPassword(app *vaultapp.App) error {
	newPassphrase, err := readPassphrase("New master password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassphrase("Confirm new master password: ")
	if err != nil {
		return err
	}
	if newPassphrase != confirm {
		return errors.New("confirmation does not match new password")
	}
	return app.ChangeMasterPassword(newPassphrase)
}
