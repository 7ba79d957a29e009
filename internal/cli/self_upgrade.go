package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const releaseRepo = "seuros/lpexplorer"

var (
	selfUpgradeRequested bool
	selfUpgradeCheckOnly bool
	selfUpgradeAutoYes   bool
)

// Release lookups and the replacement step are swapped out in tests.
var (
	detectLatest = selfupdate.DetectLatest
	updateTo     = selfupdate.UpdateTo
	exitProcess  = os.Exit
)

func setupSelfUpgrade() {
	RootCmd.PersistentFlags().BoolVar(&selfUpgradeRequested, "self-upgrade", false, "Upgrade LP Explorer to the latest release and exit")
	RootCmd.PersistentFlags().BoolVar(&selfUpgradeCheckOnly, "self-upgrade-check", false, "Only check whether a newer LP Explorer release is available")
	RootCmd.PersistentFlags().BoolVar(&selfUpgradeAutoYes, "self-upgrade-yes", false, "Skip confirmation prompts when running --self-upgrade")

	existingPreRun := RootCmd.PersistentPreRunE
	RootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if existingPreRun != nil {
			if err := existingPreRun(cmd, args); err != nil {
				return err
			}
		}

		return handleSelfUpgradeFlags()
	}
}

func handleSelfUpgradeFlags() error {
	if !selfUpgradeRequested && !selfUpgradeCheckOnly {
		return nil
	}

	if err := runSelfUpgrade(os.Stdout, os.Stdin, selfUpgradeCheckOnly, selfUpgradeAutoYes); err != nil {
		return err
	}

	exitProcess(0)
	return nil
}

// latestRelease compares the running build with the newest published
// release. newer is false when the build is current or ahead.
func latestRelease() (current semver.Version, latest *selfupdate.Release, newer bool, err error) {
	raw := strings.TrimSpace(strings.TrimPrefix(Version, "v"))
	if raw == "" {
		return current, nil, false, errors.New("self-upgrade is only available for release builds")
	}
	if current, err = semver.Parse(raw); err != nil {
		return current, nil, false, fmt.Errorf("invalid current version %q: %w", Version, err)
	}

	latest, found, err := detectLatest(releaseRepo)
	if err != nil {
		return current, nil, false, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return current, nil, false, errors.New("no releases found for lpexplorer")
	}
	return current, latest, latest.Version.GT(current), nil
}

func runSelfUpgrade(out io.Writer, in io.Reader, checkOnly, autoYes bool) error {
	current, latest, newer, err := latestRelease()
	if err != nil {
		return err
	}
	if !newer {
		_, _ = fmt.Fprintf(out, "lpexplorer v%s is already up to date\n", current)
		return nil
	}

	_, _ = fmt.Fprintf(out, "New release: v%s --> v%s\n", current, latest.Version)
	if checkOnly {
		return nil
	}

	if !autoYes {
		_, _ = fmt.Fprint(out, "Replace the current binary? [Y/n] ")
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "" && a != "y" && a != "yes" {
			_, _ = fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to determine executable path: %w", err)
	}
	if err := updateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("self-upgrade failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Updated LP Explorer to v%s\n", latest.Version)
	return nil
}
