package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/etnz/dca/eodhd"
	"github.com/google/subcommands"
)

const extensionStart = "dcasim-"

// Registered reports whether name is a subcommand of c.
func Registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}

// extensionEnv returns the environment of an extension: the current one plus the global flags.
func extensionEnv() []string {
	env := append(os.Environ(),
		EnvProvider+"="+*providerName,
		EnvCacheDir+"="+*cacheDir,
		EnvCSVFile+"="+*csvFile,
	)
	if *eodhdAPIKey != "" {
		env = append(env, eodhd.APIKeyEnv+"="+*eodhdAPIKey)
	}
	return env
}

// RunExtension attempts to find and execute an external dcasim-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := extensionStart + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		log.Printf("running %s: %v", name, err)
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
