package config

import (
	"flag"
	"os"

	"github.com/amsaid/crowdfund/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   users file path
//	-p string   projects file path
//	-s string   password scheme for new accounts ("sha256" or "bcrypt")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so the -c/-config flags of the JSON layer pass through
// untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-p", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.UsersFile, "u", config.UsersFile, "users file path")
	fs.StringVar(&config.ProjectsFile, "p", config.ProjectsFile, "projects file path")
	fs.StringVar(&config.PasswordScheme, "s", config.PasswordScheme, "password scheme for new accounts")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
