// Package config loads runtime configuration for the crowdfund CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via the -c or -config flags.
//  3. Command-line flags, which override earlier values.
package config

// Config holds runtime settings for the crowdfund CLI.
//
// Fields:
//   - UsersFile / ProjectsFile: paths of the flat data files.
//   - PasswordScheme: hashing scheme for new passwords ("sha256" keeps
//     compatibility with existing files, "bcrypt" opts into salted hashes).
type Config struct {
	UsersFile      string
	ProjectsFile   string
	PasswordScheme string
}

// LoadDefaults populates c with the historical file names next to the
// binary's working directory and the compatible hashing scheme.
func (c *Config) LoadDefaults() {
	c.UsersFile = "users.txt"
	c.ProjectsFile = "projects.txt"
	c.PasswordScheme = "sha256"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
