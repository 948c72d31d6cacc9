package config

import (
	"encoding/json"
	"os"

	"github.com/amsaid/crowdfund/internal/flagx"
)

// JsonConfig mirrors Config for JSON unmarshalling. Absent keys leave the
// corresponding Config fields untouched, so a partial file only overrides
// what it names.
type JsonConfig struct {
	UsersFile      string `json:"users_file"`
	ProjectsFile   string `json:"projects_file"`
	PasswordScheme string `json:"password_scheme"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. An unreadable or invalid
// file panics: a deployment that names a config file expects it to be used.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.UsersFile != "" {
		config.UsersFile = c.UsersFile
	}
	if c.ProjectsFile != "" {
		config.ProjectsFile = c.ProjectsFile
	}
	if c.PasswordScheme != "" {
		config.PasswordScheme = c.PasswordScheme
	}
}
