// Package config loads the JSON configuration file and hands each package its
// own section. Packages keep their own Cfg globals; this package only parses.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// Raw config sections by name, as read from the config file.
var sections = map[string]json.RawMessage{}

/*
InitializeConfig reads the JSON config file at configPath and keeps its
top-level sections for later Section calls.

A missing or unreadable config file is not fatal: every package carries its own
defaults, so the program keeps running on those.
*/
func InitializeConfig(configPath string) {
	fileBytes, readErr := os.ReadFile(configPath)
	if readErr != nil {
		tl.Log(
			tl.Warning, palette.YellowBold, "Config file '%s' is %s, running on package defaults",
			configPath, "not readable",
		)
		return
	}

	unmarshalErr := json.Unmarshal(fileBytes, &sections)
	if unmarshalErr != nil {
		tl.Log(
			tl.Warning, palette.YellowBold, "Config file '%s' is %s, running on package defaults",
			configPath, "not valid JSON",
		)
		return
	}

	tl.Log(tl.Info, palette.Green, "Loaded config file '%s' with %s sections", configPath, fmt.Sprintf("%d", len(sections)))
}

/*
Section unmarshals the named top-level section into out.

Returns false when the section is absent or does not match the target shape, so
the caller can fall back to its defaults.
*/
func Section(name string, out any) bool {
	raw, exists := sections[name]
	if !exists {
		return false
	}

	unmarshalErr := json.Unmarshal(raw, out)
	if unmarshalErr != nil {
		tl.Log(
			tl.Warning, palette.YellowBold, "Config section '%s' is %s: %s",
			name, "malformed", unmarshalErr,
		)
		return false
	}

	return true
}

/*
CheckIfEnvVarsPresent warns about every missing environment variable in names.

It never exits: a missing provider credential only matters if that provider is
actually selected later.
*/
func CheckIfEnvVarsPresent(names ...string) {
	for _, name := range names {
		value := strings.TrimSpace(os.Getenv(name))
		if value == "" {
			tl.Log(tl.Info, palette.Purple, "Environment variable %s is %s", name, "not set")
		}
	}
}

/*
GetPackageName returns the package name of the caller, for log messages that
identify which package's configuration is being initialized.
*/
func GetPackageName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	fullName := runtime.FuncForPC(pc).Name()

	// fullName looks like "sales-reporter/src/pkg/email.InitializeConfig".
	lastSlash := strings.LastIndex(fullName, "/")
	trimmed := fullName[lastSlash+1:]

	dot := strings.Index(trimmed, ".")
	if dot < 0 {
		return trimmed
	}
	return trimmed[:dot]
}
