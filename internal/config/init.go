package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
)

// LegacyFileOrder is the file order of documentation trees that predate
// grouped directories.
var LegacyFileOrder = []string{
	"intro.md",
	"platform-support.md",
	"real-devices.md",
	"running-on-osx.md",
	"running-on-windows.md",
	"running-on-linux.md",
	"running-tests.md",
	"android-hax-emulator.md",
	"android_coverage.md",
	"server-args.md",
	"caps.md",
	"finding-elements.md",
	"gestures.md",
	"grid.md",
	"hybrid.md",
	"ios-deploy.md",
	"mobile-web.md",
	"mobile_methods.md",
	"touch-actions.md",
	"troubleshooting.md",
	"style-guide.md",
	"grunt.md",
	"how-to-write-docs.md",
	"credits.md",
}

const initHeader = `# docmerge settings
#
# Grouped mode (the docs root has subdirectories) orders directories with
# folder-order and files with folder-map.<dir>.file-order.
# Flat mode orders files with file-order-older-versions.
# ${VAR} references are expanded from the environment and .env files.

`

// Example returns the settings written by Init.
func Example() *Settings {
	return &Settings{
		FolderOrder: []string{"about-appium", "tutorials", "writing-running-appium", "advanced-concepts", "contributing-to-appium"},
		FolderMap: map[string]FolderEntry{
			"about-appium": {
				Label:     "About Appium",
				FileOrder: []string{"intro.md", "appium-clients.md", "getting-started.md"},
			},
			"writing-running-appium": {
				Label:     "Writing & Running Appium Scripts",
				FileOrder: []string{"running-tests.md", "caps.md", "server-args.md"},
			},
		},
		Ignore:                   []string{"README.md"},
		FileOrderOlderVersions:   LegacyFileOrder,
		IgnoreFilesOlderVersions: []string{"README.md"},
	}
}

// Init writes an example settings file. An existing file is only replaced
// when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("settings file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return ferrors.InternalError("failed to marshal example settings").WithCause(err).Build()
	}

	if err := os.WriteFile(path, append([]byte(initHeader), data...), 0o644); err != nil {
		return ferrors.FileSystemError(fmt.Sprintf("failed to write settings file %s", path)).
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
