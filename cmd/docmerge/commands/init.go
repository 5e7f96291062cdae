package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docmerge/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing settings document"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := root.settingsPath()
	fmt.Printf("Writing example settings to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		fmt.Println("Initialization failed")
		return err
	}
	fmt.Println("initialized successfully")
	return nil
}
