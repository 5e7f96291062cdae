package commands

import (
	"fmt"
	"os"

	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
	"git.home.luguber.info/inful/docmerge/internal/verify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	File   string `arg:"" help:"Merged document to check" type:"path"`
	Strict bool   `help:"Fail when problems are found"`
}

func (v *VerifyCmd) Run(_ *Global, _ *CLI) error {
	data, err := os.ReadFile(v.File)
	if err != nil {
		return ferrors.FileSystemError(fmt.Sprintf("cannot read %s", v.File)).
			WithCause(err).
			WithContext("path", v.File).
			Build()
	}

	rep, err := verify.Document(data)
	if err != nil {
		return ferrors.ValidationError(fmt.Sprintf("cannot parse %s", v.File)).WithCause(err).Build()
	}

	for _, f := range rep.Findings {
		fmt.Printf("%s: %s\n", v.File, f)
	}
	fmt.Printf("%d anchors, %d file links, %d problems\n", rep.Anchors, rep.Links, len(rep.Findings))

	if v.Strict && !rep.OK() {
		return ferrors.ValidationError(fmt.Sprintf("%s has %d anchor problems", v.File, len(rep.Findings))).
			WithContext("path", v.File).
			Build()
	}
	return nil
}
