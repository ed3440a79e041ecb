package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/arthur-debert/docxgrep/pkg/commands"
	"github.com/arthur-debert/docxgrep/pkg/errors"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		// ExitError failures were already reported (or are quiet by
		// design); anything else is a usage error from cobra itself.
		var exitErr *errors.ExitError
		if !stderrors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(errors.ExitCode(err))
	}
}
