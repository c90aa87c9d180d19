package cli

import (
	"os"

	"golang.org/x/term"

	"github.com/HamzaOussama/plantX/internal/ui"
)

// startActivity shows an animated line on stderr while a request runs and
// returns the function that ends it. Nothing is drawn when stderr isn't a
// terminal or the output is JSON.
func startActivity(label string, jsonOut bool) func(err error) {
	if jsonOut || !term.IsTerminal(int(os.Stderr.Fd())) {
		return func(error) {}
	}

	a := ui.NewActivity(os.Stderr, label)
	a.Start()
	return func(err error) {
		if err != nil {
			a.Fail()
			return
		}
		a.Success()
	}
}
