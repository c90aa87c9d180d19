package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/HamzaOussama/plantX/internal/api"
	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/ui"
)

// SendOptions holds options for the send command.
type SendOptions struct {
	Command string
	Yes     bool // skip confirmation
	JSON    bool

	// Confirm asks before a destructive command. Nil prompts on the terminal.
	Confirm func(cmd api.Command) (bool, error)
}

// SendOutput represents the JSON output for the send command.
type SendOutput struct {
	Command  api.Command `json:"command"`
	DeviceID string      `json:"device_id"`
	Message  string      `json:"message"`
}

// sendCommand dispatches one command and prints the device's reply.
func sendCommand(ctx context.Context, w io.Writer, opts SendOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd, err := api.ParseCommand(opts.Command)
	if err != nil {
		return err
	}

	if cmd == api.CommandReset && !opts.Yes {
		confirm := opts.Confirm
		if confirm == nil {
			confirm = confirmOnTerminal
		}
		ok, err := confirm(cmd)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	log := cliLogger()
	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	done := startActivity("Sending "+cmd.Label(), opts.JSON)
	message, err := newClient(cfg, log).SendCommand(ctx, cmd)
	done(err)
	if err != nil {
		if opts.JSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	if opts.JSON {
		return WriteJSONSuccess(w, SendOutput{Command: cmd, DeviceID: cfg.DeviceID, Message: message})
	}
	fmt.Fprintf(w, "%s %s: %s\n", ui.Styled(ui.ColorSuccess, ui.SymbolSuccess), cmd.Label(), message)
	return nil
}

// confirmOnTerminal prompts with huh. Without a terminal there is nobody to
// ask, so the command is refused.
func confirmOnTerminal(cmd api.Command) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New(errors.ErrDispatch,
			fmt.Sprintf("'%s' needs confirmation", cmd),
			"Pass --yes to send it without a prompt.")
	}

	var proceed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s? The sensor will restart.", cmd.Label())).
				Affirmative("Send").
				Negative("Cancel").
				Value(&proceed),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrDispatch,
			"Failed to get user input",
			"Pass --yes to skip the prompt")
	}
	return proceed, nil
}
