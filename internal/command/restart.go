package command

import (
	"fmt"
	"os"

	"github.com/nireo/stupidwm/internal/wmstate"
)

// Restarter execs a fresh copy of the running binary, replacing the
// current process image. Separated from Spawner because it must not
// return on success — exec(2) semantics differ from detached spawning.
type Restarter interface {
	Restart(argv []string) error
}

// Restart drains the same way Quit does (broadcasting
// WM_DELETE_WINDOW so existing clients get a chance to save state)
// and then re-execs the binary instead of exiting. It supplements the
// dwm-lineage "restart" command that stupidwm's own two-phase quit
// latch does not otherwise expose; see SPEC_FULL.md. It binds to no
// default key.
func Restart(restarter Restarter) Action {
	return func(state *wmstate.State, arg Arg) error {
		if err := Quit(state, arg); err != nil {
			return fmt.Errorf("restart: %w", err)
		}
		return restarter.Restart(os.Args)
	}
}
