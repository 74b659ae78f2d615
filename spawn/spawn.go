// Package spawn starts external programs without waiting for them.
package spawn

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog/log"
)

var ErrEmpty = errors.New("empty command")

// Func starts argv in the background.
type Func func(argv []string) error

// Start runs argv and returns once the process has started. The child is
// reaped in the background and its exit status is ignored.
func Start(argv []string) error {
	if len(argv) == 0 {
		return ErrEmpty
	}
	c := exec.Command(argv[0], argv[1:]...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("could not start command %q: %w", argv, err)
	}
	log.Debug().Strs("argv", argv).Int("pid", c.Process.Pid).Msg("Spawned")
	go func() {
		// Ignore any error from the program itself.
		c.Wait()
	}()
	return nil
}
