package term

import (
	"os"
	"strconv"
	"time"
)

// escDelayVar is the env var terminal drivers consult before deciding that a
// lone ESC byte is the Esc key rather than the start of an escape sequence.
const escDelayVar = "ESCDELAY"

// ConfigureEscDelay exports the escape-resolution delay, in milliseconds,
// unless the caller's environment already set one. The default delay on many
// systems is a full second, which makes Esc feel broken as a quit key.
func ConfigureEscDelay(d time.Duration) {
	if _, ok := os.LookupEnv(escDelayVar); ok {
		return
	}
	os.Setenv(escDelayVar, strconv.Itoa(int(d.Milliseconds())))
}
