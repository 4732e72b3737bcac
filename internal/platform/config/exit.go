package config

import (
	"fmt"
	"os"
	"strings"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// Startup misconfiguration (missing token, unusable output channel) ends here.
func Exitf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
