package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"slices"

	"github.com/mmcdole/barcart/internal/domain"
)

// Opener opens cocktail images in an external viewer
type Opener struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	goos  string
	start func(*exec.Cmd) error
}

// NewOpener creates an Opener for the configured viewer
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		args:    args,
		logger:  logger,
		goos:    runtime.GOOS,
		start:   (*exec.Cmd).Start, // don't wait for the viewer to exit
	}
}

// Open shows url in the configured viewer or the system default handler
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("%w: no image url", domain.ErrInvalidArgument)
	}

	cmd := o.buildCommand(url)
	o.logger.Info("opening image", "command", cmd.Path, "args", cmd.Args[1:])

	if err := o.start(cmd); err != nil {
		o.logger.Error("failed to open image", "url", url, "error", err)
		return fmt.Errorf("failed to open image: %w", err)
	}
	return nil
}

func (o *Opener) buildCommand(url string) *exec.Cmd {
	if o.command == "" {
		return defaultCommand(o.goos, url)
	}

	args := append(slices.Clone(o.args), url)

	// On macOS, GUI apps are usually not in PATH; use 'open -a'
	if o.goos == "darwin" {
		if _, err := exec.LookPath(o.command); err != nil {
			cmdArgs := []string{"-a", o.command}
			if len(o.args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, o.args...)
			}
			return exec.Command("open", append(cmdArgs, url)...)
		}
	}

	return exec.Command(o.command, args...)
}

// defaultCommand opens url with the platform's default handler
func defaultCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", url)
	}
}
