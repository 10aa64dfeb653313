package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/internal/logger"
)

var (
	replayMaxFrames int
	replayPlain     bool
	replayDemo      bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Run a script headless and print the notification trace",
	Long: `Replay builds the [[element]] tree declared in a script, runs its
[[step]] actions frame by frame without opening a window, and prints every
pointer, button, grab and keyboard notification in order, followed by the
final focus chains.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&replayMaxFrames, "max-frames", 10000, "abort when the script has not finished after this many frames (0: no limit)")
	replayCmd.Flags().BoolVar(&replayPlain, "plain", false, "print without styling")
	replayCmd.Flags().BoolVar(&replayDemo, "demo", false, "replay the built-in demo script")
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, name, err := readScript(args, replayDemo)
	if err != nil {
		return err
	}

	s, err := newSession(data, config.Get())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer s.close()

	if s.script == nil {
		logger.Warn("script has no steps", "script", name)
	}
	if err := s.run(replayMaxFrames); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("replay finished", "script", name, "frames", s.trace.frame, "entries", len(s.trace.entries))

	out := cmd.OutOrStdout()
	if err := s.trace.render(out, "trace: "+name, replayPlain); err != nil {
		return err
	}
	for _, line := range s.focusChains() {
		fmt.Fprintln(out, line)
	}
	return nil
}

// readScript returns the script named by args, or the built-in demo.
func readScript(args []string, demo bool) ([]byte, string, error) {
	switch {
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("read script: %w", err)
		}
		return data, args[0], nil
	case demo:
		return demoScript, "demo", nil
	default:
		return nil, "", fmt.Errorf("no script given (pass a file or --demo)")
	}
}
