package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chordcap/action"
	"chordcap/clipboard"
	"chordcap/config"
	"chordcap/eventloop"
	"chordcap/hotkey"
	"chordcap/keys"
	"chordcap/logutil"
	"chordcap/screenshot"
	"chordcap/shortcut"
	"chordcap/worker"
)

type cliOptions struct {
	envPath       string
	shortcutsFile string
	outputDir     string
	verbose       bool
}

func main() {
	if err := runWithArgs(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWithArgs(args []string, out io.Writer) error {
	if len(args) == 0 {
		args = []string{"chordcap"}
	}

	opts := &cliOptions{}
	cmd := newRootCmd(opts)
	cmd.SetOut(out)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chordcap",
		Short:         "Capture the screen with keyboard chords",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListener(*opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envPath, "env", "", "Path to .env configuration file")
	cmd.PersistentFlags().StringVar(&opts.shortcutsFile, "shortcuts", "", "Path to YAML shortcuts file (overrides SHORTCUTS_FILE)")
	cmd.PersistentFlags().StringVar(&opts.outputDir, "output-dir", "", "Directory captures are written to (overrides OUTPUT_DIR)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")

	cmd.AddCommand(newCheckCmd(opts), newKeysCmd())
	return cmd
}

func newCheckCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Compile the configured shortcuts and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(*opts, cmd.OutOrStdout())
		},
	}
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the key names usable in chords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range keys.Default().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func loadConfig(opts cliOptions) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		EnvPathOverride:       opts.envPath,
		ShortcutsFileOverride: opts.shortcutsFile,
		OutputDirOverride:     opts.outputDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func mismatchPolicy(cfg *config.Config) shortcut.MismatchPolicy {
	if cfg.ResetOnMismatch {
		return shortcut.MismatchReset
	}
	return shortcut.MismatchIgnore
}

func abortKey(symbols *keys.Table, cfg *config.Config) (keys.Token, error) {
	if cfg.AbortKey == "" {
		return keys.TokenNone, nil
	}
	tok, ok := symbols.Lookup(cfg.AbortKey)
	if !ok {
		return keys.TokenNone, fmt.Errorf("ABORT_KEY: %w %q", shortcut.ErrUnknownKey, cfg.AbortKey)
	}
	return tok, nil
}

func captureRegion(cfg *config.Config) (*screenshot.Region, error) {
	if cfg.CaptureRegion == "" {
		return nil, nil
	}
	r, err := screenshot.ParseRegion(cfg.CaptureRegion)
	if err != nil {
		return nil, fmt.Errorf("CAPTURE_REGION: %w", err)
	}
	return &r, nil
}

// relayKeys copies tokens from in to out until in is closed, then closes
// out. The abort key is not forwarded; it calls reset instead.
func relayKeys(ctx context.Context, in <-chan keys.Token, out chan<- keys.Token, abort keys.Token, reset func()) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case tok, ok := <-in:
			if !ok {
				return
			}
			if abort != keys.TokenNone && tok == abort {
				reset()
				continue
			}
			select {
			case out <- tok:
			case <-ctx.Done():
				return
			}
		}
	}
}

func runCheck(opts cliOptions, out io.Writer) error {
	var fallback io.Writer
	if opts.verbose {
		fallback = os.Stderr
	}
	logutil.Setup(false, "", fallback)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	symbols := keys.Default()
	rec, err := eventloop.Compile(symbols, bindings, mismatchPolicy(cfg), func(action.Action) {})
	if err != nil {
		return err
	}
	abort, err := abortKey(symbols, cfg)
	if err != nil {
		return err
	}
	region, err := captureRegion(cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, b := range bindings {
		fmt.Fprintf(tw, "%s\t%s\n", b.Chord, b.Action)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "mismatch policy: %s\n", rec.Policy())
	if abort != keys.TokenNone {
		fmt.Fprintf(out, "abort key: %s\n", abort)
	}
	if region != nil {
		fmt.Fprintf(out, "capture region: %dx%d at %d,%d\n", region.Width, region.Height, region.X, region.Y)
	}
	fmt.Fprintf(out, "table: %d rows, %d states\n", rec.Table().Len(), rec.Table().States())
	for _, w := range rec.Table().Warnings() {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}

func runListener(opts cliOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	var fallback io.Writer
	if opts.verbose {
		fallback = os.Stderr
	}
	logutil.Setup(cfg.EnableFileLogging, "", fallback)

	region, err := captureRegion(cfg)
	if err != nil {
		return err
	}
	deviceOpts := screenshot.Options{
		OutputDir:  cfg.OutputDir,
		Display:    cfg.Display,
		Region:     region,
		Frames:     cfg.GifFrames,
		FrameDelay: cfg.GifFrameDelay,
	}
	if cfg.CopyToClipboard {
		if err := clipboard.Init(); err != nil {
			log.Printf("Clipboard unavailable, captures will only be saved to disk: %v", err)
		} else {
			deviceOpts.OnImage = clipboard.WriteImage
		}
	}

	pool := worker.New(1, screenshot.NewDevice(deviceOpts))
	defer pool.Close()

	loop := eventloop.New(pool, eventloop.Options{
		Deadline:     cfg.CaptureDeadline,
		ChordTimeout: cfg.ChordTimeout,
	})

	symbols := keys.Default()
	policy := mismatchPolicy(cfg)
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	rec, err := eventloop.Compile(symbols, bindings, policy, loop.Dispatch)
	if err != nil {
		return err
	}
	abort, err := abortKey(symbols, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ShortcutsFile != "" {
		err := config.WatchBindings(ctx, cfg.ShortcutsFile, func(bindings []config.Binding, err error) {
			if err != nil {
				return
			}
			next, err := eventloop.Compile(symbols, bindings, policy, loop.Dispatch)
			if err != nil {
				log.Printf("Keeping previous shortcuts: %v", err)
				return
			}
			loop.Swap(next)
		})
		if err != nil {
			log.Printf("Shortcuts file will not be reloaded: %v", err)
		}
	}

	raw := make(chan keys.Token, 16)
	tokens := make(chan keys.Token, 16)
	hookErr := make(chan error, 1)
	go func() {
		defer close(raw)
		if err := hotkey.Listen(ctx, raw); err != nil {
			log.Printf("Hotkey listener failed: %v", err)
			hookErr <- err
		}
	}()
	go relayKeys(ctx, raw, tokens, abort, loop.Reset)

	for _, b := range bindings {
		log.Printf("Shortcut %s -> %s", b.Chord, b.Action)
	}
	if abort != keys.TokenNone {
		log.Printf("Press %s to abandon a partly typed shortcut", abort)
	}
	log.Printf("chordcap listening, captures go to %s", cfg.OutputDir)

	if err := loop.Run(ctx, rec, tokens); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	select {
	case err := <-hookErr:
		return err
	default:
		return nil
	}
}
