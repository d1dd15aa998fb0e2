package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rometsch/tue-bus-monitor/internal/api"
	"github.com/rometsch/tue-bus-monitor/internal/board"
	"github.com/rometsch/tue-bus-monitor/internal/config"
	"github.com/rometsch/tue-bus-monitor/internal/models"
	"github.com/rometsch/tue-bus-monitor/internal/output"
	"github.com/rometsch/tue-bus-monitor/internal/stops"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// errNoStopIDs is returned when neither the command line nor the config name a stop
var errNoStopIDs = errors.New("No bus stop ids. Exit.") //nolint:staticcheck // printed verbatim to the user

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the command line flags
type options struct {
	configPath string
	lines      []string
	stopsPath  string
	color      string
	json       bool
	timeout    time.Duration
	workers    int
	listStops  bool
	verbose    bool
	baseURL    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tuebus [stop_id...]",
		Short: "Show live bus departures for Tübingen bus stops",
		Long: `tuebus shows the next departures of one or more Tübingen bus stops
as listed on https://www.swtue.de/abfahrt.html.

Stops are given by their id, either as arguments or in a config file.
Use --list-stops to see the known ids.

Config file (JSON, or YAML for .yaml/.yml files):
  {"ids": ["21001", "22101"], "lines": ["5", "X15"]}

Ids given as arguments come first; config entries are added if not
already present. The same applies to lines.

Examples:
  tuebus 21001                     # Departures at Hauptbahnhof, Steig A1
  tuebus 21001 22101 -l 5 -l X15   # Two stops, only lines 5 and X15
  tuebus -c ~/.config/tuebus.json  # Stops and lines from a config file
  tuebus 21001 --json              # JSON output for scripting`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file with stop ids and lines")
	cmd.Flags().StringSliceVarP(&opts.lines, "lines", "l", nil, "Only show these lines (repeat or comma-separate)")
	cmd.Flags().StringVar(&opts.stopsPath, "stops", "", "Stop data JSON file to use instead of the bundled one")
	cmd.Flags().StringVar(&opts.color, "color", "auto", "Color output: auto, always, never")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Timeout per request")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Stops fetched in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.listStops, "list-stops", false, "List known stop ids and exit")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", api.BaseURL, "Base URL of the departure board site")
	_ = cmd.Flags().MarkHidden("base-url")

	return cmd
}

// setupLogging routes log output to stderr so stdout only carries departure tables
func setupLogging(w io.Writer, verbose bool) {
	if os.Getenv("TUEBUS_LOG_FORMAT") == "JSON" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}

	if verbose || os.Getenv("TUEBUS_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

// loadDirectory loads the stop directory from --stops or the bundled data
func loadDirectory(path string) (*stops.Directory, error) {
	if path != "" {
		return stops.LoadFile(path)
	}
	return stops.LoadDefault()
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	out := cmd.OutOrStdout()
	colors := output.NewColors(output.ParseColorMode(opts.color))

	if opts.listStops {
		dir, err := loadDirectory(opts.stopsPath)
		if err != nil {
			return fmt.Errorf("failed to load stop data: %w", err)
		}
		renderStopList(out, dir.All(), colors)
		return nil
	}

	var cfg *config.Config
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return err
		}
	}

	settings := config.Merge(args, opts.lines, cfg)
	if len(settings.IDs) == 0 {
		return errNoStopIDs
	}

	dir, err := loadDirectory(opts.stopsPath)
	if err != nil {
		return fmt.Errorf("failed to load stop data: %w", err)
	}

	client := api.NewClient(
		api.WithBaseURL(opts.baseURL),
		api.WithTimeout(opts.timeout),
		api.WithUserAgent("tuebus/"+version),
	)
	svc := board.NewService(dir, client, board.WithWorkers(opts.workers))

	log.Debug().
		Strs("stops", settings.IDs).
		Strs("lines", settings.Lines).
		Int("workers", svc.Workers()).
		Msg("Fetching departures")

	outcomes := svc.RunAll(cmd.Context(), settings.IDs)

	results := make([]models.StopResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			reportFailure(o)
		}
		if o.Result != nil {
			results = append(results, *o.Result)
		}
	}

	if opts.json {
		return output.RenderJSON(out, results, settings.Lines)
	}

	output.RenderStops(out, results, output.TableOptions{
		Colors: colors,
		Lines:  settings.Lines,
	})
	return nil
}

// reportFailure logs why a stop has no departures to show
func reportFailure(o board.Outcome) {
	switch {
	case errors.Is(o.Err, stops.ErrUnknownStop):
		log.Error().Str("stop", o.ID).Msg("Unknown bus stop id, skipping")
	default:
		log.Error().Err(o.Err).Str("stop", o.ID).Msg("No departure data for stop")
	}
}

func renderStopList(w io.Writer, all []models.StopMetadata, c *output.Colors) {
	for _, s := range all {
		if s.Platform == "" {
			_, _ = fmt.Fprintf(w, "%-8s %s\n", s.ID, c.Stop("%s", s.Name))
			continue
		}
		_, _ = fmt.Fprintf(w, "%-8s %s %s\n", s.ID, c.Stop("%s", s.Name), c.Muted("(%s)", s.Platform))
	}
}
