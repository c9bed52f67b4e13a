package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/session"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.Client
	store      services.Store
	sessions   *session.Manager
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.Client // Built from Config when nil
	Store      services.Store   // Defaults to API
	Sessions   session.Store    // Commands that need a login fail when nil
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.API == nil {
		opts.API = services.NewClient(services.ClientOpts{
			BaseURL:    opts.Config.API.BaseURL,
			HTTPClient: opts.HTTPClient,
			Timeout:    opts.Config.API.TimeoutDuration(),
			RateLimit:  opts.Config.API.RateLimit,
			Burst:      opts.Config.API.Burst,
			Logger:     opts.Logger,
		})
	}
	if opts.Store == nil {
		opts.Store = opts.API
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}
	if opts.Sessions != nil {
		r.sessions = session.NewManager(opts.Sessions, opts.Store, opts.Logger)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, logoutCommand, whoamiCommand, booksCommand,
		categoriesCommand, reportCommand, exportCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, keeping the configured level.
func (r *Runner) SetLogger(l *log.Logger) {
	shared.SetLogLevel(l, shared.ParseLogLevel(r.config.Log.Level))
	r.logger = l
}

// currentSession returns the logged in user's session.
func (r *Runner) currentSession(ctx context.Context) (*session.Session, error) {
	if r.sessions == nil {
		return nil, fmt.Errorf("%w: session storage is not configured", shared.ErrMissingConfig)
	}
	sess, err := r.sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w (run `shelf login --email <email>`)", err)
	}
	return sess, nil
}

func (r *Runner) newCollection(sess *session.Session, progress chan<- tasks.ProgressUpdate) *tasks.Collection {
	return tasks.NewCollection(r.store, sess, tasks.CollectionOpts{
		Concurrency: r.config.API.Concurrency,
		Logger:      r.logger,
		Progress:    progress,
	})
}

// emit writes data to path, or to the runner's output when path is empty.
func (r *Runner) emit(data []byte, path string) error {
	if path == "" {
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := formatter.WriteExport(path, data); err != nil {
		return err
	}
	r.logger.Info("export written", "path", path, "bytes", len(data))
	return r.writePlain("✓ Wrote %s\n", path)
}

// confirm asks a yes/no question on the runner's input. Anything but y or yes is a no.
func (r *Runner) confirm(question string) (bool, error) {
	if err := r.writePlain("%s [y/N]: ", question); err != nil {
		return false, err
	}
	scanner := bufio.NewScanner(r.input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
