package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/client"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/config"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/filex"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/logging"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/metrics"
)

// App holds the process environment the commands run against.
type App struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
	// transport overrides the HTTP transport; nil uses net/http.
	transport client.HTTPTransport
}

// NewApp builds an App bound to the given streams and the process
// environment.
func NewApp(stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{stdin: stdin, stdout: stdout, stderr: stderr, lookupEnv: os.LookupEnv}
}

// Run executes the command line args (without the program name) and returns
// the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	code := exitCode(err)
	if err != nil {
		if ee, ok := err.(*exitError); !ok || ee.err != nil {
			fmt.Fprintln(a.stderr, "error:", err)
		}
		if code == ExitUsage {
			fmt.Fprintln(a.stderr, "run 'visitor-register --help' for usage")
		}
	}
	return code
}

// session is the per-command wiring built from the loaded Config.
type session struct {
	cfg      *config.Config
	log      logging.Logger
	registry *prometheus.Registry
	client   *client.VisitorClient
}

func (a *App) newSession(cfg *config.Config) (*session, error) {
	log, err := logging.NewText(a.stderr, cfg.LogLevel)
	if err != nil {
		return nil, usageError(err)
	}
	if cfg.BaseURL == "" {
		return nil, usageError(fmt.Errorf("base URL required: pass --base-url or set %s", config.EnvBaseURL))
	}

	reg := prometheus.NewRegistry()
	opts := cfg.ClientOptions()
	opts.Transport = a.transport
	opts.Logger = log
	opts.Metrics = metrics.New(reg)
	opts.UserAgent = "visitor-register/" + getVersion()

	c, err := client.New(cfg.BaseURL, opts)
	if err != nil {
		return nil, usageError(err)
	}
	return &session{cfg: cfg, log: log, registry: reg, client: c}, nil
}

// close releases connections and writes the metrics file when configured.
func (s *session) close(ctx context.Context) {
	s.client.Close()
	if s.cfg.MetricsFile == "" {
		return
	}
	path, err := filex.PrepareOutput(s.cfg.MetricsFile)
	if err == nil {
		err = prometheus.WriteToTextfile(path, s.registry)
	}
	if err != nil {
		s.log.Error(ctx, "write metrics file", "path", s.cfg.MetricsFile, "error", err)
	}
}
