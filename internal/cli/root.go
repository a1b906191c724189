package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/credential"
	"github.com/nhle/leetcode-tracker/internal/logging"
	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/render"
	"github.com/nhle/leetcode-tracker/internal/source"
	"github.com/nhle/leetcode-tracker/internal/source/leetcode"
	"github.com/nhle/leetcode-tracker/internal/store"
	"github.com/nhle/leetcode-tracker/internal/tracker"
)

// Options lets callers replace the process-level collaborators.
type Options struct {
	Out io.Writer
	Err io.Writer
	Now func() time.Time

	// Fetcher replaces the LeetCode GraphQL adapter.
	Fetcher source.Fetcher

	// Credentials replaces the system keyring.
	Credentials *credential.Store
}

// app holds state shared by every command of one invocation.
type app struct {
	opts       Options
	configPath string
	verbose    bool

	cfg    *model.AppConfig
	logger *zap.Logger
	store  *store.DocumentStore
	svc    *tracker.Service
}

// NewRootCmd builds the lctracker command tree.
func NewRootCmd(opts Options) *cobra.Command {
	root, _ := newRootCmd(opts)
	return root
}

func newRootCmd(opts Options) (*cobra.Command, *app) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "lctracker",
		Short: "Daily LeetCode problems, solved tracking, streaks and goals",
		Long: `lctracker picks one Easy, Medium and Hard LeetCode problem per day,
tracks which problems you have solved, and reports streaks, a 30 day
activity heatmap, and progress toward your goals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&a.configPath, "config", model.DefaultConfigPath(), "config file path")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newFetchCmd(a),
		newDoneCmd(a),
		newUndoCmd(a),
		newSolvedCmd(a),
		newProfileCmd(a),
		newGoalsCmd(a),
		newReportCmd(a),
		newRefreshCmd(a),
		newDashboardCmd(a),
		newAuthCmd(a),
		newConfigCmd(a),
	)
	return root, a
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	root, a := newRootCmd(opts)
	root.SetArgs(args)
	// PersistentPostRunE is skipped when a command fails.
	defer a.close()

	if err := root.ExecuteContext(ctx); err != nil {
		render.Error(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func (a *app) setup() error {
	cfg, err := model.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.logger != nil {
		// Sync on stderr fails with EINVAL on some platforms.
		_ = a.logger.Sync()
	}
	return errors.Join(errs...)
}

// service opens the store and wires the tracker on first use.
func (a *app) service() (*tracker.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	s, err := store.Open(a.cfg.Storage, a.logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	a.store = s

	fetcher := a.opts.Fetcher
	if fetcher == nil {
		fetcher = leetcode.NewAdapter(a.cfg.API, a.session(), a.logger)
	}

	a.svc = tracker.New(s, fetcher, tracker.Options{
		FreshnessDays: a.cfg.Catalog.FreshnessDays,
		Now:           a.opts.Now,
		Logger:        a.logger,
	})
	return a.svc, nil
}

// session returns the configured session cookie, falling back to the keyring.
func (a *app) session() string {
	if a.cfg.API.Session != "" {
		return a.cfg.API.Session
	}
	creds, err := a.credentials()
	if err != nil {
		a.logger.Debug("keyring unavailable", zap.Error(err))
		return ""
	}
	session, err := creds.Session()
	if err != nil {
		a.logger.Debug("reading session from keyring", zap.Error(err))
		return ""
	}
	return session
}

func (a *app) credentials() (*credential.Store, error) {
	if a.opts.Credentials != nil {
		return a.opts.Credentials, nil
	}
	return credential.Open("")
}

func (a *app) today() model.Date {
	return model.DateOf(a.opts.Now())
}
