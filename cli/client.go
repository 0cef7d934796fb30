package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/urdfimport/config"
	"go.viam.com/urdfimport/importer"
	"go.viam.com/urdfimport/logging"
)

// session is the per-invocation state shared by every command.
type session struct {
	cfg     *config.Config
	logger  logging.Logger
	trace   bool
	closers []func() error
}

func newSession(c *cli.Context) (*session, error) {
	cfg, err := config.Load(c.String(generalFlagConfig), config.Overrides{
		Debug:       c.Bool(generalFlagDebug),
		LogFile:     c.String(generalFlagLogFile),
		Parallelism: c.Int(importFlagParallel),
		Strict:      c.Bool(importFlagStrict),
		VisualOnly:  c.Bool(importFlagVisualOnly),
	})
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, trace: c.Bool(importFlagTrace)}
	s.logger = logging.NewBlankLogger("urdfimport")
	s.logger.SetLevel(cfg.Level())
	s.logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if cfg.Logging.File != "" {
		file := logging.NewFileAppender(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
		s.logger.AddAppender(file)
		s.closers = append(s.closers, file.Close)
	}
	if err := logging.UpdateLoggerRegistry(cfg.Logging.Patterns, s.logger); err != nil {
		s.close()
		return nil, err
	}
	s.logger.Debugw("loaded config", "parallelism", cfg.Import.Parallelism, "strict", cfg.Import.Strict)
	return s, nil
}

func (s *session) close() {
	//nolint:errcheck
	s.logger.Sync()
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// importFile imports the document at path, resolving mesh assets relative to its directory.
// In strict mode any warning turns into an error, but the result is still returned.
func (s *session) importFile(ctx context.Context, path string) (*importer.Result, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading URDF document")
	}
	opts := importer.Options{
		Visual:      s.cfg.Import.Visual,
		Collision:   s.cfg.Import.Collision,
		Parallelism: s.cfg.Import.Parallelism,
	}
	if s.trace {
		ctx = logging.WithDebug(ctx, filepath.Base(path))
	}
	source := importer.DirSource{Root: filepath.Dir(path)}
	res, err := importer.New(source, opts, s.logger.Sublogger("importer")).Import(ctx, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "importing %s", path)
	}
	if s.cfg.Import.Strict && len(res.Warnings) > 0 {
		return res, errors.Wrapf(res.Warnings.Err(), "strict import of %s", path)
	}
	return res, nil
}

func documentArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.Errorf("expected exactly one URDF file argument, got %d", c.NArg())
	}
	return c.Args().First(), nil
}

// withSession runs action with a loaded session and the document path argument.
func withSession(c *cli.Context, action func(*session, string) error) error {
	path, err := documentArg(c)
	if err != nil {
		return err
	}
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()
	return action(s, path)
}
