package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/urdfimport/logging"
)

// WatchAction imports a document and imports it again whenever it is written, until the
// command context is cancelled. Import failures are printed and do not stop the watch.
func WatchAction(c *cli.Context) error {
	return withSession(c, func(s *session, path string) error {
		reimport := func() error {
			res, err := s.importFile(c.Context, path)
			if err != nil {
				fmt.Fprintf(c.App.Writer, "import failed: %v\n", err)
				return nil
			}
			fmt.Fprintf(c.App.Writer, "%s: %d links, %d joints, %d meshes, %d warnings\n",
				res.Robot.Name, len(res.Robot.Links), len(res.Joints), len(res.Meshes), len(res.Warnings))
			return nil
		}
		if err := reimport(); err != nil {
			return err
		}
		return watchFile(c.Context, path, s.logger, reimport)
	})
}

// watchFile calls onChange each time path is written or replaced. The parent directory is
// watched so editors that save by renaming over the file are still seen. It returns nil when
// ctx is done.
func watchFile(ctx context.Context, path string, logger logging.Logger, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			logger.Warnw("closing file watcher", "error", cerr)
		}
	}()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "watching %s", filepath.Dir(target))
	}
	logger.Infow("watching for changes", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debugw("document changed", "path", target, "op", event.Op.String())
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		}
	}
}
