package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "main",
})

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-plan whenever the planning file changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configPath == "" {
			return errors.New("watch needs --config")
		}

		c, cancel := context.WithCancel(ctx(cmd))
		defer cancel()

		// Catch both SIGINT (ctrl+c) and SIGTERM (kill/systemd), to stop
		// watching cleanly.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)
		go func() {
			select {
			case s := <-sig:
				log.Infof("caught %s, stopping", s)
				cancel()
			case <-c.Done():
			}
		}()

		return watch(c, configPath)
	},
}

// watch plans once, then again after every write to path. Errors in the file
// are logged rather than returned, so that a half-saved file doesn't stop the
// watcher.
func watch(c context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory rather than the file, because editors tend to
	// replace files rather than write to them.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	replan := func() {
		if err := run(c, false); err != nil {
			log.Errorf("planning failed: %s", err)
		}
	}

	replan()
	log.Infof("watching %s", abs)

	for {
		select {
		case <-c.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				log.Debugf("event=%s file=%s", event.Op, event.Name)
				replan()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch error: %s", err)
		}
	}
}
