// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/mcp-console/internal/config"
	"github.com/jeranaias/mcp-console/internal/session"
	"github.com/jeranaias/mcp-console/internal/tasks"
)

// Run shows the dashboard until the user quits or ctx is canceled. The
// bubbletea program, the playback notification pump and the config watcher
// run in one errgroup; the first to fail stops the others.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return errors.New("console: no session")
	}

	// Log lines would corrupt the alt screen.
	if logPath, err := config.LogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := tea.LogToFile(logPath, "mcp"); err == nil {
				defer f.Close()
			}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Context = ctx

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	sess := opts.Session
	sess.OnPlayback(func(e session.Entry) {
		p.Send(PlaybackEntryMsg{Entry: e})
	})
	defer sess.OnPlayback(nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run dashboard: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		pumpNotifications(gctx, sess.Notifications(), p.Send)
		return nil
	})

	if opts.WatchPath != "" {
		g.Go(func() error {
			err := config.Watch(gctx, opts.WatchPath, func(cfg *config.Config, err error) {
				p.Send(ConfigReloadMsg{Config: cfg, Err: err})
			})
			if err != nil {
				// The dashboard works without reload.
				log.Printf("WARNING: config reload disabled: %v", err)
			}
			return nil
		})
	}

	err := g.Wait()
	sess.Close()
	return err
}

// pumpNotifications forwards playback notifications to send until ctx is done.
func pumpNotifications(ctx context.Context, ch <-chan tasks.TaskNotification, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			send(PlaybackNotifyMsg{Notification: n})
		}
	}
}
