// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor save bursts into one re-render.
const debounceDelay = 200 * time.Millisecond

// Watch renders all jobs once, then re-renders jobs whose schema file changes
// until ctx is cancelled. Render failures while watching are logged, not returned.
//
// Schema directories are watched instead of files so that editors replacing
// files by rename keep being tracked.
func (r *Runner) Watch(ctx context.Context, cfg *Config) error {
	if err := r.Run(ctx, cfg); err != nil {
		r.logger.WithError(err).Error("initial render failed")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	bySchema := jobsBySchema(cfg.Jobs)
	dirs := make(map[string]struct{}, len(bySchema))
	for schema := range bySchema {
		dir := filepath.Dir(schema)
		if _, ok := dirs[dir]; ok {
			continue
		}

		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}

		dirs[dir] = struct{}{}
	}

	r.logger.WithField("schemas", len(bySchema)).Info("watching for changes")

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounceDelay)
			timerC = timer.C
			return
		}

		timer.Reset(debounceDelay)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			r.logger.Info("watch stopped")
			return nil

		case <-timerC:
			timer, timerC = nil, nil

			jobs := make([]Job, 0, len(pending))
			for _, job := range cfg.Jobs {
				if _, ok := pending[filepath.Clean(job.Schema)]; ok {
					jobs = append(jobs, job)
				}
			}
			clear(pending)

			if err := r.runJobs(ctx, cfg.Workers, jobs); err != nil {
				r.logger.WithError(err).Error("re-render failed")
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			name := filepath.Clean(ev.Name)
			if _, ok := bySchema[name]; !ok {
				continue
			}

			r.logger.WithField("schema", name).Debug("schema changed")
			pending[name] = struct{}{}
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}

			r.logger.WithError(watchErr).Error("watcher error")
		}
	}
}

// jobsBySchema indexes jobs by cleaned schema path.
func jobsBySchema(jobs []Job) map[string][]Job {
	out := make(map[string][]Job, len(jobs))
	for _, job := range jobs {
		key := filepath.Clean(job.Schema)
		out[key] = append(out[key], job)
	}

	return out
}
