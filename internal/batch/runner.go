// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

package batch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/woozymasta/jsonschema2md"
)

// Runner executes batch jobs.
type Runner struct {
	logger logrus.FieldLogger
}

// NewRunner returns runner logging through logger; nil discards logs.
func NewRunner(logger logrus.FieldLogger) *Runner {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &Runner{logger: logger}
}

// Run renders all jobs. Jobs sharing an output file run sequentially in
// file order; distinct outputs run concurrently up to cfg.Workers.
// First failure cancels remaining work and is returned.
func (r *Runner) Run(ctx context.Context, cfg *Config) error {
	return r.runJobs(ctx, cfg.Workers, cfg.Jobs)
}

// runJobs renders jobs grouped by output file.
func (r *Runner) runJobs(ctx context.Context, workers int, jobs []Job) error {
	groups := groupByOutput(jobs)

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for _, group := range groups {
		eg.Go(func() error {
			for _, job := range group {
				if err := ctx.Err(); err != nil {
					return err
				}

				if err := r.runJob(job); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return eg.Wait()
}

// runJob renders one schema and writes it to job output.
func (r *Runner) runJob(job Job) error {
	log := r.logger.WithFields(logrus.Fields{
		"schema": job.Schema,
		"output": job.Output,
	})

	schema, err := jsonschema2md.ParseFile(job.Schema)
	if err != nil {
		return fmt.Errorf("job %s: %w", job.Schema, err)
	}

	lines, err := jsonschema2md.NewParser(job.Options()).ParseSchema(schema)
	if err != nil {
		return fmt.Errorf("job %s: %w", job.Schema, err)
	}

	if job.Token != "" {
		if err := jsonschema2md.WriteLinesBetweenToken(job.Output, lines, job.Token); err != nil {
			return fmt.Errorf("job %s: %w", job.Schema, err)
		}

		log.WithField("token", job.Token).Info("updated marker region")
		return nil
	}

	if err := jsonschema2md.WriteFile(job.Output, []byte(strings.Join(lines, ""))); err != nil {
		return fmt.Errorf("job %s: %w", job.Schema, err)
	}

	log.Info("rendered")
	return nil
}

// groupByOutput splits jobs into per-output groups in first-seen order.
func groupByOutput(jobs []Job) [][]Job {
	index := make(map[string]int, len(jobs))
	groups := make([][]Job, 0, len(jobs))

	for _, job := range jobs {
		position, ok := index[job.Output]
		if !ok {
			position = len(groups)
			index[job.Output] = position
			groups = append(groups, nil)
		}

		groups[position] = append(groups[position], job)
	}

	return groups
}
