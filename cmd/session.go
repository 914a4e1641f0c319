/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/healthassist/healthassist/internal/display"
	"github.com/healthassist/healthassist/internal/prompt"
	"github.com/healthassist/healthassist/internal/services"
	"github.com/healthassist/healthassist/internal/store"
	"github.com/healthassist/healthassist/types"
	"go.uber.org/zap"
)

// session ties one record store to the derivation engine and the terminal.
// Sessions never share a store.
type session struct {
	records  *store.RecordStore
	health   *services.HealthService
	prompter *prompt.Prompter
	renderer *display.Renderer
	out      io.Writer
	errOut   io.Writer
	logger   *zap.Logger
}

type sessionOptions struct {
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	lenient   bool
	logger    *zap.Logger
	publisher services.Publisher
	channel   string
}

func newSession(opts sessionOptions) *session {
	logger := opts.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	records := store.NewRecordStore(
		store.WithLenientLoad(opts.lenient),
		store.WithLogger(logger),
	)
	health := services.NewHealthService(records, logger)
	if opts.publisher != nil {
		health.WithPublisher(opts.publisher, opts.channel)
	}
	return &session{
		records:  records,
		health:   health,
		prompter: prompt.New(opts.in, opts.out),
		renderer: display.New(opts.out),
		out:      opts.out,
		errOut:   opts.errOut,
		logger:   logger,
	}
}

// report prints a recoverable error the way every command surfaces it.
func (s *session) report(err error) {
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
}

func (s *session) add() (types.UserRecord, error) {
	return s.records.Create(s.prompter, s.out)
}

func (s *session) show(name string) error {
	if name == "all" {
		s.renderer.All(s.out, s.records.All())
		return nil
	}
	rec, err := s.records.Find(name)
	if err != nil {
		return err
	}
	s.renderer.One(s.out, name, *rec)
	return nil
}

func (s *session) remove(name string) error {
	if err := s.records.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "User %s has been deleted.\n", name)
	return nil
}

func (s *session) bodyFat(name string) error {
	bf, err := s.health.ComputeBodyFat(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nBody fat percentage for %s is %.6g%%, which is %s.\n", name, bf.Percentage, bf.Group)
	return nil
}

func (s *session) calories(name string) error {
	calories, err := s.health.ComputeDailyCalories(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nRecommended daily calorie intake for %s is %d calories.\n", name, calories)
	return nil
}

func (s *session) mealPrep(name string) error {
	return s.health.ComputeMealPrep(name)
}

func (s *session) load(path string) error {
	if err := s.records.Load(path); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nData has been read from file %s\n", path)
	return nil
}

// loadIfExists starts from an empty store when path does not exist yet.
func (s *session) loadIfExists(path string) error {
	err := s.records.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("table not found, starting empty", zap.String("path", path))
		return nil
	}
	return err
}

func (s *session) save(path string) error {
	if err := s.records.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nData has been written to file %s\n", path)
	return nil
}

// persist writes the table in file order for commands that load and save
// the same table in one run.
func (s *session) persist(path string) error {
	if err := s.records.SaveFileOrder(path); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nData has been written to file %s\n", path)
	return nil
}

func (s *session) bulk(ctx context.Context, path string) error {
	results, err := s.health.BulkDerive(ctx, path)
	for _, m := range results {
		fmt.Fprintf(s.out, "%s: body fat %.6g%% (%s), %.6g calories\n",
			m.Name, m.BodyFat.Percentage, m.BodyFat.Group, m.DailyCalories)
	}
	return err
}
