// Package journal records moderation actions. Every entry is logged and
// handed to the configured sinks (MongoDB, MQTT). A failing sink never
// affects the action that produced the entry.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/TambayanDev/TambayanBot/pkg/logger"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// Sink receives journal entries.
type Sink interface {
	Name() string
	Write(ctx context.Context, ev models.ModerationEvent) error
}

type Journal struct {
	sinks   []Sink
	timeout time.Duration
	now     func() time.Time
}

// New creates a journal writing to sinks. With no sinks entries are only logged.
func New(sinks ...Sink) *Journal {
	return &Journal{
		sinks:   sinks,
		timeout: 5 * time.Second,
		now:     time.Now,
	}
}

// Sinks returns the names of the attached sinks.
func (j *Journal) Sinks() []string {
	if j == nil {
		return nil
	}
	names := make([]string, 0, len(j.sinks))
	for _, s := range j.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Record stamps ev with an id and time and fans it out. It returns the
// stamped event once every sink has answered or timed out.
func (j *Journal) Record(ctx context.Context, ev models.ModerationEvent) models.ModerationEvent {
	if j == nil {
		return ev
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = j.now().UTC()
	}

	logger.Info(describe(ev), "Journal")

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	var g errgroup.Group
	for _, s := range j.sinks {
		s := s
		g.Go(func() error {
			if err := s.Write(ctx, ev); err != nil {
				logger.Warn(fmt.Sprintf("%s sink: %v", s.Name(), err), "Journal")
			}
			return nil
		})
	}
	_ = g.Wait()
	return ev
}

func describe(ev models.ModerationEvent) string {
	msg := string(ev.Kind)
	if ev.TargetID != "" {
		msg += " target=" + ev.TargetID
	}
	if ev.ModeratorID != "" {
		msg += " by=" + ev.ModeratorID
	}
	if ev.Reason != "" {
		msg += " reason=" + fmt.Sprintf("%q", ev.Reason)
	}
	if ev.Detail != "" {
		msg += " " + ev.Detail
	}
	return msg
}
