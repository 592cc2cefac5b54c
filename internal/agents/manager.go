package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// ErrInvocationFailed wraps any failure inside a specialist invocation.
var ErrInvocationFailed = errors.New("specialist invocation failed")

// ErrUnknownSpecialist is returned when the requested specialist is not
// in the registry.
var ErrUnknownSpecialist = errors.New("unknown specialist")

// NoResponsePlaceholder is returned when a run ends without a final
// event. Callers always get a non-empty message on success.
const NoResponsePlaceholder = "(no response)"

const releaseTimeout = 5 * time.Second

// Manager owns the lifecycle of specialist sessions. Every invocation
// gets a fresh session that is released before Invoke returns, whether
// the run succeeded, failed or timed out.
type Manager struct {
	runtime Runtime
	logger  *slog.Logger
	timeout time.Duration
	seq     atomic.Uint64
}

func NewManager(runtime Runtime, timeout time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		runtime: runtime,
		logger:  logger,
		timeout: timeout,
	}
}

// sessionID builds a unique per-invocation identifier. The sequence
// suffix keeps IDs distinct even when two invocations land on the same
// nanosecond.
func (m *Manager) sessionID(specialist SpecialistName, campaignID string) string {
	return fmt.Sprintf("sub_agent_%s_%s_%d-%d", specialist, campaignID, time.Now().UnixNano(), m.seq.Add(1))
}

// Invoke runs one complete specialist turn: create a session, run the
// payload through it, and release the session. The release is
// best-effort; its failure is logged but never changes the outcome.
func (m *Manager) Invoke(ctx context.Context, specialist SpecialistName, payload *Payload) (string, error) {
	spec, ok := Get(specialist)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSpecialist, specialist)
	}

	sessionID := m.sessionID(specialist, payload.CampaignID)
	log := m.logger.With("session_id", sessionID, "specialist", specialist, "campaign_id", payload.CampaignID)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.runtime.CreateSession(ctx, sessionID, spec); err != nil {
		return "", fmt.Errorf("%w: create session: %w", ErrInvocationFailed, err)
	}

	defer func() {
		// Release must proceed even when the invocation context has
		// already expired.
		releaseCtx, releaseCancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer releaseCancel()
		if err := m.runtime.DeleteSession(releaseCtx, sessionID); err != nil {
			log.Warn("Session release failed", "error", err)
		}
	}()

	log.Debug("Invoking specialist", "action", payload.Action)

	events, err := m.runtime.RunTurn(ctx, sessionID, payload)
	if err != nil {
		return "", fmt.Errorf("%w: run turn: %w", ErrInvocationFailed, err)
	}

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrInvocationFailed, ctx.Err())
		case event, ok := <-events:
			if !ok {
				log.Debug("Specialist run ended without final response")
				return NoResponsePlaceholder, nil
			}
			if event.Err != nil {
				return "", fmt.Errorf("%w: %w", ErrInvocationFailed, event.Err)
			}
			if event.Final {
				return event.Content, nil
			}
			// Intermediate event; keep consuming.
		}
	}
}
