package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

// Executor performs bulk administrative actions through one live
// connection. Every action fans out over its targets, isolates failures per
// target, journals one logbook line per outcome and returns the outcomes.
// Nothing here short-circuits: a failing target never cancels its siblings.
type Executor struct {
	conn    ports.GatewayConnection
	clock   ports.Clock
	logbook *Logbook
	logger  *zap.Logger
}

func NewExecutor(conn ports.GatewayConnection, logbook *Logbook, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		conn:    conn,
		clock:   ports.SystemClock{},
		logbook: logbook,
		logger:  logger,
	}
}

// report journals every outcome under the given scope and returns the slice
// unchanged so actions can end with a single return.
func (e *Executor) report(scope string, outcomes []domain.ActionOutcome) []domain.ActionOutcome {
	for _, o := range outcomes {
		e.logbook.Append(scope, "%s", o.Message)
		if !o.Succeeded {
			e.logger.Warn("action failed",
				zap.String("scope", scope),
				zap.String("target", o.TargetID),
				zap.String("message", o.Message))
		}
	}
	return outcomes
}

// outcomeOf folds one target's result into an outcome. verb is past tense
// for the success line ("Kicked alice") and base form for the failure line
// ("Failed to kick alice: ...").
func outcomeOf(targetID, label, pastVerb, verb string, err error) domain.ActionOutcome {
	if err != nil {
		return domain.ActionOutcome{
			TargetID: targetID,
			Message:  fmt.Sprintf("Failed to %s %s: %v", verb, label, err),
		}
	}
	return domain.ActionOutcome{
		TargetID:  targetID,
		Succeeded: true,
		Message:   fmt.Sprintf("%s %s", pastVerb, label),
	}
}

// vars builds the placeholder set for one member in one guild.
func (e *Executor) vars(g domain.GuildSnapshot, memberID string) domain.PlaceholderVars {
	return domain.PlaceholderVars{
		ServerName: g.Name,
		InstanceID: e.conn.Self().ID,
		OwnerID:    g.OwnerID,
		MemberID:   memberID,
	}
}

// resolveMembers looks the target ids up in one batch immediately before
// acting. A batch-level resolution error fails every target uniformly; ids
// the batch could not find become individual failures instead of silent
// skips. Either way len(found)+len(failures) covers every requested id.
func (e *Executor) resolveMembers(ctx context.Context, g domain.GuildSnapshot, userIDs []string) (found []domain.MemberRef, failures []domain.ActionOutcome) {
	members, err := e.conn.FetchMembersByIDs(ctx, g.ID, userIDs)
	if err != nil {
		failures = make([]domain.ActionOutcome, len(userIDs))
		for i, id := range userIDs {
			failures[i] = domain.ActionOutcome{
				TargetID: id,
				Message:  fmt.Sprintf("Failed to resolve member %s: %v", id, err),
			}
		}
		return nil, failures
	}

	byID := make(map[string]domain.MemberRef, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	for _, id := range userIDs {
		m, ok := byID[id]
		if !ok {
			failures = append(failures, domain.ActionOutcome{
				TargetID: id,
				Message:  fmt.Sprintf("Failed to resolve member %s: not found", id),
			})
			continue
		}
		found = append(found, m)
	}
	return found, failures
}

func memberLabel(m domain.MemberRef) string {
	if m.Username != "" {
		return m.Username
	}
	return m.ID
}
