// Package access decides whether a user may touch a team, project, task or
// attachment by walking the ownership chain up to a team membership.
//
// Every call walks the whole chain against current store contents and nothing
// is memoized. A missing link and a missing membership both produce Denied,
// and both run the same number of store lookups: after a miss the walk goes
// on with uuid.Nil up to the membership check. Only store failures are
// reported as errors.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	apperrors "taskhub/internal/errors"
)

// Kind names a resource type in the ownership chain.
type Kind string

const (
	KindTeam       Kind = "team"
	KindProject    Kind = "project"
	KindTask       Kind = "task"
	KindAttachment Kind = "attachment"
)

// Decision is the outcome of an access check.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// OwnershipStore is the read-only view of the data store the resolver needs.
// A missing row is reported as found=false with a nil error.
type OwnershipStore interface {
	FindMembership(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	FindProjectOwnerTeam(ctx context.Context, projectID uuid.UUID) (teamID uuid.UUID, found bool, err error)
	FindTaskOwnerProject(ctx context.Context, taskID uuid.UUID) (projectID uuid.UUID, found bool, err error)
	FindAttachmentOwnerTask(ctx context.Context, attachmentID uuid.UUID) (taskID uuid.UUID, found bool, err error)
}

type parentLookup struct {
	parent Kind
	find   func(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

// Resolver evaluates ownership chains.
type Resolver struct {
	store OwnershipStore
	chain map[Kind]parentLookup
}

// NewResolver builds a resolver over store.
func NewResolver(store OwnershipStore) *Resolver {
	return &Resolver{
		store: store,
		chain: map[Kind]parentLookup{
			KindProject:    {parent: KindTeam, find: store.FindProjectOwnerTeam},
			KindTask:       {parent: KindProject, find: store.FindTaskOwnerProject},
			KindAttachment: {parent: KindTask, find: store.FindAttachmentOwnerTask},
		},
	}
}

// CanAccessTeam is true iff a membership row for (teamID, userID) exists.
func (r *Resolver) CanAccessTeam(ctx context.Context, userID, teamID uuid.UUID) (Decision, error) {
	return r.Check(ctx, userID, KindTeam, teamID)
}

// CanAccessProject resolves the project's team, then checks membership.
func (r *Resolver) CanAccessProject(ctx context.Context, userID, projectID uuid.UUID) (Decision, error) {
	return r.Check(ctx, userID, KindProject, projectID)
}

// CanAccessTask resolves task -> project -> team, then checks membership.
func (r *Resolver) CanAccessTask(ctx context.Context, userID, taskID uuid.UUID) (Decision, error) {
	return r.Check(ctx, userID, KindTask, taskID)
}

// CanAccessAttachment decides access for reading or uploading attachments of
// a task. Attachments have no permission of their own; the task's chain
// applies.
func (r *Resolver) CanAccessAttachment(ctx context.Context, userID, taskID uuid.UUID) (Decision, error) {
	return r.Check(ctx, userID, KindTask, taskID)
}

// Check walks from (kind, id) to its team and looks up the membership.
func (r *Resolver) Check(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) (Decision, error) {
	teamID, found, err := r.walkToTeam(ctx, kind, id, true)
	if err != nil {
		return Denied, err
	}

	if err := ctx.Err(); err != nil {
		return Denied, contextError(err)
	}
	member, err := r.store.FindMembership(ctx, teamID, userID)
	if err != nil {
		return Denied, lookupError("membership", err)
	}
	if !found || !member {
		return Denied, nil
	}
	return Allowed, nil
}

// Require is Check collapsed to an error: ErrNotFoundOrForbidden when denied.
func (r *Resolver) Require(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) error {
	decision, err := r.Check(ctx, userID, kind, id)
	if err != nil {
		return err
	}
	if decision != Allowed {
		return apperrors.ErrNotFoundOrForbidden
	}
	return nil
}

// walkToTeam follows parent links up to a team. A miss does not end the
// walk: the remaining hops are looked up with uuid.Nil and found stays false.
func (r *Resolver) walkToTeam(ctx context.Context, kind Kind, id uuid.UUID, found bool) (uuid.UUID, bool, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, false, contextError(err)
	}
	if kind == KindTeam {
		return id, found, nil
	}

	link, ok := r.chain[kind]
	if !ok {
		return uuid.Nil, false, fmt.Errorf("unknown resource kind %q", kind)
	}

	parentID, ok, err := link.find(ctx, id)
	if err != nil {
		return uuid.Nil, false, lookupError(string(kind), err)
	}
	if !ok {
		parentID, found = uuid.Nil, false
	}
	return r.walkToTeam(ctx, link.parent, parentID, found)
}

// contextError passes cancellation through and treats a deadline as the
// store being too slow.
func contextError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
}

func lookupError(what string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: lookup %s: %v", apperrors.ErrUpstreamUnavailable, what, err)
}
