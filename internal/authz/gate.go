// Package authz gates mutations on resources that belong to a single user.
package authz

import (
	"context"
	"errors"
	"strconv"

	"github.com/GyroZepelix/newsboard/internal/apperr"
)

// OwnerFunc returns the username that owns the resource with the given id.
// It must return an error satisfying errors.Is(err, apperr.ErrNotFound) when
// the resource does not exist.
type OwnerFunc func(ctx context.Context, id int) (string, error)

// Gate authorizes an identity against the stored owner of one kind of
// resource.
type Gate struct {
	entity string
	owner  OwnerFunc
}

// NewGate creates a Gate for resources named entity whose owner is looked up
// with owner.
func NewGate(entity string, owner OwnerFunc) *Gate {
	return &Gate{entity: entity, owner: owner}
}

// Authorize returns nil when identity owns the resource. Existence is checked
// first, so a missing resource is always reported as not found and never as
// an ownership failure.
func (g *Gate) Authorize(ctx context.Context, identity string, id int) error {
	if identity == "" {
		return apperr.Unauthenticated()
	}

	owner, err := g.owner(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound(g.entity, strconv.Itoa(id))
		}
		return err
	}

	if owner != identity {
		return apperr.NotOwner(g.entity, strconv.Itoa(id))
	}
	return nil
}
