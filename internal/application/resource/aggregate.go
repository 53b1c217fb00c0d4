package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Part is one independently fetched piece of a composite view. Fetch
// stores its result through a closure and reports whether anything was found.
type Part struct {
	Name  string
	Fetch func(ctx context.Context) (found bool, err error)
}

// Assemble runs every part concurrently. A part that fails does not stop
// the others; its error is reported in the returned map under the part name.
// Not-found results count as absent rather than failed.
//
// The composite itself is an error only when nothing was found and no part
// failed (NOT_FOUND), or when every part failed (UPSTREAM_ERROR).
func Assemble(ctx context.Context, resource, id string, parts ...Part) (map[string]string, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, resource, "complete", telemetry.AttrRecordID.String(id))
	defer span.End()

	found := make([]bool, len(parts))
	errs := make([]error, len(parts))

	var g errgroup.Group
	for i, part := range parts {
		g.Go(func() error {
			ok, err := part.Fetch(ctx)
			if err != nil && shared.IsNotFound(err) {
				ok, err = false, nil
			}
			found[i], errs[i] = ok, err
			return nil
		})
	}
	_ = g.Wait()

	partial := map[string]string{}
	anyFound := false
	for i, part := range parts {
		if errs[i] != nil {
			partial[part.Name] = publicMessage(errs[i])
			logger.L(ctx).Warn("Composite part failed",
				zap.String("resource", resource),
				zap.String("id", id),
				zap.String("part", part.Name),
				zap.Error(errs[i]),
			)
		}
		anyFound = anyFound || found[i]
	}

	if len(partial) == len(parts) && len(parts) > 0 {
		err := shared.NewUpstreamError(
			fmt.Sprintf("failed to load %s %s", resource, id),
			errors.Join(errs...),
		)
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !anyFound && len(partial) == 0 {
		return nil, shared.NewNotFoundError(resource, id)
	}
	if len(partial) == 0 {
		return nil, nil
	}
	return partial, nil
}

// publicMessage returns the message of a domain error without its cause.
func publicMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "failed to load"
}
