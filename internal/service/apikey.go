package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/docaura/backend/internal/domain"
	"github.com/docaura/backend/internal/domain/models"
	"github.com/docaura/backend/internal/domain/repositories"
	domainSvc "github.com/docaura/backend/internal/domain/services"
)

// gatekeeper implements the Gatekeeper interface
type gatekeeper struct {
	keys   repositories.APIKeyRepository
	usage  repositories.UsageRepository
	logger *slog.Logger
}

// NewGatekeeper creates a new gatekeeper
func NewGatekeeper(keys repositories.APIKeyRepository, usage repositories.UsageRepository, logger *slog.Logger) domainSvc.Gatekeeper {
	return &gatekeeper{
		keys:   keys,
		usage:  usage,
		logger: logger,
	}
}

// Admit runs the admission chain for a presented API key. Ordering is
// load-bearing: format screen, then hash lookup, then plan gate, then
// quota gate, then the usage pre-charge. Reordering would leak key
// validity to unauthenticated callers or spend quota on rejected requests.
func (g *gatekeeper) Admit(ctx context.Context, rawKey string) (*models.Identity, error) {
	if err := ValidateAPIKeyFormat(rawKey); err != nil {
		return nil, err
	}

	ident, err := g.keys.ResolveByHash(ctx, HashAPIKey(rawKey))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Uniform response: missing, inactive and never-existed keys
			// are indistinguishable to the caller
			return nil, &domain.UnauthorizedError{Message: "Invalid API key"}
		}
		return nil, err
	}

	if ident.Subscription.Plan != models.PlanPro {
		return nil, &domain.PlanRequiredError{
			Message:    "API access requires Pro plan",
			UpgradeURL: "/settings/subscription",
		}
	}

	if ident.Subscription.APICallsUsed >= ident.Subscription.APICallsLimit {
		return nil, &domain.QuotaExceededError{
			Message: "API rate limit exceeded",
			Used:    ident.Subscription.APICallsUsed,
			Limit:   ident.Subscription.APICallsLimit,
		}
	}

	// Optimistic pre-charge. The quota check above and these increments are
	// not atomic as a pair: a burst of concurrent requests on one key can
	// slightly overshoot the limit. The increments themselves are atomic
	// at the storage layer, so usage is never lost.
	//
	// Detached from request cancellation: once admitted, a client hanging
	// up must not skip the charge.
	chargeCtx := context.WithoutCancel(ctx)
	if err := g.usage.RecordKeyUse(chargeCtx, ident.Key.ID); err != nil {
		g.logger.Error("failed to record key use",
			"error", err,
			"key_id", ident.Key.ID,
		)
	}
	if err := g.usage.IncrementAPICalls(chargeCtx, ident.Key.OrganizationID); err != nil {
		g.logger.Error("failed to increment api calls",
			"error", err,
			"organization_id", ident.Key.OrganizationID,
		)
	}

	return ident, nil
}

// HashAPIKey computes the lowercase hex SHA-256 digest of a raw key.
// Raw keys are never stored, compared or logged.
func HashAPIKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}
