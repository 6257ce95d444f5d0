package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/docaura/backend/internal/domain"
	"github.com/docaura/backend/internal/domain/models"
)

type fakeKeyRepo struct {
	identity *models.Identity
	calls    int
}

func (f *fakeKeyRepo) ResolveByHash(_ context.Context, keyHash string) (*models.Identity, error) {
	f.calls++
	if f.identity == nil {
		return nil, fmt.Errorf("api key: %w", domain.ErrNotFound)
	}
	ident := *f.identity
	return &ident, nil
}

type fakeUsageRepo struct {
	keyUses    int
	callIncs   int
	failWrites bool
}

func (f *fakeUsageRepo) RecordKeyUse(_ context.Context, keyID string) error {
	f.keyUses++
	if f.failWrites {
		return errors.New("write failed")
	}
	return nil
}

func (f *fakeUsageRepo) IncrementAPICalls(_ context.Context, organizationID string) error {
	f.callIncs++
	if f.failWrites {
		return errors.New("write failed")
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func proIdentity(used, limit int) *models.Identity {
	return &models.Identity{
		Key: models.APIKey{
			ID:             "key-1",
			OrganizationID: "org-1",
			IsActive:       true,
		},
		Organization: models.Organization{ID: "org-1", Name: "Acme"},
		Subscription: models.Subscription{
			ID:            "sub-1",
			Plan:          models.PlanPro,
			APICallsUsed:  used,
			APICallsLimit: limit,
		},
	}
}

func TestHashAPIKey(t *testing.T) {
	// Known SHA-256 vector
	got := HashAPIKey("test")
	want := "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	if got != want {
		t.Errorf("HashAPIKey(\"test\") = %s, want %s", got, want)
	}

	if HashAPIKey("a") == HashAPIKey("b") {
		t.Error("distinct keys must not collide")
	}
}

func TestAdmit(t *testing.T) {
	tests := []struct {
		name       string
		rawKey     string
		identity   *models.Identity
		wantErr    error
		wantLookup bool
		wantCharge bool
	}{
		{
			name:       "valid pro key under quota admitted",
			rawKey:     "dk_live_good",
			identity:   proIdentity(10, 1000),
			wantLookup: true,
			wantCharge: true,
		},
		{
			name:       "last unit of quota admitted",
			rawKey:     "dk_live_almost",
			identity:   proIdentity(999, 1000),
			wantLookup: true,
			wantCharge: true,
		},
		{
			name:       "hostile key rejected before lookup",
			rawKey:     "x' OR 1=1; --",
			wantErr:    &domain.ValidationError{},
			wantLookup: false,
		},
		{
			name:       "unknown key",
			rawKey:     "dk_live_unknown",
			identity:   nil,
			wantErr:    &domain.UnauthorizedError{},
			wantLookup: true,
		},
		{
			name:   "free plan rejected before charge",
			rawKey: "dk_live_free",
			identity: func() *models.Identity {
				ident := proIdentity(0, 1000)
				ident.Subscription.Plan = models.PlanFree
				return ident
			}(),
			wantErr:    &domain.PlanRequiredError{},
			wantLookup: true,
		},
		{
			name:       "quota exhausted rejected before charge",
			rawKey:     "dk_live_spent",
			identity:   proIdentity(1000, 1000),
			wantErr:    &domain.QuotaExceededError{},
			wantLookup: true,
		},
		{
			name:       "over quota rejected",
			rawKey:     "dk_live_over",
			identity:   proIdentity(1001, 1000),
			wantErr:    &domain.QuotaExceededError{},
			wantLookup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := &fakeKeyRepo{identity: tt.identity}
			usage := &fakeUsageRepo{}
			gate := NewGatekeeper(keys, usage, testLogger())

			ident, err := gate.Admit(context.Background(), tt.rawKey)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected %T, got nil", tt.wantErr)
				}
				switch tt.wantErr.(type) {
				case *domain.ValidationError:
					var e *domain.ValidationError
					if !errors.As(err, &e) {
						t.Errorf("error is %T, want *domain.ValidationError", err)
					}
				case *domain.UnauthorizedError:
					var e *domain.UnauthorizedError
					if !errors.As(err, &e) {
						t.Errorf("error is %T, want *domain.UnauthorizedError", err)
					}
				case *domain.PlanRequiredError:
					var e *domain.PlanRequiredError
					if !errors.As(err, &e) {
						t.Errorf("error is %T, want *domain.PlanRequiredError", err)
					}
				case *domain.QuotaExceededError:
					var e *domain.QuotaExceededError
					if !errors.As(err, &e) {
						t.Errorf("error is %T, want *domain.QuotaExceededError", err)
					}
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			} else if ident == nil {
				t.Fatal("expected identity, got nil")
			}

			if tt.wantLookup && keys.calls == 0 {
				t.Error("expected key lookup, got none")
			}
			if !tt.wantLookup && keys.calls > 0 {
				t.Error("hostile key must not reach the lookup path")
			}

			wantWrites := 0
			if tt.wantCharge {
				wantWrites = 1
			}
			if usage.keyUses != wantWrites {
				t.Errorf("key use writes = %d, want %d", usage.keyUses, wantWrites)
			}
			if usage.callIncs != wantWrites {
				t.Errorf("api call increments = %d, want %d", usage.callIncs, wantWrites)
			}
		})
	}
}

func TestAdmitUniformUnauthorizedMessage(t *testing.T) {
	// Missing and inactive keys must produce byte-identical errors; the
	// repository already collapses both into ErrNotFound, so any resolve
	// failure of that class surfaces as the same message.
	keys := &fakeKeyRepo{identity: nil}
	gate := NewGatekeeper(keys, &fakeUsageRepo{}, testLogger())

	_, err1 := gate.Admit(context.Background(), "dk_never_existed")
	_, err2 := gate.Admit(context.Background(), "dk_deactivated")

	if err1 == nil || err2 == nil {
		t.Fatal("expected errors for both keys")
	}
	if err1.Error() != err2.Error() {
		t.Errorf("messages differ: %q vs %q", err1.Error(), err2.Error())
	}
	if err1.Error() != "Invalid API key" {
		t.Errorf("message = %q, want %q", err1.Error(), "Invalid API key")
	}
}

func TestAdmitQuotaNumbersInError(t *testing.T) {
	keys := &fakeKeyRepo{identity: proIdentity(1000, 1000)}
	gate := NewGatekeeper(keys, &fakeUsageRepo{}, testLogger())

	_, err := gate.Admit(context.Background(), "dk_live_spent")

	var qErr *domain.QuotaExceededError
	if !errors.As(err, &qErr) {
		t.Fatalf("error is %T, want *domain.QuotaExceededError", err)
	}
	if qErr.Used != 1000 || qErr.Limit != 1000 {
		t.Errorf("used/limit = %d/%d, want 1000/1000", qErr.Used, qErr.Limit)
	}
}

func TestAdmitUsageWriteFailureIsTolerated(t *testing.T) {
	// Accounting is best-effort telemetry: a failed write is logged, never
	// surfaced to the caller
	keys := &fakeKeyRepo{identity: proIdentity(0, 1000)}
	usage := &fakeUsageRepo{failWrites: true}
	gate := NewGatekeeper(keys, usage, testLogger())

	ident, err := gate.Admit(context.Background(), "dk_live_good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident == nil {
		t.Fatal("expected identity despite usage write failure")
	}
	if usage.keyUses != 1 || usage.callIncs != 1 {
		t.Errorf("both usage writes must be attempted, got %d/%d", usage.keyUses, usage.callIncs)
	}
}

func TestAdmitChargesOnCanceledContext(t *testing.T) {
	// A client hanging up after admission must not skip the charge
	keys := &fakeKeyRepo{identity: proIdentity(0, 1000)}
	usage := &fakeUsageRepo{}
	gate := NewGatekeeper(keys, usage, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Resolve uses the canceled context via the fake (which ignores it);
	// the charge path must run on a detached context regardless
	if _, err := gate.Admit(ctx, "dk_live_good"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage.keyUses != 1 || usage.callIncs != 1 {
		t.Errorf("usage writes = %d/%d, want 1/1", usage.keyUses, usage.callIncs)
	}
}
