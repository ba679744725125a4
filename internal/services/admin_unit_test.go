package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/files/filesystem"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

func validConfig() *ecomadmin.ConnectionConfig {
	return &ecomadmin.ConnectionConfig{Host: "localhost", Port: 5432, Database: "shop", Username: "admin"}
}

func newTestService(opener ecomadmin.SessionOpener, approver ecomadmin.Approver, timeout time.Duration) *AdminService {
	loader := bulkload.NewLoader(filesystem.NewMemoryFileSystem(), &mockLogger{}, bulkload.LoadOptions{})
	return NewAdminService(opener, approver, loader, catalog.New(), &mockLogger{}, timeout)
}

func TestNewAdminService_NilDeps(t *testing.T) {
	loader := bulkload.NewLoader(filesystem.NewMemoryFileSystem(), &mockLogger{}, bulkload.LoadOptions{})
	cat := catalog.New()

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil sessions", func() { NewAdminService(nil, &mockApprover{}, loader, cat, &mockLogger{}, 0) }},
		{"nil approver", func() { NewAdminService(&mockOpener{}, nil, loader, cat, &mockLogger{}, 0) }},
		{"nil loader", func() { NewAdminService(&mockOpener{}, &mockApprover{}, nil, cat, &mockLogger{}, 0) }},
		{"nil catalog", func() { NewAdminService(&mockOpener{}, &mockApprover{}, loader, nil, &mockLogger{}, 0) }},
		{"nil logger", func() { NewAdminService(&mockOpener{}, &mockApprover{}, loader, cat, nil, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestClear_ApprovalDenied(t *testing.T) {
	opener := &mockOpener{}
	approver := &mockApprover{approved: false}
	svc := newTestService(opener, approver, 0)

	clears, err := svc.Clear(context.Background(), validConfig())
	require.ErrorIs(t, err, ecomadmin.ErrApprovalDenied)
	assert.Nil(t, clears)
	assert.Equal(t, []string{"shop"}, approver.targets)
	assert.Zero(t, opener.calls(), "no session may be opened without approval")
	assert.Equal(t, ecomadmin.ExitApprovalDenied, ecomadmin.ExitCodeForError(err))
}

func TestClear_ApprovalError(t *testing.T) {
	opener := &mockOpener{}
	svc := newTestService(opener, &mockApprover{err: errors.New("no terminal")}, 0)

	_, err := svc.Clear(context.Background(), validConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approval request failed")
	assert.Zero(t, opener.calls())
}

func TestClear_InvalidConfigSkipsApproval(t *testing.T) {
	approver := &mockApprover{approved: true}
	svc := newTestService(&mockOpener{}, approver, 0)

	_, err := svc.Clear(context.Background(), &ecomadmin.ConnectionConfig{Port: 5432})
	require.ErrorIs(t, err, ecomadmin.ErrInvalidConfig)
	assert.Empty(t, approver.targets)
}

func TestClear_ApprovedOpensSession(t *testing.T) {
	openErr := errors.New("connect refused")
	opener := &mockOpener{err: openErr}
	svc := newTestService(opener, &mockApprover{approved: true}, 0)

	_, err := svc.Clear(context.Background(), validConfig())
	require.ErrorIs(t, err, openErr)
	assert.Equal(t, 1, opener.calls())
}

func TestRunQuery_UnknownNameFailsBeforeConnecting(t *testing.T) {
	opener := &mockOpener{}
	svc := newTestService(opener, &mockApprover{}, 0)

	_, err := svc.RunQuery(context.Background(), validConfig(), "no-such-page", nil)
	require.ErrorIs(t, err, ecomadmin.ErrUnknownQuery)
	assert.Zero(t, opener.calls())
}

func TestRunQuery_BadArgumentsFailBeforeConnecting(t *testing.T) {
	opener := &mockOpener{}
	svc := newTestService(opener, &mockApprover{}, 0)

	_, err := svc.RunQuery(context.Background(), validConfig(), "customer-orders", map[string]string{"customer_id": "abc"})
	require.ErrorIs(t, err, ecomadmin.ErrValidation)

	var verr *ecomadmin.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customer_id", verr.Column)
	assert.Zero(t, opener.calls())
}

func TestLoadEntity_UnknownEntityFailsBeforeConnecting(t *testing.T) {
	opener := &mockOpener{}
	svc := newTestService(opener, &mockApprover{}, 0)

	_, err := svc.LoadEntity(context.Background(), validConfig(), "invoice", "invoice.csv")
	require.ErrorIs(t, err, ecomadmin.ErrUnknownEntity)
	assert.Equal(t, ecomadmin.ExitUsageError, ecomadmin.ExitCodeForError(err))
	assert.Zero(t, opener.calls())
}

func TestOperations_InvalidConfig(t *testing.T) {
	svc := newTestService(&mockOpener{}, &mockApprover{}, 0)
	cfg := &ecomadmin.ConnectionConfig{Host: "localhost", Port: 0}
	ctx := context.Background()

	_, statusErr := svc.Status(ctx, cfg)
	_, loadErr := svc.LoadAll(ctx, cfg, "data")

	for _, err := range []error{svc.ApplySchema(ctx, cfg), statusErr, loadErr} {
		assert.ErrorIs(t, err, ecomadmin.ErrInvalidConfig)
		assert.Equal(t, ecomadmin.ExitConfigError, ecomadmin.ExitCodeForError(err))
	}
}

func TestOperation_DeadlineBecomesTimeoutError(t *testing.T) {
	svc := newTestService(&mockOpener{block: true}, &mockApprover{}, 20*time.Millisecond)

	_, err := svc.Status(context.Background(), validConfig())
	require.ErrorIs(t, err, ecomadmin.ErrTimeout)

	var terr *ecomadmin.TimeoutError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "status", terr.Op)
	assert.Equal(t, 20*time.Millisecond, terr.Timeout)
	assert.Equal(t, ecomadmin.ExitTimeout, ecomadmin.ExitCodeForError(err))
}

func TestOperation_CallerCancellationIsNotTimeout(t *testing.T) {
	svc := newTestService(&mockOpener{block: true}, &mockApprover{}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Status(ctx, validConfig())
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ecomadmin.ErrTimeout)
}
