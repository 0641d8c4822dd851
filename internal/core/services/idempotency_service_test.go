package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/core/services"
	"github.com/ganges/ganges_backend/internal/repositories/database/memory"
	"github.com/stretchr/testify/suite"
)

type IdempotencyServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
	svc   portssvc.IdempotencySvc
	scope domain.IdempotencyScope
}

func TestIdempotencyServiceSuite(t *testing.T) {
	suite.Run(t, new(IdempotencyServiceTestSuite))
}

func (s *IdempotencyServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = memory.NewRepositoryProvider(memory.NewStore())
	s.svc = services.NewIdempotencyService(s.repos.IdempotencyRepo, time.Hour)
	s.scope = domain.IdempotencyScope{UserID: "u1", OperationType: domain.OpAddFunds, Key: "key-1"}
}

func (s *IdempotencyServiceTestSuite) TestFreshThenInProgress() {
	out, err := s.svc.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)
	s.False(out.Replay)

	_, err = s.svc.Begin(s.ctx, s.scope, "h1")
	s.ErrorIs(err, apperrors.ErrOperationInProgress)
	s.True(apperrors.IsRetryable(apperrors.KindOf(err)))
}

func (s *IdempotencyServiceTestSuite) TestCompletedReplaysStoredResult() {
	_, err := s.svc.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)

	tx, err := s.repos.TxManager.Begin(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Complete(s.ctx, tx, s.scope, map[string]string{"entryID": "e-1"}))

	_, err = s.svc.Begin(s.ctx, s.scope, "h1")
	s.ErrorIs(err, apperrors.ErrOperationInProgress, "completion is invisible until commit")

	s.Require().NoError(tx.Commit(s.ctx))
	out, err := s.svc.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)
	s.True(out.Replay)
	s.JSONEq(`{"entryID":"e-1"}`, string(out.Result))
}

func (s *IdempotencyServiceTestSuite) TestDifferentPayloadConflicts() {
	_, err := s.svc.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Complete(s.ctx, nil, s.scope, "done"))

	_, err = s.svc.Begin(s.ctx, s.scope, "h2")
	s.ErrorIs(err, apperrors.ErrConflict)
	s.False(apperrors.IsRetryable(apperrors.KindOf(err)))
}

func (s *IdempotencyServiceTestSuite) TestFailReleasesKey() {
	_, err := s.svc.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)

	cancelled, cancel := context.WithCancel(s.ctx)
	cancel()
	s.Require().NoError(s.svc.Fail(cancelled, s.scope), "release survives a cancelled request context")

	out, err := s.svc.Begin(s.ctx, s.scope, "h2")
	s.Require().NoError(err, "a released key accepts any payload")
	s.False(out.Replay)
}

func (s *IdempotencyServiceTestSuite) TestFailDoesNotEraseCompletedResult() {
	_, err := s.svc.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Complete(s.ctx, nil, s.scope, "done"))
	s.Require().NoError(s.svc.Fail(s.ctx, s.scope))

	out, err := s.svc.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)
	s.True(out.Replay)
}

func (s *IdempotencyServiceTestSuite) TestKeysAreScopedPerUserAndOperation() {
	_, err := s.svc.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)

	otherUser := s.scope
	otherUser.UserID = "u2"
	_, err = s.svc.Begin(s.ctx, otherUser, "h1")
	s.NoError(err)

	otherOp := s.scope
	otherOp.OperationType = domain.OpCreateShipment
	_, err = s.svc.Begin(s.ctx, otherOp, "h1")
	s.NoError(err)
}

func (s *IdempotencyServiceTestSuite) TestExpiredRecordsAreReplacedAndPurged() {
	short := services.NewIdempotencyService(s.repos.IdempotencyRepo, time.Millisecond)
	_, err := short.Begin(s.ctx, s.scope, "h1")
	s.Require().NoError(err)
	s.Require().NoError(short.Complete(s.ctx, nil, s.scope, "done"))
	time.Sleep(5 * time.Millisecond)

	out, err := short.Begin(s.ctx, s.scope, "h2")
	s.Require().NoError(err, "an expired key starts over")
	s.False(out.Replay)

	time.Sleep(5 * time.Millisecond)
	n, err := short.PurgeExpired(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *IdempotencyServiceTestSuite) TestMissingKeyIsValidationError() {
	scope := s.scope
	scope.Key = ""
	_, err := s.svc.Begin(s.ctx, scope, "h1")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *IdempotencyServiceTestSuite) TestRequestHashIsStable() {
	type payload struct {
		A string `json:"a"`
		B int    `json:"b"`
	}
	h1, err := services.RequestHash(payload{"x", 1})
	s.Require().NoError(err)
	h2, _ := services.RequestHash(payload{"x", 1})
	h3, _ := services.RequestHash(payload{"x", 2})
	s.Equal(h1, h2)
	s.NotEqual(h1, h3)
	s.Len(h1, 64)
}

func TestSweeperPurgesOnce(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	svc := services.NewIdempotencyService(repos.IdempotencyRepo, time.Millisecond)
	scope := domain.IdempotencyScope{UserID: "u", OperationType: domain.OpAddFunds, Key: "k"}
	if _, err := svc.Begin(ctx, scope, "h"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	services.NewIdempotencySweeper(svc, time.Minute, nil).SweepOnce(ctx)

	if _, err := repos.IdempotencyRepo.FindRecord(ctx, scope); err == nil {
		t.Fatal("expected the expired record to be purged")
	}
}

func TestSweeperStopsWithContext(t *testing.T) {
	repos := memory.NewRepositoryProvider(memory.NewStore())
	svc := services.NewIdempotencyService(repos.IdempotencyRepo, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		services.NewIdempotencySweeper(svc, time.Millisecond, nil).Run(ctx)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
