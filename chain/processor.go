// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/storage"
	"github.com/ava-labs/collectiblevm/tstate"
	"github.com/ava-labs/collectiblevm/utils"
)

// changedKeysEstimate sizes the [tstate.TState] created per transaction.
const changedKeysEstimate = 16

// Processor executes transactions one at a time against [state.Database].
//
// Each transaction runs in its own [tstate.TStateView]. If the action
// fails, every change (including the debited value) is rolled back and only
// the failed [Result] is persisted.
type Processor struct {
	log     logging.Logger
	tracer  trace.Tracer
	rules   Rules
	db      state.Database
	metrics *chainMetrics
	now     func() time.Time

	l         sync.Mutex
	height    atomic.Uint64
	listeners []Listener
}

func NewProcessor(
	ctx context.Context,
	log logging.Logger,
	tracer trace.Tracer,
	rules Rules,
	db state.Database,
	registerer prometheus.Registerer,
) (*Processor, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	height, err := storage.GetHeight(ctx, state.NewReader(db))
	if err != nil {
		return nil, err
	}
	p := &Processor{
		log:     log,
		tracer:  tracer,
		rules:   rules,
		db:      db,
		metrics: metrics,
		now:     time.Now,
	}
	p.height.Store(height)
	metrics.height.Set(float64(height))
	return p, nil
}

// SetClock overrides the time source used to check transaction expiry.
func (p *Processor) SetClock(now func() time.Time) {
	p.l.Lock()
	defer p.l.Unlock()

	p.now = now
}

func (p *Processor) AddListener(l Listener) {
	p.l.Lock()
	defer p.l.Unlock()

	p.listeners = append(p.listeners, l)
}

// Height returns the number of transactions executed so far.
func (p *Processor) Height() uint64 {
	return p.height.Load()
}

func (p *Processor) Rules() Rules {
	return p.rules
}

// State returns a read-only view of the committed state.
func (p *Processor) State() state.Immutable {
	return state.NewReader(p.db)
}

func (p *Processor) verify(ctx context.Context, tx *Transaction, timestamp int64) error {
	if err := tx.Base.Execute(p.rules.GetChainID(), p.rules, timestamp); err != nil {
		return err
	}
	if tx.Base.Value > 0 && !tx.Action.Payable() {
		return fmt.Errorf("%w: action=%d value=%d", ErrNonPayable, tx.Action.GetTypeID(), tx.Base.Value)
	}
	digest, err := tx.Digest()
	if err != nil {
		return err
	}
	if err := tx.Auth.Verify(ctx, digest); err != nil {
		return err
	}
	_, exists, err := storage.GetTxResult(ctx, state.NewReader(p.db), tx.ID())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTx, tx.ID())
	}
	return nil
}

func (p *Processor) run(
	ctx context.Context,
	mu state.Mutable,
	tx *Transaction,
	timestamp int64,
) (Output, error) {
	actor := tx.Actor()
	if value := tx.Base.Value; value > 0 {
		if _, err := storage.SubBalance(ctx, mu, actor, value); err != nil {
			return nil, err
		}
	}
	return tx.Action.Execute(ctx, p.rules, mu, timestamp, actor, tx.ID(), tx.Base.Value)
}

// Execute verifies [tx], applies it and persists its [Result].
//
// A non-nil error means the transaction was rejected and nothing was
// written. A failed action is reported through [Result.Success].
func (p *Processor) Execute(ctx context.Context, tx *Transaction) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.Execute")
	defer span.End()

	p.l.Lock()
	defer p.l.Unlock()

	start := time.Now()
	timestamp := p.now().UnixMilli()
	if err := p.verify(ctx, tx, timestamp); err != nil {
		p.metrics.txsRejected.Inc()
		p.log.Debug("rejected transaction",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return nil, err
	}

	ts := tstate.New(state.NewReader(p.db), changedKeysEstimate)
	view := ts.NewView()
	height := p.height.Load() + 1
	result := &Result{
		Height:    height,
		Timestamp: timestamp,
		Actor:     tx.Actor(),
	}
	output, err := p.run(ctx, view, tx, timestamp)
	if err == nil {
		result.Output, err = MarshalOutput(output)
	}
	if err != nil {
		view.Rollback(ctx, 0)
		result.Error = utils.ErrBytes(err)
	} else {
		result.Success = true
		view.Commit()
	}

	if err := p.record(ctx, ts, tx.ID(), result); err != nil {
		return nil, err
	}
	p.height.Store(height)

	if result.Success {
		p.metrics.txsSucceeded.Inc()
	} else {
		p.metrics.txsFailed.Inc()
	}
	p.metrics.height.Set(float64(height))
	p.metrics.executeLatency.Observe(time.Since(start).Seconds())
	p.log.Debug("executed transaction",
		zap.Stringer("txID", tx.ID()),
		zap.Uint64("height", height),
		zap.Uint8("action", tx.Action.GetTypeID()),
		zap.Bool("success", result.Success),
		zap.ByteString("error", result.Error),
	)

	for _, l := range p.listeners {
		l.Executed(ctx, tx, result)
	}
	return result, nil
}

// record stores [result] alongside the changes in [ts] in a single batch.
func (p *Processor) record(ctx context.Context, ts *tstate.TState, txID ids.ID, result *Result) error {
	resultBytes, err := result.Bytes()
	if err != nil {
		return err
	}
	rv := ts.NewView()
	if err := storage.SetTxResult(ctx, rv, txID, resultBytes); err != nil {
		return err
	}
	if err := storage.SetHeight(ctx, rv, result.Height); err != nil {
		return err
	}
	rv.Commit()

	batch := p.db.NewBatch()
	changes, err := ts.WriteChanges(ctx, p.tracer, batch)
	if err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	p.metrics.stateChanges.Add(float64(changes))
	return nil
}

// GetResult returns the stored result of [txID].
func (p *Processor) GetResult(ctx context.Context, txID ids.ID) (*Result, bool, error) {
	raw, exists, err := storage.GetTxResult(ctx, state.NewReader(p.db), txID)
	if err != nil || !exists {
		return nil, false, err
	}
	result, err := UnmarshalResult(raw)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}
