// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/collectiblevm/state"
)

var (
	_ state.Database = (*Database)(nil)
	_ database.Batch = (*batch)(nil)
)

type Config struct {
	CacheSize                int  `json:"cacheSize" yaml:"cacheSize"`
	BytesPerSync             int  `json:"bytesPerSync" yaml:"bytesPerSync"`
	MaxOpenFiles             int  `json:"maxOpenFiles" yaml:"maxOpenFiles"`
	L0CompactionThreshold    int  `json:"l0CompactionThreshold" yaml:"l0CompactionThreshold"`
	L0StopWritesThreshold    int  `json:"l0StopWritesThreshold" yaml:"l0StopWritesThreshold"`
	ConcurrentCompactions    int  `json:"concurrentCompactions" yaml:"concurrentCompactions"`
	Sync                     bool `json:"sync" yaml:"sync"`
	DisableBackgroundMetrics bool `json:"disableBackgroundMetrics" yaml:"disableBackgroundMetrics"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:             128 * 1024 * 1024,
		BytesPerSync:          1024 * 1024,
		MaxOpenFiles:          4_096,
		L0CompactionThreshold: 4,
		L0StopWritesThreshold: 12,
		ConcurrentCompactions: 1,
		Sync:                  true,
	}
}

// Database is a [state.Database] backed by pebble.
type Database struct {
	db      *pebble.DB
	metrics *metrics
	sync    *pebble.WriteOptions

	closing chan struct{}
	closed  chan struct{}
}

// New opens (or creates) a pebble database in [file] and returns the
// registry its metrics are reported on.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// These default settings are based on https://github.com/ethereum/go-ethereum/blob/master/ethdb/pebble/pebble.go
	d := &Database{
		closing: make(chan struct{}),
		closed:  make(chan struct{}),
		sync:    pebble.NoSync,
	}
	if cfg.Sync {
		d.sync = pebble.Sync
	}
	opts := &pebble.Options{
		Cache:                    pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:             cfg.BytesPerSync,
		Comparer:                 pebble.DefaultComparer,
		MaxOpenFiles:             cfg.MaxOpenFiles,
		L0CompactionThreshold:    cfg.L0CompactionThreshold,
		L0StopWritesThreshold:    cfg.L0StopWritesThreshold,
		MaxConcurrentCompactions: func() int { return cfg.ConcurrentCompactions },
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d.metrics = metrics
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	if cfg.DisableBackgroundMetrics {
		close(d.closed)
	} else {
		go func() {
			defer close(d.closed)
			d.collectMetrics()
		}()
	}
	return d, registry, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

func (db *Database) Get(key []byte) ([]byte, error) {
	timer := prometheus.NewTimer(db.metrics.getLatency)
	defer timer.ObserveDuration()

	data, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// pebble owns [data] until [closer] is called
	value := make([]byte, len(data))
	copy(value, data)
	return value, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	return db.db.Set(key, value, db.sync)
}

func (db *Database) Delete(key []byte) error {
	return db.db.Delete(key, db.sync)
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

func (db *Database) Close() error {
	close(db.closing)
	<-db.closed
	return db.db.Close()
}

// batch collects operations in memory and applies them atomically
// when [Write] is called.
type batch struct {
	database.BatchOps

	db *Database
}

func (b *batch) Write() error {
	pb := b.db.db.NewBatch()
	defer pb.Close()

	for _, op := range b.Ops {
		var err error
		if op.Delete {
			err = pb.Delete(op.Key, nil)
		} else {
			err = pb.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			return err
		}
	}
	b.db.metrics.batchSize.Observe(float64(len(b.Ops)))
	return pb.Commit(b.db.sync)
}

func (b *batch) Inner() database.Batch {
	return b
}
