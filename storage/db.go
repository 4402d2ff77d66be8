// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/avalanchego/api/metrics"

	"github.com/ava-labs/collectiblevm/pebble"
	"github.com/ava-labs/collectiblevm/state"
	"github.com/ava-labs/collectiblevm/utils"
)

// New opens the pebble backed state database under [dataDir] and registers
// its metrics with [gatherer].
func New(cfg pebble.Config, dataDir string, gatherer metrics.MultiGatherer) (state.Database, error) {
	path, err := utils.InitSubDirectory(dataDir, databaseNamespace)
	if err != nil {
		return nil, err
	}

	db, registry, err := pebble.New(path, cfg)
	if err != nil {
		return nil, err
	}

	if err := gatherer.Register(databaseNamespace, registry); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
