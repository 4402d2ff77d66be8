// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "collectible-cli" implements the collection's command line client.
package main

import (
	"context"
	"os"

	"github.com/ava-labs/collectiblevm/cmd/collectible-cli/cmd"
	"github.com/ava-labs/collectiblevm/utils"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cmd.Execute(ctx, os.Args); err != nil {
		utils.Outf("{{red}}error: {{/}}%+v\n", err)
		os.Exit(1)
	}
}
