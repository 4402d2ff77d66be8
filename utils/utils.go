// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/onsi/ginkgo/v2/formatter"

	"github.com/ava-labs/collectiblevm/consts"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var ErrInvalidBalance = errors.New("invalid balance")

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := filepath.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

func ErrBytes(err error) []byte {
	return []byte(err.Error())
}

// Outf writes a colorized message to stdout.
//
// e.g.,
//
//	Outf("{{green}}{{bold}}minted %d{{/}}\n", 3)
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// FormatBalance renders [bal] smallest units as a decimal string with
// [consts.Decimals] places.
func FormatBalance(bal uint64) string {
	s := strconv.FormatUint(bal, 10)
	if len(s) <= consts.Decimals {
		s = strings.Repeat("0", consts.Decimals-len(s)+1) + s
	}
	split := len(s) - consts.Decimals
	return s[:split] + "." + s[split:]
}

// ParseBalance is the inverse of [FormatBalance]. Inputs with more than
// [consts.Decimals] fractional digits are rejected.
func ParseBalance(bal string) (uint64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(bal), ".")
	if len(frac) > consts.Decimals {
		return 0, ErrInvalidBalance
	}
	if len(whole) == 0 {
		whole = "0"
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	var f uint64
	if len(frac) > 0 {
		f, err = strconv.ParseUint(frac+strings.Repeat("0", consts.Decimals-len(frac)), 10, 64)
		if err != nil {
			return 0, err
		}
	}
	scaled, err := smath.Mul(w, uint64(1_000_000_000_000_000_000))
	if err != nil {
		return 0, ErrInvalidBalance
	}
	total, err := smath.Add(scaled, f)
	if err != nil {
		return 0, ErrInvalidBalance
	}
	return total, nil
}

// UnixRMilli returns the current unix time in milliseconds, rounded
// down to the nearsest second.
//
// [now] is used as the current unix time in milliseconds if >= 0.
//
// [add] (in ms) is added to the unix time before it is rounded (typically
// used when generating an expiry time with a validity window).
func UnixRMilli(now, add int64) int64 {
	if now < 0 {
		now = time.Now().UnixMilli()
	}
	t := now + add
	return t - t%consts.MillisecondsPerSecond
}
