// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/common"
)

// Sentinel error kinds returned by Import. Use errors.Is against these,
// or errors.As into *ImportError to recover the offending hash.
var (
	ErrAlreadyImported = errors.New("already imported")
	ErrTooCheapToEnter = errors.New("too cheap to enter")
)

// ImportError wraps one of the sentinel errors above together with the
// hash of the transaction that triggered it, following the common
// package-sentinel-plus-%w-wrapper convention for caller inspection (see
// ErrOverdraft / ErrAlreadyReserved in go-ethereum-style transaction pools).
type ImportError struct {
	Hash common.Hash
	err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: %s", e.err, e.Hash)
}

func (e *ImportError) Unwrap() error {
	return e.err
}

func alreadyImported(hash common.Hash) error {
	return &ImportError{Hash: hash, err: ErrAlreadyImported}
}

func tooCheapToEnter(hash common.Hash) error {
	return &ImportError{Hash: hash, err: ErrTooCheapToEnter}
}
