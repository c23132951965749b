// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import "github.com/pkg/errors"

// Stage errors: the prerequisite stage has not completed. Recoverable by
// running the prerequisite first.
var (
	ErrEpochStateNotFound          = errors.New("epoch state not found")
	ErrWeightTableNotInitialized   = errors.New("weight table not initialized")
	ErrEpochSnapshotNotInitialized = errors.New("epoch snapshot not initialized")
	ErrEpochSnapshotNotFinalized   = errors.New("epoch snapshot not finalized")
	ErrBallotBoxNotInitialized     = errors.New("ballot box not initialized")
)

// Eligibility errors: not retryable without an external state change.
var (
	ErrOperatorNotFound        = errors.New("operator not snapshotted")
	ErrVaultNotFound           = errors.New("vault not registered")
	ErrDelegationCountMismatch = errors.New("delegation count exceeds registered vaults")
)

// Idempotency and lifecycle errors: harmless duplicate or out-of-lifecycle
// calls, rejected without side effects.
var (
	ErrAlreadyInitialized  = errors.New("record already initialized")
	ErrEpochClosing        = errors.New("epoch is closing")
	ErrEpochClosed         = errors.New("epoch already closed")
	ErrRetentionNotElapsed = errors.New("retention window not elapsed")
)

// Consensus-state errors.
var (
	ErrConsensusAlreadyRecorded = errors.New("consensus result already recorded")
	ErrConsensusNotReached      = errors.New("consensus not reached")
)
