// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine coordinates the per-epoch consensus pipeline: weight
// freezing, stake snapshotting, voting, tallying, result persistence and
// record reclamation, each gated by the epoch state machine.
package engine

import (
	"sync"

	"github.com/jito-foundation/ncn-template-sub000/ballot"
	"github.com/jito-foundation/ncn-template-sub000/kv"
	"github.com/jito-foundation/ncn-template-sub000/log"
	"github.com/jito-foundation/ncn-template-sub000/ncn"
	"github.com/jito-foundation/ncn-template-sub000/registry"
	"github.com/jito-foundation/ncn-template-sub000/snapshot"
	"github.com/jito-foundation/ncn-template-sub000/store"
	"github.com/jito-foundation/ncn-template-sub000/weights"
)

var logger = log.WithContext("pkg", "engine")

// Engine executes consensus operations against the record store. A mutex
// serializes operations: the substrate model is one atomic transaction at a
// time, with no partial writes observable to other operations.
type Engine struct {
	mu  sync.Mutex
	ncn ncn.Pubkey
	st  *store.Store
}

// New creates an engine for the given ncn on the given store.
func New(ncnID ncn.Pubkey, st *store.Store) *Engine {
	return &Engine{ncn: ncnID, st: st}
}

/////////////////////////
// admin: registry ops //
/////////////////////////

// RegisterMint adds a supported token mint to the vault registry.
func (e *Engine) RegisterMint(mint ncn.Pubkey, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.loadRegistry()
	if err != nil {
		return err
	}
	if err := reg.RegisterMint(mint, slot); err != nil {
		return err
	}
	return e.saveOne(e.registryKey(), reg)
}

// SetMintWeight updates a mint's weight in the vault registry. Epochs whose
// weight table is already frozen are unaffected.
func (e *Engine) SetMintWeight(mint ncn.Pubkey, weight uint64, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.loadRegistry()
	if err != nil {
		return err
	}
	if err := reg.SetMintWeight(mint, weight, slot); err != nil {
		return err
	}
	return e.saveOne(e.registryKey(), reg)
}

// RegisterVault adds a vault, denominated in mint, to the vault registry.
func (e *Engine) RegisterVault(vault, mint ncn.Pubkey, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.loadRegistry()
	if err != nil {
		return err
	}
	if err := reg.RegisterVault(vault, mint, slot); err != nil {
		return err
	}
	return e.saveOne(e.registryKey(), reg)
}

/////////////////////
// epoch lifecycle //
/////////////////////

// InitializeEpoch opens the epoch state record. The operator count comes
// from the membership system; the vault count is captured from the registry.
// Re-initialization of a live or closed epoch is rejected.
func (e *Engine) InitializeEpoch(epoch ncn.Epoch, operatorCount uint64, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	closed, err := e.st.IsEpochClosed(e.ncn, epoch)
	if err != nil {
		return err
	}
	if closed {
		return ErrEpochClosed
	}
	if has, err := e.st.Has(e.stateKey(epoch)); err != nil {
		return err
	} else if has {
		return ErrAlreadyInitialized
	}
	if operatorCount > ncn.MaxOperators {
		return snapshot.ErrOperatorCapacity
	}

	reg, err := e.loadRegistry()
	if err != nil {
		return err
	}

	state := NewEpochState(e.ncn, epoch, slot, operatorCount, reg.VaultCount())
	if err := e.saveOne(e.stateKey(epoch), state); err != nil {
		return err
	}

	metricEpochsLive().Add(1)
	logger.Info("epoch opened", "epoch", uint64(epoch), "operators", operatorCount, "vaults", state.VaultCount)
	return nil
}

// InitializeWeightTable freezes the registry's mint list for the epoch.
func (e *Engine) InitializeWeightTable(epoch ncn.Epoch, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	if has, err := e.st.Has(e.tableKey(epoch)); err != nil {
		return err
	} else if has {
		return ErrAlreadyInitialized
	}

	reg, err := e.loadRegistry()
	if err != nil {
		return err
	}
	table, err := weights.NewTable(e.ncn, epoch, slot, reg, state.VaultCount)
	if err != nil {
		return err
	}
	state.SetWeightProgress = Progress{Tally: 0, Total: table.MintCount()}

	batch := e.st.NewBatch()
	if err := e.st.Save(batch, e.tableKey(epoch), table); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	return batch.Write()
}

// SetEpochWeight copies one mint's current registry weight into the epoch's
// weight table and advances the weight-setting progress.
func (e *Engine) SetEpochWeight(epoch ncn.Epoch, mint ncn.Pubkey, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	table, err := e.loadTable(epoch)
	if err != nil {
		return err
	}
	reg, err := e.loadRegistry()
	if err != nil {
		return err
	}

	entry := reg.MintEntry(mint)
	if entry == nil {
		return registry.ErrMintNotFound
	}
	if err := table.SetWeight(mint, entry.Weight, slot); err != nil {
		return err
	}
	state.SetWeightProgress.Tally = table.SetCount()

	batch := e.st.NewBatch()
	if err := e.st.Save(batch, e.tableKey(epoch), table); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}

	logger.Debug("weight set", "epoch", uint64(epoch), "mint", mint.AbbrevString(), "weight", entry.Weight)
	return nil
}

// InitializeEpochSnapshot opens the epoch's stake aggregate. Requires the
// weight table to be finalized.
func (e *Engine) InitializeEpochSnapshot(epoch ncn.Epoch, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	if has, err := e.st.Has(e.epochSnapKey(epoch)); err != nil {
		return err
	} else if has {
		return ErrAlreadyInitialized
	}
	table, err := e.loadTable(epoch)
	if err != nil {
		return err
	}

	snap, err := snapshot.NewEpochSnapshot(e.ncn, epoch, slot, state.OperatorCount, state.VaultCount, table)
	if err != nil {
		return err
	}
	state.EpochSnapshotProgress = Progress{Tally: 0, Total: state.OperatorCount}

	batch := e.st.NewBatch()
	if err := e.st.Save(batch, e.epochSnapKey(epoch), snap); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	return batch.Write()
}

// InitializeOperatorSnapshot opens one operator's stake record for the
// epoch. An operator expecting no delegations finalizes immediately and is
// folded into the epoch aggregate on the spot.
func (e *Engine) InitializeOperatorSnapshot(epoch ncn.Epoch, operator ncn.Pubkey, isActive bool, delegationCount uint64, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	snap, err := e.loadEpochSnapshot(epoch)
	if err != nil {
		return err
	}
	if has, err := e.st.Has(e.operatorSnapKey(epoch, operator)); err != nil {
		return err
	} else if has {
		return ErrAlreadyInitialized
	}
	if uint64(len(state.OperatorSnapshotProgress)) >= state.OperatorCount {
		return snapshot.ErrOperatorCapacity
	}
	if delegationCount > state.VaultCount {
		return ErrDelegationCountMismatch
	}

	index := uint64(len(state.OperatorSnapshotProgress))
	opSnap := snapshot.NewOperatorSnapshot(e.ncn, operator, epoch, slot, isActive, index, delegationCount)
	state.OperatorSnapshotProgress = append(state.OperatorSnapshotProgress, OperatorProgress{
		Operator: operator,
		Progress: Progress{Tally: 0, Total: delegationCount},
	})

	batch := e.st.NewBatch()
	if opSnap.Finalized() {
		if err := snap.FoldOperator(opSnap, slot); err != nil {
			return err
		}
		state.EpochSnapshotProgress.Tally = snap.OperatorsRegistered
		if err := e.st.Save(batch, e.epochSnapKey(epoch), snap); err != nil {
			return err
		}
	}
	if err := e.st.Save(batch, e.operatorSnapKey(epoch, operator), opSnap); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	return batch.Write()
}

// SnapshotVaultDelegation folds one vault-operator delegation into the
// operator's snapshot, weighted by the frozen table. When the operator's
// last expected delegation lands, the operator is counted into the epoch
// aggregate exactly once.
func (e *Engine) SnapshotVaultDelegation(epoch ncn.Epoch, operator, vault ncn.Pubkey, amount uint64, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	table, err := e.loadTable(epoch)
	if err != nil {
		return err
	}
	snap, err := e.loadEpochSnapshot(epoch)
	if err != nil {
		return err
	}
	opSnap, err := e.loadOperatorSnapshot(epoch, operator)
	if err != nil {
		return err
	}
	reg, err := e.loadRegistry()
	if err != nil {
		return err
	}
	vaultEntry := reg.VaultEntry(vault)
	if vaultEntry == nil {
		return ErrVaultNotFound
	}

	finalized, err := opSnap.NoteVaultDelegation(vault, vaultEntry.Mint, amount, table, slot)
	if err != nil {
		return err
	}

	batch := e.st.NewBatch()
	if finalized {
		if err := snap.FoldOperator(opSnap, slot); err != nil {
			return err
		}
		state.EpochSnapshotProgress.Tally = snap.OperatorsRegistered
		if err := e.st.Save(batch, e.epochSnapKey(epoch), snap); err != nil {
			return err
		}
	}
	if progress := state.operatorProgress(operator); progress != nil {
		progress.Progress.Tally = opSnap.DelegationsRegistered
	}
	if err := e.st.Save(batch, e.operatorSnapKey(epoch, operator), opSnap); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}

	logger.Trace("delegation snapshotted",
		"epoch", uint64(epoch), "operator", operator.AbbrevString(),
		"vault", vault.AbbrevString(), "amount", amount, "finalized", finalized)
	return nil
}

////////////
// voting //
////////////

// InitializeBallotBox opens the epoch's ballot box. Requires the epoch
// snapshot to be finalized, so every vote weight is frozen beforehand.
func (e *Engine) InitializeBallotBox(epoch ncn.Epoch, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	snap, err := e.loadEpochSnapshot(epoch)
	if err != nil {
		return err
	}
	if !snap.Finalized() {
		return ErrEpochSnapshotNotFinalized
	}
	if has, err := e.st.Has(e.boxKey(epoch)); err != nil {
		return err
	} else if has {
		return ErrAlreadyInitialized
	}

	state.VotingProgress = Progress{Tally: 0, Total: state.OperatorCount}

	batch := e.st.NewBatch()
	if err := e.st.Save(batch, e.boxKey(epoch), ballot.NewBox(e.ncn, epoch, slot)); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	return batch.Write()
}

// CastVote records the operator's weighted vote and runs the incremental
// tally. If this vote pushes a ballot over the threshold, the consensus
// result is written in the same atomic batch as the box transition, so the
// two can never diverge.
func (e *Engine) CastVote(epoch ncn.Epoch, operator ncn.Pubkey, weather ballot.Weather, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	box, err := e.loadBox(epoch)
	if err != nil {
		return err
	}
	snap, err := e.loadEpochSnapshot(epoch)
	if err != nil {
		return err
	}
	opSnap, err := e.loadOperatorSnapshot(epoch, operator)
	if err != nil {
		if e.st.IsNotFound(err) {
			return ErrOperatorNotFound
		}
		return err
	}

	if err := box.Cast(operator, weather, opSnap.StakeWeight, slot, ncn.ValidSlotsAfterConsensus()); err != nil {
		return err
	}
	state.VotingProgress.Tally = box.OperatorsVoted

	batch := e.st.NewBatch()
	wasReached := box.IsConsensusReached()
	if !wasReached && box.Tally(snap.StakeWeight, slot) {
		if err := e.stageConsensusResult(batch, box, snap.StakeWeight, operator); err != nil {
			return err
		}
		state.SlotConsensusReached = box.SlotConsensusReached
	}
	if err := e.st.Save(batch, e.boxKey(epoch), box); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}

	metricVotesCast().Add(1)
	logger.Debug("vote cast",
		"epoch", uint64(epoch), "operator", operator.AbbrevString(),
		"ballot", weather, "stake", opSnap.StakeWeight.String())
	return nil
}

// TallyVotes re-evaluates the tallies against the epoch total. Idempotent:
// once a winner is set this is a no-op.
func (e *Engine) TallyVotes(epoch ncn.Epoch, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	box, err := e.loadBox(epoch)
	if err != nil {
		return err
	}
	if box.IsConsensusReached() {
		return nil
	}
	snap, err := e.loadEpochSnapshot(epoch)
	if err != nil {
		return err
	}
	if !box.Tally(snap.StakeWeight, slot) {
		return nil
	}
	state.SlotConsensusReached = box.SlotConsensusReached

	batch := e.st.NewBatch()
	if err := e.stageConsensusResult(batch, box, snap.StakeWeight, e.ncn); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.boxKey(epoch), box); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	return batch.Write()
}

// SetTieBreaker force-selects a winning ballot for a stalled epoch and
// records the consensus result, in one batch. Audited via the epoch state's
// tie-breaker flag.
func (e *Engine) SetTieBreaker(epoch ncn.Epoch, weather ballot.Weather, currentEpoch ncn.Epoch, slot ncn.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.openState(epoch)
	if err != nil {
		return err
	}
	box, err := e.loadBox(epoch)
	if err != nil {
		return err
	}
	snap, err := e.loadEpochSnapshot(epoch)
	if err != nil {
		return err
	}

	if err := box.SetTieBreaker(weather, currentEpoch, ncn.EpochsBeforeStall(), slot); err != nil {
		return err
	}
	state.WasTieBreakerSet = true
	state.SlotConsensusReached = box.SlotConsensusReached

	batch := e.st.NewBatch()
	if err := e.stageConsensusResult(batch, box, snap.StakeWeight, e.ncn); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.boxKey(epoch), box); err != nil {
		return err
	}
	if err := e.st.Save(batch, e.stateKey(epoch), state); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}

	metricTieBreakersSet().Add(1)
	logger.Warn("tie breaker set", "epoch", uint64(epoch), "ballot", weather, "currentEpoch", uint64(currentEpoch))
	return nil
}

/////////////
// closing //
/////////////

// CloseEpoch reclaims every epoch-scoped record once the retention window
// elapsed. The consensus result, if any, is left untouched and remains
// readable forever. Closing is two transactions: the is-closing mark first,
// which blocks all stage-advancing calls even if reclamation is retried.
func (e *Engine) CloseEpoch(epoch, currentEpoch ncn.Epoch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.loadState(epoch)
	if err != nil {
		return err
	}
	if uint64(currentEpoch) < uint64(epoch)+ncn.EpochsAfterConsensusBeforeClose() {
		return ErrRetentionNotElapsed
	}

	if !state.IsClosing {
		state.IsClosing = true
		if err := e.saveOne(e.stateKey(epoch), state); err != nil {
			return err
		}
	}

	batch := e.st.NewBatch()
	if err := e.st.DeleteEpoch(batch, e.ncn, epoch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}

	metricEpochsClosed().Add(1)
	metricEpochsLive().Add(-1)
	logger.Info("epoch closed", "epoch", uint64(epoch))
	return nil
}

/////////////
// queries //
/////////////

// GetVaultRegistry returns the current vault registry.
func (e *Engine) GetVaultRegistry() (*registry.Registry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadRegistry()
}

// GetEpochState returns the epoch's progress record.
func (e *Engine) GetEpochState(epoch ncn.Epoch) (*EpochState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadState(epoch)
}

// GetWeightTable returns the epoch's weight table.
func (e *Engine) GetWeightTable(epoch ncn.Epoch) (*weights.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadTable(epoch)
}

// GetEpochSnapshot returns the epoch's stake aggregate.
func (e *Engine) GetEpochSnapshot(epoch ncn.Epoch) (*snapshot.EpochSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadEpochSnapshot(epoch)
}

// GetOperatorSnapshot returns one operator's stake record for the epoch.
func (e *Engine) GetOperatorSnapshot(epoch ncn.Epoch, operator ncn.Pubkey) (*snapshot.OperatorSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadOperatorSnapshot(epoch, operator)
}

// GetBallotBox returns the epoch's ballot box.
func (e *Engine) GetBallotBox(epoch ncn.Epoch) (*ballot.Box, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadBox(epoch)
}

// GetConsensusResult returns the epoch's consensus result.
func (e *Engine) GetConsensusResult(epoch ncn.Epoch) (*ballot.ConsensusResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result ballot.ConsensusResult
	if err := e.st.Load(e.resultKey(epoch), &result); err != nil {
		if e.st.IsNotFound(err) {
			return nil, ErrConsensusNotReached
		}
		return nil, err
	}
	return &result, nil
}

/////////////
// helpers //
/////////////

func (e *Engine) registryKey() []byte { return store.Key(store.KindVaultRegistry, e.ncn, 0) }

// saveOne writes a single record in its own batch.
func (e *Engine) saveOne(key []byte, val interface{}) error {
	batch := e.st.NewBatch()
	if err := e.st.Save(batch, key, val); err != nil {
		return err
	}
	return batch.Write()
}

func (e *Engine) stateKey(epoch ncn.Epoch) []byte { return store.Key(store.KindEpochState, e.ncn, epoch) }

func (e *Engine) tableKey(epoch ncn.Epoch) []byte { return store.Key(store.KindWeightTable, e.ncn, epoch) }

func (e *Engine) epochSnapKey(epoch ncn.Epoch) []byte {
	return store.Key(store.KindEpochSnapshot, e.ncn, epoch)
}

func (e *Engine) operatorSnapKey(epoch ncn.Epoch, operator ncn.Pubkey) []byte {
	return store.EntityKey(store.KindOperatorSnapshot, e.ncn, epoch, operator)
}

func (e *Engine) boxKey(epoch ncn.Epoch) []byte { return store.Key(store.KindBallotBox, e.ncn, epoch) }

func (e *Engine) resultKey(epoch ncn.Epoch) []byte {
	return store.Key(store.KindConsensusResult, e.ncn, epoch)
}

func (e *Engine) loadRegistry() (*registry.Registry, error) {
	var reg registry.Registry
	if err := e.st.Load(e.registryKey(), &reg); err != nil {
		if e.st.IsNotFound(err) {
			return registry.New(e.ncn), nil
		}
		return nil, err
	}
	return &reg, nil
}

func (e *Engine) loadState(epoch ncn.Epoch) (*EpochState, error) {
	var state EpochState
	if err := e.st.Load(e.stateKey(epoch), &state); err != nil {
		if e.st.IsNotFound(err) {
			return nil, ErrEpochStateNotFound
		}
		return nil, err
	}
	return &state, nil
}

// openState loads the epoch state for a stage-advancing operation.
func (e *Engine) openState(epoch ncn.Epoch) (*EpochState, error) {
	state, err := e.loadState(epoch)
	if err != nil {
		return nil, err
	}
	if state.IsClosing {
		return nil, ErrEpochClosing
	}
	return state, nil
}

func (e *Engine) loadTable(epoch ncn.Epoch) (*weights.Table, error) {
	var table weights.Table
	if err := e.st.Load(e.tableKey(epoch), &table); err != nil {
		if e.st.IsNotFound(err) {
			return nil, ErrWeightTableNotInitialized
		}
		return nil, err
	}
	return &table, nil
}

func (e *Engine) loadEpochSnapshot(epoch ncn.Epoch) (*snapshot.EpochSnapshot, error) {
	var snap snapshot.EpochSnapshot
	if err := e.st.Load(e.epochSnapKey(epoch), &snap); err != nil {
		if e.st.IsNotFound(err) {
			return nil, ErrEpochSnapshotNotInitialized
		}
		return nil, err
	}
	return &snap, nil
}

func (e *Engine) loadOperatorSnapshot(epoch ncn.Epoch, operator ncn.Pubkey) (*snapshot.OperatorSnapshot, error) {
	var snap snapshot.OperatorSnapshot
	if err := e.st.Load(e.operatorSnapKey(epoch, operator), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (e *Engine) loadBox(epoch ncn.Epoch) (*ballot.Box, error) {
	var box ballot.Box
	if err := e.st.Load(e.boxKey(epoch), &box); err != nil {
		if e.st.IsNotFound(err) {
			return nil, ErrBallotBoxNotInitialized
		}
		return nil, err
	}
	return &box, nil
}

// stageConsensusResult adds the once-only consensus result to the batch.
func (e *Engine) stageConsensusResult(batch kv.Batch, box *ballot.Box, total ncn.StakeWeight, recorder ncn.Pubkey) error {
	if has, err := e.st.Has(e.resultKey(box.Epoch)); err != nil {
		return err
	} else if has {
		return ErrConsensusAlreadyRecorded
	}

	result := ballot.NewConsensusResult(box, total, recorder)
	if err := e.st.Save(batch, e.resultKey(box.Epoch), result); err != nil {
		return err
	}

	metricConsensusReached().Add(1)
	logger.Info("consensus reached",
		"epoch", uint64(box.Epoch), "ballot", result.Weather,
		"voteWeight", result.VoteWeight.String(), "totalWeight", result.TotalVoteWeight.String(),
		"slot", uint64(result.ConsensusSlot), "tieBreaker", box.TieBreakerSet)
	return nil
}
