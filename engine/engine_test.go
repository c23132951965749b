// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jito-foundation/ncn-template-sub000/ballot"
	"github.com/jito-foundation/ncn-template-sub000/kv"
	"github.com/jito-foundation/ncn-template-sub000/ncn"
	"github.com/jito-foundation/ncn-template-sub000/snapshot"
	"github.com/jito-foundation/ncn-template-sub000/store"
)

func newTestEngine() *Engine {
	return New(pk("test-ncn"), store.New(kv.NewMemStore()))
}

func pk(s string) ncn.Pubkey {
	return ncn.BytesToPubkey([]byte(s))
}

func operatorKey(i int) ncn.Pubkey { return pk(fmt.Sprintf("operator-%02d", i)) }
func vaultKey(i int) ncn.Pubkey    { return pk(fmt.Sprintf("vault-%02d", i)) }
func mintKey(i int) ncn.Pubkey     { return pk(fmt.Sprintf("mint-%d", i)) }

// fixture wiring: 4 mints weighted 100/200/300/400, one vault per operator
// cycling through the mints, operator i delegated 1000*i tokens. The last
// operator expects no delegations and therefore holds zero stake.
const (
	fixtureOperators = 13
	fixtureMints     = 4
	fixtureEpoch     = ncn.Epoch(5)
)

func mintWeight(i int) uint64 { return uint64(100 * (i + 1)) }

func vaultMint(i int) int { return (i - 1) % fixtureMints }

func delegationAmount(i int) uint64 { return uint64(1000 * i) }

func operatorStake(i int) ncn.StakeWeight {
	return ncn.StakeWeightFromProduct(delegationAmount(i), mintWeight(vaultMint(i)))
}

// setupVotingEpoch drives the fixture through registration, weight freeze and
// snapshotting up to an open ballot box.
func setupVotingEpoch(t *testing.T, e *Engine) {
	slot := ncn.Slot(100)

	for i := 0; i < fixtureMints; i++ {
		require.NoError(t, e.RegisterMint(mintKey(i), slot))
		require.NoError(t, e.SetMintWeight(mintKey(i), mintWeight(i), slot))
	}
	for i := 1; i < fixtureOperators; i++ {
		require.NoError(t, e.RegisterVault(vaultKey(i), mintKey(vaultMint(i)), slot))
	}

	require.NoError(t, e.InitializeEpoch(fixtureEpoch, fixtureOperators, slot))
	require.NoError(t, e.InitializeWeightTable(fixtureEpoch, slot))
	for i := 0; i < fixtureMints; i++ {
		require.NoError(t, e.SetEpochWeight(fixtureEpoch, mintKey(i), slot))
	}
	require.NoError(t, e.InitializeEpochSnapshot(fixtureEpoch, slot))

	for i := 1; i < fixtureOperators; i++ {
		require.NoError(t, e.InitializeOperatorSnapshot(fixtureEpoch, operatorKey(i), true, 1, slot))
		require.NoError(t, e.SnapshotVaultDelegation(fixtureEpoch, operatorKey(i), vaultKey(i), delegationAmount(i), slot))
	}
	// the zero-delegation operator finalizes at creation with zero stake
	require.NoError(t, e.InitializeOperatorSnapshot(fixtureEpoch, operatorKey(fixtureOperators), true, 0, slot))

	snap, err := e.GetEpochSnapshot(fixtureEpoch)
	require.NoError(t, err)
	require.True(t, snap.Finalized())

	require.NoError(t, e.InitializeBallotBox(fixtureEpoch, slot))
}

func TestStageGating(t *testing.T) {
	e := newTestEngine()
	slot := ncn.Slot(10)

	assert.Equal(t, ErrEpochStateNotFound, e.InitializeWeightTable(fixtureEpoch, slot))

	require.NoError(t, e.RegisterMint(mintKey(0), slot))
	require.NoError(t, e.InitializeEpoch(fixtureEpoch, 2, slot))
	assert.Equal(t, ErrAlreadyInitialized, e.InitializeEpoch(fixtureEpoch, 2, slot))

	assert.Equal(t, ErrWeightTableNotInitialized, e.SetEpochWeight(fixtureEpoch, mintKey(0), slot))
	assert.Equal(t, ErrEpochSnapshotNotInitialized, e.InitializeOperatorSnapshot(fixtureEpoch, operatorKey(1), true, 0, slot))
	assert.Equal(t, ErrBallotBoxNotInitialized, e.CastVote(fixtureEpoch, operatorKey(1), ballot.WeatherSunny, slot))

	require.NoError(t, e.InitializeWeightTable(fixtureEpoch, slot))
	// snapshotting against an unfinalized table must fail
	assert.Equal(t, snapshot.ErrWeightTableNotFinalized, e.InitializeEpochSnapshot(fixtureEpoch, slot))

	require.NoError(t, e.SetMintWeight(mintKey(0), 100, slot))
	require.NoError(t, e.SetEpochWeight(fixtureEpoch, mintKey(0), slot))
	require.NoError(t, e.InitializeEpochSnapshot(fixtureEpoch, slot))
	// box requires every operator folded in first
	assert.Equal(t, ErrEpochSnapshotNotFinalized, e.InitializeBallotBox(fixtureEpoch, slot))
}

func TestWeightFreeze(t *testing.T) {
	e := newTestEngine()
	slot := ncn.Slot(10)

	require.NoError(t, e.RegisterMint(mintKey(0), slot))
	require.NoError(t, e.SetMintWeight(mintKey(0), 100, slot))
	require.NoError(t, e.InitializeEpoch(fixtureEpoch, 1, slot))
	require.NoError(t, e.InitializeWeightTable(fixtureEpoch, slot))
	require.NoError(t, e.SetEpochWeight(fixtureEpoch, mintKey(0), slot))

	// registry updates after the freeze never reach the epoch's table
	require.NoError(t, e.SetMintWeight(mintKey(0), 999, slot+1))

	table, err := e.GetWeightTable(fixtureEpoch)
	require.NoError(t, err)
	w, err := table.Weight(mintKey(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), w)

	state, err := e.GetEpochState(fixtureEpoch)
	require.NoError(t, err)
	assert.True(t, state.SetWeightProgress.Done())
}

func TestSnapshotIdempotency(t *testing.T) {
	e := newTestEngine()
	slot := ncn.Slot(10)

	require.NoError(t, e.RegisterMint(mintKey(0), slot))
	require.NoError(t, e.SetMintWeight(mintKey(0), 100, slot))
	require.NoError(t, e.RegisterVault(vaultKey(1), mintKey(0), slot))
	require.NoError(t, e.InitializeEpoch(fixtureEpoch, 1, slot))
	require.NoError(t, e.InitializeWeightTable(fixtureEpoch, slot))
	require.NoError(t, e.SetEpochWeight(fixtureEpoch, mintKey(0), slot))
	require.NoError(t, e.InitializeEpochSnapshot(fixtureEpoch, slot))

	assert.Equal(t, ErrDelegationCountMismatch, e.InitializeOperatorSnapshot(fixtureEpoch, operatorKey(1), true, 2, slot))

	require.NoError(t, e.InitializeOperatorSnapshot(fixtureEpoch, operatorKey(1), true, 1, slot))
	assert.Equal(t, ErrAlreadyInitialized, e.InitializeOperatorSnapshot(fixtureEpoch, operatorKey(1), true, 1, slot))

	assert.Equal(t, ErrVaultNotFound, e.SnapshotVaultDelegation(fixtureEpoch, operatorKey(1), vaultKey(9), 500, slot))

	require.NoError(t, e.SnapshotVaultDelegation(fixtureEpoch, operatorKey(1), vaultKey(1), 500, slot))

	// replaying the same delegation is rejected and changes nothing
	err := e.SnapshotVaultDelegation(fixtureEpoch, operatorKey(1), vaultKey(1), 500, slot)
	assert.ErrorIs(t, err, snapshot.ErrOperatorFinalized)

	opSnap, err := e.GetOperatorSnapshot(fixtureEpoch, operatorKey(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), opSnap.DelegationsRegistered)
	assert.Equal(t, ncn.StakeWeightFromProduct(500, 100).String(), opSnap.StakeWeight.String())
	assert.True(t, opSnap.Counted)

	snap, err := e.GetEpochSnapshot(fixtureEpoch)
	require.NoError(t, err)
	assert.True(t, snap.Finalized())
	assert.Equal(t, opSnap.StakeWeight.String(), snap.StakeWeight.String())
}

func TestVotingToConsensus(t *testing.T) {
	e := newTestEngine()
	setupVotingEpoch(t, e)
	slot := ncn.Slot(200)

	// the zero-stake operator cannot vote
	assert.Equal(t, ballot.ErrZeroStakeVote, e.CastVote(fixtureEpoch, operatorKey(fixtureOperators), ballot.WeatherSunny, slot))
	// an operator without a snapshot cannot vote
	assert.Equal(t, ErrOperatorNotFound, e.CastVote(fixtureEpoch, pk("stranger"), ballot.WeatherSunny, slot))

	require.NoError(t, e.CastVote(fixtureEpoch, operatorKey(1), ballot.WeatherCloudy, slot))
	_, err := e.GetConsensusResult(fixtureEpoch)
	assert.Equal(t, ErrConsensusNotReached, err)

	for i := 2; i < fixtureOperators; i++ {
		require.NoError(t, e.CastVote(fixtureEpoch, operatorKey(i), ballot.WeatherSunny, slot+ncn.Slot(i)))
	}

	result, err := e.GetConsensusResult(fixtureEpoch)
	require.NoError(t, err)
	assert.Equal(t, ballot.WeatherSunny, result.Weather)

	// the result freezes the winning tally as of the vote that crossed the
	// threshold, not as of the end of voting
	var total ncn.StakeWeight
	for i := 1; i < fixtureOperators; i++ {
		require.NoError(t, total.Add(operatorStake(i)))
	}
	var winning ncn.StakeWeight
	for i := 2; i < fixtureOperators; i++ {
		require.NoError(t, winning.Add(operatorStake(i)))
		if winning.MeetsThreshold(total) {
			break
		}
	}
	assert.Equal(t, winning.String(), result.VoteWeight.String())
	assert.Equal(t, total.String(), result.TotalVoteWeight.String())

	state, err := e.GetEpochState(fixtureEpoch)
	require.NoError(t, err)
	assert.False(t, state.WasTieBreakerSet)
	assert.Equal(t, result.ConsensusSlot, state.SlotConsensusReached)
	assert.Equal(t, uint64(fixtureOperators-1), state.VotingProgress.Tally)

	// the winner is permanent: a late re-vote within the amendment window is
	// recorded but cannot displace it or re-record the result
	require.NoError(t, e.CastVote(fixtureEpoch, operatorKey(2), ballot.WeatherCloudy, result.ConsensusSlot+1))
	again, err := e.GetConsensusResult(fixtureEpoch)
	require.NoError(t, err)
	assert.Equal(t, result.VoteWeight.String(), again.VoteWeight.String())

	// and past the window votes are rejected outright
	late := result.ConsensusSlot + ncn.Slot(ncn.ValidSlotsAfterConsensus()) + 1
	assert.Equal(t, ballot.ErrVotingWindowExpired, e.CastVote(fixtureEpoch, operatorKey(3), ballot.WeatherRainy, late))

	// tally replay is a no-op once the winner is set
	assert.NoError(t, e.TallyVotes(fixtureEpoch, late))
}

func TestTieBreaker(t *testing.T) {
	e := newTestEngine()
	setupVotingEpoch(t, e)
	slot := ncn.Slot(200)

	// a three-way split far from the threshold
	require.NoError(t, e.CastVote(fixtureEpoch, operatorKey(10), ballot.WeatherSunny, slot))
	require.NoError(t, e.CastVote(fixtureEpoch, operatorKey(11), ballot.WeatherCloudy, slot))
	require.NoError(t, e.CastVote(fixtureEpoch, operatorKey(12), ballot.WeatherRainy, slot))

	require.NoError(t, e.TallyVotes(fixtureEpoch, slot))
	_, err := e.GetConsensusResult(fixtureEpoch)
	assert.Equal(t, ErrConsensusNotReached, err)

	// too early to force an outcome
	notStalled := fixtureEpoch + ncn.Epoch(ncn.EpochsBeforeStall()) - 1
	assert.Equal(t, ballot.ErrNotStalled, e.SetTieBreaker(fixtureEpoch, ballot.WeatherRainy, notStalled, slot))

	stalled := fixtureEpoch + ncn.Epoch(ncn.EpochsBeforeStall())
	require.NoError(t, e.SetTieBreaker(fixtureEpoch, ballot.WeatherRainy, stalled, slot+1))

	result, err := e.GetConsensusResult(fixtureEpoch)
	require.NoError(t, err)
	assert.Equal(t, ballot.WeatherRainy, result.Weather)
	assert.Equal(t, operatorStake(12).String(), result.VoteWeight.String())

	state, err := e.GetEpochState(fixtureEpoch)
	require.NoError(t, err)
	assert.True(t, state.WasTieBreakerSet)

	// forcing twice is rejected
	assert.Equal(t, ballot.ErrConsensusAlreadyReached, e.SetTieBreaker(fixtureEpoch, ballot.WeatherSunny, stalled, slot+2))
}

func TestCloseEpoch(t *testing.T) {
	e := newTestEngine()
	setupVotingEpoch(t, e)
	slot := ncn.Slot(200)

	for i := 2; i < fixtureOperators; i++ {
		require.NoError(t, e.CastVote(fixtureEpoch, operatorKey(i), ballot.WeatherSunny, slot))
	}
	result, err := e.GetConsensusResult(fixtureEpoch)
	require.NoError(t, err)

	early := fixtureEpoch + ncn.Epoch(ncn.EpochsAfterConsensusBeforeClose()) - 1
	assert.Equal(t, ErrRetentionNotElapsed, e.CloseEpoch(fixtureEpoch, early))

	retained := fixtureEpoch + ncn.Epoch(ncn.EpochsAfterConsensusBeforeClose())
	require.NoError(t, e.CloseEpoch(fixtureEpoch, retained))

	// every epoch-scoped record is gone
	_, err = e.GetEpochState(fixtureEpoch)
	assert.Equal(t, ErrEpochStateNotFound, err)
	_, err = e.GetWeightTable(fixtureEpoch)
	assert.Equal(t, ErrWeightTableNotInitialized, err)
	_, err = e.GetEpochSnapshot(fixtureEpoch)
	assert.Equal(t, ErrEpochSnapshotNotInitialized, err)
	_, err = e.GetBallotBox(fixtureEpoch)
	assert.Equal(t, ErrBallotBoxNotInitialized, err)

	// the consensus result outlives the close, byte for byte
	kept, err := e.GetConsensusResult(fixtureEpoch)
	require.NoError(t, err)
	assert.Equal(t, result, kept)

	// a closed epoch can never be reopened
	assert.Equal(t, ErrEpochClosed, e.InitializeEpoch(fixtureEpoch, fixtureOperators, slot))
}

func TestClosingBlocksStages(t *testing.T) {
	e := newTestEngine()
	setupVotingEpoch(t, e)

	state, err := e.GetEpochState(fixtureEpoch)
	require.NoError(t, err)
	state.IsClosing = true
	require.NoError(t, e.saveOne(e.stateKey(fixtureEpoch), state))

	slot := ncn.Slot(300)
	assert.Equal(t, ErrEpochClosing, e.CastVote(fixtureEpoch, operatorKey(2), ballot.WeatherSunny, slot))
	assert.Equal(t, ErrEpochClosing, e.TallyVotes(fixtureEpoch, slot))
	assert.Equal(t, ErrEpochClosing, e.SetEpochWeight(fixtureEpoch, mintKey(0), slot))
}
