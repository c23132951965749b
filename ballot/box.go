// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ballot

import (
	"github.com/pkg/errors"

	"github.com/jito-foundation/ncn-template-sub000/ncn"
)

var (
	ErrInvalidBallot           = errors.New("invalid ballot")
	ErrZeroStakeVote           = errors.New("cannot vote with zero stake")
	ErrVotingWindowExpired     = errors.New("voting window expired")
	ErrTallyCapacity           = errors.New("ballot tally capacity exceeded")
	ErrVoteCapacity            = errors.New("operator vote capacity exceeded")
	ErrNotStalled              = errors.New("voting not stalled yet")
	ErrConsensusAlreadyReached = errors.New("consensus already reached")
)

// Tally accumulates the stake weight and raw vote count behind one distinct
// ballot value. Tallies are append-only in first-seen order; a tally drained
// to zero by re-votes stays as a placeholder so indices and the unique
// ballot count remain stable.
type Tally struct {
	Ballot      Ballot
	StakeWeight ncn.StakeWeight
	VoteCount   uint64
}

// OperatorVote is the single live vote of one operator. Re-voting overwrites
// it in place, moving the stake weight between tallies.
type OperatorVote struct {
	Operator    ncn.Pubkey
	SlotVoted   ncn.Slot
	StakeWeight ncn.StakeWeight
	TallyIndex  uint64
}

// Box is the per-epoch ballot box record.
type Box struct {
	Ncn                  ncn.Pubkey
	Epoch                ncn.Epoch
	SlotCreated          ncn.Slot
	SlotConsensusReached ncn.Slot
	OperatorsVoted       uint64
	UniqueBallots        uint64
	WinningBallot        Ballot
	TieBreakerSet        bool
	Votes                []OperatorVote
	Tallies              []Tally
}

// NewBox opens the ballot box for an epoch.
func NewBox(ncnID ncn.Pubkey, epoch ncn.Epoch, slot ncn.Slot) *Box {
	return &Box{
		Ncn:         ncnID,
		Epoch:       epoch,
		SlotCreated: slot,
	}
}

// IsConsensusReached reports whether a winning ballot is set.
func (b *Box) IsConsensusReached() bool {
	return b.WinningBallot.Valid
}

// VotingValid reports whether a vote cast at the given slot is acceptable.
// Before consensus voting is always valid; after consensus there is a short
// amendment window during which late votes are still recorded, though they
// can no longer change the winner.
func (b *Box) VotingValid(slot ncn.Slot, validSlotsAfterConsensus uint64) bool {
	if !b.IsConsensusReached() {
		return true
	}
	if slot < b.SlotConsensusReached {
		return false
	}
	return uint64(slot-b.SlotConsensusReached) <= validSlotsAfterConsensus
}

// Cast records or overwrites the operator's vote, weighted by the operator's
// frozen snapshot stake. The whole operation either fully applies or leaves
// the box unchanged.
func (b *Box) Cast(operator ncn.Pubkey, weather Weather, stake ncn.StakeWeight, slot ncn.Slot, validSlotsAfterConsensus uint64) error {
	if !ValidWeather(weather) {
		return ErrInvalidBallot
	}
	if stake.IsZero() {
		return ErrZeroStakeVote
	}
	if !b.VotingValid(slot, validSlotsAfterConsensus) {
		return ErrVotingWindowExpired
	}

	prev := b.findVote(operator)
	if prev == nil && len(b.Votes) >= ncn.MaxOperators {
		return ErrVoteCapacity
	}

	tallyIdx := b.findTally(weather)
	if tallyIdx < 0 {
		if len(b.Tallies) >= ncn.MaxBallotTallies {
			return ErrTallyCapacity
		}
		b.Tallies = append(b.Tallies, Tally{Ballot: NewBallot(weather)})
		b.UniqueBallots++
		tallyIdx = len(b.Tallies) - 1
	}

	// Move stake off the previous choice first. The drained tally is kept
	// as a placeholder to preserve indices and the unique ballot count.
	if prev != nil {
		old := &b.Tallies[prev.TallyIndex]
		if err := old.StakeWeight.Sub(prev.StakeWeight); err != nil {
			return err
		}
		old.VoteCount--
	}

	if err := b.Tallies[tallyIdx].StakeWeight.Add(stake); err != nil {
		// roll the removal back so a failed cast leaves the box unchanged
		if prev != nil {
			old := &b.Tallies[prev.TallyIndex]
			_ = old.StakeWeight.Add(prev.StakeWeight)
			old.VoteCount++
		}
		return err
	}
	b.Tallies[tallyIdx].VoteCount++

	if prev != nil {
		prev.SlotVoted = slot
		prev.StakeWeight = stake
		prev.TallyIndex = uint64(tallyIdx)
	} else {
		b.Votes = append(b.Votes, OperatorVote{
			Operator:    operator,
			SlotVoted:   slot,
			StakeWeight: stake,
			TallyIndex:  uint64(tallyIdx),
		})
	}
	b.OperatorsVoted = uint64(len(b.Votes))
	return nil
}

// Tally scans the tallies against the epoch's total stake weight and marks
// the winner, if any. Idempotent once a winner is set: the first ballot to
// cross the threshold is permanent for the epoch. Candidates are checked in
// tally order, i.e. ballot first-seen order, which doubles as the explicit
// tie-break rule when several tallies sit exactly at the threshold.
func (b *Box) Tally(totalStake ncn.StakeWeight, slot ncn.Slot) bool {
	if b.IsConsensusReached() {
		return true
	}

	for i := range b.Tallies {
		if b.Tallies[i].StakeWeight.MeetsThreshold(totalStake) {
			b.WinningBallot = b.Tallies[i].Ballot
			b.SlotConsensusReached = slot
			return true
		}
	}
	return false
}

// SetTieBreaker force-selects a winning ballot after a stall. A stall is
// defined declaratively: consensus not reached and at least epochsBeforeStall
// epochs elapsed since the box's epoch.
func (b *Box) SetTieBreaker(weather Weather, currentEpoch ncn.Epoch, epochsBeforeStall uint64, slot ncn.Slot) error {
	if b.IsConsensusReached() {
		return ErrConsensusAlreadyReached
	}
	if !ValidWeather(weather) {
		return ErrInvalidBallot
	}
	if uint64(currentEpoch) < uint64(b.Epoch)+epochsBeforeStall {
		return ErrNotStalled
	}

	b.WinningBallot = NewBallot(weather)
	b.TieBreakerSet = true
	b.SlotConsensusReached = slot
	return nil
}

// WinningTally returns the tally of the winning ballot, or nil when no
// consensus is reached or the tie-break ballot never received a vote.
func (b *Box) WinningTally() *Tally {
	if !b.IsConsensusReached() {
		return nil
	}
	if idx := b.findTally(b.WinningBallot.Weather); idx >= 0 {
		return &b.Tallies[idx]
	}
	return nil
}

// Vote returns the live vote of the given operator, or nil.
func (b *Box) Vote(operator ncn.Pubkey) *OperatorVote {
	return b.findVote(operator)
}

func (b *Box) findVote(operator ncn.Pubkey) *OperatorVote {
	for i := range b.Votes {
		if b.Votes[i].Operator == operator {
			return &b.Votes[i]
		}
	}
	return nil
}

func (b *Box) findTally(weather Weather) int {
	for i := range b.Tallies {
		if b.Tallies[i].Ballot.Weather == weather {
			return i
		}
	}
	return -1
}
