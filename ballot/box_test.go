// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ballot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jito-foundation/ncn-template-sub000/ncn"
)

const amendmentWindow = 100

var testNcn = ncn.Pubkey{0xff}

func operator(i byte) ncn.Pubkey {
	return ncn.Pubkey{0xa0, i}
}

func TestCastBasics(t *testing.T) {
	box := NewBox(testNcn, 7, 100)

	assert.Equal(t, ErrInvalidBallot, box.Cast(operator(1), Weather(9), ncn.NewStakeWeight(10), 101, amendmentWindow))
	assert.Equal(t, ErrZeroStakeVote, box.Cast(operator(1), WeatherSunny, ncn.StakeWeight{}, 101, amendmentWindow))

	assert.Nil(t, box.Cast(operator(1), WeatherSunny, ncn.NewStakeWeight(10), 101, amendmentWindow))
	assert.Equal(t, uint64(1), box.OperatorsVoted)
	assert.Equal(t, uint64(1), box.UniqueBallots)
	assert.Equal(t, uint64(1), box.Tallies[0].VoteCount)
	assert.Equal(t, "10", box.Tallies[0].StakeWeight.String())

	assert.Nil(t, box.Cast(operator(2), WeatherCloudy, ncn.NewStakeWeight(4), 102, amendmentWindow))
	assert.Equal(t, uint64(2), box.OperatorsVoted)
	assert.Equal(t, uint64(2), box.UniqueBallots)
}

func TestVoteOverwriteConservation(t *testing.T) {
	box := NewBox(testNcn, 7, 100)

	assert.Nil(t, box.Cast(operator(1), WeatherSunny, ncn.NewStakeWeight(10), 101, amendmentWindow))
	assert.Nil(t, box.Cast(operator(2), WeatherSunny, ncn.NewStakeWeight(7), 101, amendmentWindow))

	// operator 1 changes its mind: sunny loses exactly 10, rainy gains it
	assert.Nil(t, box.Cast(operator(1), WeatherRainy, ncn.NewStakeWeight(10), 102, amendmentWindow))

	assert.Equal(t, uint64(2), box.OperatorsVoted)
	assert.Equal(t, "7", box.Tallies[0].StakeWeight.String())
	assert.Equal(t, uint64(1), box.Tallies[0].VoteCount)
	assert.Equal(t, "10", box.Tallies[1].StakeWeight.String())
	assert.Equal(t, uint64(1), box.Tallies[1].VoteCount)

	// drained tally stays as placeholder
	assert.Nil(t, box.Cast(operator(2), WeatherRainy, ncn.NewStakeWeight(7), 103, amendmentWindow))
	assert.Equal(t, uint64(2), box.UniqueBallots)
	assert.Equal(t, 2, len(box.Tallies))
	assert.True(t, box.Tallies[0].StakeWeight.IsZero())
	assert.Equal(t, uint64(0), box.Tallies[0].VoteCount)
	assert.Equal(t, "17", box.Tallies[1].StakeWeight.String())
}

func TestTallyThreshold(t *testing.T) {
	total := ncn.NewStakeWeight(300)
	box := NewBox(testNcn, 7, 100)

	// 199 of 300 misses 2/3
	assert.Nil(t, box.Cast(operator(1), WeatherSunny, ncn.NewStakeWeight(199), 101, amendmentWindow))
	assert.False(t, box.Tally(total, 102))
	assert.False(t, box.IsConsensusReached())

	// 200 of 300 meets 3×200 ≥ 2×300
	assert.Nil(t, box.Cast(operator(2), WeatherSunny, ncn.NewStakeWeight(1), 103, amendmentWindow))
	assert.True(t, box.Tally(total, 104))
	assert.True(t, box.IsConsensusReached())
	assert.Equal(t, WeatherSunny, box.WinningBallot.Weather)
	assert.Equal(t, ncn.Slot(104), box.SlotConsensusReached)

	tally := box.WinningTally()
	assert.NotNil(t, tally)
	assert.Equal(t, "200", tally.StakeWeight.String())
}

func TestTallyFirstSeenOrder(t *testing.T) {
	// two ballots both exactly at threshold: the first-seen one wins
	total := ncn.NewStakeWeight(300)
	box := NewBox(testNcn, 7, 100)

	assert.Nil(t, box.Cast(operator(1), WeatherRainy, ncn.NewStakeWeight(200), 101, amendmentWindow))
	assert.Nil(t, box.Cast(operator(2), WeatherSunny, ncn.NewStakeWeight(200), 102, amendmentWindow))

	assert.True(t, box.Tally(total, 103))
	assert.Equal(t, WeatherRainy, box.WinningBallot.Weather, "first-seen tally wins, not the lower enum value")
}

func TestImmutableAfterConsensus(t *testing.T) {
	total := ncn.NewStakeWeight(100)
	box := NewBox(testNcn, 7, 100)

	assert.Nil(t, box.Cast(operator(1), WeatherSunny, ncn.NewStakeWeight(70), 101, amendmentWindow))
	assert.True(t, box.Tally(total, 102))

	// a late vote inside the amendment window is recorded
	assert.Nil(t, box.Cast(operator(2), WeatherCloudy, ncn.NewStakeWeight(30), 110, amendmentWindow))
	assert.Equal(t, uint64(2), box.OperatorsVoted)

	// even a mathematically better ballot cannot displace the winner
	assert.Nil(t, box.Cast(operator(1), WeatherCloudy, ncn.NewStakeWeight(70), 111, amendmentWindow))
	assert.True(t, box.Tally(total, 112))
	assert.Equal(t, WeatherSunny, box.WinningBallot.Weather)
	assert.Equal(t, ncn.Slot(102), box.SlotConsensusReached)

	// outside the window votes are rejected
	err := box.Cast(operator(3), WeatherCloudy, ncn.NewStakeWeight(1), 102+amendmentWindow+1, amendmentWindow)
	assert.Equal(t, ErrVotingWindowExpired, err)
}

func TestTieBreaker(t *testing.T) {
	box := NewBox(testNcn, 7, 100)
	assert.Nil(t, box.Cast(operator(1), WeatherSunny, ncn.NewStakeWeight(10), 101, amendmentWindow))

	// too early
	assert.Equal(t, ErrNotStalled, box.SetTieBreaker(WeatherCloudy, 16, 10, 200))
	assert.Equal(t, ErrInvalidBallot, box.SetTieBreaker(Weather(9), 17, 10, 200))

	assert.Nil(t, box.SetTieBreaker(WeatherCloudy, 17, 10, 200))
	assert.True(t, box.IsConsensusReached())
	assert.True(t, box.TieBreakerSet)
	assert.Equal(t, WeatherCloudy, box.WinningBallot.Weather)
	assert.Equal(t, ncn.Slot(200), box.SlotConsensusReached)

	// tie-break ballot nobody voted for has no tally
	assert.Nil(t, box.WinningTally())

	// cannot override once consensus is reached
	assert.Equal(t, ErrConsensusAlreadyReached, box.SetTieBreaker(WeatherRainy, 18, 10, 201))
}

func TestTallyConservation(t *testing.T) {
	// sum of tallies always equals sum of live votes
	box := NewBox(testNcn, 7, 100)
	weathers := []Weather{WeatherSunny, WeatherCloudy, WeatherRainy}
	for i := 0; i < 20; i++ {
		stake := ncn.NewStakeWeight(uint64(i%7 + 1))
		assert.Nil(t, box.Cast(operator(byte(i%5)), weathers[i%3], stake, ncn.Slot(101+i), amendmentWindow))

		var tallySum, voteSum ncn.StakeWeight
		for j := range box.Tallies {
			assert.Nil(t, tallySum.Add(box.Tallies[j].StakeWeight))
		}
		for j := range box.Votes {
			assert.Nil(t, voteSum.Add(box.Votes[j].StakeWeight))
		}
		assert.Equal(t, 0, tallySum.Cmp(voteSum))
		assert.Equal(t, uint64(len(box.Votes)), box.OperatorsVoted)
	}
	assert.Equal(t, uint64(5), box.OperatorsVoted)
}

func TestVoteCapacity(t *testing.T) {
	box := NewBox(testNcn, 7, 100)
	for i := 0; i < ncn.MaxOperators; i++ {
		op := ncn.Pubkey{0xb0, byte(i / 256), byte(i % 256)}
		assert.Nil(t, box.Cast(op, WeatherSunny, ncn.NewStakeWeight(1), 101, amendmentWindow))
	}
	err := box.Cast(ncn.Pubkey{0xbb}, WeatherSunny, ncn.NewStakeWeight(1), 101, amendmentWindow)
	assert.Equal(t, ErrVoteCapacity, err)

	// an existing voter may still re-vote at capacity
	assert.Nil(t, box.Cast(ncn.Pubkey{0xb0, 0, 0}, WeatherCloudy, ncn.NewStakeWeight(1), 102, amendmentWindow))
}

func TestConsensusResult(t *testing.T) {
	total := ncn.NewStakeWeight(100)
	box := NewBox(testNcn, 7, 100)
	assert.Nil(t, box.Cast(operator(1), WeatherSunny, ncn.NewStakeWeight(80), 101, amendmentWindow))
	assert.True(t, box.Tally(total, 102))

	result := NewConsensusResult(box, total, ncn.Pubkey{0xcc})
	assert.Equal(t, ncn.Epoch(7), result.Epoch)
	assert.Equal(t, WeatherSunny, result.Weather)
	assert.Equal(t, "80", result.VoteWeight.String())
	assert.Equal(t, "100", result.TotalVoteWeight.String())
	assert.Equal(t, ncn.Slot(102), result.ConsensusSlot)
}
