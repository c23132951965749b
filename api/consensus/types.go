// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import (
	"github.com/jito-foundation/ncn-template-sub000/ballot"
	"github.com/jito-foundation/ncn-template-sub000/engine"
	"github.com/jito-foundation/ncn-template-sub000/ncn"
	"github.com/jito-foundation/ncn-template-sub000/registry"
	"github.com/jito-foundation/ncn-template-sub000/snapshot"
	"github.com/jito-foundation/ncn-template-sub000/weights"
)

type JSONMintEntry struct {
	Mint        ncn.Pubkey `json:"mint"`
	Weight      uint64     `json:"weight"`
	SlotSet     ncn.Slot   `json:"slotSet"`
	SlotUpdated ncn.Slot   `json:"slotUpdated"`
}

type JSONVaultEntry struct {
	Vault          ncn.Pubkey `json:"vault"`
	Mint           ncn.Pubkey `json:"mint"`
	Index          uint64     `json:"index"`
	SlotRegistered ncn.Slot   `json:"slotRegistered"`
}

type JSONRegistry struct {
	Ncn    ncn.Pubkey       `json:"ncn"`
	Mints  []JSONMintEntry  `json:"mints"`
	Vaults []JSONVaultEntry `json:"vaults"`
}

func convertRegistry(r *registry.Registry) *JSONRegistry {
	out := &JSONRegistry{
		Ncn:    r.Ncn,
		Mints:  make([]JSONMintEntry, 0, len(r.Mints)),
		Vaults: make([]JSONVaultEntry, 0, len(r.Vaults)),
	}
	for _, m := range r.Mints {
		out.Mints = append(out.Mints, JSONMintEntry{m.Mint, m.Weight, m.SlotSet, m.SlotUpdated})
	}
	for _, v := range r.Vaults {
		out.Vaults = append(out.Vaults, JSONVaultEntry{v.Vault, v.Mint, v.Index, v.SlotRegistered})
	}
	return out
}

type JSONProgress struct {
	Tally uint64 `json:"tally"`
	Total uint64 `json:"total"`
	Done  bool   `json:"done"`
}

func convertProgress(p engine.Progress) JSONProgress {
	return JSONProgress{Tally: p.Tally, Total: p.Total, Done: p.Done()}
}

type JSONOperatorProgress struct {
	Operator ncn.Pubkey   `json:"operator"`
	Progress JSONProgress `json:"progress"`
}

type JSONEpochState struct {
	Ncn                      ncn.Pubkey             `json:"ncn"`
	Epoch                    ncn.Epoch              `json:"epoch"`
	SlotCreated              ncn.Slot               `json:"slotCreated"`
	OperatorCount            uint64                 `json:"operatorCount"`
	VaultCount               uint64                 `json:"vaultCount"`
	SetWeightProgress        JSONProgress           `json:"setWeightProgress"`
	EpochSnapshotProgress    JSONProgress           `json:"epochSnapshotProgress"`
	OperatorSnapshotProgress []JSONOperatorProgress `json:"operatorSnapshotProgress"`
	VotingProgress           JSONProgress           `json:"votingProgress"`
	WasTieBreakerSet         bool                   `json:"wasTieBreakerSet"`
	SlotConsensusReached     ncn.Slot               `json:"slotConsensusReached"`
	IsClosing                bool                   `json:"isClosing"`
}

func convertEpochState(es *engine.EpochState) *JSONEpochState {
	ops := make([]JSONOperatorProgress, 0, len(es.OperatorSnapshotProgress))
	for _, op := range es.OperatorSnapshotProgress {
		ops = append(ops, JSONOperatorProgress{Operator: op.Operator, Progress: convertProgress(op.Progress)})
	}
	return &JSONEpochState{
		Ncn:                      es.Ncn,
		Epoch:                    es.Epoch,
		SlotCreated:              es.SlotCreated,
		OperatorCount:            es.OperatorCount,
		VaultCount:               es.VaultCount,
		SetWeightProgress:        convertProgress(es.SetWeightProgress),
		EpochSnapshotProgress:    convertProgress(es.EpochSnapshotProgress),
		OperatorSnapshotProgress: ops,
		VotingProgress:           convertProgress(es.VotingProgress),
		WasTieBreakerSet:         es.WasTieBreakerSet,
		SlotConsensusReached:     es.SlotConsensusReached,
		IsClosing:                es.IsClosing,
	}
}

type JSONWeightEntry struct {
	Mint        ncn.Pubkey `json:"mint"`
	Weight      uint64     `json:"weight"`
	SlotSet     ncn.Slot   `json:"slotSet"`
	SlotUpdated ncn.Slot   `json:"slotUpdated"`
}

type JSONWeightTable struct {
	Ncn         ncn.Pubkey        `json:"ncn"`
	Epoch       ncn.Epoch         `json:"epoch"`
	SlotCreated ncn.Slot          `json:"slotCreated"`
	VaultCount  uint64            `json:"vaultCount"`
	Finalized   bool              `json:"finalized"`
	Entries     []JSONWeightEntry `json:"entries"`
}

func convertWeightTable(t *weights.Table) *JSONWeightTable {
	entries := make([]JSONWeightEntry, 0, len(t.Entries))
	for _, e := range t.Entries {
		entries = append(entries, JSONWeightEntry{e.Mint, e.Weight, e.SlotSet, e.SlotUpdated})
	}
	return &JSONWeightTable{
		Ncn:         t.Ncn,
		Epoch:       t.Epoch,
		SlotCreated: t.SlotCreated,
		VaultCount:  t.VaultCount,
		Finalized:   t.Finalized(),
		Entries:     entries,
	}
}

type JSONEpochSnapshot struct {
	Ncn                 ncn.Pubkey      `json:"ncn"`
	Epoch               ncn.Epoch       `json:"epoch"`
	SlotCreated         ncn.Slot        `json:"slotCreated"`
	SlotFinalized       ncn.Slot        `json:"slotFinalized"`
	OperatorCount       uint64          `json:"operatorCount"`
	VaultCount          uint64          `json:"vaultCount"`
	OperatorsRegistered uint64          `json:"operatorsRegistered"`
	ValidDelegations    uint64          `json:"validDelegations"`
	StakeWeight         ncn.StakeWeight `json:"stakeWeight"`
	Finalized           bool            `json:"finalized"`
}

func convertEpochSnapshot(s *snapshot.EpochSnapshot) *JSONEpochSnapshot {
	return &JSONEpochSnapshot{
		Ncn:                 s.Ncn,
		Epoch:               s.Epoch,
		SlotCreated:         s.SlotCreated,
		SlotFinalized:       s.SlotFinalized,
		OperatorCount:       s.OperatorCount,
		VaultCount:          s.VaultCount,
		OperatorsRegistered: s.OperatorsRegistered,
		ValidDelegations:    s.ValidDelegations,
		StakeWeight:         s.StakeWeight,
		Finalized:           s.Finalized(),
	}
}

type JSONVaultDelegation struct {
	Vault       ncn.Pubkey      `json:"vault"`
	Mint        ncn.Pubkey      `json:"mint"`
	Amount      uint64          `json:"amount"`
	Weight      uint64          `json:"weight"`
	StakeWeight ncn.StakeWeight `json:"stakeWeight"`
	SlotNoted   ncn.Slot        `json:"slotNoted"`
}

type JSONOperatorSnapshot struct {
	Ncn                   ncn.Pubkey            `json:"ncn"`
	Operator              ncn.Pubkey            `json:"operator"`
	Epoch                 ncn.Epoch             `json:"epoch"`
	SlotCreated           ncn.Slot              `json:"slotCreated"`
	SlotFinalized         ncn.Slot              `json:"slotFinalized"`
	IsActive              bool                  `json:"isActive"`
	OperatorIndex         uint64                `json:"operatorIndex"`
	DelegationCount       uint64                `json:"delegationCount"`
	DelegationsRegistered uint64                `json:"delegationsRegistered"`
	ValidDelegations      uint64                `json:"validDelegations"`
	StakeWeight           ncn.StakeWeight       `json:"stakeWeight"`
	Counted               bool                  `json:"counted"`
	Finalized             bool                  `json:"finalized"`
	Delegations           []JSONVaultDelegation `json:"delegations"`
}

func convertOperatorSnapshot(s *snapshot.OperatorSnapshot) *JSONOperatorSnapshot {
	delegations := make([]JSONVaultDelegation, 0, len(s.Delegations))
	for _, d := range s.Delegations {
		delegations = append(delegations, JSONVaultDelegation{d.Vault, d.Mint, d.Amount, d.Weight, d.StakeWeight, d.SlotNoted})
	}
	return &JSONOperatorSnapshot{
		Ncn:                   s.Ncn,
		Operator:              s.Operator,
		Epoch:                 s.Epoch,
		SlotCreated:           s.SlotCreated,
		SlotFinalized:         s.SlotFinalized,
		IsActive:              s.IsActive,
		OperatorIndex:         s.OperatorIndex,
		DelegationCount:       s.DelegationCount,
		DelegationsRegistered: s.DelegationsRegistered,
		ValidDelegations:      s.ValidDelegations,
		StakeWeight:           s.StakeWeight,
		Counted:               s.Counted,
		Finalized:             s.Finalized(),
		Delegations:           delegations,
	}
}

type JSONTally struct {
	Weather     string          `json:"ballot"`
	StakeWeight ncn.StakeWeight `json:"stakeWeight"`
	VoteCount   uint64          `json:"voteCount"`
}

type JSONOperatorVote struct {
	Operator    ncn.Pubkey      `json:"operator"`
	SlotVoted   ncn.Slot        `json:"slotVoted"`
	StakeWeight ncn.StakeWeight `json:"stakeWeight"`
	TallyIndex  uint64          `json:"tallyIndex"`
}

type JSONBallotBox struct {
	Ncn                  ncn.Pubkey         `json:"ncn"`
	Epoch                ncn.Epoch          `json:"epoch"`
	SlotCreated          ncn.Slot           `json:"slotCreated"`
	SlotConsensusReached ncn.Slot           `json:"slotConsensusReached"`
	OperatorsVoted       uint64             `json:"operatorsVoted"`
	UniqueBallots        uint64             `json:"uniqueBallots"`
	ConsensusReached     bool               `json:"consensusReached"`
	WinningBallot        *string            `json:"winningBallot"`
	TieBreakerSet        bool               `json:"tieBreakerSet"`
	Votes                []JSONOperatorVote `json:"votes"`
	Tallies              []JSONTally        `json:"tallies"`
}

func convertBallotBox(b *ballot.Box) *JSONBallotBox {
	votes := make([]JSONOperatorVote, 0, len(b.Votes))
	for _, v := range b.Votes {
		votes = append(votes, JSONOperatorVote{v.Operator, v.SlotVoted, v.StakeWeight, v.TallyIndex})
	}
	tallies := make([]JSONTally, 0, len(b.Tallies))
	for _, t := range b.Tallies {
		tallies = append(tallies, JSONTally{t.Ballot.Weather.String(), t.StakeWeight, t.VoteCount})
	}
	out := &JSONBallotBox{
		Ncn:                  b.Ncn,
		Epoch:                b.Epoch,
		SlotCreated:          b.SlotCreated,
		SlotConsensusReached: b.SlotConsensusReached,
		OperatorsVoted:       b.OperatorsVoted,
		UniqueBallots:        b.UniqueBallots,
		ConsensusReached:     b.IsConsensusReached(),
		TieBreakerSet:        b.TieBreakerSet,
		Votes:                votes,
		Tallies:              tallies,
	}
	if b.IsConsensusReached() {
		winner := b.WinningBallot.Weather.String()
		out.WinningBallot = &winner
	}
	return out
}

type JSONConsensusResult struct {
	Ncn             ncn.Pubkey      `json:"ncn"`
	Epoch           ncn.Epoch       `json:"epoch"`
	Weather         string          `json:"ballot"`
	VoteWeight      ncn.StakeWeight `json:"voteWeight"`
	TotalVoteWeight ncn.StakeWeight `json:"totalVoteWeight"`
	ConsensusSlot   ncn.Slot        `json:"consensusSlot"`
	Recorder        ncn.Pubkey      `json:"recorder"`
}

func convertConsensusResult(r *ballot.ConsensusResult) *JSONConsensusResult {
	return &JSONConsensusResult{
		Ncn:             r.Ncn,
		Epoch:           r.Epoch,
		Weather:         r.Weather.String(),
		VoteWeight:      r.VoteWeight,
		TotalVoteWeight: r.TotalVoteWeight,
		ConsensusSlot:   r.ConsensusSlot,
		Recorder:        r.Recorder,
	}
}
