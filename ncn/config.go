// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ncn

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters of the consensus engine. All of them
// have default values and get 'locked' once the engine starts. For testing
// purposes or custom deployments the parameters can be updated beforehand.

var (
	slotsPerEpoch                   uint64 = 432000 // slots per consensus period
	validSlotsAfterConsensus        uint64 = 10000  // amendment window after consensus, in slots
	epochsBeforeStall               uint64 = 10     // epochs without consensus before the tie breaker unlocks
	epochsAfterConsensusBeforeClose uint64 = 10     // retention window before epoch records may be reclaimed

	locked bool
)

type Config struct {
	SlotsPerEpoch                   uint64 `yaml:"slotsPerEpoch"`                   // number of slots per epoch
	ValidSlotsAfterConsensus        uint64 `yaml:"validSlotsAfterConsensus"`        // slots during which late votes are still recorded after consensus
	EpochsBeforeStall               uint64 `yaml:"epochsBeforeStall"`               // epochs after which a non-consensus epoch counts as stalled
	EpochsAfterConsensusBeforeClose uint64 `yaml:"epochsAfterConsensusBeforeClose"` // epochs to retain per-epoch records before close
}

// SetConfig sets the config.
// If the config is not set, the default values will be used.
// It is not allowed to update the config after it was locked.
func SetConfig(config Config) error {
	if locked {
		return errors.New("config is locked")
	}

	if config.SlotsPerEpoch > 0 {
		slotsPerEpoch = config.SlotsPerEpoch
	}
	if config.ValidSlotsAfterConsensus > 0 {
		validSlotsAfterConsensus = config.ValidSlotsAfterConsensus
	}
	if config.EpochsBeforeStall > 0 {
		epochsBeforeStall = config.EpochsBeforeStall
	}
	if config.EpochsAfterConsensusBeforeClose > 0 {
		epochsAfterConsensusBeforeClose = config.EpochsAfterConsensusBeforeClose
	}
	return nil
}

// LoadConfigFile reads a YAML config file and applies it.
func LoadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, "parse config file")
	}
	return SetConfig(config)
}

// LockConfig freezes the config for the lifetime of the process.
func LockConfig() {
	locked = true
}

// SlotsPerEpoch returns the number of slots per epoch.
func SlotsPerEpoch() uint64 { return slotsPerEpoch }

// ValidSlotsAfterConsensus returns the post-consensus amendment window.
func ValidSlotsAfterConsensus() uint64 { return validSlotsAfterConsensus }

// EpochsBeforeStall returns the stall threshold in epochs.
func EpochsBeforeStall() uint64 { return epochsBeforeStall }

// EpochsAfterConsensusBeforeClose returns the record retention window.
func EpochsAfterConsensusBeforeClose() uint64 { return epochsAfterConsensusBeforeClose }
