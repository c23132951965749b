// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package consensus exposes read-only HTTP endpoints over the engine's
// records: the vault registry, per-epoch progress and the voting artifacts.
package consensus

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/jito-foundation/ncn-template-sub000/api/utils"
	"github.com/jito-foundation/ncn-template-sub000/engine"
	"github.com/jito-foundation/ncn-template-sub000/ncn"
)

type Consensus struct {
	engine *engine.Engine
}

func New(eng *engine.Engine) *Consensus {
	return &Consensus{
		eng,
	}
}

func (c *Consensus) handleGetRegistry(w http.ResponseWriter, _ *http.Request) error {
	reg, err := c.engine.GetVaultRegistry()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertRegistry(reg))
}

func (c *Consensus) handleGetEpochState(w http.ResponseWriter, req *http.Request) error {
	epoch, err := parseEpoch(req)
	if err != nil {
		return err
	}
	state, err := c.engine.GetEpochState(epoch)
	if err != nil {
		return notFoundOr(err)
	}
	return utils.WriteJSON(w, convertEpochState(state))
}

func (c *Consensus) handleGetWeightTable(w http.ResponseWriter, req *http.Request) error {
	epoch, err := parseEpoch(req)
	if err != nil {
		return err
	}
	table, err := c.engine.GetWeightTable(epoch)
	if err != nil {
		return notFoundOr(err)
	}
	return utils.WriteJSON(w, convertWeightTable(table))
}

func (c *Consensus) handleGetEpochSnapshot(w http.ResponseWriter, req *http.Request) error {
	epoch, err := parseEpoch(req)
	if err != nil {
		return err
	}
	snap, err := c.engine.GetEpochSnapshot(epoch)
	if err != nil {
		return notFoundOr(err)
	}
	return utils.WriteJSON(w, convertEpochSnapshot(snap))
}

func (c *Consensus) handleGetOperatorSnapshot(w http.ResponseWriter, req *http.Request) error {
	epoch, err := parseEpoch(req)
	if err != nil {
		return err
	}
	operator, err := ncn.ParsePubkey(mux.Vars(req)["operator"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "operator"))
	}
	snap, err := c.engine.GetOperatorSnapshot(epoch, operator)
	if err != nil {
		return utils.NotFound(errors.New("operator snapshot not found"))
	}
	return utils.WriteJSON(w, convertOperatorSnapshot(snap))
}

func (c *Consensus) handleGetBallotBox(w http.ResponseWriter, req *http.Request) error {
	epoch, err := parseEpoch(req)
	if err != nil {
		return err
	}
	box, err := c.engine.GetBallotBox(epoch)
	if err != nil {
		return notFoundOr(err)
	}
	return utils.WriteJSON(w, convertBallotBox(box))
}

func (c *Consensus) handleGetConsensusResult(w http.ResponseWriter, req *http.Request) error {
	epoch, err := parseEpoch(req)
	if err != nil {
		return err
	}
	result, err := c.engine.GetConsensusResult(epoch)
	if err != nil {
		return notFoundOr(err)
	}
	return utils.WriteJSON(w, convertConsensusResult(result))
}

func parseEpoch(req *http.Request) (ncn.Epoch, error) {
	raw := mux.Vars(req)["epoch"]
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "epoch"))
	}
	return ncn.Epoch(n), nil
}

// notFoundOr maps the engine's missing-record errors to 404 and passes
// everything else through as a server error.
func notFoundOr(err error) error {
	switch errors.Cause(err) {
	case engine.ErrEpochStateNotFound,
		engine.ErrWeightTableNotInitialized,
		engine.ErrEpochSnapshotNotInitialized,
		engine.ErrBallotBoxNotInitialized,
		engine.ErrConsensusNotReached:
		return utils.NotFound(err)
	}
	return err
}

func (c *Consensus) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/registry").
		Methods(http.MethodGet).
		Name("consensus_get_registry").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetRegistry))
	sub.Path("/epochs/{epoch}/state").
		Methods(http.MethodGet).
		Name("consensus_get_epoch_state").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetEpochState))
	sub.Path("/epochs/{epoch}/weights").
		Methods(http.MethodGet).
		Name("consensus_get_weight_table").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetWeightTable))
	sub.Path("/epochs/{epoch}/snapshot").
		Methods(http.MethodGet).
		Name("consensus_get_epoch_snapshot").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetEpochSnapshot))
	sub.Path("/epochs/{epoch}/operators/{operator}").
		Methods(http.MethodGet).
		Name("consensus_get_operator_snapshot").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetOperatorSnapshot))
	sub.Path("/epochs/{epoch}/ballots").
		Methods(http.MethodGet).
		Name("consensus_get_ballot_box").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetBallotBox))
	sub.Path("/epochs/{epoch}/result").
		Methods(http.MethodGet).
		Name("consensus_get_result").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetConsensusResult))
}
