// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"

	"github.com/luxfi/ids"
	gologger "github.com/luxfi/log"
	"go.uber.org/zap"

	"github.com/luxfi/daseq/clock"
	"github.com/luxfi/daseq/config"
	"github.com/luxfi/daseq/crypto"
	"github.com/luxfi/daseq/crypto/threshold"
	"github.com/luxfi/daseq/exchange"
	"github.com/luxfi/daseq/leader/da"
	"github.com/luxfi/daseq/leader/quorum"
	"github.com/luxfi/daseq/log"
	"github.com/luxfi/daseq/membership"
	"github.com/luxfi/daseq/metrics"
	"github.com/luxfi/daseq/replica"
	"github.com/luxfi/daseq/storage"
	"github.com/luxfi/daseq/types"

	"github.com/prometheus/client_golang/prometheus"
)

// replicaNode bundles everything one simulated committee member owns.
type replicaNode struct {
	id  ids.NodeID
	key *crypto.Ed25519Key
}

// runDemo wires a committee (from cfg if path is non-empty, else a
// built-in 4-node default), then drives one DA view and one Quorum view
// for the leader of view 1, logging and recording metrics throughout.
func runDemo(cfgPath string) error {
	zapBase, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	logger, err := log.NewZapLogger(zapBase)
	if err != nil {
		return err
	}
	defer logger.Stop()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewMetrics("daseq_demo", reg)
	if err != nil {
		return err
	}

	cfg := config.Default()
	nodeNames := []string{"node-a", "node-b", "node-c", "node-d"}
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		nodeNames = nodeNames[:0]
		for _, entry := range cfg.Committee {
			nodeNames = append(nodeNames, entry.Name)
		}
	} else {
		cfg.NodeID = "node-a"
		cfg.Committee = []config.StakeEntry{
			{Name: "node-a", Stake: 1},
			{Name: "node-b", Stake: 1},
			{Name: "node-c", Stake: 1},
			{Name: "node-d", Stake: 1},
		}
		if err := cfg.Valid(); err != nil {
			return err
		}
	}

	nodes := make([]replicaNode, 0, len(nodeNames))
	stakes := make(map[ids.NodeID]uint64, len(nodeNames))
	for i, name := range nodeNames {
		key, err := crypto.GenerateEd25519Key()
		if err != nil {
			return err
		}
		id := nodeIDFromName(name, i)
		nodes = append(nodes, replicaNode{id: id, key: key})
		stakes[id] = stakeOf(cfg, name)
	}

	table := membership.NewStaticTable(stakes)
	for _, n := range nodes {
		table.RegisterKey(n.id, n.key.PublicKeyBytes())
	}
	scheme := threshold.ConcatScheme{}

	leafState := types.MaterializedState(types.NewMapState())
	genesis := types.GenesisLeaf(leafState.Materialized)
	consensus := replica.NewConsensus(genesis)
	store := storage.NewMemory()
	if err := store.SaveLeaf(genesis); err != nil {
		return err
	}

	clk := clock.Real{}
	view := types.View(1)
	leaderID := table.Leader(view)

	logger.Info("demo: committee assembled", "committee_size", len(nodes), "leader", leaderID)

	for i, tx := range []string{"alpha", "bravo", "charlie"} {
		if !consensus.Mempool.Submit(types.NewTransaction([]byte(tx))) {
			logger.Warn("demo: duplicate transaction submitted", "index", i)
		}
	}

	daOutcome, err := runDAView(cfg, consensus, table, scheme, nodes, leaderID, view, clk, logger, m)
	if err != nil {
		return fmt.Errorf("DA view failed: %w", err)
	}
	logger.Info("demo: DA certificate formed", "view", view, "kind", daOutcome.Certificate.Signatures.Kind)

	highQC := consensus.HighQC()
	newHighQC, err := runQuorumView(consensus, table, scheme, nodes, leaderID, view, daOutcome, highQC, clk, logger)
	if err != nil {
		return fmt.Errorf("Quorum view failed: %w", err)
	}
	logger.Info("demo: quorum view complete", "view", view, "high_qc_genesis", newHighQC.IsGenesis)

	fmt.Printf("view %d: DA certificate over block with %d transactions; leaf saved under leader %s\n",
		view, len(daOutcome.Block.ContainedTransactions()), leaderID)
	return nil
}

func stakeOf(cfg config.ReplicaConfig, name string) uint64 {
	for _, entry := range cfg.Committee {
		if entry.Name == name {
			return entry.Stake
		}
	}
	return 1
}

func nodeIDFromName(_ string, i int) ids.NodeID {
	var id ids.NodeID
	id[0] = byte(i + 1)
	return id
}

// runDAView runs the DA leader's view loop for the demo leader, while
// every other committee member signs and delivers its vote directly --
// there is no separate follower state machine: casting a vote is the same
// exchange.MakeVote call every replica, leader or not, performs.
func runDAView(cfg config.ReplicaConfig, consensus *replica.Consensus, table *membership.StaticTable, scheme crypto.Scheme, nodes []replicaNode, leaderID ids.NodeID, v types.View, clk clock.Clock, logger gologger.Logger, m *metrics.Metrics) (da.Outcome, error) {
	var leaderNode replicaNode
	for _, n := range nodes {
		if n.id == leaderID {
			leaderNode = n
		}
	}

	leaderExchange := exchange.NewCommittee(leaderID, leaderNode.key, table, scheme)
	leaderCfg := da.Config{MinTransactions: cfg.MinTransactions, ProposeMaxRoundTime: cfg.ProposeMaxRoundTime}
	leader := da.New(leaderCfg, consensus, leaderExchange, clk, logger)

	votes := make(chan types.ConsensusMessage, len(nodes))
	interrupt := make(chan struct{})
	bcast := &capturingDABroadcaster{proposed: make(chan types.DAProposal, 1)}

	resultCh := make(chan da.Outcome, 1)
	errCh := make(chan error, 1)
	go func() {
		outcome, err := leader.RunView(context.Background(), v, bcast, votes, interrupt)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- outcome
	}()

	proposal := <-bcast.proposed

	for _, n := range nodes {
		voterExchange := exchange.NewCommittee(n.id, n.key, table, scheme)
		vote, ok, err := voterExchange.MakeVote(v, proposal.Deltas.Commit())
		if err != nil {
			return da.Outcome{}, err
		}
		if !ok {
			continue
		}
		m.RecordVote("da", true)
		votes <- voterExchange.CreateVoteMessage(vote, nil)
	}

	select {
	case outcome := <-resultCh:
		m.RecordCertificate("da")
		return outcome, nil
	case err := <-errCh:
		return da.Outcome{}, err
	}
}

// capturingDABroadcaster hands the DA proposal from the leader goroutine
// to the demo's vote-casting loop over a channel rather than a shared
// field, since RunView broadcasts from its own goroutine.
type capturingDABroadcaster struct {
	proposed chan types.DAProposal
}

func (b *capturingDABroadcaster) BroadcastDAProposal(msg types.DAProposalMessage) {
	b.proposed <- msg.Proposal
}

func runQuorumView(consensus *replica.Consensus, table *membership.StaticTable, scheme crypto.Scheme, nodes []replicaNode, leaderID ids.NodeID, v types.View, daOutcome da.Outcome, highQC types.QuorumCertificate, clk clock.Clock, logger gologger.Logger) (types.QuorumCertificate, error) {
	var leaderNode replicaNode
	for _, n := range nodes {
		if n.id == leaderID {
			leaderNode = n
		}
	}
	exch := exchange.NewQuorumYes(leaderID, leaderNode.key, table, scheme)
	leader := quorum.New(leaderID, consensus, exch, clk, logger)

	bcast := &capturingQuorumBroadcaster{}
	return leader.RunView(v, daOutcome.Certificate, daOutcome.Block, highQC, bcast)
}

type capturingQuorumBroadcaster struct {
	proposal *types.CommitmentProposal
}

func (b *capturingQuorumBroadcaster) BroadcastProposal(msg types.ProposalMessage) {
	p := msg.Proposal
	b.proposal = &p
}
