package epochctl

import (
	"os"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/services/epoch"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PoolEntry is one unspent output of a fixture or report.
type PoolEntry struct {
	Outpoint model.Outpoint `json:"outpoint"`
	Output   *model.Output  `json:"output"`
}

// Fixture is the on disk description of one epoch.
type Fixture struct {
	Pool       []PoolEntry          `json:"pool"`
	Candidates []*model.Transaction `json:"candidates"`
}

type Rejection struct {
	Index  int    `json:"index"`
	TxID   string `json:"txid,omitempty"`
	Reason string `json:"reason"`
}

// Report is what process prints.
type Report struct {
	RunID     string       `json:"run_id"`
	Policy    string       `json:"policy"`
	Accepted  []string     `json:"accepted"`
	TotalFees model.Amount `json:"total_fees"`
	Rejected  []Rejection  `json:"rejected"`
	Pool      []PoolEntry  `json:"pool"`
}

func ReadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("could not read fixture %s", path, err)
	}

	fixture := &Fixture{}
	if err = json.Unmarshal(data, fixture); err != nil {
		return nil, errors.NewInvalidArgumentError("could not decode fixture %s", path, err)
	}

	for i, entry := range fixture.Pool {
		if entry.Output == nil {
			return nil, errors.NewInvalidArgumentError("pool entry %d has no output", i)
		}
	}

	for i, tx := range fixture.Candidates {
		if tx == nil {
			return nil, errors.NewInvalidArgumentError("candidate %d is null", i)
		}
	}

	return fixture, nil
}

func (f *Fixture) UTXOSet() *utxo.Set {
	set := utxo.NewSet()
	for _, entry := range f.Pool {
		set.Insert(entry.Outpoint, entry.Output)
	}

	return set
}

func poolEntries(set *utxo.Set) []PoolEntry {
	ops := set.Outpoints()
	entries := make([]PoolEntry, 0, len(ops))

	for _, op := range ops {
		out, _ := set.Get(op)
		entries = append(entries, PoolEntry{Outpoint: op, Output: out})
	}

	return entries
}

func newReport(policy string, candidates []*model.Transaction, result *epoch.Result) *Report {
	report := &Report{
		RunID:     result.RunID.String(),
		Policy:    policy,
		Accepted:  make([]string, len(result.Accepted)),
		TotalFees: result.TotalFees,
		Rejected:  make([]Rejection, 0, len(result.Rejected)),
		Pool:      poolEntries(result.Pool),
	}

	for i, tx := range result.Accepted {
		report.Accepted[i] = tx.ID().String()
	}

	for i, tx := range candidates {
		err, rejected := result.Rejected[i]
		if !rejected {
			continue
		}

		report.Rejected = append(report.Rejected, Rejection{
			Index:  i,
			TxID:   tx.ID().String(),
			Reason: errors.CodeOf(err).String(),
		})
	}

	return report
}
