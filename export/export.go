// Package export writes a completed transaction's event log to Parquet
// for offline analysis, grounded in the same row-batched writer pattern
// used elsewhere in the corpus for reconciliation exports.
package export

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/genlayerlabs/fee-simulator/core/types"
)

// Row is the flattened, Parquet-tagged projection of one FeeEvent.
type Row struct {
	SequenceID uint64 `parquet:"name=sequence_id, type=INT64"`
	Address    string `parquet:"name=address, type=BYTE_ARRAY, convertedtype=UTF8"`
	RoundIndex int64  `parquet:"name=round_index, type=INT64"`
	HasRound   bool   `parquet:"name=has_round, type=BOOLEAN"`
	RoundLabel string `parquet:"name=round_label, type=BYTE_ARRAY, convertedtype=UTF8"`
	Role       string `parquet:"name=role, type=BYTE_ARRAY, convertedtype=UTF8"`
	Cost       uint64 `parquet:"name=cost, type=INT64"`
	Staked     uint64 `parquet:"name=staked, type=INT64"`
	Earned     uint64 `parquet:"name=earned, type=INT64"`
	Slashed    uint64 `parquet:"name=slashed, type=INT64"`
	Burned     uint64 `parquet:"name=burned, type=INT64"`
}

func toRow(ev types.FeeEvent) Row {
	row := Row{
		SequenceID: ev.SequenceID,
		Address:    ev.Address.String(),
		Cost:       ev.Cost,
		Staked:     ev.Staked,
		Earned:     ev.Earned,
		Slashed:    ev.Slashed,
		Burned:     ev.Burned,
	}
	if ev.RoundIndex != nil {
		row.HasRound = true
		row.RoundIndex = int64(*ev.RoundIndex)
	}
	if ev.RoundLabel != nil {
		row.RoundLabel = ev.RoundLabel.String()
	}
	if ev.Role != nil {
		row.Role = ev.Role.String()
	}
	return row
}

// WriteLedger writes events to a new Parquet file at path, one row per
// event, in emission order.
func WriteLedger(path string, events []types.FeeEvent) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("export: open %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(Row), 4)
	if err != nil {
		return fmt.Errorf("export: new parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, ev := range events {
		row := toRow(ev)
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("export: write row %d: %w", ev.SequenceID, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("export: finalize: %w", err)
	}
	return nil
}
