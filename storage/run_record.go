// Package storage persists completed transaction computations (the
// run envelope and its event log) and caches bearer-token replay
// nonces for services/feeapi.
package storage

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/genlayerlabs/fee-simulator/core/types"
)

// RunRecord is the persisted envelope around one process_transaction
// invocation: the digest of its event log, the sender, event and round
// counts, and creation time. The events themselves are stored as RunEvent
// rows.
type RunRecord struct {
	ID            string `gorm:"primaryKey;size:36"`
	SenderAddress string `gorm:"size:42;index"`
	LedgerDigest  string `gorm:"size:128"`
	EventCount    int
	RoundCount    int
	CreatedAt     time.Time
}

func (RunRecord) TableName() string { return "runs" }

// RunEvent is one FeeEvent flattened into a row for SQL storage and
// query, foreign-keyed to its owning run.
type RunEvent struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	RunID      string `gorm:"size:36;index"`
	SequenceID uint64
	Address    string `gorm:"size:42;index"`
	RoundIndex *int
	RoundLabel string
	Role       string
	Cost       uint64
	Staked     uint64
	Earned     uint64
	Slashed    uint64
	Burned     uint64
}

func (RunEvent) TableName() string { return "run_events" }

// Store persists run records over a gorm connection. The caller selects
// the backing driver (sqlite for local/dev, postgres for a shared
// deployment) when opening db.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&RunRecord{}, &RunEvent{}); err != nil {
		return nil, fmt.Errorf("storage: automigrate: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun persists a run and its full event log in one transaction.
func (s *Store) SaveRun(record RunRecord, events []types.FeeEvent) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("storage: insert run: %w", err)
		}
		rows := make([]RunEvent, len(events))
		for i, ev := range events {
			row := RunEvent{
				RunID:      record.ID,
				SequenceID: ev.SequenceID,
				Address:    ev.Address.String(),
				RoundIndex: ev.RoundIndex,
				Cost:       ev.Cost,
				Staked:     ev.Staked,
				Earned:     ev.Earned,
				Slashed:    ev.Slashed,
				Burned:     ev.Burned,
			}
			if ev.RoundLabel != nil {
				row.RoundLabel = ev.RoundLabel.String()
			}
			if ev.Role != nil {
				row.Role = ev.Role.String()
			}
			rows[i] = row
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 500).Error; err != nil {
				return fmt.Errorf("storage: insert events: %w", err)
			}
		}
		return nil
	})
}

// GetRun loads a run record by id, without its events.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var record RunRecord
	if err := s.db.First(&record, "id = ?", runID).Error; err != nil {
		return RunRecord{}, fmt.Errorf("storage: load run %s: %w", runID, err)
	}
	return record, nil
}

// GetRunEvents loads the full event log for a run, in sequence order.
func (s *Store) GetRunEvents(runID string) ([]RunEvent, error) {
	var rows []RunEvent
	if err := s.db.Where("run_id = ?", runID).Order("sequence_id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("storage: load events for run %s: %w", runID, err)
	}
	return rows, nil
}
