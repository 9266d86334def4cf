package repository

import "stockflow-api/internal/model"

// LogRepository is the append-only audit trail, newest first.
type LogRepository interface {
	FindAll() []model.LogEntry
	Append(tx *Dataset, entry model.LogEntry)
	Clear(tx *Dataset)
}

type logRepo struct {
	db *MemDB
}

func NewLogRepo(db *MemDB) LogRepository {
	return &logRepo{db}
}

func (r *logRepo) FindAll() []model.LogEntry {
	var logs []model.LogEntry
	r.db.View(func(d *Dataset) {
		logs = append([]model.LogEntry(nil), d.Logs...)
	})
	return logs
}

func (r *logRepo) Append(tx *Dataset, entry model.LogEntry) {
	tx.Logs = append([]model.LogEntry{entry}, tx.Logs...)
}

// Clear is only used by factory reset.
func (r *logRepo) Clear(tx *Dataset) {
	tx.Logs = nil
}
