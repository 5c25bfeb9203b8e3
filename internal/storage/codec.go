package storage

import (
	"encoding/json"
	"errors"

	"sweeplab/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeSweep(s model.SweepSummary) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeSweep(data []byte) (model.SweepSummary, error) {
	var summary model.SweepSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.SweepSummary{}, err
	}
	if err := checkVersion(summary.VersionedRecord); err != nil {
		return model.SweepSummary{}, err
	}
	return summary, nil
}

func EncodeTable(t model.ReportTable) ([]byte, error) {
	return json.Marshal(t)
}

func DecodeTable(data []byte) (model.ReportTable, error) {
	var table model.ReportTable
	if err := json.Unmarshal(data, &table); err != nil {
		return model.ReportTable{}, err
	}
	if err := checkVersion(table.VersionedRecord); err != nil {
		return model.ReportTable{}, err
	}
	return table, nil
}

// Stamp fills in the current schema and codec versions.
func Stamp() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func checkVersion(record model.VersionedRecord) error {
	if record.SchemaVersion != CurrentSchemaVersion || record.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
