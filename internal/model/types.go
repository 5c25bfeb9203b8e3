package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// SweepSummary describes one completed sweep: the model it exercised, the
// shape of the parameter space, and how much work it did.
type SweepSummary struct {
	VersionedRecord
	ID             string   `json:"id"`
	Model          string   `json:"model"`
	ParamNames     []string `json:"param_names"`
	Configurations int      `json:"configurations"`
	Iterations     int      `json:"iterations"`
	MaxSteps       int      `json:"max_steps"`
	Runs           int      `json:"runs"`
	StartedAtUTC   string   `json:"started_at_utc,omitempty"`
	CompletedAtUTC string   `json:"completed_at_utc,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// ReportTable is a persisted report: the tabular output of one sweep's
// model-level or agent-level store.
type ReportTable struct {
	VersionedRecord
	SweepID string   `json:"sweep_id"`
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
