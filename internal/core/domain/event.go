package domain

import "time"

// StageRecorded is emitted after a lifecycle event has been appended to a shipment.
type StageRecorded struct {
	TrackingNumber  string         `json:"tracking_number"`
	Event           LifecycleEvent `json:"event"`
	CurrentStage    Stage          `json:"current_stage"`
	ProgressPercent int            `json:"progress_percent"`
	Delivered       bool           `json:"delivered"`
	RecordedAt      time.Time      `json:"recorded_at"`
}
