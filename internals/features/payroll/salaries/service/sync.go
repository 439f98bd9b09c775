package service

// SyncResult: perbandingan total_sessions tersimpan vs hitungan attendance saat ini.
type SyncResult struct {
	IsOutOfSync      bool `json:"is_out_of_sync"`
	RealtimeSessions int  `json:"realtime_sessions"`
	RecordedSessions int  `json:"recorded_sessions"`
	Difference       int  `json:"difference"` // realtime − recorded
}

// DetectDrift murni, tanpa I/O.
func DetectDrift(recorded, realtime int) SyncResult {
	diff := realtime - recorded
	return SyncResult{
		IsOutOfSync:      diff != 0,
		RealtimeSessions: realtime,
		RecordedSessions: recorded,
		Difference:       diff,
	}
}
