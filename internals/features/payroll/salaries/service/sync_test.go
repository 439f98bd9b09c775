package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDrift(t *testing.T) {
	tests := []struct {
		name     string
		recorded int
		realtime int
		want     SyncResult
	}{
		{name: "sinkron", recorded: 10, realtime: 10, want: SyncResult{RealtimeSessions: 10, RecordedSessions: 10}},
		{name: "attendance bertambah", recorded: 8, realtime: 10, want: SyncResult{IsOutOfSync: true, RealtimeSessions: 10, RecordedSessions: 8, Difference: 2}},
		{name: "attendance berkurang", recorded: 5, realtime: 3, want: SyncResult{IsOutOfSync: true, RealtimeSessions: 3, RecordedSessions: 5, Difference: -2}},
		{name: "kosong", want: SyncResult{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDrift(tt.recorded, tt.realtime))
		})
	}
}
