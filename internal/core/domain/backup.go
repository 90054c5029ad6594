package domain

import "time"

// BackupVersion is the export format version written by this build.
const BackupVersion = 1

// Backup is the export/import document.
type Backup struct {
	Version   int             `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Library   []LibraryRecord `json:"library"`
}
