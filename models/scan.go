package models

import (
	"time"

	"github.com/google/uuid"
)

// ScanStatus represents the outcome of a scan cycle
type ScanStatus string

const (
	ScanStatusSuccess ScanStatus = "Success"
	ScanStatusError   ScanStatus = "Error"
)

// ScanSummary represents one entry in the scan history log
type ScanSummary struct {
	ID          uuid.UUID  `json:"id"`
	ScanTime    time.Time  `json:"scan_time"`
	TotalStocks int        `json:"total_stocks"`
	Gainers     int        `json:"gainers"`
	Losers      int        `json:"losers"`
	Status      ScanStatus `json:"status"`
	Error       string     `json:"error,omitempty"`
}

// NewSuccessSummary builds the summary for a scan that stored a snapshot
func NewSuccessSummary(scanTime time.Time, snapshot Snapshot) ScanSummary {
	return ScanSummary{
		ID:          uuid.New(),
		ScanTime:    scanTime,
		TotalStocks: len(snapshot),
		Gainers:     snapshot.CountGainers(),
		Losers:      snapshot.CountLosers(),
		Status:      ScanStatusSuccess,
	}
}

// NewErrorSummary builds the summary for a scan whose fetch failed
func NewErrorSummary(scanTime time.Time, err error) ScanSummary {
	s := ScanSummary{
		ID:       uuid.New(),
		ScanTime: scanTime,
		Status:   ScanStatusError,
	}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// IsSuccess returns true if the scan stored a snapshot
func (s ScanSummary) IsSuccess() bool {
	return s.Status == ScanStatusSuccess
}

// IsError returns true if the scan failed
func (s ScanSummary) IsError() bool {
	return s.Status == ScanStatusError
}

// ScannerStatus is a point-in-time view of the background scanner
type ScannerStatus struct {
	Running      bool       `json:"running"`
	TotalScans   int64      `json:"total_scans"`
	LastScanTime *time.Time `json:"last_scan_time"`
	NextScanTime *time.Time `json:"next_scan_time"`
}
