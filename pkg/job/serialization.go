package job

import (
	"encoding/json"
	"fmt"
	"time"
)

// weekKeyLayout encodes a week's Monday as e.g. "Y2024M03D04". The format
// round-trips year/month/day exactly and sorts lexicographically.
const weekKeyLayout = "Y2006M01D02"

type timesheetRecord struct {
	Work    int `json:"work"`
	Holiday int `json:"holiday"`
	Bank    int `json:"bank"`
	Sick    int `json:"sick"`
}

// encodeTimesheets serializes a timesheet map to JSON keyed by week date.
// Only the four recorded buckets are stored; balance and flexi are
// recomputed from scratch on every read path.
func encodeTimesheets(timesheets map[time.Time]*Timesheet) (string, error) {
	records := make(map[string]timesheetRecord, len(timesheets))
	for week, ts := range timesheets {
		records[week.Format(weekKeyLayout)] = timesheetRecord{
			Work:    ts.Work,
			Holiday: ts.Holiday,
			Bank:    ts.Bank,
			Sick:    ts.Sick,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode timesheets: %w", err)
	}
	return string(data), nil
}

func decodeTimesheets(data string) (map[time.Time]*Timesheet, error) {
	var records map[string]timesheetRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to decode timesheets: %w", err)
	}
	timesheets := make(map[time.Time]*Timesheet, len(records))
	for key, record := range records {
		week, err := time.ParseInLocation(weekKeyLayout, key, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid timesheet week key %q: %w", key, err)
		}
		timesheets[week] = &Timesheet{
			Work:    record.Work,
			Holiday: record.Holiday,
			Bank:    record.Bank,
			Sick:    record.Sick,
		}
	}
	return timesheets, nil
}
