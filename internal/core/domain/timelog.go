package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

type Action string

const (
	ActionNone   Action = ""
	ActionStart  Action = "start"
	ActionResume Action = "resume"
	ActionStop   Action = "stop"
)

func ParseAction(value string) (Action, error) {
	switch action := Action(value); action {
	case ActionNone, ActionStart, ActionResume, ActionStop:
		return action, nil
	default:
		return ActionNone, fmt.Errorf("%w: unknown action %q", ErrMalformedInput, value)
	}
}

// Interval is one span of tracked work. A nil End marks the interval as still open.
type Interval struct {
	Start int64
	End   *int64
}

func (i Interval) IsOpen() bool {
	return i.End == nil
}

// TimeLog is the ordered sequence of intervals of a task.
type TimeLog []Interval

func (l TimeLog) Last() *Interval {
	if len(l) == 0 {
		return nil
	}
	return &l[len(l)-1]
}

// Open reports whether the last interval is still running.
func (l TimeLog) Open() bool {
	last := l.Last()
	return last != nil && last.IsOpen()
}

// Validate checks that only the last interval may be open and that no interval ends before it starts.
func (l TimeLog) Validate() error {
	for idx, interval := range l {
		if interval.IsOpen() {
			if idx != len(l)-1 {
				return fmt.Errorf("%w: open interval at position %d is not the last one", ErrMalformedInput, idx)
			}
			continue
		}
		if *interval.End < interval.Start {
			return fmt.Errorf("%w: interval at position %d ends before it starts", ErrMalformedInput, idx)
		}
	}
	return nil
}

// Duration returns the tracked seconds, counting an open interval up to now.
func (l TimeLog) Duration(now int64) int64 {
	var total int64
	for _, interval := range l {
		end := now
		if interval.End != nil {
			end = *interval.End
		}
		if end > interval.Start {
			total += end - interval.Start
		}
	}
	return total
}

// Canonicalize returns a copy of the log sorted ascending by start.
// Intervals sharing a start keep their relative order.
func Canonicalize(log TimeLog) TimeLog {
	sorted := make(TimeLog, len(log))
	for idx, interval := range log {
		sorted[idx] = Interval{Start: interval.Start}
		if interval.End != nil {
			end := *interval.End
			sorted[idx].End = &end
		}
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Start < sorted[b].Start
	})
	return sorted
}

// ReplaceTimeLog installs a caller supplied history on the task and re-derives the running flag from it.
func ReplaceTimeLog(task *Task, supplied TimeLog) error {
	log := Canonicalize(supplied)
	if err := log.Validate(); err != nil {
		return err
	}
	task.TimeLog = log
	task.IsRunning = log.Open()
	return nil
}

// ApplyAction runs a start, resume or stop transition on the task at the given epoch second.
//
// Starting while already running is not rejected and leaves two open intervals behind,
// so callers have to check IsRunning first when that matters.
func ApplyAction(task *Task, action Action, now int64) {
	switch action {
	case ActionStart, ActionResume:
		task.TimeLog = append(task.TimeLog, Interval{Start: now})
		task.IsRunning = true
	case ActionStop:
		if !task.IsRunning {
			return
		}
		if last := task.TimeLog.Last(); last != nil {
			end := now
			last.End = &end
		}
		task.IsRunning = false
	}
}

func (l TimeLog) MarshalJSON() ([]byte, error) {
	pairs := make([][2]*int64, 0, len(l))
	for _, interval := range l {
		start := interval.Start
		pairs = append(pairs, [2]*int64{&start, interval.End})
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes [[start, end|null], ...]. The legacy false marker is read as an open end.
func (l *TimeLog) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = TimeLog{}
		return nil
	}

	var pairs []json.RawMessage
	if err := json.Unmarshal(trimmed, &pairs); err != nil {
		return fmt.Errorf("%w: time log must be an array: %v", ErrMalformedInput, err)
	}

	log := make(TimeLog, 0, len(pairs))
	for idx, raw := range pairs {
		interval, err := decodeInterval(raw)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrMalformedInput, idx, err)
		}
		log = append(log, interval)
	}
	*l = log
	return nil
}

func decodeInterval(raw json.RawMessage) (Interval, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return Interval{}, err
	}
	if len(pair) != 2 {
		return Interval{}, fmt.Errorf("expected [start, end], got %d elements", len(pair))
	}

	var start int64
	if err := json.Unmarshal(pair[0], &start); err != nil {
		return Interval{}, fmt.Errorf("start: %v", err)
	}

	end := bytes.TrimSpace(pair[1])
	if bytes.Equal(end, []byte("null")) || bytes.Equal(end, []byte("false")) {
		return Interval{Start: start}, nil
	}
	var stop int64
	if err := json.Unmarshal(end, &stop); err != nil {
		return Interval{}, fmt.Errorf("end: %v", err)
	}
	return Interval{Start: start, End: &stop}, nil
}

// ParseTimeLog decodes the serialized form accepted in save payloads. Unlike stored rows,
// an empty or null payload is rejected rather than read as an empty log.
func ParseTimeLog(serialized string) (TimeLog, error) {
	trimmed := bytes.TrimSpace([]byte(serialized))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: time log is empty", ErrMalformedInput)
	}
	var log TimeLog
	if err := log.UnmarshalJSON([]byte(serialized)); err != nil {
		return nil, err
	}
	return log, nil
}

func (l *TimeLog) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*l = TimeLog{}
		return nil
	case []byte:
		return l.UnmarshalJSON(value)
	case string:
		return l.UnmarshalJSON([]byte(value))
	default:
		return fmt.Errorf("%w: cannot scan %T into time log", ErrMalformedInput, src)
	}
}

func (l TimeLog) Value() (driver.Value, error) {
	data, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
