package domain

import "time"

// NewAttemptRecord creates a history entry for an open attempt with the
// common fields populated. The record defaults to success; WithError flips
// it to a failure.
func NewAttemptRecord(user *User, gate *Gate, now time.Time) *AttemptRecord {
	record := &AttemptRecord{
		UserID:    user.ID,
		Username:  user.Username,
		Timestamp: now.UTC(),
		Success:   true,
	}
	if gate != nil {
		record.GateID = gate.ID
		record.GateName = gate.Name
	}
	return record
}

// WithError marks the record failed and stores the rejection message
func (r *AttemptRecord) WithError(err error) *AttemptRecord {
	r.Success = false
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	return r
}

// WithCallSID stores the provider call identifier
func (r *AttemptRecord) WithCallSID(sid string) *AttemptRecord {
	r.CallSID = sid
	return r
}

// WithAutoOpened flags the record as produced by the proximity engine
func (r *AttemptRecord) WithAutoOpened(auto bool) *AttemptRecord {
	r.AutoOpened = auto
	return r
}
