package git

import "encoding/json"

// TrackingState says whether ahead/behind counts are known.
type TrackingState int

const (
	// TrackingNone means the branch has no upstream, or the query was skipped
	// because there is no remote or no branch.
	TrackingNone TrackingState = iota
	// TrackingUnknown means the ahead/behind query failed for a reason other
	// than a missing upstream. Reason holds git's diagnostic.
	TrackingUnknown
	// TrackingTracked means an upstream exists and Ahead/Behind are valid.
	TrackingTracked
)

// String returns the JSON name of the state.
func (s TrackingState) String() string {
	switch s {
	case TrackingTracked:
		return "tracked"
	case TrackingUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// MarshalText encodes the state by name.
func (s TrackingState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Tracking is the relationship between the current branch and its upstream.
// Ahead and Behind are meaningful only when State is TrackingTracked.
type Tracking struct {
	State  TrackingState
	Ahead  int
	Behind int
	Reason string
}

// Tracked returns a Tracking with valid counts.
func Tracked(ahead, behind int) Tracking {
	return Tracking{State: TrackingTracked, Ahead: ahead, Behind: behind}
}

// RepositoryStatus is a point-in-time snapshot of a notes repository.
// It is recomputed on every query and never cached.
//
// When IsRepository is false every other field is zero.
type RepositoryStatus struct {
	IsRepository  bool
	HasRemote     bool
	RemoteURL     string
	CurrentBranch string
	Tracking      Tracking
	ChangedCount  int
	Error         string
}

// HasUpstreamTracking reports whether ahead/behind counts are available.
func (s RepositoryStatus) HasUpstreamTracking() bool {
	return s.Tracking.State == TrackingTracked
}

// AheadCount returns commits ahead of upstream, or -1 without tracking.
func (s RepositoryStatus) AheadCount() int {
	if !s.HasUpstreamTracking() {
		return -1
	}
	return s.Tracking.Ahead
}

// BehindCount returns commits behind upstream, or -1 without tracking.
func (s RepositoryStatus) BehindCount() int {
	if !s.HasUpstreamTracking() {
		return -1
	}
	return s.Tracking.Behind
}

// InSync reports whether the branch is tracked and neither ahead nor behind.
func (s RepositoryStatus) InSync() bool {
	return s.HasUpstreamTracking() && s.Tracking.Ahead == 0 && s.Tracking.Behind == 0
}

// statusJSON is the wire shape consumed by existing front ends.
type statusJSON struct {
	IsRepository        bool          `json:"isRepository"`
	HasRemote           bool          `json:"hasRemote"`
	RemoteURL           *string       `json:"remoteUrl"`
	CurrentBranch       *string       `json:"currentBranch"`
	HasUpstreamTracking bool          `json:"hasUpstreamTracking"`
	AheadCount          int           `json:"aheadCount"`
	BehindCount         int           `json:"behindCount"`
	ChangedCount        int           `json:"changedCount"`
	Error               *string       `json:"error"`
	Tracking            TrackingState `json:"tracking"`
	TrackingReason      string        `json:"trackingReason,omitempty"`
}

// MarshalJSON encodes the snapshot with the legacy camelCase fields, absent
// strings as null and -1 counts without tracking.
func (s RepositoryStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusJSON{
		IsRepository:        s.IsRepository,
		HasRemote:           s.HasRemote,
		RemoteURL:           optional(s.RemoteURL),
		CurrentBranch:       optional(s.CurrentBranch),
		HasUpstreamTracking: s.HasUpstreamTracking(),
		AheadCount:          s.AheadCount(),
		BehindCount:         s.BehindCount(),
		ChangedCount:        s.ChangedCount,
		Error:               optional(s.Error),
		Tracking:            s.Tracking.State,
		TrackingReason:      s.Tracking.Reason,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
