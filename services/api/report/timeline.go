package report

import (
	"sort"
	"time"
)

// Timeline holds every store's polling observations in ascending timestamp
// order. It is read-only after construction, so concurrent report runs can
// share one instance.
type Timeline struct {
	byStore  map[string][]Observation
	storeIDs []string
	maxTS    time.Time
	hasObs   bool
}

// NewTimeline groups observations by store and sorts each store's samples
// chronologically. Equal timestamps keep their input order.
func NewTimeline(observations []Observation) *Timeline {
	byStore := make(map[string][]Observation)
	tl := &Timeline{byStore: byStore}

	for _, obs := range observations {
		byStore[obs.StoreID] = append(byStore[obs.StoreID], obs)
		if !tl.hasObs || obs.Timestamp.After(tl.maxTS) {
			tl.maxTS = obs.Timestamp
			tl.hasObs = true
		}
	}

	for storeID, samples := range byStore {
		sort.SliceStable(samples, func(i, j int) bool {
			return samples[i].Timestamp.Before(samples[j].Timestamp)
		})
		tl.storeIDs = append(tl.storeIDs, storeID)
	}
	sort.Strings(tl.storeIDs)

	return tl
}

// StoreIDs returns the distinct store identifiers, sorted.
func (t *Timeline) StoreIDs() []string {
	return t.storeIDs
}

// Between returns the store's observations with from <= timestamp <= to.
func (t *Timeline) Between(storeID string, from, to time.Time) []Observation {
	samples := t.byStore[storeID]
	lo := sort.Search(len(samples), func(i int) bool {
		return !samples[i].Timestamp.Before(from)
	})
	hi := sort.Search(len(samples), func(i int) bool {
		return samples[i].Timestamp.After(to)
	})
	if lo >= hi {
		return nil
	}
	return samples[lo:hi]
}

// MaxTimestamp returns the latest observation timestamp in the dataset and
// whether any observation exists at all.
func (t *Timeline) MaxTimestamp() (time.Time, bool) {
	return t.maxTS, t.hasObs
}
