package component

// CollectionTracker counts pickups collected by its owner.
type CollectionTracker struct {
	Collected int
	Total     int
}

var CollectionTrackerComponent = NewComponent[CollectionTracker]("collection_tracker")
