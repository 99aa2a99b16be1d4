package interfaces

// VoteStatusStoreInterface persists whether this device has voted.
// Nothing ever writes false.
type VoteStatusStoreInterface interface {
	Load() (bool, error)
	MarkVoted() error
	Close() error
}
