package schema

import "time"

// StoreStatus represents the status of the contributor store.
type StoreStatus struct {
	Backend    string         `json:"backend"`
	Connected  bool           `json:"connected"`
	Snapshots  int            `json:"snapshots"`
	Authors    int            `json:"authors"`
	LastIndex  time.Time      `json:"last_index"`
	Branches   []BranchStatus `json:"branches"`
	TableSizes map[string]int `json:"table_sizes"`
}

// BranchStatus summarizes one indexed (repo, branch) pair.
type BranchStatus struct {
	Repo      string    `json:"repo"`
	Branch    string    `json:"branch"`
	Authors   int       `json:"authors"`
	IndexedAt time.Time `json:"indexed_at"`
}
