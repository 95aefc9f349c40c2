package service

import "sync"

// companyLocks hands out one mutex per company id so the
// insert-review / recompute / write-summary sequence is serialized per
// company while submissions for different companies never contend.
// Entries are kept for the process lifetime; growth is bounded by the
// number of companies ever reviewed.
type companyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCompanyLocks() *companyLocks {
	return &companyLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *companyLocks) get(companyID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[companyID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[companyID] = m
	}
	return m
}
