package ledger

import "sync"

// tenantLocks hands out one mutex per tenant so appends to a single chain
// are strictly serialized while appends to different chains run in
// parallel. Locks are never evicted; the table is bounded by the number of
// tenants seen by this process.
type tenantLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTenantLocks() *tenantLocks {
	return &tenantLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the tenant's mutex and returns the matching unlock func.
func (t *tenantLocks) Lock(tenantID string) func() {
	t.mu.Lock()
	l, ok := t.locks[tenantID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[tenantID] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
