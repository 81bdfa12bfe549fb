package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several deployments or test runs share one Redis
// database.
//
// Example usage:
//
//	// Staging and production in the same database
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "deskgrid:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DashboardKey generates a prefixed dashboard key.
func (k *ScopedKeyer) DashboardKey(profile string) string {
	return k.prefix + k.inner.DashboardKey(profile)
}

// BackupKey generates a prefixed backup key.
func (k *ScopedKeyer) BackupKey(profile string) string {
	return k.prefix + k.inner.BackupKey(profile)
}
