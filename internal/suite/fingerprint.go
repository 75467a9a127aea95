package suite

// Fingerprint describes a suite-definition shape the adapter can
// recognize and run. It is a stateless value descriptor; equality
// comparison is sufficient for discovery matching.
type Fingerprint struct {
	// IsModule reports whether the entry point is a module-level
	// (static) value rather than a per-instance constructor.
	IsModule bool

	// Marker names the capability a definition must carry to be
	// recognized by this fingerprint.
	Marker string
}

// runnableFingerprint is the single shape this adapter supports: a
// module-level registry entry carrying the runnable-suite capability.
var runnableFingerprint = Fingerprint{
	IsModule: true,
	Marker:   "attest.Suite",
}

// RunnableFingerprint returns the one fingerprint this adapter supports.
func RunnableFingerprint() Fingerprint { return runnableFingerprint }

// Fingerprints returns the fixed collection of fingerprints understood
// by this adapter. The query is pure: repeated calls return equal
// collections and the operation cannot fail.
func Fingerprints() []Fingerprint {
	return []Fingerprint{runnableFingerprint}
}
