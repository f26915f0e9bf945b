// Package acquisition orchestrates a release run: selecting the due pull-list
// entries, resolving each through the search backend, queueing downloads, and
// tallying the outcome. Items are processed sequentially with pacing between
// them so the backend is never hammered, and one bad item never aborts the
// rest of the run.
package acquisition
