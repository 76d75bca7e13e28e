package resolve

// State of module extraction in the cache.
// ENUM(pending, done)
type State int
