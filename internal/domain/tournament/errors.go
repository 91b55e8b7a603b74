package tournament

import "errors"

// ErrIdentityConflict signals that a computed tournament_id collided with an
// existing row whose natural key does not match (or two batch rows raced on
// the storage unique constraints). The batch is rolled back; merging into
// the wrong record silently is never acceptable.
var ErrIdentityConflict = errors.New("tournament identity conflict")
