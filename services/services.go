// Package services holds the business rules between the HTTP handlers and
// the store: validation, ownership authorization, the order state machine,
// and the rating aggregate.
package services

import "time"

// timeNow is swapped in tests that pin timestamps.
var timeNow = time.Now
