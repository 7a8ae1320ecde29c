// Package menu triggers vertical audio cues for manual testing, one at a
// time, and provides a small terminal menu on top of the trigger.
package menu
