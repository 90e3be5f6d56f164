// Package progress implements the progress orchestrator: the single write
// path through which every learner action flows. Each action runs as one
// database transaction that bootstraps the learner's day (streak, freezes,
// milestone and first-session bonuses), applies the spaced-repetition
// scheduler to the word, bumps the daily counters, awards XP and appends to
// the XP ledger, always in the same write order. After a successful commit
// the orchestrator emits sync events for the background mirror.
package progress
