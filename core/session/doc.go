// Package session orchestrates a complete abstract review: it provisions
// the agent roles on an [agents.Client], drives the orchestrator run,
// collects the raw conversation text and turns it into a structured
// [review.Record]. Agents are always cleaned up when the session ends,
// even when the run fails partway.
package session
