// Package agents defines the provider-agnostic capability for invoking
// role-configured remote agents: create an agent from a [RoleConfig],
// create a conversation thread, post a message, run an agent over the
// thread, list the accumulated messages, and delete the agent again.
//
// The four review roles (input, reviewer, checklister, writer) plus the
// orchestrator are configuration variants — different prompt templates in
// a [RoleConfig] — not behavioural subtypes. Every call may fail with a
// transport or service error; [Client.Run] may additionally report a
// terminal failure status without returning an error, in which case the
// thread still holds whatever partial output the run produced.
//
// The openai subpackage implements [Client] over chat completions; the
// agentstest subpackage provides a scripted in-memory fake for tests.
package agents
