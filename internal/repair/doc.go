/*
Package repair implements the bounded validate/repair loop for one artifact.

The loop is a small state machine:

	Evaluating -> Success
	Evaluating -> Repairing -> Evaluating -> ... -> Success | Exhausted

Each pass validates the current candidate and appends a Record. A passing
candidate ends the loop immediately. A failing one is handed to the
Repairer, whose output becomes the next candidate. With a budget of N the
loop validates at most N+1 times and repairs at most N times, then fails
with a *RetriesExceededError.

History is part of the Result, never state kept on the Loop, so a Loop value
can be reused for any number of independent runs.

The Repairer is expected to be deterministic in (code, outcome). The loop
does not enforce this; a repairer that never converges simply exhausts the
budget.
*/
package repair
