/*
Package validator implements validate(code, language): a pure, in-process
static check of one candidate artifact.

Stages run in a fixed order and every finding is accumulated:

 1. Placeholder scan. Every banned phrase of the policy found on a line is a
    Fatal placeholder-violation at that line.
 2. Structural check. The checker registered for the language runs its
    structural stage. A language with no checker yields a single Warning and
    no structural checks.
 3. Empty-body scan. The checker's body stage flags functions whose body is
    only a no-op.

The outcome passes when no finding is Fatal or Error. Nothing here executes
the candidate, touches the file system, or opens a connection, so the result
is a function of (code, language) for a fixed policy and registry. Cached
relies on that to memoize outcomes.
*/
package validator
