/*
Package builder turns a scheduled unit into a generation request.

It is the bridge between the dependency graph and the generation
collaborators. For each unit the orchestrator wants to generate, the builder:

 1. Collects the pruned context: one entry per direct dependency, read from
    the interface index when the dependency was already processed, from its
    declared interface otherwise. Dependencies of dependencies are never
    looked at.
 2. Renders the generation prompt: unit description, public interface, test
    plan, dependency context, and the policy's instruction suffix.

It also renders repair prompts from a failing candidate and its validation
outcome.

Builders do no I/O. The same unit, graph state, and policy always produce the
same prompt, byte for byte.
*/
package builder
