/*
Package unitid provides the identifier type for work units in a plan.

An identifier is a dot-separated sequence of segments, e.g. `core.models` or
`api_v2.handlers`. Each segment starts with a letter, digit, or underscore
and may continue with letters, digits, underscores, or hyphens.

Identifiers order lexicographically by their canonical string. That order is
the tie-break the dependency graph uses between units that become ready at
the same time, so it must never depend on map iteration or insertion order.
*/
package unitid
