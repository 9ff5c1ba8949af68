// Package modules resolves page sections ("modules") to their components.
//
// Each section carries a _type discriminant. The Resolver looks the type up
// in a Registry of lazily loaded components and renders the section with the
// whole module as data. Unknown types render nothing.
package modules
