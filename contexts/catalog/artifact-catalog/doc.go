// Package artifactcatalog contains the arcana artifact catalog: artifacts,
// the wizards who own them, and the ownership transfers between them.
//
// Domain and application code stay decoupled from runtime concerns through
// ports; bootstrap composes the module against Postgres or the in-memory
// store.
package artifactcatalog
