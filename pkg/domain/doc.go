// Package domain contains the core domain entities of the service. These
// types represent business concepts (users) and are intentionally free of
// transport and persistence concerns so they can be shared across packages.
package domain
