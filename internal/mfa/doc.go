// Package mfa ties the building blocks into a material flow system: named
// processes, flows between them, stocks attached to them, and the mass
// balance over the whole network.
package mfa
