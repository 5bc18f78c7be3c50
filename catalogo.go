// Package catalogo provides a local, CLI-based browser for the SIGA goods and
// services catalog. It ingests the catalog CSV export once into an embedded
// store and serves paginated, filtered queries against it on the device.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, csv/, fsm/).
package catalogo
