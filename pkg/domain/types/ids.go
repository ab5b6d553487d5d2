package types

import "github.com/google/uuid"

// OrgID represents a unique identifier for an organization
type OrgID string

// NewOrgID generates a new UUID v4 OrgID
func NewOrgID() OrgID {
	return OrgID(uuid.New().String())
}

// String returns the string representation of OrgID
func (o OrgID) String() string {
	return string(o)
}

// VendorID represents a unique identifier for a vendor
type VendorID string

// NewVendorID generates a new UUID v4 VendorID
func NewVendorID() VendorID {
	return VendorID(uuid.New().String())
}

// String returns the string representation of VendorID
func (v VendorID) String() string {
	return string(v)
}

// ProcessID represents a unique identifier for a business process
type ProcessID string

// NewProcessID generates a new UUID v4 ProcessID
func NewProcessID() ProcessID {
	return ProcessID(uuid.New().String())
}

// String returns the string representation of ProcessID
func (p ProcessID) String() string {
	return string(p)
}

// SimulationID represents a unique identifier for a simulation
type SimulationID string

// NewSimulationID generates a new UUID v4 SimulationID
func NewSimulationID() SimulationID {
	return SimulationID(uuid.New().String())
}

// String returns the string representation of SimulationID
func (s SimulationID) String() string {
	return string(s)
}
