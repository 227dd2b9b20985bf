package model

import "time"

// EquipmentType is the closed set of equipment categories.
type EquipmentType string

const (
	TypeMachine EquipmentType = "Machine"
	TypeVessel  EquipmentType = "Vessel"
	TypeTank    EquipmentType = "Tank"
	TypeMixer   EquipmentType = "Mixer"
)

// Valid reports whether t is a member of the enumeration.
func (t EquipmentType) Valid() bool {
	switch t {
	case TypeMachine, TypeVessel, TypeTank, TypeMixer:
		return true
	}
	return false
}

// EquipmentStatus is the closed set of operational states.
type EquipmentStatus string

const (
	StatusActive           EquipmentStatus = "Active"
	StatusInactive         EquipmentStatus = "Inactive"
	StatusUnderMaintenance EquipmentStatus = "Under Maintenance"
)

// Valid reports whether s is a member of the enumeration.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusUnderMaintenance:
		return true
	}
	return false
}

// Equipment represents a single tracked piece of equipment.
type Equipment struct {
	ID     int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string          `gorm:"size:256;not null" json:"name"`
	Type   EquipmentType   `gorm:"size:32;not null" json:"type"`
	Status EquipmentStatus `gorm:"size:32;not null" json:"status"`
	// Stored as a fixed-width YYYY-MM-DD string; lexicographic order
	// matches chronological order.
	LastCleanedDate string    `gorm:"size:10;not null" json:"lastCleanedDate"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}
