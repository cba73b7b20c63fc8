package entity

// Kind names one entity category. IDs are unique only within a kind.
type Kind string

// Library (type catalog) kinds.
const (
	KindWireType      Kind = "wire_type"
	KindCableType     Kind = "cable_type"
	KindTermCableType Kind = "term_cable_type"
	KindConnectorType Kind = "connector_type"
	KindEquipmentType Kind = "equipment_type"
	KindLocationType  Kind = "location_type"
	KindPathwayType   Kind = "pathway_type"
)

// Project (instance) kinds.
const (
	KindLocation  Kind = "location"
	KindPathway   Kind = "pathway"
	KindEquipment Kind = "equipment"
	KindWireCable Kind = "wire_cable"
)

// LibraryKinds lists the catalog kinds in build order.
var LibraryKinds = []Kind{
	KindWireType,
	KindCableType,
	KindTermCableType,
	KindConnectorType,
	KindEquipmentType,
	KindLocationType,
	KindPathwayType,
}

// ProjectKinds lists the instance kinds in build order.
var ProjectKinds = []Kind{
	KindLocation,
	KindPathway,
	KindEquipment,
	KindWireCable,
}

var kindLabels = map[Kind]string{
	KindWireType:      "WireType",
	KindCableType:     "CableType",
	KindTermCableType: "TermCableType",
	KindConnectorType: "ConnectorType",
	KindEquipmentType: "EquipmentType",
	KindLocationType:  "LocationType",
	KindPathwayType:   "PathwayType",
	KindLocation:      "Location",
	KindPathway:       "Pathway",
	KindEquipment:     "Equipment",
	KindWireCable:     "WireCable",
}

// String returns the human-readable kind name used in diagnostics, e.g. "WireType".
func (k Kind) String() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// IsLibrary reports whether k is one of the catalog kinds.
func (k Kind) IsLibrary() bool {
	for _, lk := range LibraryKinds {
		if lk == k {
			return true
		}
	}
	return false
}

// IsProject reports whether k is one of the instance kinds.
func (k Kind) IsProject() bool {
	for _, pk := range ProjectKinds {
		if pk == k {
			return true
		}
	}
	return false
}

// ParseKind accepts either the file key ("wire_type") or the label ("WireType").
func ParseKind(s string) (Kind, bool) {
	for k, label := range kindLabels {
		if string(k) == s || label == s {
			return k, true
		}
	}
	return "", false
}
