// Package library builds the type catalog: the seven reusable kinds that
// project instances are deployed from.
package library

import (
	"github.com/maraichr/cdm/internal/entity"
)

// Catalog holds the descriptive attributes every library kind carries.
type Catalog struct {
	Manufacturer           string
	Model                  string
	PartNumber             string
	ManufacturerPartNumber string
	SupplierPartNumber     string
	Description            string
}

// Conductor is the content of a cable core or a terminated cable: exactly one
// of *WireType or *CableType.
type Conductor interface {
	entity.Entity
	conductor()
}

// Deployable is a library kind a WireCable instance can be deployed from:
// *WireType, *CableType or *TermCableType.
type Deployable interface {
	entity.Entity
	deployable()
}

type WireType struct {
	entity.Header
	Catalog

	Conductor               string
	Stranded                *bool
	NumStrands              *uint32
	StrandCrossSection      *float64
	CrossSection            *float64
	ConductorDiameter       *float64
	OverallDiameter         *float64
	Insulated               *bool
	InsulationMaterial      string
	InsulationVoltageRating string
	InsulationTempRating    string
	InsulationThickness     *float64
	Color                   string
	SecondaryColor          string
}

func (*WireType) EntityKind() entity.Kind { return entity.KindWireType }
func (*WireType) conductor()              {}
func (*WireType) deployable()             {}

// CrossSection is the outline of a cable jacket.
type CrossSection string

const (
	CrossSectionCircular CrossSection = "circular"
	CrossSectionOval     CrossSection = "oval"
	CrossSectionSiamese  CrossSection = "siamese"
)

// LayerType is the role of one layer wrapped around a cable's cores.
type LayerType string

const (
	LayerInsulation    LayerType = "insulation"
	LayerSemiconductor LayerType = "semiconductor"
	LayerShield        LayerType = "shield"
)

type CableLayer struct {
	Type      LayerType
	Material  string
	Thickness *float64
	Rating    string
	Color     string
}

type CableType struct {
	entity.Header
	Catalog

	CrossSection CrossSection
	Height       *float64
	Width        *float64
	Diameter     *float64
	// Cores maps core names to their content; a core may be another cable.
	Cores  map[string]Conductor
	Layers []CableLayer
}

func (*CableType) EntityKind() entity.Kind { return entity.KindCableType }
func (*CableType) conductor()              {}
func (*CableType) deployable()             {}

// Termination is a connector fitted to one end of a terminated cable.
type Termination struct {
	Core      string
	Connector *ConnectorType
	// Pinout maps connector pin IDs to core names.
	Pinout map[string]string
}

type TermCableType struct {
	entity.Header
	Catalog

	Conductor     Conductor
	NominalLength *float64
	ActualLength  *float64
	End1          []Termination
	End2          []Termination
}

func (*TermCableType) EntityKind() entity.Kind { return entity.KindTermCableType }
func (*TermCableType) deployable()             {}

type ConnectorPin struct {
	ID         string
	Label      string
	SignalType string
	Color      string
}

type ConnectorType struct {
	entity.Header
	Catalog

	MountType   string
	PanelCutout string
	Gender      string
	Height      *float64
	Width       *float64
	Depth       *float64
	Diameter    *float64
	Pins        []ConnectorPin
}

func (*ConnectorType) EntityKind() entity.Kind { return entity.KindConnectorType }

type EquipConnector struct {
	Connector *ConnectorType
	Direction string
	X         *float64
	Y         *float64
}

type EquipFace struct {
	Connectors []EquipConnector
}

type EquipmentType struct {
	entity.Header
	Catalog

	Mount    string
	Category string
	Faces    map[string]EquipFace
}

func (*EquipmentType) EntityKind() entity.Kind { return entity.KindEquipmentType }

type LocationType struct {
	entity.Header
	Catalog

	Material     string
	Height       *float64
	Width        *float64
	Depth        *float64
	UsableWidth  *float64
	UsableHeight *float64
	UsableDepth  *float64
}

func (*LocationType) EntityKind() entity.Kind { return entity.KindLocationType }

type PathwayType struct {
	entity.Header
	Catalog

	Material         string
	Size             string
	TrayType         string
	Height           *float64
	Width            *float64
	CrossSectionArea *float64
}

func (*PathwayType) EntityKind() entity.Kind { return entity.KindPathwayType }

// ConductorRef renders a conductor as "wire:ID" or "cable:ID"; nil renders "".
func ConductorRef(c Conductor) string {
	switch v := c.(type) {
	case *WireType:
		return "wire:" + v.ID
	case *CableType:
		return "cable:" + v.ID
	default:
		return ""
	}
}

// DeployableRef renders a deployable type as "wire:ID", "cable:ID" or
// "term_cable:ID"; nil renders "".
func DeployableRef(d Deployable) string {
	if t, ok := d.(*TermCableType); ok {
		return "term_cable:" + t.ID
	}
	if c, ok := d.(Conductor); ok {
		return ConductorRef(c)
	}
	return ""
}
