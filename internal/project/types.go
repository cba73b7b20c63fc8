// Package project builds the instance graph: locations, pathways, equipment
// and deployed wires or cables, each pointing at its library type.
package project

import (
	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/library"
)

type Location struct {
	entity.Header

	Type             *library.LocationType
	Identifier       string
	Description      string
	PhysicalLocation string
}

func (*Location) EntityKind() entity.Kind { return entity.KindLocation }

type Pathway struct {
	entity.Header

	Type        *library.PathwayType
	Identifier  string
	Description string
	Length      *float64
}

func (*Pathway) EntityKind() entity.Kind { return entity.KindPathway }

type Equipment struct {
	entity.Header

	Type        *library.EquipmentType
	Identifier  string
	Description string
	// Location may be a placeholder until the location's own record is read.
	Location    *Location
	SubLocation string
}

func (*Equipment) EntityKind() entity.Kind { return entity.KindEquipment }

// WireCable is a deployed wire, cable or terminated cable.
type WireCable struct {
	entity.Header

	Type        library.Deployable
	Identifier  string
	Description string
	Length      *float64
	Pathway     *Pathway
}

func (*WireCable) EntityKind() entity.Kind { return entity.KindWireCable }
