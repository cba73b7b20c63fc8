// Package records holds the raw, file-level shape of cdm data: one FileBag
// per decoded YAML file, each carrying an optional table per kind that maps
// IDs to records whose cross references are still plain strings.
package records

// FileBag is one source file's decoded tables plus its origin path.
// A nil map means the file has no table for that kind.
type FileBag struct {
	Path string `yaml:"-" json:"path"`

	WireTypes      map[string]WireType      `yaml:"wire_type,omitempty" json:"wire_type,omitempty"`
	CableTypes     map[string]CableType     `yaml:"cable_type,omitempty" json:"cable_type,omitempty"`
	TermCableTypes map[string]TermCableType `yaml:"term_cable_type,omitempty" json:"term_cable_type,omitempty"`
	ConnectorTypes map[string]ConnectorType `yaml:"connector_type,omitempty" json:"connector_type,omitempty"`
	EquipmentTypes map[string]EquipmentType `yaml:"equipment_type,omitempty" json:"equipment_type,omitempty"`
	LocationTypes  map[string]LocationType  `yaml:"location_type,omitempty" json:"location_type,omitempty"`
	PathwayTypes   map[string]PathwayType   `yaml:"pathway_type,omitempty" json:"pathway_type,omitempty"`

	Locations  map[string]Location  `yaml:"location,omitempty" json:"location,omitempty"`
	Pathways   map[string]Pathway   `yaml:"pathway,omitempty" json:"pathway,omitempty"`
	Equipment  map[string]Equipment `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	WireCables map[string]WireCable `yaml:"wire_cable,omitempty" json:"wire_cable,omitempty"`
}

// Records returns the number of records across all tables.
func (b *FileBag) Records() int {
	return len(b.WireTypes) + len(b.CableTypes) + len(b.TermCableTypes) +
		len(b.ConnectorTypes) + len(b.EquipmentTypes) + len(b.LocationTypes) +
		len(b.PathwayTypes) + len(b.Locations) + len(b.Pathways) +
		len(b.Equipment) + len(b.WireCables)
}

// Catalog carries the descriptive attributes shared by every library record.
type Catalog struct {
	Manufacturer           string `yaml:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Model                  string `yaml:"model,omitempty" json:"model,omitempty"`
	PartNumber             string `yaml:"part_number,omitempty" json:"part_number,omitempty"`
	ManufacturerPartNumber string `yaml:"manufacturer_part_number,omitempty" json:"manufacturer_part_number,omitempty"`
	SupplierPartNumber     string `yaml:"supplier_part_number,omitempty" json:"supplier_part_number,omitempty"`
	Description            string `yaml:"description,omitempty" json:"description,omitempty"`
}

type WireType struct {
	Catalog                 `yaml:",inline"`
	Conductor               string   `yaml:"conductor,omitempty" json:"conductor,omitempty"`
	Stranded                *bool    `yaml:"stranded,omitempty" json:"stranded,omitempty"`
	NumStrands              *uint32  `yaml:"num_strands,omitempty" json:"num_strands,omitempty"`
	StrandCrossSection      *float64 `yaml:"strand_cross_sect_area,omitempty" json:"strand_cross_sect_area,omitempty"`
	CrossSection            *float64 `yaml:"conductor_cross_sect_area,omitempty" json:"conductor_cross_sect_area,omitempty"`
	ConductorDiameter       *float64 `yaml:"conductor_diameter,omitempty" json:"conductor_diameter,omitempty"`
	OverallDiameter         *float64 `yaml:"overall_diameter,omitempty" json:"overall_diameter,omitempty"`
	Insulated               *bool    `yaml:"insulated,omitempty" json:"insulated,omitempty"`
	InsulationMaterial      string   `yaml:"insulation_material,omitempty" json:"insulation_material,omitempty"`
	InsulationVoltageRating string   `yaml:"insulation_volt_rating,omitempty" json:"insulation_volt_rating,omitempty"`
	InsulationTempRating    string   `yaml:"insulation_temp_rating,omitempty" json:"insulation_temp_rating,omitempty"`
	InsulationThickness     *float64 `yaml:"insulation_thickness,omitempty" json:"insulation_thickness,omitempty"`
	Color                   string   `yaml:"color,omitempty" json:"color,omitempty"`
	SecondaryColor          string   `yaml:"secondary_color,omitempty" json:"secondary_color,omitempty"`
}

// CableCore names the wire or cable type filling one core of a cable.
type CableCore struct {
	Type   string `yaml:"type" json:"type"`
	IsWire bool   `yaml:"is_wire" json:"is_wire"`
}

type CableLayer struct {
	LayerType string   `yaml:"layer_type" json:"layer_type"`
	Material  string   `yaml:"material,omitempty" json:"material,omitempty"`
	Thickness *float64 `yaml:"thickness,omitempty" json:"thickness,omitempty"`
	Rating    string   `yaml:"rating,omitempty" json:"rating,omitempty"`
	Color     string   `yaml:"color,omitempty" json:"color,omitempty"`
}

type CableType struct {
	Catalog      `yaml:",inline"`
	CrossSection string               `yaml:"cross_section,omitempty" json:"cross_section,omitempty"`
	Height       *float64             `yaml:"height,omitempty" json:"height,omitempty"`
	Width        *float64             `yaml:"width,omitempty" json:"width,omitempty"`
	Diameter     *float64             `yaml:"diameter,omitempty" json:"diameter,omitempty"`
	Cores        map[string]CableCore `yaml:"cable_cores,omitempty" json:"cable_cores,omitempty"`
	Layers       []CableLayer         `yaml:"insulation_layers,omitempty" json:"insulation_layers,omitempty"`
}

// Termination is one connector fitted to an end of a terminated cable.
type Termination struct {
	Core      string            `yaml:"core,omitempty" json:"core,omitempty"`
	Connector string            `yaml:"connector" json:"connector"`
	Pinout    map[string]string `yaml:"pinout,omitempty" json:"pinout,omitempty"`
}

// TermCableType must name exactly one of Wire or Cable.
type TermCableType struct {
	Catalog       `yaml:",inline"`
	Wire          string        `yaml:"wire,omitempty" json:"wire,omitempty"`
	Cable         string        `yaml:"cable,omitempty" json:"cable,omitempty"`
	NominalLength *float64      `yaml:"nominal_length,omitempty" json:"nominal_length,omitempty"`
	ActualLength  *float64      `yaml:"actual_length,omitempty" json:"actual_length,omitempty"`
	End1          []Termination `yaml:"end1,omitempty" json:"end1,omitempty"`
	End2          []Termination `yaml:"end2,omitempty" json:"end2,omitempty"`
}

type ConnectorPin struct {
	ID         string `yaml:"id,omitempty" json:"id,omitempty"`
	Label      string `yaml:"label,omitempty" json:"label,omitempty"`
	SignalType string `yaml:"signal_type,omitempty" json:"signal_type,omitempty"`
	Color      string `yaml:"color,omitempty" json:"color,omitempty"`
}

type ConnectorType struct {
	Catalog     `yaml:",inline"`
	MountType   string         `yaml:"mount_type,omitempty" json:"mount_type,omitempty"`
	PanelCutout string         `yaml:"panel_cutout,omitempty" json:"panel_cutout,omitempty"`
	Gender      string         `yaml:"gender,omitempty" json:"gender,omitempty"`
	Height      *float64       `yaml:"height,omitempty" json:"height,omitempty"`
	Width       *float64       `yaml:"width,omitempty" json:"width,omitempty"`
	Depth       *float64       `yaml:"depth,omitempty" json:"depth,omitempty"`
	Diameter    *float64       `yaml:"diameter,omitempty" json:"diameter,omitempty"`
	Pins        []ConnectorPin `yaml:"pins,omitempty" json:"pins,omitempty"`
}

type EquipConnector struct {
	Connector string   `yaml:"connector" json:"connector"`
	Direction string   `yaml:"direction,omitempty" json:"direction,omitempty"`
	X         *float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y         *float64 `yaml:"y,omitempty" json:"y,omitempty"`
}

type EquipFace struct {
	Connectors []EquipConnector `yaml:"connectors,omitempty" json:"connectors,omitempty"`
}

type EquipmentType struct {
	Catalog  `yaml:",inline"`
	Mount    string               `yaml:"mount,omitempty" json:"mount,omitempty"`
	Category string               `yaml:"equip_type,omitempty" json:"equip_type,omitempty"`
	Faces    map[string]EquipFace `yaml:"faces,omitempty" json:"faces,omitempty"`
}

type LocationType struct {
	Catalog      `yaml:",inline"`
	Material     string   `yaml:"material,omitempty" json:"material,omitempty"`
	Height       *float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Width        *float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Depth        *float64 `yaml:"depth,omitempty" json:"depth,omitempty"`
	UsableWidth  *float64 `yaml:"usable_width,omitempty" json:"usable_width,omitempty"`
	UsableHeight *float64 `yaml:"usable_height,omitempty" json:"usable_height,omitempty"`
	UsableDepth  *float64 `yaml:"usable_depth,omitempty" json:"usable_depth,omitempty"`
}

type PathwayType struct {
	Catalog          `yaml:",inline"`
	Material         string   `yaml:"material,omitempty" json:"material,omitempty"`
	Size             string   `yaml:"size,omitempty" json:"size,omitempty"`
	TrayType         string   `yaml:"tray_type,omitempty" json:"tray_type,omitempty"`
	Height           *float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Width            *float64 `yaml:"width,omitempty" json:"width,omitempty"`
	CrossSectionArea *float64 `yaml:"cross_sect_area,omitempty" json:"cross_sect_area,omitempty"`
}

type Location struct {
	LocationType     string `yaml:"location_type" json:"location_type"`
	Identifier       string `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Description      string `yaml:"description,omitempty" json:"description,omitempty"`
	PhysicalLocation string `yaml:"physical_location,omitempty" json:"physical_location,omitempty"`
}

type Pathway struct {
	PathwayType string   `yaml:"pathway_type" json:"pathway_type"`
	Identifier  string   `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Length      *float64 `yaml:"length,omitempty" json:"length,omitempty"`
}

type Equipment struct {
	EquipmentType string `yaml:"equipment_type" json:"equipment_type"`
	Identifier    string `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
	Location      string `yaml:"location,omitempty" json:"location,omitempty"`
	SubLocation   string `yaml:"sub_location,omitempty" json:"sub_location,omitempty"`
}

// WireCable must name exactly one of Wire, Cable or TermCable.
type WireCable struct {
	Wire        string   `yaml:"wire,omitempty" json:"wire,omitempty"`
	Cable       string   `yaml:"cable,omitempty" json:"cable,omitempty"`
	TermCable   string   `yaml:"term_cable,omitempty" json:"term_cable,omitempty"`
	Identifier  string   `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Length      *float64 `yaml:"length,omitempty" json:"length,omitempty"`
	Pathway     string   `yaml:"pathway,omitempty" json:"pathway,omitempty"`
}
