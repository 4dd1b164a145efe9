// File: nodetype.go
// Role: Closed node classification (BaseType + optional custom subtype) and
//       the pure predicates the traversal layer branches on.
// Determinism:
//   - NodeType is a comparable value; equality is Base and Custom equality.
//   - Predicates are table lookups, no hidden state.

package core

import "fmt"

// BaseType is the closed set of node kinds.
type BaseType uint8

// Base types. The ordinal takes part in Node.Seed, so the order is frozen.
const (
	// Custom is an endpoint placed by the scattering stage, named by NodeType.Custom.
	Custom BaseType = iota
	// Section is an intermediate node of a connection with exactly two edges.
	Section
	// Border marks where an edge crosses between tiles.
	Border
	// Perimeter marks where a connection enters or leaves the area of its parent node.
	Perimeter
	// Crossing is a junction where three or more connections meet.
	Crossing
	// CrossingPerimeter sits right before a crossing, on the width of the other connection.
	CrossingPerimeter
	// Lake is the centre of a lake.
	Lake
	// RiverDryUp marks where a river became too small and ended.
	RiverDryUp
	// Sea marks where a river ends in the sea.
	Sea
	LakeInnerExit
	LakeOuterExit
	SeaInnerExit
	SeaOuterExit
	// RiverSection is an intermediate node of a river.
	RiverSection
	RiverBorder
	RiverPerimeter
	RiverCrossing
	RiverCrossingPerimeter
	SectionLakeBridgeSource
	SectionLakeBridgeDestination
	SectionRiverBridgeSource
	SectionRiverBridgeDestination
	SectionRiverFordSource
	SectionRiverFordDestination
	// Endpoint is a terminal node of a network (a spring, a town).
	Endpoint

	numBaseTypes
)

var baseTypeNames = [numBaseTypes]string{
	Custom:                        "Custom",
	Section:                       "Section",
	Border:                        "Border",
	Perimeter:                     "Perimeter",
	Crossing:                      "Crossing",
	CrossingPerimeter:             "CrossingPerimeter",
	Lake:                          "Lake",
	RiverDryUp:                    "RiverDryUp",
	Sea:                           "Sea",
	LakeInnerExit:                 "LakeInnerExit",
	LakeOuterExit:                 "LakeOuterExit",
	SeaInnerExit:                  "SeaInnerExit",
	SeaOuterExit:                  "SeaOuterExit",
	RiverSection:                  "RiverSection",
	RiverBorder:                   "RiverBorder",
	RiverPerimeter:                "RiverPerimeter",
	RiverCrossing:                 "RiverCrossing",
	RiverCrossingPerimeter:        "RiverCrossingPerimeter",
	SectionLakeBridgeSource:       "SectionLakeBridgeSource",
	SectionLakeBridgeDestination:  "SectionLakeBridgeDestination",
	SectionRiverBridgeSource:      "SectionRiverBridgeSource",
	SectionRiverBridgeDestination: "SectionRiverBridgeDestination",
	SectionRiverFordSource:        "SectionRiverFordSource",
	SectionRiverFordDestination:   "SectionRiverFordDestination",
	Endpoint:                      "Endpoint",
}

// String returns the enum name.
func (b BaseType) String() string {
	if b >= numBaseTypes {
		return fmt.Sprintf("BaseType(%d)", uint8(b))
	}

	return baseTypeNames[b]
}

// ParseBaseType resolves a name produced by BaseType.String.
func ParseBaseType(s string) (BaseType, error) {
	for i, name := range baseTypeNames {
		if name == s {
			return BaseType(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown node type %q", ErrInvalidArgument, s)
}

// NodeType classifies a node. Custom names the subtype of Custom nodes and is
// empty for every other base type.
type NodeType struct {
	Base   BaseType
	Custom string
}

// TypeOf returns the NodeType for a non-custom base type.
func TypeOf(b BaseType) NodeType { return NodeType{Base: b} }

// CustomType returns the Custom variant with the given subtype name.
func CustomType(name string) NodeType { return NodeType{Base: Custom, Custom: name} }

// String renders "Base" or "Base name".
func (t NodeType) String() string {
	if t.Custom == "" {
		return t.Base.String()
	}

	return t.Base.String() + " " + t.Custom
}

// Less orders types by base then subtype.
func (t NodeType) Less(o NodeType) bool {
	if t.Base != o.Base {
		return t.Base < o.Base
	}

	return t.Custom < o.Custom
}

type typeSet uint32

func setOf(bs ...BaseType) typeSet {
	var s typeSet
	for _, b := range bs {
		s |= 1 << b
	}

	return s
}

func (s typeSet) has(b BaseType) bool { return s&(1<<b) != 0 }

var (
	endpointTypes = setOf(Endpoint, Custom, Lake, Sea, RiverDryUp,
		SectionLakeBridgeSource, SectionLakeBridgeDestination,
		SectionRiverBridgeSource, SectionRiverBridgeDestination,
		SectionRiverFordSource, SectionRiverFordDestination)
	crossingTypes          = setOf(Crossing, RiverCrossing)
	perimeterTypes         = setOf(Perimeter, RiverPerimeter)
	crossingPerimeterTypes = setOf(CrossingPerimeter, RiverCrossingPerimeter)
	sectionTypes           = setOf(Section, RiverSection, LakeInnerExit, LakeOuterExit, SeaInnerExit, SeaOuterExit)
	borderTypes            = setOf(Border, RiverBorder)
	waterCrossingTypes     = setOf(SectionLakeBridgeSource, SectionLakeBridgeDestination,
		SectionRiverBridgeSource, SectionRiverBridgeDestination,
		SectionRiverFordSource, SectionRiverFordDestination)
	riverTypes = setOf(RiverBorder, RiverCrossing, RiverPerimeter, RiverSection,
		RiverCrossingPerimeter, RiverDryUp, LakeInnerExit, LakeOuterExit, SeaInnerExit, SeaOuterExit)
)

// IsEndpoint reports terminal node types.
func (t NodeType) IsEndpoint() bool { return endpointTypes.has(t.Base) }

// IsCrossing reports junction node types.
func (t NodeType) IsCrossing() bool { return crossingTypes.has(t.Base) }

// IsJunction reports IsEndpoint or IsCrossing: the nodes a hop starts and ends at.
func (t NodeType) IsJunction() bool { return t.IsEndpoint() || t.IsCrossing() }

// IsPerimeter reports ring nodes that belong to a parent junction.
func (t NodeType) IsPerimeter() bool { return perimeterTypes.has(t.Base) }

func (t NodeType) IsCrossingPerimeter() bool { return crossingPerimeterTypes.has(t.Base) }

func (t NodeType) IsSection() bool { return sectionTypes.has(t.Base) }

func (t NodeType) IsBorder() bool { return borderTypes.has(t.Base) }

func (t NodeType) IsWaterCrossing() bool { return waterCrossingTypes.has(t.Base) }

func (t NodeType) IsRiver() bool { return riverTypes.has(t.Base) }
