package layout

import "gioui.org/layout"

type Context = layout.Context
type Dimensions = layout.Dimensions
type Constraints = layout.Constraints
type Flex = layout.Flex
type Axis = layout.Axis
type FlexChild = layout.FlexChild
type Widget = layout.Widget
type Inset = layout.Inset
type List = layout.List
type ListElement = layout.ListElement
type Position = layout.Position
type Stack = layout.Stack

var UniformInset = layout.UniformInset
var Rigid = layout.Rigid
var Flexed = layout.Flexed
var Exact = layout.Exact
var Expanded = layout.Expanded
var Stacked = layout.Stacked
var NewContext = layout.NewContext

const (
	Horizontal Axis = layout.Horizontal
	Vertical   Axis = layout.Vertical
)
