// Package fixture provides an in-memory checker over a hand-described type
// graph.
//
// Graphs are built with Go calls (New, Graph.Object, Type.Prop, ...) or
// loaded from YAML (LoadFile, Parse). A Graph may also carry small documents
// whose identifiers are bound to types, so the whole lookup path can run
// without a real compiler.
package fixture
