// Package richtext renders Portable Text style documents into HTML fragments.
//
// A Document is a list of nodes. Block nodes carry spans and mark
// definitions; any other node type is an embedded object handed to the type
// serializer registered under its _type. Serializers are plain functions so a
// site can override a handful of types or marks and fall back to the defaults
// for everything else.
package richtext
