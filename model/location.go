package model

import "github.com/reoring/avsc/jsonloc"

// CodeLocation is a span in a schema source document.
type CodeLocation struct {
	URI   string
	Start jsonloc.Position
	End   jsonloc.Position
}

// LocationOf spans a located JSON node.
func LocationOf(uri string, n *jsonloc.Node) CodeLocation {
	return CodeLocation{URI: uri, Start: n.Start, End: n.End}
}

// String renders "uri:line:col" (or "line:col" for anonymous sources).
func (l CodeLocation) String() string {
	if l.URI == "" {
		return l.Start.String()
	}
	return l.URI + ":" + l.Start.String()
}
