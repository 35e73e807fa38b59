package cli

// Options are the command line options.
type Options struct {
	Hover  Hover  `command:"hover" description:"print the declaration of the symbol at an offset"`
	Tree   Tree   `command:"tree" description:"print the type tree at an offset"`
	Render Render `command:"render" description:"render a type of a YAML type graph"`
	Pretty Pretty `command:"pretty" description:"reflow declaration text read from stdin"`
	Node   Node   `command:"node" description:"print the TypeScript syntax node at an offset"`
	Serve  Serve  `command:"serve" description:"answer completion requests as JSON-RPC over stdio"`

	Config   string `short:"c" long:"config" description:"configuration file, .prettify-type.yaml when omitted"`
	LogLevel string `long:"log-level" description:"log level, overrides the configuration" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}

// Position selects a source position.
type Position struct {
	File   string `short:"f" long:"file" description:"source file" required:"true"`
	Offset int    `short:"o" long:"offset" description:"byte offset" required:"true"`
	End    int    `long:"end" description:"end offset of a range, the offset when omitted" default:"-1"`
	// Graph projects are described by a typegraph.yaml instead of go.mod.
	Graph bool `long:"graph" description:"resolve against a YAML type graph instead of a Go module"`
}

func (p Position) end() int {
	if p.End < 0 {
		return p.Offset
	}

	return p.End
}

type Hover struct {
	Position
}

type Tree struct {
	Position
	Dump bool `long:"dump" description:"dump the Go value instead of JSON"`
}

type Render struct {
	Graph       string `short:"g" long:"graph" description:"type graph file" required:"true"`
	Type        string `short:"t" long:"type" description:"type to render, the graph root when omitted"`
	Declaration bool   `short:"d" long:"declaration" description:"render as a type declaration"`
}

type Pretty struct {
	Indent int `short:"i" long:"indent" description:"spaces per level, the configured width when omitted" default:"-1"`
}

type Node struct {
	File   string `short:"f" long:"file" description:"TypeScript or TSX file" required:"true"`
	Offset int    `short:"o" long:"offset" description:"byte offset" required:"true"`
}

type Serve struct {
	Graph bool `long:"graph" description:"resolve against YAML type graphs instead of Go modules"`
}
