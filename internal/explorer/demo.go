package explorer

import _ "embed"

// DemoDocument is explored when no input is given.
//
//go:embed demo.json
var DemoDocument []byte
