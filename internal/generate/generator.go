package generate

import "github.com/jptrs93/packetgen/internal/ir"

type OutputFile struct {
	Path    string
	Content []byte
}

type Options struct {
	OutDir         string
	Layout         string
	Workers        int
	IOImport       string
	PacketImport   string
	NullableImport string
	NetImport      string
}

type Generator interface {
	Name() string
	Generate(messages []ir.MessageType, options Options) ([]OutputFile, error)
}
