package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jptrs93/packetgen/internal/ir"
)

const yamlSchema = `
messages:
  - name: Ping
  - name: Move
    id: 3
    fields:
      - name: x
        type: int32
      - name: y
        type: int32
  - name: Chat
    id: 7
    fields:
      - name: message
        type: string
  - name: Batch
    fields:
      - name: ids
        type: IntSeq
      - name: tiles
        type: Seq<Tile>
`

func TestParseSchemaYAML(t *testing.T) {
	sf, err := ParseSchema([]byte(yamlSchema), "yaml")
	require.NoError(t, err)
	require.Len(t, sf.Messages, 4)
	assert.Nil(t, sf.Messages[0].ID)
	require.NotNil(t, sf.Messages[1].ID)
	assert.Equal(t, 3, *sf.Messages[1].ID)
	assert.Equal(t, "Seq<Tile>", sf.Messages[3].Fields[1].Type)
}

func TestParseSchemaTOML(t *testing.T) {
	doc := `
[[messages]]
name = "Move"

  [[messages.fields]]
  name = "x"
  type = "int32"

  [[messages.fields]]
  name = "flags"
  type = "[]bool"
`
	sf, err := ParseSchema([]byte(doc), "toml")
	require.NoError(t, err)
	require.Len(t, sf.Messages, 1)
	assert.Equal(t, "Move", sf.Messages[0].Name)
	assert.Equal(t, []SchemaField{{Name: "x", Type: "int32"}, {Name: "flags", Type: "[]bool"}}, sf.Messages[0].Fields)
}

func TestParseSchemaJSON(t *testing.T) {
	doc := `{"messages": [{"name": "Ping", "id": 4}]}`
	sf, err := ParseSchema([]byte(doc), "json")
	require.NoError(t, err)
	require.Len(t, sf.Messages, 1)
	assert.Equal(t, 4, *sf.Messages[0].ID)
}

func TestParseSchemaRejectsUnnamedMessage(t *testing.T) {
	_, err := ParseSchema([]byte("messages:\n  - id: 1\n"), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestSchemaSourceLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSchema), 0o644))

	src := &SchemaSource{}
	msgs, err := src.Load(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	assert.Equal(t, "Ping", msgs[0].Name)
	assert.Equal(t, 0, msgs[0].ID)
	assert.Empty(t, msgs[0].Fields)

	assert.Equal(t, 3, msgs[1].ID)
	assert.Equal(t, []ir.Field{
		{Name: "x", Type: ir.Prim(ir.PrimInt32)},
		{Name: "y", Type: ir.Prim(ir.PrimInt32)},
	}, msgs[1].Fields)

	assert.Equal(t, 7, msgs[2].ID)
	assert.Equal(t, ir.TypeText, msgs[2].Fields[0].Type.Kind)

	assert.Equal(t, 1, msgs[3].ID)
	assert.Equal(t, ir.TypeIntArray, msgs[3].Fields[0].Type.Kind)
	assert.Equal(t, ir.TypeContainer, msgs[3].Fields[1].Type.Kind)
	assert.Equal(t, path, msgs[3].Source)
}

func TestSchemaSourceMissingFile(t *testing.T) {
	src := &SchemaSource{}
	_, err := src.Load(context.Background(), []string{filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read schema file")
}
