package rxgen

import (
	"bytes"
	"strings"
)

// GenerateString returns one generated string. In ModeBinary the string may
// hold bytes that are not valid UTF-8.
func (g *Generator) GenerateString(src Source) (string, error) {
	var sb strings.Builder
	if err := g.Generate(src, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// GenerateBytes returns one generated byte slice.
func (g *Generator) GenerateBytes(src Source) ([]byte, error) {
	return g.AppendBytes(nil, src)
}

// AppendBytes appends one generated value to dst and returns the extended
// slice. On error dst is returned unchanged.
func (g *Generator) AppendBytes(dst []byte, src Source) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := g.Generate(src, buf); err != nil {
		return dst, err
	}
	return buf.Bytes(), nil
}
