package tradematch

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for trades and positions. The default
// implementation is deterministic: the same contributing activity ids
// always yield the same id, so re-matching the same input is reproducible.
type IDGenerator interface {
	NewID(parts ...string) string
}

// idNamespace is the fixed UUIDv5 namespace for derived ids.
var idNamespace = uuid.MustParse("9f2c1a57-3b8e-4a3f-9d21-5f0e6b7c8d90")

type uuidGenerator struct{}

func (uuidGenerator) NewID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "/"))).String()
}
