package commandkit

import (
	"context"

	"github.com/google/uuid"
)

// UUIDParser reads a standard-form UUID token (spec.md §4.3), backed by
// github.com/google/uuid rather than a hand-rolled hyphen/hex check.
type UUIDParser struct{}

var UUID ArgumentType[uuid.UUID] = &UUIDParser{}

func (p *UUIDParser) Parse(_ context.Context, in *CommandInput) (uuid.UUID, error) {
	start := in.Cursor
	token, err := in.Read()
	if err != nil {
		return uuid.UUID{}, err
	}
	id, err := uuid.Parse(token)
	if err != nil {
		in.Cursor = start
		return uuid.UUID{}, newUuidMalformedError(in, token)
	}
	return id, nil
}
