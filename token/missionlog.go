package token

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// MissionLogCapacity is the fixed maximum number of log entries.
const MissionLogCapacity = 1992

// Tag is the fixed-size opaque label on a mission log entry, typically a
// content hash.
type Tag [32]byte

// HashTag derives a Tag from arbitrary content.
func HashTag(content []byte) Tag {
	return Tag(sha256.Sum256(content))
}

func (tag Tag) String() string {
	return hex.EncodeToString(tag[:])
}

// MarshalJSON encodes the tag as a hex string.
func (tag Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(tag.String())
}

// UnmarshalJSON decodes a hex string tag.
func (tag *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(tag) {
		return fmt.Errorf("token: tag must be %d bytes, got %d", len(tag), len(b))
	}
	copy(tag[:], b)
	return nil
}

// MissionEntry is one record in the append-only mission log. Indices are
// stable once written; entries are never removed.
type MissionEntry struct {
	Height uint64       `json:"height"`
	Value  *uint256.Int `json:"value"`
	Tag    Tag          `json:"tag"`
}

// LogMission appends an entry capturing the current height, value, and
// tag. Authority-only; fails once the log reaches capacity.
func (t *Token) LogMission(call Call, value *uint256.Int, tag Tag) error {
	if call.Caller != t.cfg.Authority {
		return ErrUnauthorized
	}
	if len(t.log) >= MissionLogCapacity {
		return ErrMissionLogFull
	}
	entry := MissionEntry{Height: call.Height, Value: value.Clone(), Tag: tag}
	t.log = append(t.log, entry)

	t.emit(MissionLoggedEvent{
		Index:  len(t.log) - 1,
		Height: entry.Height,
		Value:  entry.Value.Clone(),
		Tag:    tag,
	})
	return nil
}

// MissionLogLength returns the number of entries written so far.
func (t *Token) MissionLogLength() int { return len(t.log) }

// MissionLogEntry returns the entry at index.
func (t *Token) MissionLogEntry(index int) (MissionEntry, error) {
	if index < 0 || index >= len(t.log) {
		return MissionEntry{}, ErrIndexOutOfBounds
	}
	e := t.log[index]
	return MissionEntry{Height: e.Height, Value: e.Value.Clone(), Tag: e.Tag}, nil
}
