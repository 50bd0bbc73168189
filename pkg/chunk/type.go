package chunk

import (
	"errors"
	"fmt"
)

var (
	ErrNonASCII     = errors.New("non-ASCII chunk type name")
	ErrTypeLength   = errors.New("chunk type name should be of length 4")
	ErrReservedCase = errors.New("third chunk type letter should be uppercase")
)

// Type is a 4-letter PNG chunk type. The case of each letter carries a flag:
//
//	byte 0: uppercase if critical
//	byte 1: uppercase if public
//	byte 2: always uppercase (reserved)
//	byte 3: lowercase if safe to copy
//
// A private ancillary chunk therefore looks like "abCd" or "abCD".
type Type [4]byte

var (
	IHDR = Type{'I', 'H', 'D', 'R'}
	IDAT = Type{'I', 'D', 'A', 'T'}
	IEND = Type{'I', 'E', 'N', 'D'}
)

// ParseType validates name and returns it as a Type.
func ParseType(name string) (Type, error) {
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			return Type{}, fmt.Errorf("%w: %q", ErrNonASCII, name)
		}
	}
	if len(name) != len(Type{}) {
		return Type{}, fmt.Errorf("%w: %q", ErrTypeLength, name)
	}

	var t Type
	copy(t[:], name)
	if !upper(t[2]) {
		return Type{}, fmt.Errorf("%w: %q", ErrReservedCase, name)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on an invalid name.
func MustParseType(name string) Type {
	t, err := ParseType(name)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Type) IsCritical() bool   { return upper(t[0]) }
func (t Type) IsPublic() bool     { return upper(t[1]) }
func (t Type) IsReserved() bool   { return upper(t[2]) }
func (t Type) IsSafeToCopy() bool { return lower(t[3]) }

func (t Type) String() string { return string(t[:]) }

// ASCII letters differ only in bit 5 (0x20): clear for upper, set for lower.
const caseBit = 0x20

func upper(b byte) bool { return letter(b) && b&caseBit == 0 }
func lower(b byte) bool { return letter(b) && b&caseBit != 0 }

func letter(b byte) bool {
	b |= caseBit
	return b >= 'a' && b <= 'z'
}
