package coff

import (
	"encoding/binary"
	"fmt"
)

// Special symbol section numbers.
const (
	IMAGE_SYM_UNDEFINED = 0
	IMAGE_SYM_ABSOLUTE  = -1
	IMAGE_SYM_DEBUG     = -2
)

// StorageClass is the 1-byte linkage/visibility kind of a symbol. The
// set is closed; anything else in the field is a decode failure.
type StorageClass uint8

const (
	IMAGE_SYM_CLASS_END_OF_FUNCTION  StorageClass = 0xff
	IMAGE_SYM_CLASS_NULL             StorageClass = 0
	IMAGE_SYM_CLASS_AUTOMATIC        StorageClass = 1
	IMAGE_SYM_CLASS_EXTERNAL         StorageClass = 2
	IMAGE_SYM_CLASS_STATIC           StorageClass = 3
	IMAGE_SYM_CLASS_REGISTER         StorageClass = 4
	IMAGE_SYM_CLASS_EXTERNAL_DEF     StorageClass = 5
	IMAGE_SYM_CLASS_LABEL            StorageClass = 6
	IMAGE_SYM_CLASS_UNDEFINED_LABEL  StorageClass = 7
	IMAGE_SYM_CLASS_MEMBER_OF_STRUCT StorageClass = 8
	IMAGE_SYM_CLASS_ARGUMENT         StorageClass = 9
	IMAGE_SYM_CLASS_STRUCT_TAG       StorageClass = 10
	IMAGE_SYM_CLASS_MEMBER_OF_UNION  StorageClass = 11
	IMAGE_SYM_CLASS_UNION_TAG        StorageClass = 12
	IMAGE_SYM_CLASS_TYPE_DEFINITION  StorageClass = 13
	IMAGE_SYM_CLASS_UNDEFINED_STATIC StorageClass = 14
	IMAGE_SYM_CLASS_ENUM_TAG         StorageClass = 15
	IMAGE_SYM_CLASS_MEMBER_OF_ENUM   StorageClass = 16
	IMAGE_SYM_CLASS_REGISTER_PARAM   StorageClass = 17
	IMAGE_SYM_CLASS_BIT_FIELD        StorageClass = 18
	IMAGE_SYM_CLASS_BLOCK            StorageClass = 100
	IMAGE_SYM_CLASS_FUNCTION         StorageClass = 101
	IMAGE_SYM_CLASS_END_OF_STRUCT    StorageClass = 102
	IMAGE_SYM_CLASS_FILE             StorageClass = 103
	IMAGE_SYM_CLASS_SECTION          StorageClass = 104
	IMAGE_SYM_CLASS_WEAK_EXTERNAL    StorageClass = 105
	IMAGE_SYM_CLASS_CLR_TOKEN        StorageClass = 107
)

var storageClassNames = map[StorageClass]string{
	IMAGE_SYM_CLASS_END_OF_FUNCTION:  "end-of-function",
	IMAGE_SYM_CLASS_NULL:             "null",
	IMAGE_SYM_CLASS_AUTOMATIC:        "automatic",
	IMAGE_SYM_CLASS_EXTERNAL:         "external",
	IMAGE_SYM_CLASS_STATIC:           "static",
	IMAGE_SYM_CLASS_REGISTER:         "register",
	IMAGE_SYM_CLASS_EXTERNAL_DEF:     "external-def",
	IMAGE_SYM_CLASS_LABEL:            "label",
	IMAGE_SYM_CLASS_UNDEFINED_LABEL:  "undefined-label",
	IMAGE_SYM_CLASS_MEMBER_OF_STRUCT: "member-of-struct",
	IMAGE_SYM_CLASS_ARGUMENT:         "argument",
	IMAGE_SYM_CLASS_STRUCT_TAG:       "struct-tag",
	IMAGE_SYM_CLASS_MEMBER_OF_UNION:  "member-of-union",
	IMAGE_SYM_CLASS_UNION_TAG:        "union-tag",
	IMAGE_SYM_CLASS_TYPE_DEFINITION:  "type-definition",
	IMAGE_SYM_CLASS_UNDEFINED_STATIC: "undefined-static",
	IMAGE_SYM_CLASS_ENUM_TAG:         "enum-tag",
	IMAGE_SYM_CLASS_MEMBER_OF_ENUM:   "member-of-enum",
	IMAGE_SYM_CLASS_REGISTER_PARAM:   "register-param",
	IMAGE_SYM_CLASS_BIT_FIELD:        "bit-field",
	IMAGE_SYM_CLASS_BLOCK:            "block",
	IMAGE_SYM_CLASS_FUNCTION:         "function",
	IMAGE_SYM_CLASS_END_OF_STRUCT:    "end-of-struct",
	IMAGE_SYM_CLASS_FILE:             "file",
	IMAGE_SYM_CLASS_SECTION:          "section",
	IMAGE_SYM_CLASS_WEAK_EXTERNAL:    "weak-external",
	IMAGE_SYM_CLASS_CLR_TOKEN:        "clr-token",
}

func (c StorageClass) Known() bool {
	_, ok := storageClassNames[c]
	return ok
}

func (c StorageClass) String() string {
	if s, ok := storageClassNames[c]; ok {
		return s
	}
	return fmt.Sprintf("class(%#02x)", uint8(c))
}

// Base types, high byte of the packed symbol type.
const (
	IMAGE_SYM_TYPE_NULL   = 0
	IMAGE_SYM_TYPE_VOID   = 1
	IMAGE_SYM_TYPE_CHAR   = 2
	IMAGE_SYM_TYPE_SHORT  = 3
	IMAGE_SYM_TYPE_INT    = 4
	IMAGE_SYM_TYPE_LONG   = 5
	IMAGE_SYM_TYPE_FLOAT  = 6
	IMAGE_SYM_TYPE_DOUBLE = 7
	IMAGE_SYM_TYPE_STRUCT = 8
	IMAGE_SYM_TYPE_UNION  = 9
	IMAGE_SYM_TYPE_ENUM   = 10
	IMAGE_SYM_TYPE_MOE    = 11
	IMAGE_SYM_TYPE_BYTE   = 12
	IMAGE_SYM_TYPE_WORD   = 13
	IMAGE_SYM_TYPE_UINT   = 14
	IMAGE_SYM_TYPE_DWORD  = 15
)

// Complex types, bits 4-7 of the packed symbol type.
const (
	IMAGE_SYM_DTYPE_NULL     = 0
	IMAGE_SYM_DTYPE_POINTER  = 1
	IMAGE_SYM_DTYPE_FUNCTION = 2
	IMAGE_SYM_DTYPE_ARRAY    = 3
)

// rawSymbol is the 18-byte on-disk record.
type rawSymbol struct {
	Name               [8]byte
	Value              uint32
	SectionNumber      int16
	Type               uint16
	StorageClass       uint8
	NumberOfAuxSymbols uint8
}

const symbolSize = 18

// Symbol is one decoded symbol-table record. Auxiliary records that
// follow a symbol are decoded as further records of the table; only
// their count is interpreted here.
type Symbol struct {
	Name               string
	Value              uint32
	SectionNumber      int16
	Type               uint16
	StorageClass       StorageClass
	NumberOfAuxSymbols uint8
}

// BaseType extracts the base type from the high byte of the packed type.
func (s *Symbol) BaseType() uint8 { return uint8(s.Type >> 8) }

// ComplexType extracts bits 4-7 of the packed type.
func (s *Symbol) ComplexType() uint8 { return uint8(s.Type>>4) & 0xf }

var baseTypeNames = [16]string{
	"null", "void", "char", "short", "int", "long", "float", "double",
	"struct", "union", "enum", "moe", "byte", "word", "uint", "dword",
}

var complexTypeNames = [4]string{"null", "pointer", "function", "array"}

// BaseTypeString renders a base type nibble-range value for reports.
func BaseTypeString(bt uint8) string {
	if int(bt) < len(baseTypeNames) {
		return baseTypeNames[bt]
	}
	return fmt.Sprintf("base(%#02x)", bt)
}

// ComplexTypeString renders a complex type value for reports.
func ComplexTypeString(ct uint8) string {
	if int(ct) < len(complexTypeNames) {
		return complexTypeNames[ct]
	}
	return fmt.Sprintf("complex(%#02x)", ct)
}

// resolveSymbolName applies the long-name rule: four leading zero bytes
// make the next four a little-endian string-table offset, anything else
// is the name itself truncated at the first NUL.
func resolveSymbolName(raw [8]byte, st *StringTable) string {
	if raw[0] == 0 && raw[1] == 0 && raw[2] == 0 && raw[3] == 0 {
		return st.Lookup(binary.LittleEndian.Uint32(raw[4:]))
	}
	return cstring(raw[:])
}
