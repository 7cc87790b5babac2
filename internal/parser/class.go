package parser

import (
	"strings"
)

// Class is the regulatory category of an airspace volume.
type Class int

const (
	// ClassUnknown is the zero value and never appears in a catalog.
	ClassUnknown Class = iota
	ClassA
	ClassB
	ClassC
	ClassD
	ClassE
	ClassF
	ClassG
	ClassProhibited
	ClassRestricted
	ClassDanger
	ClassOther
)

// AllClasses lists every class a volume can carry, in priority order.
var AllClasses = []Class{
	ClassProhibited, ClassRestricted, ClassDanger,
	ClassA, ClassB, ClassC, ClassD, ClassE, ClassF, ClassG,
	ClassOther,
}

// Priority orders classes for display: the special-use classes come
// first because they matter most operationally. Lower is more important.
func (c Class) Priority() int {
	switch c {
	case ClassProhibited:
		return 0
	case ClassRestricted:
		return 1
	case ClassDanger:
		return 2
	case ClassA, ClassB, ClassC, ClassD, ClassE, ClassF, ClassG:
		return 3 + int(c-ClassA)
	case ClassOther:
		return 10
	default:
		return 11
	}
}

// String returns the code used for the class in structured data.
func (c Class) String() string {
	switch c {
	case ClassA, ClassB, ClassC, ClassD, ClassE, ClassF, ClassG:
		return string(rune('A' + int(c-ClassA)))
	case ClassProhibited:
		return "PROHIBITED"
	case ClassRestricted:
		return "RESTRICTED"
	case ClassDanger:
		return "DANGER"
	case ClassOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// structuredClassCodes maps the class codes of the structured format.
var structuredClassCodes = map[string]Class{
	"A":          ClassA,
	"B":          ClassB,
	"C":          ClassC,
	"D":          ClassD,
	"E":          ClassE,
	"F":          ClassF,
	"G":          ClassG,
	"P":          ClassProhibited,
	"PROHIBITED": ClassProhibited,
	"R":          ClassRestricted,
	"RESTRICTED": ClassRestricted,
	"Q":          ClassDanger,
	"DANGER":     ClassDanger,
	"OTHER":      ClassOther,
}

// legacyClassCodes maps OpenAir "AC" codes. Codes that name an airspace
// type rather than a class become ClassOther and keep the code as their
// local type.
var legacyClassCodes = map[string]Class{
	"A":    ClassA,
	"B":    ClassB,
	"C":    ClassC,
	"D":    ClassD,
	"E":    ClassE,
	"F":    ClassF,
	"G":    ClassG,
	"P":    ClassProhibited,
	"R":    ClassRestricted,
	"Q":    ClassDanger,
	"CTR":  ClassOther,
	"GP":   ClassOther,
	"GSEC": ClassOther,
	"W":    ClassOther,
	"TMZ":  ClassOther,
	"RMZ":  ClassOther,
	"MATZ": ClassOther,
	"ATZ":  ClassOther,
	"UNC":  ClassOther,
	"OTH":  ClassOther,
}

// ClassFromCode converts a structured-format class code.
func ClassFromCode(code string) (Class, bool) {
	c, ok := structuredClassCodes[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// classFromLegacy converts an OpenAir AC code. The second return is the
// local type implied by the code, if any.
func classFromLegacy(code string) (Class, string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c, ok := legacyClassCodes[code]
	if !ok {
		return ClassUnknown, "", false
	}
	if c == ClassOther {
		return c, code, true
	}
	return c, "", true
}
