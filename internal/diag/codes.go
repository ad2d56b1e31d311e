package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Структура тегов
	TagInfo             Code = 1000
	TagInteriorMismatch Code = 1001 // closing tag found deeper in the open stack
	TagStrayClosing     Code = 1002 // closing tag with no open counterpart
	TagUnclosedAtEOF    Code = 1003

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	TagInfo:             "Tag structure information",
	TagInteriorMismatch: "Tag closed out of order",
	TagStrayClosing:     "Closing tag without opening tag",
	TagUnclosedAtEOF:    "Tag not closed before end of file",
	IOInfo:              "I/O information",
	IOLoadFileError:     "I/O load file error",
	ObsInfo:             "Observability information",
	ObsTimings:          "Pipeline timings",
}

// ID returns the stable short identifier, e.g. TAG1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TAG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Located reports whether diagnostics with this code point into a file.
// I/O and observability entries carry a zero span.
func (c Code) Located() bool {
	return c >= TagInfo && c < 2000
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
