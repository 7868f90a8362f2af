// internal/frame/constants.go
package frame

// Brink caller-ID line protocol constants.
// These values define the protocol and MUST NOT be configurable.

// ---- COMMANDS ----

// CmdAssign shows caller information on a line.
const CmdAssign = "+1"

// CmdRelease clears a line.
const CmdRelease = "+2"

// ReleaseArg is the fixed second field of a release frame.
const ReleaseArg = "0"

// ---- DELIMITERS ----

// FieldSep separates fields. Fields MUST NOT contain it.
const FieldSep = ','

// Terminator ends every frame.
const Terminator = "\r\n"

// ---- SANITIZING ----

// SepReplacement replaces FieldSep inside field values.
const SepReplacement = ' '

// Unprintable replaces bytes outside printable ASCII.
const Unprintable = '?'
