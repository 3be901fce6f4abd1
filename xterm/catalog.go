// Package xterm is a catalog of the control sequences understood by xterm
// and a handler set that reports each of them as an Event.
//
// Names follow the xterm control sequence documentation (ctlseqs). The
// catalog only recognizes sequences; it does not interpret them.
package xterm

import (
	"github.com/coregx/escseq/pattern"
)

// ParamKind describes the parameters a sequence carries.
type ParamKind uint8

const (
	// NoParams means the sequence is fixed.
	NoParams ParamKind = iota

	// NumericParams means the sequence carries numeric parameters.
	NumericParams

	// TextParams means the sequence carries a text or string parameter.
	TextParams
)

// String returns a human-readable representation of the ParamKind
func (k ParamKind) String() string {
	switch k {
	case NoParams:
		return "none"
	case NumericParams:
		return "numeric"
	case TextParams:
		return "text"
	default:
		return "unknown"
	}
}

// Sequence is one entry of the catalog. Several entries may share a name
// when a sequence has more than one form.
type Sequence struct {
	Name    string
	Pattern string
	Desc    string
}

// Kind returns the kind of parameters the pattern captures.
func (s Sequence) Kind() ParamKind {
	for _, e := range pattern.MustParse(s.Pattern) {
		switch {
		case e.IsNumeric():
			return NumericParams
		case e.IsParam():
			return TextParams
		}
	}
	return NoParams
}

// Sequences is the catalog, grouped the way ctlseqs lists them.
var Sequences = []Sequence{
	// single-character controls
	{"ENQ", "{ENQ}", "return terminal status"},
	{"BEL", "{BEL}", "bell"},
	{"BS", "{BS}", "backspace"},
	{"HT", "{HT}", "horizontal tab"},
	{"LF", "{LF}", "line feed"},
	{"VT", "{VT}", "vertical tab"},
	{"FF", "{FF}", "form feed"},
	{"CR", "{CR}", "carriage return"},
	{"SO", "{SO}", "shift out, switch to G1"},
	{"SI", "{SI}", "shift in, switch to G0"},

	// C1 controls
	{"IND", "{IND}", "index"},
	{"NEL", "{NEL}", "next line"},
	{"HTS", "{HTS}", "tab set"},
	{"RI", "{RI}", "reverse index"},
	{"SS2", "{SS2}[ -~]", "single shift select of G2"},
	{"SS3", "{SS3}[ -~]", "single shift select of G3"},
	{"SPA", "{SPA}", "start of guarded area"},
	{"EPA", "{EPA}", "end of guarded area"},
	{"DECID", "{SCI}", "return terminal ID"},

	// strings
	{"DCS", "{DCS}{Ps}{ST}", "device control string"},
	{"SOS", "{SOS}{Ps}{ST}", "start of string"},
	{"PM", "{PM}{Ps}{ST}", "privacy message"},
	{"APC", "{APC}{Ps}{ST}", "application program command"},
	{"OSC", "{OSC}{Pt}{BEL}", "operating system command"},
	{"OSC", "{OSC}{Pt}{ST}", "operating system command"},

	// ESC sequences
	{"S7C1T", "{ESC} F", "7-bit controls"},
	{"S8C1T", "{ESC} G", "8-bit controls"},
	{"ANSI", "{ESC} [LMN]", "set ANSI conformance level"},
	{"DECDHL", "{ESC}#[34]", "double-height line"},
	{"DECSWL", "{ESC}#5", "single-width line"},
	{"DECDWL", "{ESC}#6", "double-width line"},
	{"DECALN", "{ESC}#8", "screen alignment test"},
	{"CHARSET", "{ESC}%@", "select default character set"},
	{"UTF8", "{ESC}%G", "select UTF-8 character set"},
	{"SCS", "{ESC}([0<>AB4C5RfQKY9E6ZH7=`]", "designate G0 character set"},
	{"SCS", "{ESC})[0<>AB4C5RfQKY9E6ZH7=`]", "designate G1 character set"},
	{"SCS", "{ESC}*[0<>AB4C5RfQKY9E6ZH7=`]", "designate G2 character set"},
	{"SCS", "{ESC}+[0<>AB4C5RfQKY9E6ZH7=`]", "designate G3 character set"},
	{"SCS", "{ESC}.[AFHLM]", "designate G2 96-character set"},
	{"SCS", "{ESC}/[AFHLM]", "designate G3 96-character set"},
	{"DECBI", "{ESC}6", "back index"},
	{"DECSC", "{ESC}7", "save cursor"},
	{"DECRC", "{ESC}8", "restore cursor"},
	{"DECFI", "{ESC}9", "forward index"},
	{"DECKPAM", "{ESC}=", "application keypad"},
	{"DECKPNM", "{ESC}>", "normal keypad"},
	{"HPLL", "{ESC}F", "cursor to lower left corner of screen"},
	{"RIS", "{ESC}c", "full reset"},
	{"HPMEMLOCK", "{ESC}l", "memory lock"},
	{"HPMEMUNLOCK", "{ESC}m", "memory unlock"},
	{"LS2", "{ESC}n", "invoke G2 as GL"},
	{"LS3", "{ESC}o", "invoke G3 as GL"},
	{"LS3R", "{ESC}|", "invoke G3 as GR"},
	{"LS2R", "{ESC}\\}", "invoke G2 as GR"},
	{"LS1R", "{ESC}~", "invoke G1 as GR"},

	// CSI sequences
	{"ICH", "{CSI}{P1}@", "insert blank characters"},
	{"SL", "{CSI}{P1} @", "shift left columns"},
	{"CUU", "{CSI}{P1}A", "cursor up"},
	{"SR", "{CSI}{P1} A", "shift right columns"},
	{"CUD", "{CSI}{P1}B", "cursor down"},
	{"CUF", "{CSI}{P1}C", "cursor forward"},
	{"CUB", "{CSI}{P1}D", "cursor backward"},
	{"CNL", "{CSI}{P1}E", "cursor next line"},
	{"CPL", "{CSI}{P1}F", "cursor preceding line"},
	{"CHA", "{CSI}{P1}G", "cursor character absolute"},
	{"CUP", "{CSI}H", "cursor position, home"},
	{"CUP", "{CSI}{P2}H", "cursor position"},
	{"CHT", "{CSI}{P1}I", "cursor forward tabulation"},
	{"ED", "{CSI}{P1}J", "erase in display"},
	{"DECSED", "{CSI}?{P1}J", "selective erase in display"},
	{"EL", "{CSI}{P1}K", "erase in line"},
	{"DECSEL", "{CSI}?{P1}K", "selective erase in line"},
	{"IL", "{CSI}{P1}L", "insert lines"},
	{"DL", "{CSI}{P1}M", "delete lines"},
	{"DCH", "{CSI}{P1}P", "delete characters"},
	{"SU", "{CSI}{P1}S", "scroll up"},
	{"SD", "{CSI}{P1}T", "scroll down"},
	{"XTRMTITLE", "{CSI}>{P*}T", "reset title mode features"},
	{"ECH", "{CSI}{P1}X", "erase characters"},
	{"CBT", "{CSI}{P1}Z", "cursor backward tabulation"},
	{"HPA", "{CSI}{P1}`", "character position absolute"},
	{"HPR", "{CSI}{P1}a", "character position relative"},
	{"REP", "{CSI}{P1}b", "repeat preceding graphic character"},
	{"DA1", "{CSI}{P*}c", "primary device attributes"},
	{"DA2", "{CSI}>{P*}c", "secondary device attributes"},
	{"DA3", "{CSI}={P1}c", "tertiary device attributes"},
	{"VPA", "{CSI}{P1}d", "line position absolute"},
	{"VPR", "{CSI}{P1}e", "line position relative"},
	{"HVP", "{CSI}f", "horizontal and vertical position, home"},
	{"HVP", "{CSI}{P2}f", "horizontal and vertical position"},
	{"TBC", "{CSI}{P1}g", "tab clear"},
	{"SM", "{CSI}{P*}h", "set mode"},
	{"DECSET", "{CSI}?{P*}h", "DEC private mode set"},
	{"MC", "{CSI}{P*}i", "media copy"},
	{"DECMC", "{CSI}?{P*}i", "DEC media copy"},
	{"RM", "{CSI}{P*}l", "reset mode"},
	{"DECRST", "{CSI}?{P*}l", "DEC private mode reset"},
	{"SGR", "{CSI}{P*}m", "character attributes"},
	{"XTMODKEYS", "{CSI}>{P*}m", "set key modifier options"},
	{"DSR", "{CSI}{P1}n", "device status report"},
	{"DECDSR", "{CSI}?{P1}n", "DEC device status report"},
	{"DECSTR", "{CSI}!p", "soft terminal reset"},
	{"DECSCL", `{CSI}{P2}"p`, "set conformance level"},
	{"DECRQM", "{CSI}{P1}$p", "request ANSI mode"},
	{"DECRQM", "{CSI}?{P1}$p", "request DEC private mode"},
	{"DECLL", "{CSI}{P*}q", "load LEDs"},
	{"DECSCUSR", "{CSI}{P1} q", "set cursor style"},
	{"DECSCA", `{CSI}{P1}"q`, "select character protection attribute"},
	{"XTVERSION", "{CSI}>{P1}q", "report xterm name and version"},
	{"DECSTBM", "{CSI}r", "reset scrolling region"},
	{"DECSTBM", "{CSI}{P2}r", "set scrolling region"},
	{"XTRESTORE", "{CSI}?{P*}r", "restore DEC private mode values"},
	{"DECCARA", "{CSI}{P*}$r", "change attributes in rectangular area"},
	{"SCOSC", "{CSI}s", "save cursor"},
	{"DECSLRM", "{CSI}{P2}s", "set left and right margins"},
	{"XTSAVE", "{CSI}?{P*}s", "save DEC private mode values"},
	{"XTWINOPS", "{CSI}{P*}t", "window manipulation"},
	{"XTSMTITLE", "{CSI}>{P*}t", "set title mode features"},
	{"DECSWBV", "{CSI}{P1} t", "set warning-bell volume"},
	{"DECRARA", "{CSI}{P*}$t", "reverse attributes in rectangular area"},
	{"SCORC", "{CSI}u", "restore cursor"},
	{"DECSMBV", "{CSI}{P1} u", "set margin-bell volume"},
	{"DECCRA", "{CSI}{P*}$v", "copy rectangular area"},
	{"DECEFR", "{CSI}{P*}'w", "enable filter rectangle"},
	{"DECREQTPARM", "{CSI}{P1}x", "request terminal parameters"},
	{"DECSACE", "{CSI}{P*}*x", "select attribute change extent"},
	{"DECFRA", "{CSI}{P*}$x", "fill rectangular area"},
	{"DECRQCRA", "{CSI}{P*}*y", "request checksum of rectangular area"},
	{"DECELR", "{CSI}{P*}'z", "enable locator reporting"},
	{"DECERA", "{CSI}{P*}$z", "erase rectangular area"},
	{"DECINVM", "{CSI}{P1}*z", "invoke macro"},
	{"DECSLE", "{CSI}{P*}'\\{", "select locator events"},
	{"DECSERA", "{CSI}{P*}$\\{", "selective erase rectangular area"},
	{"DECRQLP", "{CSI}{P*}'|", "request locator position"},
	{"DECSNLS", "{CSI}{P1}*|", "set number of lines per screen"},
	{"DECIC", "{CSI}{P1}'\\}", "insert columns"},
	{"DECDC", "{CSI}{P1}'~", "delete columns"},
}

// Lookup returns the entries named name.
func Lookup(name string) []Sequence {
	var out []Sequence
	for _, s := range Sequences {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}
