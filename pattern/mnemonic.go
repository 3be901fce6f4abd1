package pattern

// Mnemonics of C0 and C1 control bytes accepted by {NAME}.
//
// The table is part of the pattern format: existing pattern strings depend on
// every entry, so it must not change.
var mnemonics = map[string]byte{
	"NUL": 0x00,
	"SOH": 0x01,
	"STX": 0x02,
	"ETX": 0x03,
	"EOT": 0x04,
	"ENQ": 0x05,
	"ACK": 0x06,
	"BEL": 0x07,
	"BS":  0x08,
	"HT":  0x09,
	"LF":  0x0a,
	"VT":  0x0b,
	"FF":  0x0c,
	"CR":  0x0d,
	"LS1": 0x0e,
	"SO":  0x0e,
	"LS0": 0x0f,
	"SI":  0x0f,
	"DLE": 0x10,
	"DC1": 0x11,
	"DC2": 0x12,
	"DC3": 0x13,
	"DC4": 0x14,
	"NAK": 0x15,
	"SYN": 0x16,
	"ETB": 0x17,
	"CAN": 0x18,
	"EM":  0x19,
	"SUB": 0x1a,
	"ESC": 0x1b,
	"IS4": 0x1c,
	"FS":  0x1c,
	"IS3": 0x1d,
	"GS":  0x1d,
	"IS2": 0x1e,
	"RS":  0x1e,
	"IS1": 0x1f,
	"US":  0x1f,
	"SP":  0x20,
	"BPH": 0x82,
	"NBH": 0x83,
	"IND": 0x84,
	"NEL": 0x85,
	"SSA": 0x86,
	"ESA": 0x87,
	"HTS": 0x88,
	"HTJ": 0x89,
	"VTS": 0x8a,
	"PLD": 0x8b,
	"PLU": 0x8c,
	"RI":  0x8d,
	"SS2": 0x8e,
	"SS3": 0x8f,
	"DCS": 0x90,
	"PU1": 0x91,
	"PU2": 0x92,
	"STS": 0x93,
	"CCH": 0x94,
	"MW":  0x95,
	"SPA": 0x96,
	"EPA": 0x97,
	"SOS": 0x98,
	"SCI": 0x9a,
	"CSI": 0x9b,
	"ST":  0x9c,
	"OSC": 0x9d,
	"PM":  0x9e,
	"APC": 0x9f,
}

// names is the reverse table. Where a byte has two mnemonics, the one in
// common use wins.
var names = func() [256]string {
	var t [256]string
	for name, b := range mnemonics {
		switch name {
		case "LS1", "LS0", "IS4", "IS3", "IS2", "IS1":
			continue
		}
		t[b] = name
	}
	return t
}()

// Lookup returns the control byte named by mnemonic.
func Lookup(mnemonic string) (byte, bool) {
	b, ok := mnemonics[mnemonic]
	return b, ok
}

// Name returns the mnemonic of b, or "" if b has none.
func Name(b byte) string {
	return names[b]
}
