package input

// maxSGRSeq bounds how many bytes the SGR payload read loop will
// consume without finding a terminator, so a malformed sequence can't
// run away.
const maxSGRSeq = 32

// reader is the minimal byte source parseEscape and its helpers need;
// *bufio.Reader satisfies it, and tests can supply a bytes.Reader-backed
// bufio.Reader directly without a live terminal.
type reader interface {
	ReadByte() (byte, error)
}

// parseEscape is called with ESC already consumed from r. It reads up
// to two more bytes to disambiguate an SGR mouse report, a legacy X10
// report, or an unrecognized sequence, and returns the events it
// produced.
func parseEscape(r reader) []Event {
	first, err := r.ReadByte()
	if err != nil {
		return []Event{{Type: EventKey, Key: 0x1b}}
	}
	if first != '[' {
		return []Event{{Type: EventKey, Key: 0x1b}, {Type: EventKey, Key: first}}
	}

	second, err := r.ReadByte()
	if err != nil {
		return []Event{{Type: EventKey, Key: 0x1b}, {Type: EventKey, Key: first}}
	}

	switch second {
	case '<':
		return parseSGRMouse(r)
	case 'M', 'm':
		return parseX10Mouse(r)
	default:
		return []Event{{Type: EventKey, Key: 0x1b}, {Type: EventKey, Key: first}, {Type: EventKey, Key: second}}
	}
}

// parseSGRMouse is called with "ESC [ <" already consumed. It reads the
// decimal "Cb;Cx;Cy" payload up to a terminating M (press) or m
// (release), or maxSGRSeq bytes, whichever comes first.
func parseSGRMouse(r reader) []Event {
	var payload []byte
	var terminator byte

	for len(payload) < maxSGRSeq {
		b, err := r.ReadByte()
		if err != nil {
			return flushAsKeys(payload)
		}
		if b == 'M' || b == 'm' {
			terminator = b
			break
		}
		payload = append(payload, b)
	}

	if terminator == 0 {
		return flushAsKeys(payload)
	}

	cb, cx, cy, ok := parseSGRPayload(payload)
	if !ok {
		return flushAsKeys(payload)
	}

	return []Event{{
		Type:     EventMouse,
		Button:   cb,
		Released: terminator == 'm',
		X:        cx,
		Y:        cy,
	}}
}

// parseSGRPayload parses a "Cb;Cx;Cy" decimal triple.
func parseSGRPayload(payload []byte) (cb, cx, cy int, ok bool) {
	fields := splitSemicolon(payload)
	if len(fields) != 3 {
		return 0, 0, 0, false
	}
	a, ok1 := parseUint(fields[0])
	b, ok2 := parseUint(fields[1])
	c, ok3 := parseUint(fields[2])
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, 0, false
	}
	return a, b, c, true
}

func splitSemicolon(b []byte) [][]byte {
	var out [][]byte
	start := 0
	for i, c := range b {
		if c == ';' {
			out = append(out, b[start:i])
			start = i + 1
		}
	}
	out = append(out, b[start:])
	return out
}

func parseUint(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// parseX10Mouse is called with "ESC [ M" or "ESC [ m" already consumed.
// It reads exactly three bytes; each minus the 32-byte ASCII encoding
// offset yields Cb, Cx, Cy. Cb == 3 is the legacy "all buttons released"
// sentinel.
func parseX10Mouse(r reader) []Event {
	const offset = 32
	var seq [3]byte
	n := 0
	for ; n < 3; n++ {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		seq[n] = b
	}
	if n != 3 {
		return flushAsKeys(seq[:n])
	}

	cb := int(seq[0]) - offset
	return []Event{{
		Type:     EventMouse,
		Button:   cb,
		Released: cb == 3,
		X:        int(seq[1]) - offset,
		Y:        int(seq[2]) - offset,
	}}
}

// flushAsKeys turns each payload byte of a sequence that failed to parse
// as a mouse report into its own key event. The escape prefix the
// caller already consumed (and an SGR terminator byte, if one was read)
// is not included.
func flushAsKeys(raw []byte) []Event {
	events := make([]Event, len(raw))
	for i, b := range raw {
		events[i] = Event{Type: EventKey, Key: b}
	}
	return events
}
